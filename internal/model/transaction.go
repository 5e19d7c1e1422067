package model

const (
	TransactionWin   = "win"
	TransactionStake = "stake"

	TransactionCompleted = "completed"
)

// Transaction is one audit row written alongside a balance change.
type Transaction struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	Amount int    `json:"amount"`
	Status string `json:"status"`
}
