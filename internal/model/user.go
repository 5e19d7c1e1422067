package model

// User is one ledger account. Users authenticate elsewhere; the engine only
// ever reads and adjusts Balance.
type User struct {
	ID          string `json:"id"`
	TelegramID  string `json:"telegram_id"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
	Balance     int    `json:"balance"`
}
