package game

import (
	"math/rand"

	"github.com/google/uuid"
)

const (
	// Size is the width and height of a bingo card.
	Size = 5
	// BandWidth is the number of values eligible for each column.
	BandWidth = 15
	// PoolSize is the number of callable values (1..75).
	PoolSize = Size * BandWidth

	// FreeRow and FreeCol locate the permanently marked center cell.
	FreeRow = 2
	FreeCol = 2
)

// Ticket is one player's 5x5 card. Column c draws its five values from the
// band [c*15+1, c*15+15], all distinct. The center cell holds 0 and is a
// free space. Cartela is an opaque identifier used for display and audit.
type Ticket struct {
	Cartela string          `json:"cartela"`
	Grid    [Size][Size]int `json:"grid"`
}

// NewTicket generates a randomized card. The caller owns rng and must
// serialize access to it.
func NewTicket(rng *rand.Rand) Ticket {
	var t Ticket
	t.Cartela = uuid.NewString()
	for col := 0; col < Size; col++ {
		low := col*BandWidth + 1
		picks := rng.Perm(BandWidth)[:Size]
		for row := 0; row < Size; row++ {
			t.Grid[row][col] = low + picks[row]
		}
	}
	t.Grid[FreeRow][FreeCol] = 0
	return t
}

// RevealedCell is one cell of a ticket annotated against the call history,
// as broadcast with a validated win.
type RevealedCell struct {
	Value  int  `json:"value"`
	Marked bool `json:"marked"`
	Free   bool `json:"free"`
}

// Reveal annotates every cell of t with marked/free flags given the set of
// called numbers.
func Reveal(t Ticket, called map[int]struct{}) [Size][Size]RevealedCell {
	var out [Size][Size]RevealedCell
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			v := t.Grid[row][col]
			cell := RevealedCell{Value: v}
			if row == FreeRow && col == FreeCol {
				cell.Free = true
				cell.Marked = true
			} else if _, ok := called[v]; ok {
				cell.Marked = true
			}
			out[row][col] = cell
		}
	}
	return out
}
