package game

import (
	"math/rand"
	"testing"
)

func TestNewTicketColumnBands(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for run := 0; run < 50; run++ {
		tk := NewTicket(rng)
		for col := 0; col < Size; col++ {
			low, high := col*BandWidth+1, (col+1)*BandWidth
			seen := map[int]bool{}
			for row := 0; row < Size; row++ {
				if row == FreeRow && col == FreeCol {
					continue
				}
				v := tk.Grid[row][col]
				if v < low || v > high {
					t.Fatalf("col %d value %d outside band [%d,%d]", col, v, low, high)
				}
				if seen[v] {
					t.Fatalf("col %d has duplicate value %d", col, v)
				}
				seen[v] = true
			}
		}
	}
}

func TestNewTicketFreeCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	tk := NewTicket(rng)
	if tk.Grid[FreeRow][FreeCol] != 0 {
		t.Fatalf("center cell = %d, want 0", tk.Grid[FreeRow][FreeCol])
	}
	if tk.Cartela == "" {
		t.Fatal("cartela id not set")
	}
}

func TestNewTicketCartelaUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := NewTicket(rng)
	b := NewTicket(rng)
	if a.Cartela == b.Cartela {
		t.Fatalf("two tickets share cartela %s", a.Cartela)
	}
}

func TestReveal(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	tk := NewTicket(rng)

	called := map[int]struct{}{tk.Grid[0][0]: {}, tk.Grid[4][3]: {}}
	out := Reveal(tk, called)

	if !out[0][0].Marked || !out[4][3].Marked {
		t.Fatal("called cells not marked")
	}
	if !out[FreeRow][FreeCol].Free || !out[FreeRow][FreeCol].Marked {
		t.Fatal("center cell not marked free")
	}
	if out[1][1].Marked {
		t.Fatal("uncalled cell marked")
	}
	if out[0][0].Value != tk.Grid[0][0] {
		t.Fatalf("value mismatch: %d != %d", out[0][0].Value, tk.Grid[0][0])
	}
}
