package game

import (
	"math/rand"
	"testing"
)

func callCells(tk Ticket, cells [][2]int) map[int]struct{} {
	called := map[int]struct{}{}
	for _, c := range cells {
		v := tk.Grid[c[0]][c[1]]
		if v != 0 {
			called[v] = struct{}{}
		}
	}
	return called
}

func TestHasWinTopRow(t *testing.T) {
	tk := NewTicket(rand.New(rand.NewSource(10)))
	called := callCells(tk, [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}})
	if !HasWin(tk, called) {
		t.Fatal("fully covered top row not detected")
	}
}

func TestHasWinColumn(t *testing.T) {
	tk := NewTicket(rand.New(rand.NewSource(11)))
	called := callCells(tk, [][2]int{{0, 3}, {1, 3}, {2, 3}, {3, 3}, {4, 3}})
	if !HasWin(tk, called) {
		t.Fatal("fully covered column not detected")
	}
}

func TestHasWinMiddleRowUsesFreeCell(t *testing.T) {
	tk := NewTicket(rand.New(rand.NewSource(12)))
	// Middle row needs only four calls thanks to the free center.
	called := callCells(tk, [][2]int{{2, 0}, {2, 1}, {2, 3}, {2, 4}})
	if !HasWin(tk, called) {
		t.Fatal("middle row with free center not detected")
	}
}

func TestHasWinDiagonals(t *testing.T) {
	tk := NewTicket(rand.New(rand.NewSource(13)))
	down := callCells(tk, [][2]int{{0, 0}, {1, 1}, {3, 3}, {4, 4}})
	if !HasWin(tk, down) {
		t.Fatal("main diagonal not detected")
	}

	tk2 := NewTicket(rand.New(rand.NewSource(14)))
	up := callCells(tk2, [][2]int{{0, 4}, {1, 3}, {3, 1}, {4, 0}})
	if !HasWin(tk2, up) {
		t.Fatal("anti diagonal not detected")
	}
}

func TestHasWinIncompleteLine(t *testing.T) {
	tk := NewTicket(rand.New(rand.NewSource(15)))
	called := callCells(tk, [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}})
	if HasWin(tk, called) {
		t.Fatal("four of five cells reported as a win")
	}
}

func TestHasWinNothingCalled(t *testing.T) {
	tk := NewTicket(rand.New(rand.NewSource(16)))
	if HasWin(tk, map[int]struct{}{}) {
		t.Fatal("empty call history reported as a win")
	}
}

func TestHasWinScatteredCalls(t *testing.T) {
	tk := NewTicket(rand.New(rand.NewSource(17)))
	// Cover one cell per row so no line completes.
	called := callCells(tk, [][2]int{{0, 0}, {1, 1}, {2, 3}, {3, 0}, {4, 2}})
	if HasWin(tk, called) {
		t.Fatal("scattered coverage reported as a win")
	}
}
