package game

// HasWin reports whether any row, column, or diagonal of t is fully covered
// by called. The free center cell always counts as covered.
func HasWin(t Ticket, called map[int]struct{}) bool {
	covered := func(row, col int) bool {
		if row == FreeRow && col == FreeCol {
			return true
		}
		_, ok := called[t.Grid[row][col]]
		return ok
	}

	for row := 0; row < Size; row++ {
		full := true
		for col := 0; col < Size; col++ {
			if !covered(row, col) {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}

	for col := 0; col < Size; col++ {
		full := true
		for row := 0; row < Size; row++ {
			if !covered(row, col) {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}

	full := true
	for i := 0; i < Size; i++ {
		if !covered(i, i) {
			full = false
			break
		}
	}
	if full {
		return true
	}

	full = true
	for i := 0; i < Size; i++ {
		if !covered(i, Size-1-i) {
			full = false
			break
		}
	}
	return full
}
