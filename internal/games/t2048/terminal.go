package t2048

// IsOver returns true if no move can change g: the grid is full and no two
// horizontally or vertically adjacent cells are equal.
func IsOver(g Grid) bool {
	return !CanMove(g)
}

// CanMove returns true if at least one direction would change g.
func CanMove(g Grid) bool {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v == 0 {
				return true
			}
			if c < Size-1 && g[r][c+1] == v {
				return true
			}
			if r < Size-1 && g[r+1][c] == v {
				return true
			}
		}
	}
	return false
}
