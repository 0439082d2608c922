// Package t2048 implements the 2048 sliding-tile engine and the game session
// that drives it.
package t2048

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// ErrInvalidGrid is wrapped by Validate errors.
var ErrInvalidGrid = errors.New("t2048: invalid grid")

// Pos addresses a grid cell.
type Pos struct {
	Row, Col int
}

// Grid is the Size×Size tile matrix. Zero is an empty cell; every other cell
// holds a power of two >= 2. Grid is an array, so assignment copies it.
type Grid [Size][Size]int

// NewGrid returns an empty grid.
func NewGrid() Grid {
	return Grid{}
}

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	var out Grid
	for r := range Size {
		out[r] = g[r]
	}
	return out
}

// At returns the value at p.
func (g Grid) At(p Pos) int {
	return g[p.Row][p.Col]
}

// Set stores v at p.
func (g *Grid) Set(p Pos, v int) {
	g[p.Row][p.Col] = v
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (g Grid) EmptyCells() []Pos {
	cells := make([]Pos, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Validate reports the first cell that is neither empty nor a power of two >= 2.
func (g Grid) Validate() error {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if v < 2 || v&(v-1) != 0 {
				return fmt.Errorf("%w: tile %d at (%d, %d)", ErrInvalidGrid, v, r, c)
			}
		}
	}
	return nil
}

// MaxTile returns the highest tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			maxVal = max(maxVal, g[r][c])
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// String renders the grid as space-separated rows, empty cells as dots.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g[r][c] == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteString(strconv.Itoa(g[r][c]))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
