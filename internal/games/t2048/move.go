package t2048

import (
	"strings"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "invalid"
	}
}

// ParseDirection accepts "up", "down", "left", "right" and the
// "ArrowUp"-style key names, case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "arrow") {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// DirectionFromAction maps a platform action to a direction.
func DirectionFromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return 0, false
}

// MoveResult is the outcome of applying one direction to a grid.
type MoveResult struct {
	Grid        Grid
	ScoreGained int
	Moved       bool
}

// Move applies dir to g and returns the resulting grid. g is not modified.
// An invalid direction returns g unchanged with Moved=false.
func Move(g Grid, dir Direction) MoveResult {
	if !dir.Valid() {
		return MoveResult{Grid: g}
	}

	// Lines are read from g and written to out, so change detection always
	// compares against the untouched input.
	out := g.Clone()
	var res MoveResult

	for i := range Size {
		cells := lineCells(dir, i)

		var before Line
		for k, p := range cells {
			before[k] = g.At(p)
		}

		after, gained := CombineLine(before)
		for k, p := range cells {
			out.Set(p, after[k])
		}

		res.ScoreGained += gained
		if after != before {
			res.Moved = true
		}
	}

	res.Grid = out
	return res
}

// lineCells returns the positions of line i for dir, ordered from the edge
// tiles slide toward.
func lineCells(dir Direction, i int) [Size]Pos {
	var cells [Size]Pos
	for k := range Size {
		switch dir {
		case DirLeft:
			cells[k] = Pos{Row: i, Col: k}
		case DirRight:
			cells[k] = Pos{Row: i, Col: Size - 1 - k}
		case DirUp:
			cells[k] = Pos{Row: k, Col: i}
		case DirDown:
			cells[k] = Pos{Row: Size - 1 - k, Col: i}
		}
	}
	return cells
}
