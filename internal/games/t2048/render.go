package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 3
)

// BoardRect returns the screen area covered by the board for the current
// screen size. The platform uses it to translate mouse positions.
func (g *Game) BoardRect() core.Rect {
	boardW := Size*cellWidth + 1
	boardH := Size*cellHeight + 1
	return core.NewRect((g.screenW-boardW)/2, hudHeight+1, boardW, boardH)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.BoardRect()
	g.renderHUD(dst, board)
	g.renderBoard(dst, board)

	if g.session.Phase() == PhaseOver {
		cx, cy := board.Center()
		g.drawOverlay(dst, cx, cy,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.session.Score()),
			"R: Restart  M: Menu",
		)
	}

	footer := g.Controls()
	if board.Bottom()+1 < g.screenH {
		dst.DrawTextColored(max((g.screenW-len(footer))/2, 0), board.Bottom()+1, footer, core.ColorGray)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score, best score and max tile.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	title := "2048"
	dst.DrawTextColored(board.X+(board.W-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(board.X, 1, fmt.Sprintf("Score: %d", g.session.Score()))

	best := fmt.Sprintf("Best: %d", g.Best())
	dst.DrawText(max(board.Right()-len(best), board.X), 1, best)

	info := fmt.Sprintf("Max: %d", g.session.Grid().MaxTile())
	if name := g.session.Nickname(); name != "" {
		info = name + "  " + info
	}
	dst.DrawTextColored(board.X+max((board.W-len([]rune(info)))/2, 0), 2, info, core.ColorGray)
}

// renderBoard draws the grid lines and the colored tiles.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	for y := range Size + 1 {
		for x := range Size + 1 {
			px := board.X + x*cellWidth
			py := board.Y + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == Size:
				corner = '┐'
			case y == Size && x == 0:
				corner = '└'
			case y == Size && x == Size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == Size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == Size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	grid := g.session.Grid()
	for r := range Size {
		for c := range Size {
			val := grid[r][c]
			if val == 0 {
				continue
			}

			cellX := board.X + c*cellWidth + 1
			cellY := board.Y + r*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, core.TileColor(val))
		}
	}
}

// CellAt returns the grid cell under screen position (x, y).
func (g *Game) CellAt(x, y int) (Pos, bool) {
	board := g.BoardRect()
	if !board.Contains(x, y) {
		return Pos{}, false
	}
	col := (x - board.X) / cellWidth
	row := (y - board.Y) / cellHeight
	if col >= Size || row >= Size {
		return Pos{}, false
	}
	return Pos{Row: row, Col: col}, true
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightRed
		}
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}
