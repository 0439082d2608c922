package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func testRuntimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    seed,
	}
}

func TestGameHandleActions(t *testing.T) {
	g := NewGame(testRuntimeConfig(1), Options{Rand: fixedRand{f: 0.5}, NewID: sequentialIDs()})
	g.Session().grid = Grid{{2, 2, 0, 0}}

	out := g.Handle(core.ActionLeft)
	if !out.Result.Moved || g.Session().Score() != 4 {
		t.Errorf("left: moved=%v score=%d, want true/4", out.Result.Moved, g.Session().Score())
	}
	if g.Last().Result.ScoreGained != 4 {
		t.Errorf("Last().ScoreGained = %d, want 4", g.Last().Result.ScoreGained)
	}
	if g.Best() != 4 {
		t.Errorf("Best = %d, want 4", g.Best())
	}

	for _, a := range []core.Action{core.ActionNone, core.ActionMenu, core.ActionQuit} {
		if out := g.Handle(a); !out.Ignored {
			t.Errorf("Handle(%v) should be ignored by the game", a)
		}
	}

	g.Handle(core.ActionRestart)
	if g.Session().Score() != 0 || g.Session().Phase() != PhaseReady {
		t.Errorf("restart: score=%d phase=%v", g.Session().Score(), g.Session().Phase())
	}
	if g.Session().ID() != "session-2" {
		t.Errorf("restart id = %q, want session-2", g.Session().ID())
	}
	if g.Best() != 4 {
		t.Errorf("Best after restart = %d, want 4", g.Best())
	}
}

func TestGameSetBest(t *testing.T) {
	g := NewGame(testRuntimeConfig(1), Options{})

	g.SetBest(512)
	g.SetBest(256)
	if g.Best() != 512 {
		t.Errorf("Best = %d, want 512", g.Best())
	}
}

func TestGameRender(t *testing.T) {
	g := NewGame(testRuntimeConfig(1), Options{Rand: fixedRand{f: 0.5}, Nickname: "ada"})
	g.Session().grid = Grid{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 2048, 0},
		{0, 0, 0, 0},
	}
	g.Session().score = 1234

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Score: 1234", "Best: 1234", "Max: 2048", "ada"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("render shows GAME OVER while playing")
	}

	// Tile colors follow the tile value.
	board := g.BoardRect()
	x := board.X + 2*cellWidth + 1 + (cellWidth-1-4)/2
	y := board.Y + 2*cellHeight + 1
	if cell := screen.GetCell(x, y); cell.Rune != '2' || cell.Color != core.TileColor(2048) {
		t.Errorf("tile cell = %+v, want '2' in %v", cell, core.TileColor(2048))
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := NewGame(testRuntimeConfig(1), Options{Rand: fixedRand{f: 0.5}})
	g.Session().grid = almostOver
	g.Handle(core.ActionLeft)

	if g.Session().Phase() != PhaseOver {
		t.Fatalf("phase = %v, want over", g.Session().Phase())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "GAME OVER") {
		t.Errorf("render missing GAME OVER overlay:\n%s", out)
	}
	if !strings.Contains(out, "Score: 4") {
		t.Errorf("render missing final score:\n%s", out)
	}
}

func TestGameTooSmall(t *testing.T) {
	g := NewGame(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1}, Options{})
	if !g.TooSmall() {
		t.Fatal("20x10 should be too small")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected too-small message:\n%s", screen.String())
	}

	g.Resize(80, 24)
	if g.TooSmall() {
		t.Error("80x24 should fit")
	}
}

func TestGameCellAt(t *testing.T) {
	g := NewGame(testRuntimeConfig(1), Options{})
	board := g.BoardRect()

	tests := []struct {
		name string
		x, y int
		want Pos
		ok   bool
	}{
		{"top left", board.X + 1, board.Y + 1, Pos{Row: 0, Col: 0}, true},
		{"bottom right", board.X + 3*cellWidth + 1, board.Y + 3*cellHeight + 1, Pos{Row: 3, Col: 3}, true},
		{"second row third col", board.X + 2*cellWidth + 3, board.Y + cellHeight + 1, Pos{Row: 1, Col: 2}, true},
		{"outside", board.X - 1, board.Y, Pos{}, false},
		{"below board", board.X + 1, board.Bottom() + 2, Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.CellAt(tt.x, tt.y)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CellAt(%d, %d) = %+v, %v; want %+v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
			}
		})
	}
}
