package t2048

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Minimum terminal size for the board and HUD.
const (
	minScreenW = 32
	minScreenH = 16
)

// Game adapts a Session to the terminal platform: it maps actions to moves,
// tracks the screen size and remembers the best score seen on this device.
type Game struct {
	session *Session

	best    int
	last    Outcome
	screenW int
	screenH int

	tooSmall bool
}

// NewGame creates a game for the given screen. When opts carries no random
// source one is seeded from cfg.Seed, or from the clock if the seed is 0.
func NewGame(cfg core.RuntimeConfig, opts Options) *Game {
	if opts.Rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opts.Rand = rand.New(rand.NewSource(seed))
	}

	g := &Game{session: NewSession(opts)}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	return g
}

// Session returns the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Handle applies a platform action. Directions move the board, Restart
// starts over; other actions are left to the caller.
func (g *Game) Handle(a core.Action) Outcome {
	if a == core.ActionRestart {
		g.session.Restart()
		g.last = Outcome{}
		return g.last
	}

	dir, ok := DirectionFromAction(a)
	if !ok {
		return Outcome{Ignored: true}
	}

	g.last = g.session.Move(dir)
	g.best = max(g.best, g.session.Score())
	return g.last
}

// Last returns the outcome of the most recent move.
func (g *Game) Last() Outcome {
	return g.last
}

// Best returns the best score known on this device.
func (g *Game) Best() int {
	return max(g.best, g.session.Score())
}

// SetBest seeds the best score, typically from the local history.
func (g *Game) SetBest(score int) {
	g.best = max(g.best, score)
}

// Resize updates the screen dimensions.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// TooSmall reports whether the screen cannot fit the board.
func (g *Game) TooSmall() bool {
	return g.tooSmall
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl or drag: Move | R: Restart | M: Menu | Q: Quit"
}
