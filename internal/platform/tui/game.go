package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// SwipeSettings converts mouse drags in terminal cells to pixel gestures.
type SwipeSettings struct {
	Threshold float64
	CellPxW   float64
	CellPxH   float64
}

// DefaultSwipeSettings assumes 8x16 pixel terminal cells.
func DefaultSwipeSettings() SwipeSettings {
	return SwipeSettings{
		Threshold: core.DefaultSwipeThreshold,
		CellPxW:   8,
		CellPxH:   16,
	}
}

// Action classifies a drag from (x0, y0) to (x1, y1), in cells.
func (s SwipeSettings) Action(x0, y0, x1, y1 int) (core.Action, bool) {
	dx := float64(x1-x0) * s.CellPxW
	dy := float64(y1-y0) * s.CellPxH
	return core.Swipe(dx, dy, s.Threshold)
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Session       t2048.Options
	Seed          int64
	Swipe         SwipeSettings
	Best          int
	ScreenshotDir string
	Logger        *log.Logger
}

type dragState struct {
	active bool
	x, y   int
}

// GameModel is the Bubble Tea model for the game screen. It is event-driven:
// every key press or completed swipe is one move.
type GameModel struct {
	game          *t2048.Game
	screen        *core.Screen
	keys          GameKeyMap
	swipe         SwipeSettings
	drag          dragState
	logger        *log.Logger
	screenshotDir string
	status        string
	quitting      bool
	backToMenu    bool
}

// NewGameModel creates a game screen of the given size.
func NewGameModel(width, height int, opts GameOptions) GameModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = logger
	}
	if opts.Swipe == (SwipeSettings{}) {
		opts.Swipe = DefaultSwipeSettings()
	}

	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: opts.Seed}
	game := t2048.NewGame(cfg, opts.Session)
	game.SetBest(opts.Best)

	return GameModel{
		game:          game,
		screen:        core.NewScreen(width, height),
		keys:          DefaultGameKeyMap(),
		swipe:         opts.Swipe,
		logger:        logger,
		screenshotDir: opts.ScreenshotDir,
	}
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.status = m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionMenu:
		m.backToMenu = true
		return m, nil
	case core.ActionNone:
		return m, nil
	default:
		m.apply(action)
	}
	return m, nil
}

// handleMouse turns a press-drag-release into a swipe.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = dragState{active: true, x: msg.X, y: msg.Y}
		}
	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		start := m.drag
		m.drag = dragState{}
		if action, ok := m.swipe.Action(start.x, start.y, msg.X, msg.Y); ok {
			m.apply(action)
		}
	}
	return m, nil
}

func (m *GameModel) apply(action core.Action) {
	m.status = ""
	out := m.game.Handle(action)
	if out.Ended {
		s := m.game.Session()
		m.logger.Debug("game ended", "session", s.ID(), "score", s.Score())
	}
}

// saveScreenshot writes the current screen as plain text and returns a
// status line.
func (m *GameModel) saveScreenshot() string {
	m.game.Render(m.screen)

	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed"
		}
		dir = filepath.Join(home, ".t2048", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return "screenshot failed"
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("2048_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + path
}

// resume clears the exit request and adopts a size that may have changed
// while the game was in the background.
func (m *GameModel) resume(width, height int) {
	m.backToMenu = false
	m.drag = dragState{}
	m.status = ""
	if width > 0 && height > 0 {
		m.screen.Resize(width, height)
		m.game.Resize(width, height)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		y := m.screen.Height() - 1
		m.screen.DrawText(0, y, strings.Repeat(" ", m.screen.Width()))
		m.screen.DrawTextCentered(y, m.status)
	}
	return RenderScreen(m.screen)
}

// Game returns the underlying game.
func (m GameModel) Game() *t2048.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the home screen.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
