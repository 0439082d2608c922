package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/scores"
)

// Screen identifies the active screen of the App.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenGame
	ScreenScoreboard
)

// Options configures an App.
type Options struct {
	Config config.Config

	// Ranker feeds the home ranking and the scoreboard. Nil means offline.
	Ranker scores.Ranker
	// Sink receives the record of every finished game with a nickname.
	Sink scores.Sink
	// History is the device-local top scores. Nil disables it.
	History LocalScores

	Logger *log.Logger

	// Nickname overrides Config.Game.Nickname when set.
	Nickname string
	// Seed makes games reproducible; 0 seeds from the clock.
	Seed int64

	Start         Screen
	Width         int
	Height        int
	ScreenshotDir string
}

// App routes between the home, game and scoreboard screens. It is the
// top-level model for both local and SSH sessions.
type App struct {
	opts     Options
	logger   *log.Logger
	screen   Screen
	width    int
	height   int
	nickname string

	home     HomeModel
	game     *GameModel
	board    ScoreboardModel
	quitting bool
}

// NewApp creates the app on opts.Start.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	nickname := opts.Nickname
	if nickname == "" {
		nickname = opts.Config.Game.Nickname
	}

	m := App{
		opts:     opts,
		logger:   logger,
		width:    opts.Width,
		height:   opts.Height,
		nickname: nickname,
	}
	m.home = m.newHome()

	switch opts.Start {
	case ScreenGame:
		m.startGame()
	case ScreenScoreboard:
		m.screen = ScreenScoreboard
		m.board = NewScoreboardModel(opts.Ranker, m.width, m.height, logger)
	}
	return m
}

func (m App) newHome() HomeModel {
	return NewHomeModel(m.width, m.height, HomeOptions{
		Nickname:     m.nickname,
		History:      m.opts.History,
		Ranker:       m.opts.Ranker,
		RankingLimit: m.opts.Config.Scores.RankingLimit,
		Logger:       m.logger,
	})
}

// startGame creates a fresh game screen for the current nickname.
func (m *App) startGame() {
	cfg := m.opts.Config

	best := 0
	var recorder t2048.HistoryRecorder
	if m.opts.History != nil {
		best = m.opts.History.Best()
		recorder = m.opts.History
	}

	game := NewGameModel(m.width, m.height, GameOptions{
		Session: t2048.Options{
			Spawn4Prob:   cfg.Game.Spawn4Prob,
			InitialTiles: cfg.Game.InitialTiles,
			Nickname:     m.nickname,
			Sink:         m.opts.Sink,
			History:      recorder,
			Logger:       m.logger,
		},
		Seed: m.opts.Seed,
		Swipe: SwipeSettings{
			Threshold: cfg.Input.SwipeThreshold,
			CellPxW:   cfg.Input.CellPxW,
			CellPxH:   cfg.Input.CellPxH,
		},
		Best:          best,
		ScreenshotDir: m.opts.ScreenshotDir,
		Logger:        m.logger,
	})
	m.game = &game
	m.screen = ScreenGame
	m.logger.Debug("game started", "session", game.Game().Session().ID(), "nickname", m.nickname)
}

// resumeGame returns to the game left with M/Esc. A nickname changed on the
// home screen applies to it.
func (m *App) resumeGame() {
	game := *m.game
	game.resume(m.width, m.height)
	game.Game().Session().SetNickname(m.nickname)
	m.game = &game
	m.screen = ScreenGame
}

// Init initializes the active screen.
func (m App) Init() tea.Cmd {
	switch m.screen {
	case ScreenHome:
		return m.home.Init()
	case ScreenScoreboard:
		return m.board.Init()
	}
	return nil
}

// Update handles messages for the active screen.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case rankingMsg:
		// Fetches may finish after the player left the home screen.
		next, _ := m.home.Update(msg)
		m.home = next.(HomeModel)
		return m, nil

	case scoreboardMsg:
		if m.screen != ScreenScoreboard {
			return m, nil
		}
	}

	switch m.screen {
	case ScreenGame:
		return m.updateGame(msg)
	case ScreenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateHome(msg)
}

func (m App) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.home.Update(msg)
	m.home = next.(HomeModel)

	switch {
	case m.home.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.home.StartRequested():
		m.nickname = m.home.Nickname()
		if m.game != nil && m.game.Game().Session().Phase() != t2048.PhaseOver {
			m.resumeGame()
			return m, nil
		}
		m.startGame()
		return m, nil

	case m.home.ScoreboardRequested():
		m.nickname = m.home.Nickname()
		m.screen = ScreenScoreboard
		m.board = NewScoreboardModel(m.opts.Ranker, m.width, m.height, m.logger)
		return m, m.board.Init()
	}
	return m, cmd
}

func (m App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	game := next.(GameModel)
	m.game = &game

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		return m, m.goHome()
	}
	return m, cmd
}

func (m App) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(ScoreboardModel)

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.board.IsGoingBack():
		return m, m.goHome()
	}
	return m, cmd
}

// goHome resets the home screen so it shows fresh rankings. An unfinished
// game is kept for resuming.
func (m *App) goHome() tea.Cmd {
	m.screen = ScreenHome
	m.home = m.newHome()
	return m.home.Init()
}

// View renders the active screen.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenGame:
		return m.game.View()
	case ScreenScoreboard:
		return m.board.View()
	}
	return m.home.View()
}

// Screen returns the active screen.
func (m App) Screen() Screen {
	return m.screen
}

// Nickname returns the nickname used for new games.
func (m App) Nickname() string {
	return m.nickname
}

// Game returns the current game, or nil before the first one starts.
func (m App) Game() *t2048.Game {
	if m.game == nil {
		return nil
	}
	return m.game.Game()
}

// Run starts the Bubble Tea program for opts.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press, drag and release for swipes
	)

	_, err := p.Run()
	return err
}
