package t2048

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/scores"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DefaultInitialTiles is the number of tiles placed on a fresh grid.
const DefaultInitialTiles = 2

// HistoryRecorder keeps the device-local list of best scores.
type HistoryRecorder interface {
	Add(score int) ([]int, error)
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	Rand         Rand
	Spawn4Prob   float64
	InitialTiles int
	Nickname     string

	// Sink receives the final score when a session with a nickname ends.
	Sink scores.Sink
	// History records every final score, nickname or not.
	History HistoryRecorder

	Logger *log.Logger
	NewID  func() string
}

// Outcome describes what a single Move call did.
type Outcome struct {
	Result  MoveResult
	Spawned *Tile
	// Ended is true when this move made the game terminal.
	Ended bool
	// Ignored is true when the session was already over.
	Ignored bool
}

// Session is one game of 2048: a grid, an accumulated score and a phase.
// A Session is not safe for concurrent use.
type Session struct {
	opts    Options
	spawner *Spawner
	logger  *log.Logger

	id       string
	nickname string
	grid     Grid
	score    int
	moves    int
	phase    Phase
}

// NewSession creates a session with a fresh grid in PhaseReady.
func NewSession(opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Spawn4Prob == 0 {
		opts.Spawn4Prob = DefaultSpawn4Prob
	}
	if opts.InitialTiles <= 0 {
		opts.InitialTiles = DefaultInitialTiles
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		opts:     opts,
		spawner:  NewSpawner(opts.Rand, opts.Spawn4Prob),
		logger:   logger,
		nickname: scores.NormalizeNickname(opts.Nickname),
	}
	s.Restart()
	return s
}

// Restart discards the current game and starts a new one under a new ID.
func (s *Session) Restart() {
	s.id = s.opts.NewID()
	s.grid = NewGrid()
	s.score = 0
	s.moves = 0
	s.phase = PhaseReady

	for range s.opts.InitialTiles {
		s.spawner.Spawn(&s.grid)
	}
	s.logger.Debug("session started", "session", s.id)
}

// Move applies dir. A move that changes nothing leaves the session as is and
// spawns no tile. Moves after the game ended are ignored.
//
// Move panics if the grid holds a value that is not a valid tile.
func (s *Session) Move(dir Direction) Outcome {
	if s.phase == PhaseOver {
		return Outcome{Result: MoveResult{Grid: s.grid}, Ignored: true}
	}
	if err := s.grid.Validate(); err != nil {
		panic(fmt.Errorf("session %s: %w", s.id, err))
	}

	res := Move(s.grid, dir)
	if !res.Moved {
		return Outcome{Result: res}
	}

	s.grid = res.Grid
	s.score += res.ScoreGained
	s.moves++
	s.phase = PhasePlaying

	out := Outcome{Result: res}
	if tile, ok := s.spawner.Spawn(&s.grid); ok {
		out.Spawned = &tile
	}

	if IsOver(s.grid) {
		s.finish()
		out.Ended = true
	}
	return out
}

// finish enters PhaseOver and reports the final score. Called once per game.
func (s *Session) finish() {
	s.phase = PhaseOver
	s.logger.Info("game over", "session", s.id, "score", s.score, "max_tile", s.grid.MaxTile(), "moves", s.moves)

	if s.opts.History != nil {
		if _, err := s.opts.History.Add(s.score); err != nil {
			s.logger.Warn("could not save local score", "error", err)
		}
	}

	if s.nickname == "" || s.opts.Sink == nil {
		return
	}
	s.opts.Sink.Publish(scores.Record{
		Nickname:  s.nickname,
		Score:     s.score,
		SessionID: s.id,
	})
}

// SetNickname sets the name used for score submission. It takes effect for
// the game in progress as long as it has not ended yet. Long names are cut
// to scores.MaxNicknameLen runes.
func (s *Session) SetNickname(name string) {
	s.nickname = scores.NormalizeNickname(name)
}

// ID returns the identifier of the current game.
func (s *Session) ID() string { return s.id }

// Nickname returns the submission name, possibly empty.
func (s *Session) Nickname() string { return s.nickname }

// Grid returns a copy of the current grid.
func (s *Session) Grid() Grid { return s.grid }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Moves returns the number of moves that changed the grid.
func (s *Session) Moves() int { return s.moves }

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

