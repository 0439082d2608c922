package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/scores"
)

// LocalScores is the device-local history of final scores.
type LocalScores interface {
	Add(score int) ([]int, error)
	Scores() []int
	Best() int
}

// rankingMsg delivers the ranking fetched for the home screen.
type rankingMsg struct {
	records []scores.Record
}

func fetchRanking(r scores.Ranker, limit int, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return rankingMsg{records: scores.Ranking(ctx, r, limit, logger)}
	}
}

// HomeOptions configures a HomeModel.
type HomeOptions struct {
	Nickname string
	History  LocalScores
	Ranker   scores.Ranker

	// RankingLimit is how many remote records to show; 0 means
	// scores.DefaultRankingLimit.
	RankingLimit int
	Logger       *log.Logger
}

// HomeModel is the start screen: nickname entry, the local top scores and
// the global top players.
type HomeModel struct {
	input   textinput.Model
	keys    HomeKeyMap
	help    help.Model
	history LocalScores
	ranker  scores.Ranker
	limit   int
	logger  *log.Logger
	ranking []scores.Record
	loading bool
	width   int
	height  int

	start      bool
	scoreboard bool
	quitting   bool
}

// NewHomeModel creates the home screen.
func NewHomeModel(width, height int, opts HomeOptions) HomeModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	limit := opts.RankingLimit
	if limit <= 0 {
		limit = scores.DefaultRankingLimit
	}

	ti := textinput.New()
	ti.Placeholder = "anonymous"
	ti.Prompt = "Nickname: "
	ti.CharLimit = scores.MaxNicknameLen
	ti.Width = scores.MaxNicknameLen
	ti.SetValue(strings.TrimSpace(opts.Nickname))
	ti.Focus()

	return HomeModel{
		input:   ti,
		keys:    DefaultHomeKeyMap(),
		help:    help.New(),
		history: opts.History,
		ranker:  opts.Ranker,
		limit:   limit,
		logger:  logger,
		loading: opts.Ranker != nil,
		width:   width,
		height:  height,
	}
}

// Init starts the cursor blink and the ranking fetch.
func (m HomeModel) Init() tea.Cmd {
	if m.ranker == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, fetchRanking(m.ranker, m.limit, m.logger))
}

// Update handles messages for the home screen.
func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rankingMsg:
		m.loading = false
		m.ranking = msg.records
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.start = true
			return m, nil
		case key.Matches(msg, m.keys.Scoreboard):
			m.scoreboard = true
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.ranker == nil {
				return m, nil
			}
			m.loading = true
			return m, fetchRanking(m.ranker, m.limit, m.logger)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the home screen.
func (m HomeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("2 0 4 8", m.width)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(centerText("join the tiles, get to 2048", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(m.input.View(), m.width))
	b.WriteString("\n\n")

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(20).Render(m.renderLocal()),
		"  ",
		panelStyle.Width(scores.MaxNicknameLen+14).Render(m.renderRanking()),
	)
	b.WriteString(centerBlock(panels, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(subtleStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

func (m HomeModel) renderLocal() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your best"))
	b.WriteString("\n")

	var local []int
	if m.history != nil {
		local = m.history.Scores()
	}
	if len(local) == 0 {
		b.WriteString(emptyStyle.Render("no games yet"))
		return b.String()
	}
	for i, s := range local {
		fmt.Fprintf(&b, "\n%d. %d", i+1, s)
	}
	return b.String()
}

func (m HomeModel) renderRanking() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Top players"))
	b.WriteString("\n")

	switch {
	case m.ranker == nil:
		b.WriteString(emptyStyle.Render("offline"))
		return b.String()
	case m.loading:
		b.WriteString(emptyStyle.Render("loading..."))
		return b.String()
	case len(m.ranking) == 0:
		b.WriteString(emptyStyle.Render("no scores yet"))
		return b.String()
	}

	for i, r := range m.ranking {
		fmt.Fprintf(&b, "\n%d. %-*s %6d", i+1, scores.MaxNicknameLen, r.Nickname, r.Score)
	}
	return b.String()
}

// Nickname returns the trimmed nickname typed by the player.
func (m HomeModel) Nickname() string {
	return strings.TrimSpace(m.input.Value())
}

// Ranking returns the loaded global ranking.
func (m HomeModel) Ranking() []scores.Record {
	return m.ranking
}

// StartRequested returns true once the player pressed start.
func (m HomeModel) StartRequested() bool {
	return m.start
}

// ScoreboardRequested returns true once the player asked for the scoreboard.
func (m HomeModel) ScoreboardRequested() bool {
	return m.scoreboard
}

// IsQuitting returns true if user requested to quit entirely.
func (m HomeModel) IsQuitting() bool {
	return m.quitting
}
