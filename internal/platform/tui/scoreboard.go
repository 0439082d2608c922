package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/scores"
)

// Scoreboard layout constants
const (
	maxScores    = 100 // Max scores to load
	fetchTimeout = 5 * time.Second
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardMsg delivers the ranking fetched for the scoreboard screen.
type scoreboardMsg struct {
	records []scores.Record
}

// fetchScoreboard loads the ranking off the UI goroutine.
func fetchScoreboard(r scores.Ranker, limit int, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return scoreboardMsg{records: scores.Ranking(ctx, r, limit, logger)}
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	ranker    scores.Ranker
	logger    *log.Logger
	records   []scores.Record
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	loading   bool
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model. The ranking is loaded
// by Init.
func NewScoreboardModel(ranker scores.Ranker, width, height int, logger *log.Logger) ScoreboardModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		ranker:  ranker,
		logger:  logger,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
		loading: ranker != nil,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Nickname", Width: scores.MaxNicknameLen},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 14},
	}

	// Give leftover width to the nickname column, shrink it on narrow screens.
	fixed := columns[0].Width + columns[2].Width + columns[3].Width + 12
	columns[1].Width = max(10, min(scores.MaxNicknameLen, m.width-fixed))

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows updates the table with current records.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		date := "-"
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Nickname,
			fmt.Sprintf("%d", r.Score),
			date,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init starts loading the ranking.
func (m ScoreboardModel) Init() tea.Cmd {
	if m.ranker == nil {
		return nil
	}
	return fetchScoreboard(m.ranker, maxScores, m.logger)
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case scoreboardMsg:
		m.loading = false
		m.records = msg.records
		m.updateTableRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.ranker == nil {
				return m, nil
			}
			m.loading = true
			return m, fetchScoreboard(m.ranker, maxScores, m.logger)

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(panelStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a placeholder.
func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.ranker == nil:
		return emptyStyle.Padding(2, 4).Render("No score board configured.")
	case m.loading:
		return emptyStyle.Padding(2, 4).Render("Loading scores...")
	case len(m.records) == 0:
		return emptyStyle.Padding(2, 4).Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// Records returns the loaded ranking.
func (m ScoreboardModel) Records() []scores.Record {
	return m.records
}

// IsGoingBack returns true if user wants to go back to the home screen.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
