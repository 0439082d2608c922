package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"w", runeKey('w'), core.ActionUp},
		{"a", runeKey('a'), core.ActionLeft},
		{"s", runeKey('s'), core.ActionDown},
		{"d", runeKey('d'), core.ActionRight},
		{"k", runeKey('k'), core.ActionUp},
		{"h", runeKey('h'), core.ActionLeft},
		{"j", runeKey('j'), core.ActionDown},
		{"l", runeKey('l'), core.ActionRight},
		{"r", runeKey('r'), core.ActionRestart},
		{"m", runeKey('m'), core.ActionMenu},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionMenu},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}
