package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func TestReplayRejectsUnknownDirection(t *testing.T) {
	err := runReplay(replayCmd, []string{"left", "sideways"})
	if err == nil {
		t.Fatal("expected an error for an unknown direction")
	}
}

// setReplayFlags pins the global flags for one replay run.
func setReplayFlags(t *testing.T, seed int64, asJSON bool) *bytes.Buffer {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("T2048_NICKNAME", "")

	oldSeed, oldJSON, oldNick, oldConfig := flagSeed, flagReplayJSON, flagNickname, flagConfig
	t.Cleanup(func() {
		flagSeed, flagReplayJSON, flagNickname, flagConfig = oldSeed, oldJSON, oldNick, oldConfig
		replayCmd.SetOut(nil)
	})
	flagSeed, flagReplayJSON, flagNickname, flagConfig = seed, asJSON, "ada", ""

	var buf bytes.Buffer
	replayCmd.SetOut(&buf)
	return &buf
}

func expectedReplay(t *testing.T, seed int64, moves ...t2048.Direction) t2048.Snapshot {
	t.Helper()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	game := t2048.NewGame(core.RuntimeConfig{Seed: seed}, t2048.Options{
		Spawn4Prob:   cfg.Game.Spawn4Prob,
		InitialTiles: cfg.Game.InitialTiles,
		Nickname:     "ada",
	})
	for _, dir := range moves {
		game.Session().Move(dir)
	}
	return game.Session().Snapshot()
}

func TestReplayJSON(t *testing.T) {
	buf := setReplayFlags(t, 42, true)

	if err := runReplay(replayCmd, []string{"left", "up", "ArrowRight", "down"}); err != nil {
		t.Fatalf("runReplay() failed: %v", err)
	}

	var got t2048.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a snapshot: %v\n%s", err, buf.String())
	}

	want := expectedReplay(t, 42, t2048.DirLeft, t2048.DirUp, t2048.DirRight, t2048.DirDown)
	if got.ID == "" {
		t.Error("snapshot has no session id")
	}
	// Session IDs are random; everything else follows the seed.
	got.ID, want.ID = "", ""
	if got != want {
		t.Errorf("replay snapshot = %+v, want %+v", got, want)
	}
	if got.Nickname != "ada" {
		t.Errorf("nickname = %q, want ada", got.Nickname)
	}
}

func TestReplayText(t *testing.T) {
	buf := setReplayFlags(t, 7, false)

	if err := runReplay(replayCmd, []string{"up", "left"}); err != nil {
		t.Fatalf("runReplay() failed: %v", err)
	}

	want := expectedReplay(t, 7, t2048.DirUp, t2048.DirLeft)
	out := buf.String()
	for _, part := range []string{
		"Score: ",
		want.Grid.String(),
		"(" + want.Phase + ")",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("text output missing %q:\n%s", part, out)
		}
	}
}
