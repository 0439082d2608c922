package history

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "scores.yaml"), 5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := f.Scores(); len(got) != 0 {
		t.Errorf("Scores = %v, want empty", got)
	}
	if f.Best() != 0 {
		t.Errorf("Best = %d, want 0", f.Best())
	}
}

func TestAddKeepsTopScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.yaml")
	f, err := Load(path, 5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var got []int
	for _, s := range []int{100, 500, 50, 300, 700, 200, 10} {
		got, err = f.Add(s)
		if err != nil {
			t.Fatalf("Add(%d): %v", s, err)
		}
	}

	want := []int{700, 500, 300, 200, 100}
	if !slices.Equal(got, want) {
		t.Errorf("Add returned %v, want %v", got, want)
	}
	if !slices.Equal(f.Scores(), want) {
		t.Errorf("Scores = %v, want %v", f.Scores(), want)
	}
	if f.Best() != 700 {
		t.Errorf("Best = %d, want 700", f.Best())
	}

	reloaded, err := Load(path, 5)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !slices.Equal(reloaded.Scores(), want) {
		t.Errorf("reloaded Scores = %v, want %v", reloaded.Scores(), want)
	}
}

func TestAddKeepsDuplicates(t *testing.T) {
	f, _ := Load("", 3)

	f.Add(8)
	f.Add(8)
	got, _ := f.Add(4)

	if want := []int{8, 8, 4}; !slices.Equal(got, want) {
		t.Errorf("scores = %v, want %v", got, want)
	}
}

func TestScoresReturnsCopy(t *testing.T) {
	f, _ := Load("", 5)
	f.Add(10)

	s := f.Scores()
	s[0] = 99
	if f.Best() != 10 {
		t.Error("mutating Scores() result changed the list")
	}
}

func TestLoadNormalizesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	data := []byte("scores: [3, 90, -1, 40, 7, 12, 1000]\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []int{1000, 90, 40, 12, 7}; !slices.Equal(f.Scores(), want) {
		t.Errorf("Scores = %v, want %v", f.Scores(), want)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	if err := os.WriteFile(path, []byte("scores: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, 5); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}
