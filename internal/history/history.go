// Package history keeps the device-local list of best final scores.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultKeep is how many scores are retained.
const DefaultKeep = 5

type document struct {
	Scores []int `yaml:"scores"`
}

// File is a top-N score list persisted as YAML. It is safe for concurrent use.
type File struct {
	mu     sync.Mutex
	path   string
	keep   int
	scores []int
}

// Load reads the list at path. A missing file yields an empty list. An empty
// path keeps the list in memory only.
func Load(path string, keep int) (*File, error) {
	if keep <= 0 {
		keep = DefaultKeep
	}
	f := &File{path: expandHome(path), keep: keep}
	if f.path == "" {
		return f, nil
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: cannot read %s: %w", f.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("history: cannot parse %s: %w", f.path, err)
	}
	f.scores = normalize(doc.Scores, keep)
	return f, nil
}

// Add records a final score: the list is sorted descending, truncated to the
// retained size and saved. The updated list is returned even if saving fails.
func (f *File) Add(score int) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scores = normalize(append(f.scores, score), f.keep)
	out := slices.Clone(f.scores)

	if err := f.save(); err != nil {
		return out, err
	}
	return out, nil
}

// Scores returns the retained scores, best first.
func (f *File) Scores() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.scores)
}

// Best returns the highest retained score, or 0.
func (f *File) Best() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.scores) == 0 {
		return 0
	}
	return f.scores[0]
}

// Path returns the backing file path, empty for in-memory lists.
func (f *File) Path() string {
	return f.path
}

func (f *File) save() error {
	if f.path == "" {
		return nil
	}

	data, err := yaml.Marshal(document{Scores: f.scores})
	if err != nil {
		return fmt.Errorf("history: cannot encode scores: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("history: cannot create directory: %w", err)
	}

	// Write to a sibling file first so a crash never leaves a truncated list.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("history: cannot save scores: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("history: cannot save scores: %w", err)
	}
	return nil
}

func normalize(scores []int, keep int) []int {
	out := slices.DeleteFunc(slices.Clone(scores), func(s int) bool { return s < 0 })
	slices.SortFunc(out, func(a, b int) int { return b - a })
	if len(out) > keep {
		out = out[:keep]
	}
	return out
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
