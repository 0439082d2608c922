// Package scores defines the score record exchanged with high-score boards
// and the narrow interfaces the game uses to submit and rank them.
// Concrete boards live in internal/storage (sqlite) and internal/scoreboard (HTTP).
package scores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNicknameLen is the longest nickname a board accepts, in runes.
const MaxNicknameLen = 24

// DefaultRankingLimit is the number of records shown by ranking views.
const DefaultRankingLimit = 10

// ErrInvalidRecord is returned when a record fails validation.
var ErrInvalidRecord = errors.New("scores: invalid record")

// Record is a single final score. Boards treat records as append-only.
type Record struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`

	// SessionID identifies the game session that produced the record.
	// Boards store at most one record per non-empty SessionID.
	SessionID string `json:"session_id,omitempty"`

	// CreatedAt is assigned by the board.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// NormalizeNickname trims name and cuts it to MaxNicknameLen runes.
func NormalizeNickname(name string) string {
	name = strings.TrimSpace(name)
	for utf8.RuneCountInString(name) > MaxNicknameLen {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return strings.TrimSpace(name)
}

// Validate checks the record shape boards accept.
func (r Record) Validate() error {
	name := strings.TrimSpace(r.Nickname)
	if name == "" {
		return fmt.Errorf("%w: empty nickname", ErrInvalidRecord)
	}
	if utf8.RuneCountInString(name) > MaxNicknameLen {
		return fmt.Errorf("%w: nickname longer than %d", ErrInvalidRecord, MaxNicknameLen)
	}
	if r.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidRecord, r.Score)
	}
	return nil
}

// Submitter appends records to a board.
type Submitter interface {
	Submit(ctx context.Context, rec Record) error
}

// Ranker returns the top records ordered by score descending.
type Ranker interface {
	Top(ctx context.Context, limit int) ([]Record, error)
}

// Board is a store that both accepts and ranks records.
type Board interface {
	Submitter
	Ranker
}

// Sink receives final scores from a game session. Publish must not block.
type Sink interface {
	Publish(rec Record)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(rec Record)

// Publish calls f(rec).
func (f SinkFunc) Publish(rec Record) {
	f(rec)
}
