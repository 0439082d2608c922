package scores

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeBoard struct {
	mu      sync.Mutex
	records []Record
	err     error
	delay   time.Duration
}

func (f *fakeBoard) Submit(ctx context.Context, rec Record) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeBoard) Top(_ context.Context, limit int) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{"valid", Record{Nickname: "ana", Score: 128}, false},
		{"zero score", Record{Nickname: "ana", Score: 0}, false},
		{"empty nickname", Record{Nickname: "", Score: 10}, true},
		{"blank nickname", Record{Nickname: "   ", Score: 10}, true},
		{"negative score", Record{Nickname: "ana", Score: -1}, true},
		{"long nickname", Record{Nickname: strings.Repeat("x", MaxNicknameLen+1), Score: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() error %v should wrap ErrInvalidRecord", err)
			}
		})
	}
}

func TestNormalizeNickname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ada", "ada"},
		{"  grace ", "grace"},
		{"", ""},
		{strings.Repeat("a", MaxNicknameLen+1), strings.Repeat("a", MaxNicknameLen)},
		{strings.Repeat("ü", MaxNicknameLen+3), strings.Repeat("ü", MaxNicknameLen)},
		{strings.Repeat("b", MaxNicknameLen-1) + "  c", strings.Repeat("b", MaxNicknameLen-1)},
	}

	for _, tt := range tests {
		got := NormalizeNickname(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeNickname(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got != "" {
			if err := (Record{Nickname: got, Score: 1}).Validate(); err != nil {
				t.Errorf("normalized %q does not validate: %v", got, err)
			}
		}
	}
}

func TestAsyncSubmitterPublish(t *testing.T) {
	board := &fakeBoard{}
	sub := NewAsyncSubmitter(board, time.Second, nil)

	sub.Publish(Record{Nickname: "ana", Score: 512, SessionID: "s1"})
	sub.Wait()

	if len(board.records) != 1 {
		t.Fatalf("board got %d records, want 1", len(board.records))
	}
	if board.records[0].Score != 512 {
		t.Errorf("submitted score = %d, want 512", board.records[0].Score)
	}
}

func TestAsyncSubmitterFailureDoesNotPanic(t *testing.T) {
	board := &fakeBoard{err: errors.New("boom")}
	sub := NewAsyncSubmitter(board, time.Second, nil)

	sub.Publish(Record{Nickname: "ana", Score: 4})
	sub.Wait()

	if len(board.records) != 0 {
		t.Errorf("failed submit should store nothing, got %d", len(board.records))
	}
}

func TestAsyncSubmitterTimeout(t *testing.T) {
	board := &fakeBoard{delay: time.Second}
	sub := NewAsyncSubmitter(board, 10*time.Millisecond, nil)

	start := time.Now()
	sub.Publish(Record{Nickname: "ana", Score: 4})
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("Publish should not block")
	}
	sub.Wait()

	if len(board.records) != 0 {
		t.Errorf("timed out submit should store nothing, got %d", len(board.records))
	}
}

func TestAsyncSubmitterNilBoard(t *testing.T) {
	sub := NewAsyncSubmitter(nil, 0, nil)
	sub.Publish(Record{Nickname: "ana", Score: 4})
	sub.Wait()
}

func TestRankingFailureIsEmpty(t *testing.T) {
	board := &fakeBoard{err: errors.New("offline")}

	if got := Ranking(context.Background(), board, 10, nil); len(got) != 0 {
		t.Errorf("Ranking on failure = %v, want empty", got)
	}
	if got := Ranking(context.Background(), nil, 10, nil); got != nil {
		t.Errorf("Ranking with nil ranker = %v, want nil", got)
	}
}

func TestRankingDefaultLimit(t *testing.T) {
	board := &fakeBoard{}
	for i := 0; i < 15; i++ {
		board.records = append(board.records, Record{Nickname: "p", Score: i})
	}

	if got := Ranking(context.Background(), board, 0, nil); len(got) != DefaultRankingLimit {
		t.Errorf("Ranking default limit returned %d, want %d", len(got), DefaultRankingLimit)
	}
}

func TestSinkFunc(t *testing.T) {
	var got []Record
	var sink Sink = SinkFunc(func(rec Record) { got = append(got, rec) })

	sink.Publish(Record{Nickname: "ana", Score: 8})
	if len(got) != 1 || got[0].Score != 8 {
		t.Errorf("SinkFunc did not forward record: %v", got)
	}
}
