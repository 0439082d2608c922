package t2048

// Snapshot captures the complete session state for determinism testing and
// rendering outside the terminal.
type Snapshot struct {
	ID       string `json:"id"`
	Phase    string `json:"phase"`
	Nickname string `json:"nickname,omitempty"`
	Score    int    `json:"score"`
	Moves    int    `json:"moves"`
	Grid     Grid   `json:"grid"`
	MaxTile  int    `json:"max_tile"`
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:       s.id,
		Phase:    s.phase.String(),
		Nickname: s.nickname,
		Score:    s.score,
		Moves:    s.moves,
		Grid:     s.grid,
		MaxTile:  s.grid.MaxTile(),
	}
}
