package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

// fixedRand always picks index n (mod the range) and returns f from Float64.
type fixedRand struct {
	n int
	f float64
}

func (r fixedRand) Intn(k int) int   { return r.n % k }
func (r fixedRand) Float64() float64 { return r.f }

func TestCombineLine(t *testing.T) {
	tests := []struct {
		name     string
		input    Line
		expected Line
		score    int
	}{
		{"simple merge", Line{2, 2, 0, 0}, Line{4, 0, 0, 0}, 4},
		{"merge with trailing tile", Line{2, 2, 2, 0}, Line{4, 2, 0, 0}, 4},
		{"double merge", Line{2, 2, 2, 2}, Line{4, 4, 0, 0}, 8},
		{"no chained merge", Line{4, 2, 2, 0}, Line{4, 4, 0, 0}, 4},
		{"merged tile does not merge again", Line{2, 2, 4, 0}, Line{4, 4, 0, 0}, 4},
		{"no merge possible", Line{2, 4, 8, 16}, Line{2, 4, 8, 16}, 0},
		{"slide with gap", Line{0, 0, 2, 2}, Line{4, 0, 0, 0}, 4},
		{"slide with multiple gaps", Line{2, 0, 0, 2}, Line{4, 0, 0, 0}, 4},
		{"no change needed", Line{4, 2, 0, 0}, Line{4, 2, 0, 0}, 0},
		{"empty row", Line{0, 0, 0, 0}, Line{0, 0, 0, 0}, 0},
		{"single tile", Line{0, 4, 0, 0}, Line{4, 0, 0, 0}, 0},
		{"two pairs of different values", Line{8, 8, 4, 4}, Line{16, 8, 0, 0}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := CombineLine(tt.input)
			if result != tt.expected {
				t.Errorf("CombineLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("CombineLine(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestMoveDirections(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		input    Grid
		expected Grid
		score    int
	}{
		{
			name: "left",
			dir:  DirLeft,
			input: Grid{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: Grid{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			score: 4 + 8 + 8,
		},
		{
			name: "right",
			dir:  DirRight,
			input: Grid{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: Grid{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			score: 4 + 8 + 8,
		},
		{
			name: "up",
			dir:  DirUp,
			input: Grid{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: Grid{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 4 + 8 + 8,
		},
		{
			name: "down",
			dir:  DirDown,
			input: Grid{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: Grid{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
			score: 4 + 8 + 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.input
			res := Move(tt.input, tt.dir)

			if res.Grid != tt.expected {
				t.Errorf("Move %s: got\n%v\nwant\n%v", tt.dir, res.Grid, tt.expected)
			}
			if res.ScoreGained != tt.score {
				t.Errorf("Move %s score = %d, want %d", tt.dir, res.ScoreGained, tt.score)
			}
			if !res.Moved {
				t.Errorf("Move %s should report the grid moved", tt.dir)
			}
			if tt.input != before {
				t.Errorf("Move %s modified its input", tt.dir)
			}
		})
	}
}

func TestMoveNoChange(t *testing.T) {
	g := Grid{
		{4, 2, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := Move(g, DirLeft)
	if res.Moved {
		t.Error("Move left should not change already left-aligned tiles")
	}
	if res.Grid != g {
		t.Errorf("Move left changed the grid:\n%v", res.Grid)
	}
	if res.ScoreGained != 0 {
		t.Errorf("ScoreGained = %d, want 0", res.ScoreGained)
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	g := Grid{{2, 2, 0, 0}}

	res := Move(g, Direction(42))
	if res.Moved || res.Grid != g || res.ScoreGained != 0 {
		t.Errorf("invalid direction should be a no-op, got %+v", res)
	}
}

func mirror(g Grid) Grid {
	var out Grid
	for r := range Size {
		for c := range Size {
			out[r][Size-1-c] = g[r][c]
		}
	}
	return out
}

func transpose(g Grid) Grid {
	var out Grid
	for r := range Size {
		for c := range Size {
			out[c][r] = g[r][c]
		}
	}
	return out
}

func randomGrid(rng *rand.Rand) Grid {
	var g Grid
	for r := range Size {
		for c := range Size {
			if rng.Intn(3) == 0 {
				continue
			}
			g[r][c] = 1 << (1 + rng.Intn(4))
		}
	}
	return g
}

func TestMoveSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for range 200 {
		g := randomGrid(rng)

		left := Move(g, DirLeft)
		right := Move(g, DirRight)
		up := Move(g, DirUp)
		down := Move(g, DirDown)

		if want := mirror(Move(mirror(g), DirLeft).Grid); right.Grid != want {
			t.Fatalf("right != mirror(left(mirror(g))) for\n%v", g)
		}
		if want := transpose(Move(transpose(g), DirLeft).Grid); up.Grid != want {
			t.Fatalf("up != transpose(left(transpose(g))) for\n%v", g)
		}
		if want := transpose(Move(transpose(g), DirRight).Grid); down.Grid != want {
			t.Fatalf("down != transpose(right(transpose(g))) for\n%v", g)
		}

		for _, res := range []MoveResult{left, right, up, down} {
			if res.Grid.Sum() != g.Sum() {
				t.Fatalf("tile sum not conserved: %d -> %d for\n%v", g.Sum(), res.Grid.Sum(), g)
			}
			if res.Moved != (res.Grid != g) {
				t.Fatalf("Moved=%v disagrees with grid comparison for\n%v", res.Moved, g)
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"up", DirUp, true},
		{"ArrowDown", DirDown, true},
		{" LEFT ", DirLeft, true},
		{"arrowright", DirRight, true},
		{"diagonal", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsOver(t *testing.T) {
	checkerboard := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if !IsOver(checkerboard) {
		t.Error("checkerboard should be game over")
	}

	horizontalPair := checkerboard
	horizontalPair[3][3] = 4
	if IsOver(horizontalPair) {
		t.Error("grid with a horizontal pair should not be game over")
	}

	verticalPair := checkerboard
	verticalPair[1][0] = 2
	verticalPair[1][1] = 8
	if IsOver(verticalPair) {
		t.Error("grid with a vertical pair should not be game over")
	}

	withEmpty := checkerboard
	withEmpty[2][2] = 0
	if IsOver(withEmpty) {
		t.Error("grid with an empty cell should not be game over")
	}

	if IsOver(NewGrid()) {
		t.Error("empty grid should not be game over")
	}
}

func TestGridHelpers(t *testing.T) {
	g := Grid{
		{2, 0, 0, 0},
		{0, 0, 64, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2048},
	}

	if got := g.MaxTile(); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
	if got := g.Sum(); got != 2114 {
		t.Errorf("Sum = %d, want 2114", got)
	}
	if got := len(g.EmptyCells()); got != 13 {
		t.Errorf("EmptyCells count = %d, want 13", got)
	}
	if first := g.EmptyCells()[0]; first != (Pos{Row: 0, Col: 1}) {
		t.Errorf("first empty cell = %+v, want {0 1}", first)
	}

	clone := g.Clone()
	clone[0][0] = 4
	if g[0][0] != 2 {
		t.Error("Clone should not share storage with the original")
	}

	full := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if cells := full.EmptyCells(); len(cells) != 0 {
		t.Errorf("full grid EmptyCells = %v, want none", cells)
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name  string
		value int
		ok    bool
	}{
		{"empty", 0, true},
		{"two", 2, true},
		{"large power", 1 << 16, true},
		{"one", 1, false},
		{"three", 3, false},
		{"negative", -2, false},
		{"not a power", 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid()
			g[1][2] = tt.value
			err := g.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("Validate() = %v, want ErrInvalidGrid", err)
			}
		})
	}
}

func TestSpawnFullGrid(t *testing.T) {
	full := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	before := full

	s := NewSpawner(fixedRand{}, DefaultSpawn4Prob)
	if _, ok := s.Spawn(&full); ok {
		t.Error("Spawn on a full grid should report false")
	}
	if full != before {
		t.Error("Spawn on a full grid should not modify it")
	}
}

func TestSpawnPicksEmptyCell(t *testing.T) {
	g := Grid{
		{2, 0, 4, 0},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 0},
	}

	// Empty cells in row-major order: (0,1), (0,3), (3,3).
	s := NewSpawner(fixedRand{n: 2, f: 0.5}, DefaultSpawn4Prob)
	tile, ok := s.Spawn(&g)
	if !ok {
		t.Fatal("Spawn should succeed")
	}
	if tile.Pos != (Pos{Row: 3, Col: 3}) || tile.Value != 2 {
		t.Errorf("spawned %+v, want 2 at {3 3}", tile)
	}
	if g[3][3] != 2 {
		t.Errorf("grid cell = %d, want 2", g[3][3])
	}

	s = NewSpawner(fixedRand{n: 0, f: 0.05}, DefaultSpawn4Prob)
	tile, _ = s.Spawn(&g)
	if tile.Value != 4 || tile.Pos != (Pos{Row: 0, Col: 1}) {
		t.Errorf("spawned %+v, want 4 at {0 1}", tile)
	}
}

func TestSpawnDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(2048))
	s := NewSpawner(rng, DefaultSpawn4Prob)

	const trials = 20000
	fours := 0
	for range trials {
		g := Grid{
			{2, 4, 0, 4},
			{4, 2, 4, 2},
			{0, 4, 2, 4},
			{4, 2, 4, 0},
		}
		before := g

		tile, ok := s.Spawn(&g)
		if !ok {
			t.Fatal("Spawn should succeed")
		}
		if before.At(tile.Pos) != 0 {
			t.Fatalf("spawned on occupied cell %+v", tile.Pos)
		}
		if tile.Value == 4 {
			fours++
		}
	}

	ratio := float64(fours) / trials
	if ratio < 0.08 || ratio > 0.12 {
		t.Errorf("P(4) = %.3f, want about 0.10", ratio)
	}
}
