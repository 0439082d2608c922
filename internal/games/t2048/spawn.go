package t2048

// DefaultSpawn4Prob is the chance a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Tile is a value placed at a position.
type Tile struct {
	Pos
	Value int
}

// Spawner places new tiles on empty cells.
type Spawner struct {
	rng        Rand
	spawn4Prob float64
}

// NewSpawner creates a spawner. spawn4Prob is clamped to [0, 1].
func NewSpawner(rng Rand, spawn4Prob float64) *Spawner {
	return &Spawner{
		rng:        rng,
		spawn4Prob: min(max(spawn4Prob, 0), 1),
	}
}

// Spawn puts a 2 (or a 4 with the configured probability) on a uniformly
// chosen empty cell of g. Returns false and leaves g untouched when the grid
// is full.
func (s *Spawner) Spawn(g *Grid) (Tile, bool) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return Tile{}, false
	}

	pos := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rng.Float64() < s.spawn4Prob {
		value = 4
	}

	g.Set(pos, value)
	return Tile{Pos: pos, Value: value}, true
}
