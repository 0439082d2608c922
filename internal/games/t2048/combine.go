package t2048

// Line is one row or column, ordered so that index 0 is the edge tiles
// slide toward.
type Line [Size]int

// CombineLine slides the non-zero tiles of line toward index 0 and merges
// adjacent equal pairs. A tile produced by a merge does not merge again in
// the same call. Returns the new line and the sum of the merged values.
func CombineLine(line Line) (Line, int) {
	tiles := compact(line[:])
	gained := 0

	for i := 0; i+1 < len(tiles); i++ {
		if tiles[i] != tiles[i+1] {
			continue
		}
		tiles[i] *= 2
		gained += tiles[i]
		tiles[i+1] = 0
		i++ // skip the consumed tile
	}

	var out Line
	copy(out[:], compact(tiles))
	return out, gained
}

// compact returns the non-zero values of vals in order.
func compact(vals []int) []int {
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}
