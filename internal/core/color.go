package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for tiles and chrome.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tileColors is indexed by log2(value) - 1, so 2 -> index 0.
var tileColors = []Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorRed,           // 32
	ColorBrightRed,     // 64
	ColorBrightYellow,  // 128
	ColorGreen,         // 256
	ColorBrightGreen,   // 512
	ColorCyan,          // 1024
	ColorBrightCyan,    // 2048
	ColorBlue,          // 4096
	ColorBrightBlue,    // 8192
	ColorMagenta,       // 16384
	ColorBrightMagenta, // 32768+
}

// TileColor returns the display color for a tile value.
// Empty cells and unknown values use the gray color.
func TileColor(value int) Color {
	if value < 2 {
		return ColorGray
	}
	idx := -1
	for v := value; v > 1; v >>= 1 {
		idx++
	}
	if idx >= len(tileColors) {
		idx = len(tileColors) - 1
	}
	return tileColors[idx]
}
