package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorGray
	ColorBrightWhite
)

// PieceColors is the palette used for falling pieces, indexed by shape.
var PieceColors = [...]Color{
	ColorYellow,  // O
	ColorCyan,    // I
	ColorGreen,   // S
	ColorRed,     // Z
	ColorMagenta, // T
	ColorOrange,  // L
	ColorBlue,    // J
}

// PieceColor returns the palette color for a shape index, wrapping around.
func PieceColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return PieceColors[i%len(PieceColors)]
}
