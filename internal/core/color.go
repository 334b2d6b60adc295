package core

// Color represents a foreground color for a screen cell or a drawn shape.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
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

// signaturePalette is cycled through when players are given their colors.
var signaturePalette = []Color{
	ColorBrightRed,
	ColorBrightBlue,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
	ColorWhite,
}

// SignatureColor returns the signature color for the i-th roster slot.
func SignatureColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return signaturePalette[i%len(signaturePalette)]
}
