package core

// Color represents a foreground color for a screen cell.
// The platform maps it to ANSI 256-color codes.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBlack
)

// ParseColor maps a color name used in sprite sheets to a Color.
// Unknown names map to ColorDefault.
func ParseColor(name string) Color {
	switch name {
	case "red":
		return ColorRed
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	case "blue":
		return ColorBlue
	case "magenta":
		return ColorMagenta
	case "cyan":
		return ColorCyan
	case "white":
		return ColorWhite
	case "bright_white":
		return ColorBrightWhite
	case "orange":
		return ColorOrange
	case "gray", "grey":
		return ColorGray
	case "black":
		return ColorBlack
	default:
		return ColorDefault
	}
}
