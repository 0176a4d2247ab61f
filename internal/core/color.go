package core

// Color represents a foreground color for a screen cell.
// Backends map it to ANSI 256-color codes (lipgloss) or tcell colors.
type Color uint8

// Colors used by the renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBrightGreen
	ColorBrightRed
	ColorBrightWhite
	ColorGray
)

// ParseColor maps a config color name to a Color. Unknown names yield ColorDefault.
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
	case "cyan":
		return ColorCyan
	case "bright_green":
		return ColorBrightGreen
	case "bright_red":
		return ColorBrightRed
	case "bright_white":
		return ColorBrightWhite
	case "gray", "grey":
		return ColorGray
	default:
		return ColorDefault
	}
}
