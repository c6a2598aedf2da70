package core

// Color is a palette entry shared by every render surface.
// Terminal surfaces map it to ANSI 256-color codes, the desktop surface to RGBA.
type Color uint8

// Predefined colors for table elements.
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
	ColorFelt
)

// String returns the palette name used in config files and snapshots.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorBrightWhite:
		return "bright-white"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	case ColorBlack:
		return "black"
	case ColorFelt:
		return "felt"
	default:
		return "default"
	}
}

// ParseColor converts a palette name back to a Color.
func ParseColor(s string) (Color, bool) {
	for c := ColorDefault; c <= ColorFelt; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return ColorDefault, false
}
