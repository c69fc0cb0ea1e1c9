package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
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

// hexColors approximates each terminal color for non-terminal renderers.
var hexColors = map[Color]string{
	ColorDefault:       "#ffffff",
	ColorRed:           "#cc3333",
	ColorGreen:         "#33aa55",
	ColorYellow:        "#ccaa22",
	ColorBlue:          "#3366cc",
	ColorMagenta:       "#aa44aa",
	ColorCyan:          "#22aaaa",
	ColorWhite:         "#dddddd",
	ColorBrightRed:     "#ff5566",
	ColorBrightGreen:   "#55ff88",
	ColorBrightYellow:  "#ffee55",
	ColorBrightBlue:    "#5599ff",
	ColorBrightMagenta: "#ff66ff",
	ColorBrightCyan:    "#55ffff",
	ColorBrightWhite:   "#ffffff",
	ColorOrange:        "#ff8800",
	ColorGray:          "#888888",
}

// Hex returns a CSS hex string for the color.
func (c Color) Hex() string {
	if h, ok := hexColors[c]; ok {
		return h
	}
	return hexColors[ColorDefault]
}
