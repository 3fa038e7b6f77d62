package core

// Color is the foreground color of a screen cell. The terminal layer maps
// each value to an ANSI 256 color.
type Color uint8

// Base colors.
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

// Colors by role in the level view.
const (
	ColorHUD          = ColorBrightWhite
	ColorHint         = ColorGray
	ColorWarning      = ColorBrightRed
	ColorWater        = ColorBlue
	ColorWaterSurface = ColorBrightBlue
	ColorFaded        = ColorGray // dead or mostly transparent entities
)
