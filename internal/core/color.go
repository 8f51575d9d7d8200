package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the simulation views.
const (
	ColorDefault Color = iota
	ColorPink          // Kind A agents
	ColorSlate         // Kind B agents
	ColorBorder
	ColorHUD
	ColorAccent
	ColorWarn
	ColorDim
)
