package core

// Color is a semantic foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the runner.
const (
	ColorDefault Color = iota
	ColorGround
	ColorCactus
	ColorCloud
	ColorHUD
	ColorDim
	ColorAlert

	// Skin colors.
	ColorSkinGreen
	ColorSkinRed
	ColorSkinYellow
	ColorSkinBlue
)
