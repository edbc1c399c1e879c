package game

import (
	"image/color"
	"math/rand"
)

// BubbleColor identifies one of the six palette colours.
type BubbleColor uint8

const (
	ColorRed BubbleColor = iota
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorOrange
	bubbleColorCount // sentinel
)

func (c BubbleColor) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// BasePoints returns the per-bubble score value for a colour.
func (c BubbleColor) BasePoints() int {
	switch c {
	case ColorRed:
		return 100
	case ColorYellow:
		return 110
	case ColorGreen:
		return 120
	case ColorBlue:
		return 130
	case ColorPurple:
		return 140
	case ColorOrange:
		return 150
	default:
		return 0
	}
}

// RGBA returns the render colour for a bubble colour.
func (c BubbleColor) RGBA() color.RGBA {
	switch c {
	case ColorRed:
		return color.RGBA{R: 225, G: 70, B: 70, A: 255}
	case ColorYellow:
		return color.RGBA{R: 235, G: 210, B: 70, A: 255}
	case ColorGreen:
		return color.RGBA{R: 80, G: 190, B: 90, A: 255}
	case ColorBlue:
		return color.RGBA{R: 75, G: 130, B: 230, A: 255}
	case ColorPurple:
		return color.RGBA{R: 165, G: 90, B: 210, A: 255}
	case ColorOrange:
		return color.RGBA{R: 235, G: 145, B: 60, A: 255}
	default:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
}

// randomColor draws a palette colour uniformly.
func randomColor(rng *rand.Rand) BubbleColor {
	return BubbleColor(rng.Intn(int(bubbleColorCount))) // #nosec G404 -- game only
}

// Bubble is one grid-resident bubble. Bubbles are owned exclusively by the
// BubbleField: created on grid init, on ceiling advance, and on projectile
// landing; deactivated (never removed mid-tick) when popped so iteration
// stays stable within a tick.
type Bubble struct {
	ID     int
	Cell   Cell
	X, Y   float64 // cached; always equals CellToPixel(Cell, fieldWidth)
	Color  BubbleColor
	Active bool
}
