package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Label is the on-screen distance tag of a measurement
type Label struct {
	Text       string
	ScreenPos  rl.Vector2
	BaseColor  rl.Color
	HoverColor rl.Color
	IsSelected bool
	IsHovered  bool
}

// Draw renders the label and returns its bounding rectangle for hit-testing
func (l *Label) Draw(font rl.Font, fontSize float32, padding float32) rl.Rectangle {
	color := l.BaseColor
	borderWidth := float32(2)
	if l.IsSelected {
		color = rl.Yellow
		borderWidth = 3
	} else if l.IsHovered {
		color = l.HoverColor
		borderWidth = 2.5
	}

	textSize := rl.MeasureTextEx(font, l.Text, fontSize, 1)

	// Centered on the anchor point
	rect := rl.Rectangle{
		X:      l.ScreenPos.X - textSize.X/2 - padding,
		Y:      l.ScreenPos.Y - textSize.Y/2 - padding,
		Width:  textSize.X + 2*padding,
		Height: textSize.Y + 2*padding,
	}

	rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLinesEx(rect, borderWidth, color)

	textPos := rl.Vector2{
		X: l.ScreenPos.X - textSize.X/2,
		Y: l.ScreenPos.Y - textSize.Y/2,
	}
	rl.DrawTextEx(font, l.Text, textPos, fontSize, 1, color)

	return rect
}

// brighten returns c moved towards white for hover feedback
func brighten(c rl.Color) rl.Color {
	lift := func(v uint8) uint8 {
		return v + (255-v)/2
	}
	return rl.NewColor(lift(c.R), lift(c.G), lift(c.B), c.A)
}
