package app

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// lineVisual is the screen-space segment of a measurement
type lineVisual struct {
	from, to geometry.Vector3
	color    rl.Color
	width    float32
}

// labelVisual is the distance tag; rect is refreshed every draw
type labelVisual struct {
	Label
	at       geometry.Vector3
	fontSize float32
	rect     rl.Rectangle
	visible  bool
}

// overlay owns the lines and labels of all measurements and implements
// measurement.Renderer. Drawing happens in 2D after the 3D pass.
type overlay struct {
	project measurement.Projector
}

func newOverlay(project measurement.Projector) *overlay {
	return &overlay{project: project}
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func labelText(m *measurement.Measurement) string {
	return fmt.Sprintf("%.2f mm", m.Distance)
}

// Create implements measurement.Renderer
func (o *overlay) Create(m *measurement.Measurement) (measurement.Handle, measurement.Handle) {
	line := &lineVisual{
		from:  m.Start.World,
		to:    m.End.World,
		color: rlColor(m.Options.LineColor),
		width: float32(m.Options.LineWidth),
	}
	base := rlColor(m.Options.LabelColor)
	label := &labelVisual{
		Label: Label{
			Text:       labelText(m),
			BaseColor:  base,
			HoverColor: brighten(base),
		},
		at:       m.Midpoint(),
		fontSize: float32(m.Options.FontSize),
	}
	return line, label
}

// Reposition implements measurement.Renderer
func (o *overlay) Reposition(m *measurement.Measurement) {
	if line, ok := m.Line.(*lineVisual); ok {
		line.from, line.to = m.Start.World, m.End.World
		line.color = rlColor(m.Options.LineColor)
		line.width = float32(m.Options.LineWidth)
	}
	if label, ok := m.Label.(*labelVisual); ok {
		label.Text = labelText(m)
		label.at = m.Midpoint()
		label.BaseColor = rlColor(m.Options.LabelColor)
		label.HoverColor = brighten(label.BaseColor)
		label.fontSize = float32(m.Options.FontSize)
	}
}

// Dispose implements measurement.Renderer. Visuals are immediate-mode so
// hiding them is all that is needed.
func (o *overlay) Dispose(m *measurement.Measurement) {
	if label, ok := m.Label.(*labelVisual); ok {
		label.visible = false
	}
}

func (o *overlay) screen(p geometry.Vector3) (rl.Vector2, bool) {
	sp, ok := o.project.Project(p)
	return rl.Vector2{X: float32(sp.X), Y: float32(sp.Y)}, ok
}

// draw renders every measurement; hovered and editing select label styles
func (o *overlay) draw(font rl.Font, ms []*measurement.Measurement, editing *measurement.Measurement, hovered string) {
	for _, m := range ms {
		line, ok := m.Line.(*lineVisual)
		if !ok {
			continue
		}
		from, okFrom := o.screen(line.from)
		to, okTo := o.screen(line.to)
		if okFrom && okTo {
			rl.DrawLineEx(from, to, line.width, line.color)
		}

		markerColor := line.color
		radius := float32(4)
		if m == editing {
			markerColor = rl.Yellow
			radius = 7
		}
		if okFrom {
			rl.DrawCircleV(from, radius, markerColor)
		}
		if okTo {
			rl.DrawCircleV(to, radius, markerColor)
		}
	}

	// Labels on top of all lines
	for _, m := range ms {
		label, ok := m.Label.(*labelVisual)
		if !ok {
			continue
		}
		pos, visible := o.screen(label.at)
		label.visible = visible
		if !visible {
			continue
		}
		label.ScreenPos = pos
		label.IsSelected = m == editing
		label.IsHovered = m.ID == hovered
		label.rect = label.Draw(font, label.fontSize, 4)
	}
}

// drawPreview renders the uncommitted line while measuring or dragging
func (o *overlay) drawPreview(font rl.Font, p measurement.Preview) {
	from, okFrom := o.screen(p.Start)
	to, okTo := o.screen(p.Current)
	if okFrom && okTo {
		rl.DrawLineEx(from, to, 2, rl.Yellow)
		rl.DrawCircleV(to, 4, rl.Yellow)
	}
	if okFrom {
		rl.DrawCircleV(from, 4, rl.Yellow)
	}

	// Live distance box (bottom-right corner)
	text := fmt.Sprintf("%.2f mm", p.Distance)
	fontSize := float32(16)
	padding := float32(10)
	size := rl.MeasureTextEx(font, text, fontSize, 1)
	box := rl.Rectangle{
		X:      float32(rl.GetScreenWidth()) - size.X - 2*padding - 20,
		Y:      float32(rl.GetScreenHeight()) - size.Y - 2*padding - 20,
		Width:  size.X + 2*padding,
		Height: size.Y + 2*padding,
	}
	rl.DrawRectangleRec(box, rl.NewColor(0, 0, 0, 200))
	rl.DrawRectangleLinesEx(box, 1, rl.Yellow)
	rl.DrawTextEx(font, text, rl.Vector2{X: box.X + padding, Y: box.Y + padding}, fontSize, 1, rl.Yellow)
}

// labelAt returns the id of the topmost label under pos
func (o *overlay) labelAt(ms []*measurement.Measurement, pos rl.Vector2) (string, bool) {
	for i := len(ms) - 1; i >= 0; i-- {
		label, ok := ms[i].Label.(*labelVisual)
		if !ok || !label.visible {
			continue
		}
		if rl.CheckCollisionPointRec(pos, label.rect) {
			return ms[i].ID, true
		}
	}
	return "", false
}
