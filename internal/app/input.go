package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/internal/measurement"
)

const (
	clickThreshold    = 5.0 // pixels a press may travel and still count as a click
	doubleClickWindow = 0.4 // seconds between label activations that count as double
)

// inputPump converts raylib mouse and keyboard state into controller input
type inputPump struct {
	downPos  rl.Vector2
	moved    bool
	down     bool
	lastPos  rl.Vector2
	onLabel  string // label under the pointer at press time
	lastHit  string
	lastHitT float64
}

func screenPos(v rl.Vector2) measurement.ScreenPos {
	return measurement.ScreenPos{X: float64(v.X), Y: float64(v.Y)}
}

// poll returns this frame's input events. labelAt hit-tests measurement labels.
func (p *inputPump) poll(labelAt func(rl.Vector2) (string, bool)) []measurement.Input {
	var inputs []measurement.Input
	pos := rl.GetMousePosition()
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !shift {
		p.down = true
		p.moved = false
		p.downPos = pos
		p.onLabel = ""

		if id, ok := labelAt(pos); ok {
			p.onLabel = id
			now := rl.GetTime()
			double := id == p.lastHit && now-p.lastHitT <= doubleClickWindow
			p.lastHit, p.lastHitT = id, now
			inputs = append(inputs, measurement.Input{
				Kind:          measurement.LabelActivate,
				MeasurementID: id,
				Double:        double,
			})
		} else {
			inputs = append(inputs, measurement.Input{Kind: measurement.PointerDown, Pos: screenPos(pos)})
		}
	}

	if pos != p.lastPos {
		if p.down && rl.Vector2Distance(p.downPos, pos) >= clickThreshold {
			p.moved = true
		}
		inputs = append(inputs, measurement.Input{Kind: measurement.PointerMove, Pos: screenPos(pos)})
		p.lastPos = pos
	}

	if p.down && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		p.down = false
		inputs = append(inputs, measurement.Input{Kind: measurement.PointerUp, Pos: screenPos(pos)})
		if !p.moved && p.onLabel == "" {
			inputs = append(inputs, measurement.Input{Kind: measurement.Click, Pos: screenPos(pos)})
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		inputs = append(inputs, measurement.Input{Kind: measurement.KeyPress, Key: measurement.KeyCancel})
	case rl.IsKeyPressed(rl.KeyBackspace):
		inputs = append(inputs, measurement.Input{Kind: measurement.KeyPress, Key: measurement.KeyUndo})
	case rl.IsKeyPressed(rl.KeyC) && !ctrlDown():
		inputs = append(inputs, measurement.Input{Kind: measurement.KeyPress, Key: measurement.KeyClear})
	}

	return inputs
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}
