package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/version"
)

var helpLines = []string{
	"Click twice: measure",
	"Double-click label: edit",
	"Esc: cancel / finish edit",
	"Backspace: undo   C: clear",
	"M: measuring on/off",
	"V: snap mode   D: tracking",
	"Tab: select object",
	"Arrows, PgUp/PgDn: move   R: rotate",
	"S: save   W/F: wireframe/fill",
	"Home, T, 1-4: camera views",
	"H: hide help",
}

// drawUI draws the status panel, help and transient status message
func (app *App) drawUI() {
	font := app.UI.font
	fontSize := float32(16)
	lineHeight := float32(20)
	x, y := float32(10), float32(10)

	ctrl := app.session.Controller
	o := ctrl.Options()

	lines := []string{
		fmt.Sprintf("gomeasure %s", version.GetVersion()),
		fmt.Sprintf("Mode: %s", ctrl.State()),
		fmt.Sprintf("Snap: %s (%.3f)", o.SnapMode, o.SnapDistance),
		fmt.Sprintf("Tracking: %v", o.Dynamic),
		fmt.Sprintf("Measurements: %d", app.session.Store.Len()),
	}
	if len(app.Model.meshes) > 1 {
		lines = append(lines, fmt.Sprintf("Selected: %s", app.Model.meshes[app.Model.selected].object.Name))
	}

	for _, line := range lines {
		rl.DrawTextEx(font, line, rl.Vector2{X: x, Y: y}, fontSize, 1, rl.RayWhite)
		y += lineHeight
	}

	if app.View.showHelp {
		y += lineHeight / 2
		for _, line := range helpLines {
			rl.DrawTextEx(font, line, rl.Vector2{X: x, Y: y}, 14, 1, rl.LightGray)
			y += 18
		}
	}

	// Status fades after a few seconds
	if app.UI.status != "" && rl.GetTime()-app.UI.statusT < 3 {
		screenHeight := float32(rl.GetScreenHeight())
		rl.DrawTextEx(font, app.UI.status, rl.Vector2{X: 10, Y: screenHeight - 30}, fontSize, 1, rl.Yellow)
	}
}
