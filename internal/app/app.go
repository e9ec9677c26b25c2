package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/rs/zerolog"
)

// App is the interactive measurement viewer
type App struct {
	Model     ModelData
	View      ViewSettings
	FileWatch FileWatchState
	UI        UIState

	camera  *orbitCamera
	caster  *measurement.RayCaster
	overlay *overlay
	input   inputPump
	session *measurement.Session
	codec   *measurement.Codec
	log     zerolog.Logger
}

// Run opens the viewer window and blocks until it is closed
func Run(cfg Config) error {
	if len(cfg.Files) == 0 {
		return fmt.Errorf("no model files given")
	}

	sc, err := loadScene(cfg.Files)
	if err != nil {
		return err
	}

	width, height := int32(cfg.Width), int32(cfg.Height)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(width, height, "gomeasure")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyNull) // Escape cancels measurements

	bbox := sceneBounds(sc)
	size := bbox.Size()

	app := &App{
		Model: ModelData{
			scene:    sc,
			material: rl.LoadMaterialDefault(),
			size:     math.Max(size.X, math.Max(size.Y, size.Z)),
		},
		View: ViewSettings{
			showWireframe: true,
			showFilled:    true,
			showHelp:      true,
		},
		UI:     UIState{font: rl.GetFontDefault()},
		camera: newOrbitCamera(bbox),
		log:    cfg.Log,
	}
	app.FileWatch.sidecar = measurement.SidecarPath(cfg.Files[0])

	for _, obj := range sc.Objects() {
		app.Model.meshes = append(app.Model.meshes, ObjectMesh{object: obj, mesh: trianglesToMesh(obj.Triangles())})
	}
	defer func() {
		for i := range app.Model.meshes {
			rl.UnloadMesh(&app.Model.meshes[i].mesh)
		}
	}()

	app.caster = measurement.NewRayCaster(app.camera.cam, float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	app.overlay = newOverlay(app.caster)
	app.codec = measurement.NewCodec(measurement.WithCodecLogger(app.log))

	store := measurement.NewStore(
		measurement.WithRenderer(app.overlay),
		measurement.WithStoreLogger(app.log),
	)

	var targets []measurement.Target
	for _, obj := range sc.Objects() {
		targets = append(targets, obj)
	}
	app.session = measurement.NewSession(store, app.caster,
		measurement.WithOptions(cfg.Options.WithTargets(targets...)),
		measurement.WithProjector(app.caster),
		measurement.WithCameraControl(app.camera),
		measurement.WithControllerLogger(app.log),
	)
	app.subscribe()

	if err := app.loadMeasurements(); err != nil {
		app.log.Warn().Err(err).Msg("could not load measurements")
	}
	if err := app.setupFileWatcher(); err != nil {
		app.log.Warn().Err(err).Msg("auto-reload of measurements will not be available")
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	app.session.Controller.Enable()

	for !rl.WindowShouldClose() {
		// Ctrl+C exits
		if ctrlDown() && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		if app.FileWatch.needsReload.Swap(false) {
			if err := app.loadMeasurements(); err != nil {
				app.log.Warn().Err(err).Msg("could not reload measurements")
			}
		}

		app.caster.SetViewport(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

		ms := app.session.Store.List()
		inputs := app.input.poll(func(pos rl.Vector2) (string, bool) {
			return app.overlay.labelAt(ms, pos)
		})
		app.handleKeys()
		app.session.Frame(inputs...)
		// A press that grabbed a marker this frame must not orbit the camera
		_, dragging := app.session.Controller.Dragging()
		app.camera.update(!dragging)

		app.draw()
	}

	app.session.Controller.Dispose()
	if err := app.saveMeasurements(); err != nil {
		return fmt.Errorf("failed to save measurements: %w", err)
	}
	return nil
}

// subscribe reports controller and store events in the status line
func (app *App) subscribe() {
	store := app.session.Store
	ctrl := app.session.Controller

	store.Events().On(measurement.MeasurementCreated, func(ev measurement.Event) {
		app.setStatus(fmt.Sprintf("Added %.2f mm", ev.Measurement.Distance))
	})
	store.Events().On(measurement.MeasurementRemoved, func(ev measurement.Event) {
		app.setStatus("Removed measurement")
	})
	store.Events().On(measurement.MeasurementsCleared, func(ev measurement.Event) {
		if ev.Count > 0 {
			app.setStatus(fmt.Sprintf("Cleared %d measurement(s)", ev.Count))
		}
	})
	ctrl.Events().On(measurement.EditModeEntered, func(ev measurement.Event) {
		app.setStatus("Editing: drag an endpoint, Esc to finish")
	})
	ctrl.Events().On(measurement.EditModeExited, func(measurement.Event) {
		app.setStatus("")
	})
}

func (app *App) setStatus(s string) {
	app.UI.status = s
	app.UI.statusT = rl.GetTime()
}

// handleKeys processes viewer shortcuts that are not measurement input
func (app *App) handleKeys() {
	ctrl := app.session.Controller

	switch {
	case rl.IsKeyPressed(rl.KeyM):
		if ctrl.Interactive() {
			ctrl.Disable()
			app.setStatus("Measuring off")
		} else {
			ctrl.Enable()
			app.setStatus("Measuring on")
		}
	case rl.IsKeyPressed(rl.KeyD):
		app.toggleDynamic()
	case rl.IsKeyPressed(rl.KeyV):
		app.cycleSnapMode()
	case rl.IsKeyPressed(rl.KeyS) && !ctrlDown():
		if err := app.saveMeasurements(); err != nil {
			app.log.Error().Err(err).Msg("save failed")
			app.setStatus("Save failed")
		} else {
			app.setStatus("Saved")
		}
	case rl.IsKeyPressed(rl.KeyW):
		app.View.showWireframe = !app.View.showWireframe
	case rl.IsKeyPressed(rl.KeyF):
		app.View.showFilled = !app.View.showFilled
	case rl.IsKeyPressed(rl.KeyH):
		app.View.showHelp = !app.View.showHelp
	case rl.IsKeyPressed(rl.KeyTab):
		if n := len(app.Model.meshes); n > 0 {
			app.Model.selected = (app.Model.selected + 1) % n
		}
	}

	app.moveSelected()
}

// toggleDynamic flips tracking on the edited measurement, or the default for new ones
func (app *App) toggleDynamic() {
	ctrl := app.session.Controller
	if m := ctrl.Editing(); m != nil {
		app.session.Store.SetDynamic(m, !m.Options.Dynamic)
		app.setStatus(fmt.Sprintf("Measurement tracking: %v", m.Options.Dynamic))
		return
	}
	o := ctrl.Options()
	ctrl.SetOptions(o.WithDynamic(!o.Dynamic))
	app.setStatus(fmt.Sprintf("New measurements track objects: %v", !o.Dynamic))
}

func (app *App) cycleSnapMode() {
	ctrl := app.session.Controller
	o := ctrl.Options()
	next := map[measurement.SnapMode]measurement.SnapMode{
		measurement.SnapVertex:   measurement.SnapFace,
		measurement.SnapFace:     measurement.SnapDisabled,
		measurement.SnapDisabled: measurement.SnapVertex,
		measurement.SnapEdge:     measurement.SnapVertex,
	}[o.SnapMode]
	ctrl.SetOptions(o.WithSnap(next, o.SnapDistance, next != measurement.SnapDisabled))
	app.setStatus(fmt.Sprintf("Snap: %s", next))
}

// moveSelected nudges the selected object with the arrow keys (Page Up/Down for Z)
// and rotates it about its center with R
func (app *App) moveSelected() {
	if len(app.Model.meshes) == 0 {
		return
	}
	obj := app.Model.meshes[app.Model.selected].object
	step := app.Model.size * 0.02

	var delta geometry.Vector3
	switch {
	case rl.IsKeyDown(rl.KeyLeft):
		delta.X = -step
	case rl.IsKeyDown(rl.KeyRight):
		delta.X = step
	case rl.IsKeyDown(rl.KeyUp):
		delta.Y = step
	case rl.IsKeyDown(rl.KeyDown):
		delta.Y = -step
	case rl.IsKeyDown(rl.KeyPageUp):
		delta.Z = step
	case rl.IsKeyDown(rl.KeyPageDown):
		delta.Z = -step
	}
	if delta != (geometry.Vector3{}) {
		obj.Translate(delta)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		c := obj.Bounds().Center()
		spin := geometry.Translation(c).
			Mul(geometry.RotationZ(math.Pi / 12)).
			Mul(geometry.Translation(c.Negate()))
		obj.SetTransform(spin.Mul(obj.WorldTransform()))
	}
}

func (app *App) draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

	rl.BeginMode3D(app.camera.raylib())
	if app.View.showFilled {
		for _, om := range app.Model.meshes {
			rl.DrawMesh(om.mesh, app.Model.material, toMatrix(om.object.WorldTransform()))
		}
	}
	if app.View.showWireframe {
		app.drawWireframe()
	}
	rl.EndMode3D()

	ctrl := app.session.Controller
	hovered, _ := app.overlay.labelAt(app.session.Store.List(), rl.GetMousePosition())
	app.overlay.draw(app.UI.font, app.session.Store.List(), ctrl.Editing(), hovered)
	if preview, ok := ctrl.Preview(); ok {
		app.overlay.drawPreview(app.UI.font, preview)
	}

	app.drawUI()
}
