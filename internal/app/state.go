package app

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/watcher"
	"github.com/rs/zerolog"
)

// Config holds everything the viewer needs to start
type Config struct {
	Files   []string // STL files, one scene object each
	Width   int
	Height  int
	Options measurement.Options
	Log     zerolog.Logger
}

// ObjectMesh is a scene object together with its GPU mesh
type ObjectMesh struct {
	object *scene.Object
	mesh   rl.Mesh
}

// ModelData holds the loaded scene
type ModelData struct {
	scene    *scene.Scene
	meshes   []ObjectMesh
	material rl.Material
	selected int     // index into meshes moved by the arrow keys
	size     float64 // largest scene dimension, scales markers and nudges
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showHelp      bool
}

// FileWatchState holds the measurement sidecar and its reload flag
type FileWatchState struct {
	sidecar     string               // measurement file of the first model
	fileWatcher *watcher.FileWatcher // reloads the sidecar when edited outside
	needsReload atomic.Bool          // set by the watcher goroutine, consumed by the frame loop
	lastSave    []byte               // contents we wrote ourselves, to ignore our own events
}

// UIState holds UI-related state
type UIState struct {
	font    rl.Font
	status  string
	statusT float64 // time the status was set
}
