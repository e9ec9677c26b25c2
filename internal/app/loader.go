package app

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/watcher"
)

// loadScene parses every STL file into a scene object. Objects after the
// first are placed next to each other along X so they do not overlap.
func loadScene(files []string) (*scene.Scene, error) {
	sc := scene.New()
	nextX := 0.0
	gap := 0.0

	for i, file := range files {
		obj, err := sc.LoadSTL(file)
		if err != nil {
			return nil, err
		}

		bbox := obj.Bounds()
		if i == 0 {
			nextX = bbox.Max.X
			gap = 0.1 * math.Max(bbox.Size().X, 1)
			continue
		}
		obj.Translate(geometry.NewVector3(nextX+gap-bbox.Min.X, 0, 0))
		nextX = obj.Bounds().Max.X
	}

	return sc, nil
}

// sceneBounds returns the bounding box of every object in world space
func sceneBounds(sc *scene.Scene) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, obj := range sc.Objects() {
		b := obj.Bounds()
		bbox.Extend(b.Min)
		bbox.Extend(b.Max)
	}
	return bbox
}

// setupFileWatcher reloads the measurement sidecar when it changes on disk
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(500*time.Millisecond, app.log)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(string) {
		app.FileWatch.needsReload.Store(true)
	}
	if err := fw.Watch([]string{app.FileWatch.sidecar}, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	app.log.Info().Str("file", app.FileWatch.sidecar).Msg("watching measurements for changes")
	return nil
}

// loadMeasurements replaces the store contents with the sidecar's records
func (app *App) loadMeasurements() error {
	data, err := os.ReadFile(app.FileWatch.sidecar)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read measurements file: %w", err)
	}
	if bytes.Equal(data, app.FileWatch.lastSave) {
		return nil
	}

	records, err := app.codec.Decode(data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ms, err := app.codec.Replace(ctx, app.session.Store, records, measurement.Lookup(app.Model.scene.Lookup))
	if err != nil {
		return err
	}
	app.FileWatch.lastSave = data
	app.log.Info().Int("count", len(ms)).Str("file", app.FileWatch.sidecar).Msg("measurements loaded")
	return nil
}

// saveMeasurements writes the store to the sidecar, removing it when empty
func (app *App) saveMeasurements() error {
	records := measurement.Serialize(app.session.Store.List())
	if err := measurement.SaveFile(app.FileWatch.sidecar, records); err != nil {
		return err
	}

	app.FileWatch.lastSave = nil
	if len(records) > 0 {
		data, err := measurement.Encode(records)
		if err != nil {
			return err
		}
		app.FileWatch.lastSave = data
	}
	app.log.Info().Int("count", len(records)).Str("file", app.FileWatch.sidecar).Msg("measurements saved")
	return nil
}
