package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controllerFixture struct {
	store  *Store
	query  *stubQuery
	camera *recordingCamera
	ctrl   *Controller
	obj    Target
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	obj := plate("plate")
	f := &controllerFixture{
		store:  newTestStore(),
		query:  newStubQuery(),
		camera: &recordingCamera{},
		obj:    obj,
	}
	f.query.on(ScreenPos{X: 10, Y: 10}, obj, vec3(0.1, 0.1, 0))
	f.query.on(ScreenPos{X: 50, Y: 10}, obj, vec3(0.5, 0.1, 0))
	f.query.on(ScreenPos{X: 90, Y: 90}, obj, vec3(0.9, 0.9, 0))

	options := DefaultOptions().WithTargets(obj).WithSnap(SnapDisabled, 0, false)
	f.ctrl = NewController(f.store, f.query,
		WithOptions(options),
		WithProjector(stubProjector{}),
		WithCameraControl(f.camera),
	)
	return f
}

func TestControllerStartsViewing(t *testing.T) {
	f := newControllerFixture(t)

	assert.Equal(t, Viewing, f.ctrl.State())
	f.ctrl.Click(ScreenPos{X: 10, Y: 10})
	assert.Equal(t, 0, f.store.Len())
}

func TestControllerTwoClicksCreateMeasurement(t *testing.T) {
	f := newControllerFixture(t)
	events := collect(f.ctrl.Events())
	created := collect(f.store.Events())

	f.ctrl.Enable()
	assert.Equal(t, Measuring, f.ctrl.State())

	f.ctrl.Click(ScreenPos{X: 10, Y: 10})
	pending, ok := f.ctrl.Pending()
	require.True(t, ok)
	assert.Equal(t, vec3(0.1, 0.1, 0), pending.World)
	assert.Equal(t, 0, f.store.Len())

	f.ctrl.Click(ScreenPos{X: 50, Y: 10})

	require.Equal(t, 1, f.store.Len())
	m, _ := f.store.At(0)
	assert.InDelta(t, 0.4, m.Distance, 1e-12)
	assert.True(t, m.Start.Anchored())
	assert.Equal(t, "plate", m.End.Anchor.Object.ID())
	assert.Equal(t, []string{"plate"}, m.Options.TargetIDs())

	_, ok = f.ctrl.Pending()
	assert.False(t, ok, "controller awaits a new first click")
	assert.Equal(t, Measuring, f.ctrl.State())
	assert.Equal(t, []EventKind{Started}, kinds(*events))
	assert.Equal(t, []EventKind{MeasurementCreated}, kinds(*created))
}

func TestControllerQueriesOnlyTargets(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Enable()

	f.ctrl.Click(ScreenPos{X: 10, Y: 10})

	require.Len(t, f.query.targets, 1)
	require.Len(t, f.query.targets[0], 1)
	assert.Equal(t, "plate", f.query.targets[0][0].ID())
}

func TestControllerIgnoresMisses(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Enable()

	f.ctrl.Click(ScreenPos{X: 500, Y: 500})
	_, ok := f.ctrl.Pending()
	assert.False(t, ok)

	f.ctrl.Click(ScreenPos{X: 10, Y: 10})
	f.ctrl.Click(ScreenPos{X: 500, Y: 500})
	_, ok = f.ctrl.Pending()
	assert.True(t, ok, "a miss keeps the pending start point")
	assert.Equal(t, 0, f.store.Len())
}

func TestControllerSnapsPickedPoints(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.SetOptions(f.ctrl.Options().WithSnap(SnapVertex, 0.2, true))
	f.ctrl.Enable()

	f.ctrl.Click(ScreenPos{X: 10, Y: 10})

	pending, ok := f.ctrl.Pending()
	require.True(t, ok)
	assert.Equal(t, vec3(0, 0, 0), pending.World)
	assert.Equal(t, vec3(0, 0, 0), pending.Anchor.Local)
}

func TestControllerPreview(t *testing.T) {
	f := newControllerFixture(t)
	events := collect(f.ctrl.Events())
	f.ctrl.Enable()

	f.ctrl.PointerMove(ScreenPos{X: 50, Y: 10})
	_, ok := f.ctrl.Preview()
	assert.False(t, ok, "no preview without a start point")

	f.ctrl.Click(ScreenPos{X: 10, Y: 10})
	f.ctrl.PointerMove(ScreenPos{X: 50, Y: 10})

	preview, ok := f.ctrl.Preview()
	require.True(t, ok)
	assert.InDelta(t, 0.4, preview.Distance, 1e-12)
	assert.Equal(t, []EventKind{Started, PreviewUpdated}, kinds(*events))
}

func TestControllerCancelDropsPendingPoint(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Enable()
	f.ctrl.Click(ScreenPos{X: 10, Y: 10})

	f.ctrl.KeyPressed(KeyCancel)

	_, ok := f.ctrl.Pending()
	assert.False(t, ok)
	assert.Equal(t, Measuring, f.ctrl.State())

	f.ctrl.Click(ScreenPos{X: 50, Y: 10})
	assert.Equal(t, 0, f.store.Len(), "next click starts a new measurement")
}

func TestControllerUndoAndClearKeys(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Enable()
	for i := 0; i < 3; i++ {
		f.ctrl.Click(ScreenPos{X: 10, Y: 10})
		f.ctrl.Click(ScreenPos{X: 90, Y: 90})
	}
	require.Equal(t, 3, f.store.Len())

	f.ctrl.Handle(Input{Kind: KeyPress, Key: KeyUndo})
	assert.Equal(t, 2, f.store.Len())

	f.ctrl.Click(ScreenPos{X: 10, Y: 10})
	f.ctrl.Handle(Input{Kind: KeyPress, Key: KeyUndo})
	assert.Equal(t, 2, f.store.Len(), "undo first drops the pending point")

	f.ctrl.Handle(Input{Kind: KeyPress, Key: KeyClear})
	assert.Equal(t, 0, f.store.Len())
}

func TestControllerDisable(t *testing.T) {
	f := newControllerFixture(t)
	events := collect(f.ctrl.Events())
	f.ctrl.Enable()
	f.ctrl.Click(ScreenPos{X: 10, Y: 10})

	f.ctrl.Disable()

	assert.Equal(t, Viewing, f.ctrl.State())
	_, ok := f.ctrl.Pending()
	assert.False(t, ok)
	assert.Equal(t, []EventKind{Started, Ended}, kinds(*events))

	f.ctrl.Disable()
	assert.Len(t, *events, 2)
}

func (f *controllerFixture) measure(t *testing.T) *Measurement {
	t.Helper()
	f.ctrl.Enable()
	f.ctrl.Click(ScreenPos{X: 10, Y: 10})
	f.ctrl.Click(ScreenPos{X: 50, Y: 10})
	m, ok := f.store.At(f.store.Len() - 1)
	require.True(t, ok)
	return m
}

func TestControllerEditModeIsExclusive(t *testing.T) {
	f := newControllerFixture(t)
	first := f.measure(t)
	second := f.measure(t)
	events := collect(f.ctrl.Events())

	require.True(t, f.ctrl.EnterEditMode(first.ID))
	assert.Equal(t, Editing, f.ctrl.State())
	assert.Same(t, first, f.ctrl.Editing())

	require.True(t, f.ctrl.EnterEditMode(second.ID))
	assert.Same(t, second, f.ctrl.Editing())

	require.Len(t, *events, 3)
	assert.Equal(t, []EventKind{EditModeEntered, EditModeExited, EditModeEntered}, kinds(*events))
	assert.Same(t, first, (*events)[1].Measurement)
	assert.Same(t, second, (*events)[2].Measurement)
}

func TestControllerEditUnknownIDIsNoop(t *testing.T) {
	f := newControllerFixture(t)
	f.measure(t)
	events := collect(f.ctrl.Events())

	assert.False(t, f.ctrl.EnterEditMode("missing"))
	assert.False(t, f.ctrl.EnterEditModeAt(7))

	assert.Equal(t, Measuring, f.ctrl.State())
	assert.Empty(t, *events)
}

func TestControllerExitEditReturnsToPreviousState(t *testing.T) {
	f := newControllerFixture(t)
	m := f.measure(t)

	f.ctrl.LabelActivated(m.ID, false)
	assert.Nil(t, f.ctrl.Editing(), "single activation does not edit")

	f.ctrl.Handle(Input{Kind: LabelActivate, MeasurementID: m.ID, Double: true})
	assert.Equal(t, Editing, f.ctrl.State())

	f.ctrl.KeyPressed(KeyCancel)
	assert.Equal(t, Measuring, f.ctrl.State())

	f.ctrl.Disable()
	require.True(t, f.ctrl.EnterEditMode(m.ID))
	f.ctrl.ExitEditMode()
	assert.Equal(t, Viewing, f.ctrl.State())
}

func TestControllerDragEndpoint(t *testing.T) {
	f := newControllerFixture(t)
	m := f.measure(t)
	require.True(t, f.ctrl.EnterEditMode(m.ID))

	// End sits at (0.5, 0.1) which projects to (50, 10)
	f.ctrl.Handle(Input{Kind: PointerDown, Pos: ScreenPos{X: 52, Y: 12}})
	which, ok := f.ctrl.Dragging()
	require.True(t, ok)
	assert.Equal(t, End, which)
	assert.Equal(t, []bool{false}, f.camera.calls)

	f.ctrl.Handle(Input{Kind: PointerMove, Pos: ScreenPos{X: 90, Y: 90}})
	assert.InDelta(t, 0.4, m.Distance, 1e-12, "nothing is committed while dragging")
	preview, ok := f.ctrl.Preview()
	require.True(t, ok)
	assert.InDelta(t, vec3(0.1, 0.1, 0).Distance(vec3(0.9, 0.9, 0)), preview.Distance, 1e-12)

	f.ctrl.Handle(Input{Kind: PointerUp, Pos: ScreenPos{X: 90, Y: 90}})

	_, ok = f.ctrl.Dragging()
	assert.False(t, ok)
	assert.Equal(t, []bool{false, true}, f.camera.calls)
	assert.Equal(t, vec3(0.9, 0.9, 0), m.End.World)
	assert.InDelta(t, vec3(0.1, 0.1, 0).Distance(vec3(0.9, 0.9, 0)), m.Distance, 1e-12)
	assert.Equal(t, Editing, f.ctrl.State())
}

func TestControllerDragMissesMarker(t *testing.T) {
	f := newControllerFixture(t)
	m := f.measure(t)
	require.True(t, f.ctrl.EnterEditMode(m.ID))

	f.ctrl.PointerDown(ScreenPos{X: 30, Y: 60})

	_, ok := f.ctrl.Dragging()
	assert.False(t, ok)
	assert.Empty(t, f.camera.calls)
}

func TestControllerCancelDragRestoresCamera(t *testing.T) {
	f := newControllerFixture(t)
	m := f.measure(t)
	require.True(t, f.ctrl.EnterEditMode(m.ID))
	require.True(t, f.ctrl.BeginDrag(Start))
	f.ctrl.PointerMove(ScreenPos{X: 90, Y: 90})

	f.ctrl.KeyPressed(KeyCancel)

	_, ok := f.ctrl.Dragging()
	assert.False(t, ok)
	assert.Equal(t, Editing, f.ctrl.State(), "first cancel only ends the drag")
	assert.Equal(t, []bool{false, true}, f.camera.calls)
	assert.Equal(t, vec3(0.1, 0.1, 0), m.Start.World)
}

func TestControllerEnterEditCancelsDrag(t *testing.T) {
	f := newControllerFixture(t)
	first := f.measure(t)
	second := f.measure(t)
	require.True(t, f.ctrl.EnterEditMode(first.ID))
	require.True(t, f.ctrl.BeginDrag(End))
	f.ctrl.PointerMove(ScreenPos{X: 90, Y: 90})
	events := collect(f.ctrl.Events())

	require.True(t, f.ctrl.EnterEditMode(second.ID))

	_, ok := f.ctrl.Dragging()
	assert.False(t, ok)
	assert.Equal(t, []bool{false, true}, f.camera.calls)
	assert.Equal(t, vec3(0.5, 0.1, 0), first.End.World, "drag is dropped, not committed")
	assert.InDelta(t, 0.4, first.Distance, 1e-12)

	require.Len(t, *events, 2)
	assert.Equal(t, []EventKind{EditModeExited, EditModeEntered}, kinds(*events))
	assert.Same(t, first, (*events)[0].Measurement)
	assert.Same(t, second, (*events)[1].Measurement)
}

func TestControllerDisposeCancelsDrag(t *testing.T) {
	f := newControllerFixture(t)
	m := f.measure(t)
	require.True(t, f.ctrl.EnterEditMode(m.ID))
	require.True(t, f.ctrl.BeginDrag(Start))
	f.ctrl.PointerMove(ScreenPos{X: 90, Y: 90})

	f.ctrl.Dispose()

	_, ok := f.ctrl.Dragging()
	assert.False(t, ok)
	assert.Nil(t, f.ctrl.Editing())
	assert.Equal(t, Viewing, f.ctrl.State())
	assert.Equal(t, []bool{false, true}, f.camera.calls)
	assert.Equal(t, vec3(0.1, 0.1, 0), m.Start.World)
}

func TestControllerLeavesEditWhenMeasurementRemoved(t *testing.T) {
	f := newControllerFixture(t)
	m := f.measure(t)
	require.True(t, f.ctrl.EnterEditMode(m.ID))
	require.True(t, f.ctrl.BeginDrag(End))

	f.store.Remove(m)

	assert.Nil(t, f.ctrl.Editing())
	assert.Equal(t, Measuring, f.ctrl.State())
	assert.Equal(t, []bool{false, true}, f.camera.calls)
}

func TestControllerDisposeIgnoresInput(t *testing.T) {
	f := newControllerFixture(t)
	f.ctrl.Enable()
	f.ctrl.Dispose()

	f.ctrl.Enable()
	f.ctrl.Click(ScreenPos{X: 10, Y: 10})
	f.ctrl.Click(ScreenPos{X: 50, Y: 10})

	assert.Equal(t, Viewing, f.ctrl.State())
	assert.Equal(t, 0, f.store.Len())
}

func TestControllerOptionsApplyToNewMeasurementsOnly(t *testing.T) {
	f := newControllerFixture(t)
	first := f.measure(t)

	f.ctrl.SetOptions(f.ctrl.Options().WithDynamic(true))
	second := f.measure(t)

	assert.False(t, first.Options.Dynamic)
	assert.True(t, second.Options.Dynamic)
}

func TestSessionFrameTracksAfterInput(t *testing.T) {
	obj := plate("plate")
	q := newStubQuery()
	q.on(ScreenPos{X: 0, Y: 0}, obj, vec3(0, 0, 0))
	q.on(ScreenPos{X: 1, Y: 0}, obj, vec3(1, 0, 0))

	s := NewSession(newTestStore(), q, WithOptions(DefaultOptions().WithDynamic(true).WithSnap(SnapDisabled, 0, false)))
	s.Controller.Enable()

	assert.Equal(t, 1, s.Frame(
		Input{Kind: Click, Pos: ScreenPos{X: 0, Y: 0}},
		Input{Kind: Click, Pos: ScreenPos{X: 1, Y: 0}},
	))

	obj.Translate(vec3(0, 2, 0))
	s.Frame()

	m, _ := s.Store.At(0)
	assert.InDelta(t, 1, m.Distance, 1e-9, "both ends on the same object keep their distance")
	assert.InDelta(t, 2, m.Start.World.Y, 1e-9)
}

func TestSessionFrameGrabsMarkerBeforeReturning(t *testing.T) {
	f := newControllerFixture(t)
	m := f.measure(t)
	require.True(t, f.ctrl.EnterEditMode(m.ID))
	s := &Session{Store: f.store, Tracker: NewTracker(f.store), Controller: f.ctrl}

	s.Frame(Input{Kind: PointerDown, Pos: ScreenPos{X: 10, Y: 10}})

	which, ok := s.Controller.Dragging()
	require.True(t, ok, "drag is visible to the caller as soon as the frame returns")
	assert.Equal(t, Start, which)
	assert.Equal(t, []bool{false}, f.camera.calls)
}
