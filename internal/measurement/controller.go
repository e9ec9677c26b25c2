package measurement

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/rs/zerolog"
)

// State is the interaction mode of a Controller
type State int

const (
	Viewing State = iota
	Measuring
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Measuring:
		return "measuring"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Key is an abstract keyboard command
type Key int

const (
	KeyCancel Key = iota // abort pending measurement, drag or edit session
	KeyUndo              // remove the most recent measurement
	KeyClear             // remove all measurements
)

// InputKind identifies an input event
type InputKind int

const (
	PointerDown InputKind = iota
	PointerMove
	PointerUp
	Click
	KeyPress
	LabelActivate
)

// Input is one event from the pointer/keyboard source
type Input struct {
	Kind          InputKind
	Pos           ScreenPos
	Key           Key
	MeasurementID string // LabelActivate
	Double        bool   // LabelActivate: double activation
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithProjector enables grabbing endpoint markers by pointer position
func WithProjector(p Projector) ControllerOption {
	return func(c *Controller) {
		c.projector = p
	}
}

// WithCameraControl lets the controller suspend camera input while dragging
func WithCameraControl(cc CameraControl) ControllerOption {
	return func(c *Controller) {
		c.camera = cc
	}
}

// WithControllerLogger sets the logger
func WithControllerLogger(log zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.log = log
	}
}

// WithPickRadius sets how close (pixels) a pointer must be to grab a marker
func WithPickRadius(px float64) ControllerOption {
	return func(c *Controller) {
		c.pickRadius = px
	}
}

// WithOptions sets the options used for new measurements
func WithOptions(o Options) ControllerOption {
	return func(c *Controller) {
		c.options = o.captured()
	}
}

type drag struct {
	which   Endpoint
	preview *Point
}

// Controller turns pointer and keyboard input into measurements.
//
// Viewing is the idle state. Enable switches to Measuring, where the first
// click picks a start point and the second click commits a measurement.
// Editing works on exactly one measurement at a time; its endpoints can be
// dragged and are committed on release.
type Controller struct {
	store      *Store
	query      Intersector
	projector  Projector
	camera     CameraControl
	events     *Notifier
	log        zerolog.Logger
	pickRadius float64

	options     Options
	state       State
	interactive bool
	resume      bool // return to Measuring when editing ends
	disposed    bool

	pending *Point
	preview *Point

	editing *Measurement
	drag    *drag
}

// NewController creates a controller in the Viewing state
func NewController(store *Store, query Intersector, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:      store,
		query:      query,
		log:        zerolog.Nop(),
		pickRadius: 10,
		options:    DefaultOptions(),
		state:      Viewing,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.events = newNotifier(c.log)

	// Leave edit mode when the edited measurement disappears
	store.Events().On(MeasurementRemoved, func(ev Event) {
		if ev.Measurement == c.editing {
			c.ExitEditMode()
		}
	})
	store.Events().On(MeasurementsCleared, func(Event) {
		c.ExitEditMode()
	})
	return c
}

// Events returns the controller's notification channel
func (c *Controller) Events() *Notifier {
	return c.events
}

// State returns the current interaction state
func (c *Controller) State() State {
	return c.state
}

// Interactive reports whether measuring is enabled
func (c *Controller) Interactive() bool {
	return c.interactive
}

// Options returns the options used for new measurements
func (c *Controller) Options() Options {
	return c.options.captured()
}

// SetOptions replaces the options for measurements created from now on.
// Existing measurements keep the value they were created with.
func (c *Controller) SetOptions(o Options) {
	c.options = o.captured()
}

// Editing returns the measurement being edited, or nil
func (c *Controller) Editing() *Measurement {
	return c.editing
}

// Pending returns the start point of a measurement awaiting its second click
func (c *Controller) Pending() (Point, bool) {
	if c.pending == nil {
		return Point{}, false
	}
	return *c.pending, true
}

// Dragging reports which endpoint of the edited measurement is being dragged
func (c *Controller) Dragging() (Endpoint, bool) {
	if c.drag == nil {
		return Start, false
	}
	return c.drag.which, true
}

// Preview returns the uncommitted line while measuring or dragging
func (c *Controller) Preview() (Preview, bool) {
	if c.drag != nil && c.drag.preview != nil {
		anchor := c.editing.Point(c.drag.which.Other()).World
		return newPreview(anchor, c.drag.preview.World), true
	}
	if c.pending != nil && c.preview != nil {
		return newPreview(c.pending.World, c.preview.World), true
	}
	return Preview{}, false
}

func newPreview(start, current geometry.Vector3) Preview {
	return Preview{Start: start, Current: current, Distance: start.Distance(current)}
}

// Enable starts interactive measuring
func (c *Controller) Enable() {
	if c.disposed || c.interactive {
		return
	}
	c.interactive = true
	switch c.state {
	case Viewing:
		c.setState(Measuring)
	case Editing:
		c.resume = true
	}
	c.events.emit(Event{Kind: Started})
}

// Disable stops interactive measuring. A pending measurement is dropped and
// an active edit session ends.
func (c *Controller) Disable() {
	if !c.interactive {
		return
	}
	c.interactive = false
	c.cancelPending()
	c.ExitEditMode()
	c.setState(Viewing)
	c.events.emit(Event{Kind: Ended})
}

// Dispose ends all activity; the controller ignores input afterwards
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.ExitEditMode()
	c.Disable()
	c.disposed = true
}

// Handle dispatches a single input event
func (c *Controller) Handle(in Input) {
	switch in.Kind {
	case PointerDown:
		c.PointerDown(in.Pos)
	case PointerMove:
		c.PointerMove(in.Pos)
	case PointerUp:
		c.PointerUp(in.Pos)
	case Click:
		c.Click(in.Pos)
	case KeyPress:
		c.KeyPressed(in.Key)
	case LabelActivate:
		c.LabelActivated(in.MeasurementID, in.Double)
	}
}

// pick casts against the target set of options and applies its snap policy.
// The resulting point is anchored to whatever object it landed on.
func (c *Controller) pick(pos ScreenPos, options Options) (Point, bool) {
	if c.query == nil {
		return Point{}, false
	}
	hit, ok := c.query.Intersect(pos, options.targets)
	if !ok {
		return Point{}, false
	}
	res := Resolve(hit, options.SnapMode, options.SnapDistance, options.SnapEnabled)
	if res.Object == nil {
		return NewPoint(res.Point), true
	}
	return NewAnchoredPoint(res.Object, res.Point), true
}

// Click records the start or end point while measuring
func (c *Controller) Click(pos ScreenPos) {
	if c.disposed || c.state != Measuring {
		return
	}
	p, ok := c.pick(pos, c.options)
	if !ok {
		return
	}

	if c.pending == nil {
		c.pending = &p
		c.preview = nil
		c.log.Debug().Interface("point", p.World).Msg("start point picked")
		return
	}

	start := *c.pending
	c.cancelPending()
	c.store.Add(start, p, c.options)
}

// PointerDown grabs an endpoint marker of the edited measurement
func (c *Controller) PointerDown(pos ScreenPos) {
	if c.disposed || c.state != Editing || c.drag != nil || c.projector == nil {
		return
	}

	best := -1
	bestDist := math.Inf(1)
	for _, which := range []Endpoint{Start, End} {
		sp, visible := c.projector.Project(c.editing.Point(which).World)
		if !visible {
			continue
		}
		d := math.Hypot(sp.X-pos.X, sp.Y-pos.Y)
		if d <= c.pickRadius && d < bestDist {
			best = int(which)
			bestDist = d
		}
	}
	if best >= 0 {
		c.BeginDrag(Endpoint(best))
	}
}

// PointerMove updates the measuring or drag preview
func (c *Controller) PointerMove(pos ScreenPos) {
	if c.disposed {
		return
	}

	switch {
	case c.drag != nil:
		p, ok := c.pick(pos, c.editing.Options)
		if !ok {
			return
		}
		c.drag.preview = &p
	case c.state == Measuring && c.pending != nil:
		p, ok := c.pick(pos, c.options)
		if !ok {
			return
		}
		c.preview = &p
	default:
		return
	}

	if preview, ok := c.Preview(); ok {
		c.events.emit(Event{Kind: PreviewUpdated, Preview: preview})
	}
}

// PointerUp commits a drag
func (c *Controller) PointerUp(ScreenPos) {
	if c.drag == nil {
		return
	}
	d := c.drag
	c.endDrag()
	if d.preview != nil {
		c.store.UpdateEndpoint(c.editing, d.which, *d.preview)
	}
}

// BeginDrag starts dragging an endpoint of the edited measurement
func (c *Controller) BeginDrag(which Endpoint) bool {
	if c.disposed || c.editing == nil {
		return false
	}
	if c.drag == nil && c.camera != nil {
		c.camera.SetEnabled(false)
	}
	c.drag = &drag{which: which}
	c.log.Debug().Str("id", c.editing.ID).Stringer("endpoint", which).Msg("drag started")
	return true
}

// CancelDrag abandons a drag without touching the measurement
func (c *Controller) CancelDrag() {
	c.endDrag()
}

func (c *Controller) endDrag() {
	if c.drag == nil {
		return
	}
	c.drag = nil
	if c.camera != nil {
		c.camera.SetEnabled(true)
	}
}

// KeyPressed handles keyboard commands
func (c *Controller) KeyPressed(k Key) {
	if c.disposed {
		return
	}

	switch k {
	case KeyCancel:
		switch {
		case c.drag != nil:
			c.CancelDrag()
		case c.editing != nil:
			c.ExitEditMode()
		case c.pending != nil:
			c.cancelPending()
			c.log.Debug().Msg("pending measurement cancelled")
		}
	case KeyUndo:
		if c.pending != nil {
			c.cancelPending()
			return
		}
		if c.drag == nil {
			c.UndoLast()
		}
	case KeyClear:
		if c.pending == nil && c.editing == nil {
			c.ClearAll()
		}
	}
}

// LabelActivated handles activation of a measurement label.
// A double activation enters edit mode for that measurement.
func (c *Controller) LabelActivated(id string, double bool) {
	if double {
		c.EnterEditMode(id)
	}
}

// UndoLast removes the most recently added measurement
func (c *Controller) UndoLast() *Measurement {
	return c.store.RemoveLast()
}

// ClearAll removes every measurement
func (c *Controller) ClearAll() int {
	return c.store.Clear()
}

// EnterEditMode starts editing the measurement with the given id.
// Unknown ids are ignored. Any other edit session ends first.
func (c *Controller) EnterEditMode(id string) bool {
	m, ok := c.store.Get(id)
	if !ok {
		c.log.Debug().Str("id", id).Msg("edit ignored: unknown measurement")
		return false
	}
	return c.enterEdit(m)
}

// EnterEditModeAt starts editing the measurement at an insertion index
func (c *Controller) EnterEditModeAt(index int) bool {
	m, ok := c.store.At(index)
	if !ok {
		c.log.Debug().Int("index", index).Msg("edit ignored: index out of range")
		return false
	}
	return c.enterEdit(m)
}

func (c *Controller) enterEdit(m *Measurement) bool {
	if c.disposed {
		return false
	}
	if c.editing == m {
		return true
	}

	if c.editing != nil {
		c.exitEdit()
	} else {
		c.resume = c.state == Measuring
	}
	c.cancelPending()

	c.editing = m
	c.setState(Editing)
	c.events.emit(Event{Kind: EditModeEntered, Measurement: m})
	return true
}

// ExitEditMode ends the edit session, returning to Measuring if measuring
// was active before and still is, otherwise to Viewing
func (c *Controller) ExitEditMode() {
	if c.editing == nil {
		return
	}
	c.exitEdit()
	if c.resume && c.interactive {
		c.setState(Measuring)
	} else {
		c.setState(Viewing)
	}
	c.resume = false
}

func (c *Controller) exitEdit() {
	c.endDrag()
	m := c.editing
	c.editing = nil
	c.events.emit(Event{Kind: EditModeExited, Measurement: m})
}

func (c *Controller) cancelPending() {
	c.pending = nil
	c.preview = nil
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.log.Debug().Stringer("from", c.state).Stringer("to", s).Msg("state changed")
	c.state = s
}
