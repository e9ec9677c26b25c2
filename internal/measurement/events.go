package measurement

import (
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/rs/zerolog"
)

// EventKind identifies a notification
type EventKind int

const (
	MeasurementCreated EventKind = iota
	MeasurementRemoved
	MeasurementsCleared
	MeasurementUpdated
	Started
	Ended
	PreviewUpdated
	EditModeEntered
	EditModeExited
)

var eventNames = [...]string{
	MeasurementCreated:  "measurementCreated",
	MeasurementRemoved:  "measurementRemoved",
	MeasurementsCleared: "measurementsCleared",
	MeasurementUpdated:  "measurementUpdated",
	Started:             "started",
	Ended:               "ended",
	PreviewUpdated:      "previewUpdated",
	EditModeEntered:     "editModeEntered",
	EditModeExited:      "editModeExited",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Preview describes the uncommitted line while measuring or dragging
type Preview struct {
	Start    geometry.Vector3
	Current  geometry.Vector3
	Distance float64
}

// Event is a notification emitted by the store or the controller.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind
	Measurement *Measurement
	Count       int
	Preview     Preview
}

// Listener receives events synchronously
type Listener func(Event)

// Notifier is a typed callback registry. Listeners run in registration
// order; a panicking listener is logged and does not reach the emitter.
type Notifier struct {
	listeners map[EventKind][]Listener
	any       []Listener
	log       zerolog.Logger
}

func newNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{
		listeners: make(map[EventKind][]Listener),
		log:       log,
	}
}

// On registers a listener for one kind of event
func (n *Notifier) On(kind EventKind, l Listener) {
	n.listeners[kind] = append(n.listeners[kind], l)
}

// OnAny registers a listener for every event
func (n *Notifier) OnAny(l Listener) {
	n.any = append(n.any, l)
}

func (n *Notifier) emit(ev Event) {
	for _, l := range n.listeners[ev.Kind] {
		n.call(l, ev)
	}
	for _, l := range n.any {
		n.call(l, ev)
	}
}

func (n *Notifier) call(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Interface("panic", r).Stringer("event", ev.Kind).Msg("listener panicked")
		}
	}()
	l(ev)
}
