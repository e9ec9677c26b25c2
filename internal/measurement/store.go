package measurement

import (
	"context"

	"github.com/rs/zerolog"
)

// StoreOption configures a Store
type StoreOption func(*Store)

// WithIDSource replaces the default UUIDv7 id source
func WithIDSource(ids IDSource) StoreOption {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithRenderer attaches the collaborator that owns lines and labels
func WithRenderer(r Renderer) StoreOption {
	return func(s *Store) {
		s.renderer = r
	}
}

// WithStoreLogger sets the logger
func WithStoreLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// Store owns the measurements in insertion order.
// It is not safe for concurrent use; all mutation happens on the frame loop.
type Store struct {
	items    []*Measurement
	ids      IDSource
	issued   map[string]struct{}
	renderer Renderer
	events   *Notifier
	log      zerolog.Logger
	metrics  counters
}

// NewStore creates an empty store
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		ids:    UUIDSource{},
		issued: make(map[string]struct{}),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = newNotifier(s.log)
	s.metrics = newCounters()
	return s
}

// Events returns the store's notification channel
func (s *Store) Events() *Notifier {
	return s.events
}

// Add creates a measurement between two points and appends it
func (s *Store) Add(start, end Point, options Options) *Measurement {
	m := &Measurement{
		Start:   start,
		End:     end,
		Options: options.captured(),
	}
	s.install(m)
	s.events.emit(Event{Kind: MeasurementCreated, Measurement: m})
	return m
}

// AddBatch installs measurements as one unit: every record is in the store
// before the first measurementCreated notification fires. Existing ids on the
// records are replaced with fresh ones.
func (s *Store) AddBatch(ms []*Measurement) {
	for _, m := range ms {
		m.Options = m.Options.captured()
		s.install(m)
	}
	for _, m := range ms {
		s.events.emit(Event{Kind: MeasurementCreated, Measurement: m})
	}
}

func (s *Store) install(m *Measurement) {
	m.ID = s.nextID()
	m.Recompute()
	if s.renderer != nil {
		m.Line, m.Label = s.renderer.Create(m)
	}
	s.items = append(s.items, m)
	s.metrics.created.Add(context.Background(), 1)
	s.log.Debug().Str("id", m.ID).Float64("distance", m.Distance).Msg("measurement added")
}

// nextID never hands out an id twice, even if the source repeats itself
func (s *Store) nextID() string {
	for {
		id := s.ids.NextID()
		if _, dup := s.issued[id]; !dup {
			s.issued[id] = struct{}{}
			return id
		}
	}
}

// Remove deletes a measurement. Unknown measurements are ignored.
func (s *Store) Remove(m *Measurement) bool {
	idx := s.indexOf(m)
	if idx < 0 {
		return false
	}
	s.removeAt(idx)
	return true
}

// RemoveByID deletes the measurement with the given id
func (s *Store) RemoveByID(id string) bool {
	idx := s.Index(id)
	if idx < 0 {
		return false
	}
	s.removeAt(idx)
	return true
}

// RemoveLast deletes the most recently added measurement, returning it
func (s *Store) RemoveLast() *Measurement {
	if len(s.items) == 0 {
		return nil
	}
	m := s.items[len(s.items)-1]
	s.removeAt(len(s.items) - 1)
	return m
}

func (s *Store) removeAt(idx int) {
	m := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.dispose(m)
	s.metrics.removed.Add(context.Background(), 1)
	s.log.Debug().Str("id", m.ID).Msg("measurement removed")
	s.events.emit(Event{Kind: MeasurementRemoved, Measurement: m})
}

// Clear deletes every measurement and returns how many there were
func (s *Store) Clear() int {
	removed := s.items
	s.items = nil
	for _, m := range removed {
		s.dispose(m)
	}
	s.metrics.removed.Add(context.Background(), int64(len(removed)))
	s.log.Debug().Int("count", len(removed)).Msg("measurements cleared")
	s.events.emit(Event{Kind: MeasurementsCleared, Count: len(removed)})
	return len(removed)
}

func (s *Store) dispose(m *Measurement) {
	if s.renderer != nil {
		s.renderer.Dispose(m)
	}
	m.Line, m.Label = nil, nil
}

// List returns a snapshot of the measurements in insertion order
func (s *Store) List() []*Measurement {
	return append([]*Measurement(nil), s.items...)
}

// Len returns the number of measurements
func (s *Store) Len() int {
	return len(s.items)
}

// Get looks a measurement up by id
func (s *Store) Get(id string) (*Measurement, bool) {
	idx := s.Index(id)
	if idx < 0 {
		return nil, false
	}
	return s.items[idx], true
}

// At returns the measurement at an insertion index
func (s *Store) At(index int) (*Measurement, bool) {
	if index < 0 || index >= len(s.items) {
		return nil, false
	}
	return s.items[index], true
}

// Index returns the insertion index of an id, or -1
func (s *Store) Index(id string) int {
	for i, m := range s.items {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether m is currently in the store
func (s *Store) Contains(m *Measurement) bool {
	return s.indexOf(m) >= 0
}

func (s *Store) indexOf(m *Measurement) int {
	if m == nil {
		return -1
	}
	for i, existing := range s.items {
		if existing == m {
			return i
		}
	}
	return -1
}

// UpdateEndpoint replaces one endpoint and recomputes the distance
func (s *Store) UpdateEndpoint(m *Measurement, which Endpoint, p Point) bool {
	if !s.Contains(m) {
		return false
	}
	m.setPoint(which, p)
	s.changed(m)
	return true
}

// UpdateOptions replaces the options of a measurement with a new value
func (s *Store) UpdateOptions(m *Measurement, options Options) bool {
	if !s.Contains(m) {
		return false
	}
	m.Options = options.captured()
	s.changed(m)
	return true
}

// SetDynamic switches live anchor tracking. Turning it off keeps the
// endpoints where the last tracker pass left them.
func (s *Store) SetDynamic(m *Measurement, dynamic bool) bool {
	if !s.Contains(m) {
		return false
	}
	if m.Options.Dynamic == dynamic {
		return true
	}
	m.Options = m.Options.WithDynamic(dynamic)
	s.changed(m)
	return true
}

func (s *Store) changed(m *Measurement) {
	m.Recompute()
	s.reposition(m)
	s.events.emit(Event{Kind: MeasurementUpdated, Measurement: m})
}

func (s *Store) reposition(m *Measurement) {
	if s.renderer != nil {
		s.renderer.Reposition(m)
	}
}
