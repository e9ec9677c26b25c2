package measurement

// Session wires a store, tracker and controller into one frame loop
type Session struct {
	Store      *Store
	Tracker    *Tracker
	Controller *Controller
}

// NewSession creates a session around an existing store
func NewSession(store *Store, query Intersector, opts ...ControllerOption) *Session {
	return &Session{
		Store:      store,
		Tracker:    NewTracker(store),
		Controller: NewController(store, query, opts...),
	}
}

// Frame handles this frame's input before the tracking pass, so edits
// committed now are part of the same frame's distances
func (s *Session) Frame(inputs ...Input) int {
	for _, in := range inputs {
		s.Controller.Handle(in)
	}
	return s.Tracker.Update()
}
