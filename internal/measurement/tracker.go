package measurement

// Tracker re-derives anchored endpoints of dynamic measurements once per frame.
// Anchors on non-dynamic measurements are kept but never followed.
type Tracker struct {
	store *Store
}

// NewTracker creates a tracker over a store
func NewTracker(store *Store) *Tracker {
	return &Tracker{store: store}
}

// Update runs one tracking pass and returns how many measurements it touched.
// It moves points in place and never adds or removes records.
func (t *Tracker) Update() int {
	updated := 0
	for _, m := range t.store.items {
		if !m.Options.Dynamic {
			continue
		}
		if !m.Start.Anchored() && !m.End.Anchored() {
			continue
		}
		m.Start = m.Start.Tracked()
		m.End = m.End.Tracked()
		m.Recompute()
		t.store.reposition(m)
		updated++
	}
	return updated
}
