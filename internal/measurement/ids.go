package measurement

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource hands out measurement ids. Uniqueness is the only contract.
type IDSource interface {
	NextID() string
}

// UUIDSource generates time-ordered UUIDv7 ids
type UUIDSource struct{}

// NextID returns a new UUIDv7, falling back to a random UUID
func (UUIDSource) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequenceIDs yields prefix-1, prefix-2, ... and is meant for tests
type SequenceIDs struct {
	Prefix string
	n      atomic.Uint64
}

// NextID returns the next id in the sequence
func (s *SequenceIDs) NextID() string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "m"
	}
	return fmt.Sprintf("%s-%d", prefix, s.n.Add(1))
}
