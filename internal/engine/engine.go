package engine

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time for timestamping actions.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces identifiers that are unique within a running state.
type IDGenerator interface {
	NewID() string
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Engine binds the transitions to a clock and an identifier source.
type Engine struct {
	clock Clock
	ids   IDGenerator
}

// New creates an Engine. Nil arguments fall back to the wall clock and UUIDs.
func New(clock Clock, ids IDGenerator) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Engine{clock: clock, ids: ids}
}

// Now returns the engine's notion of the current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}
