package recorder

import (
	"time"

	"MinerSim/internal/model"
)

// ActionEvent records one driver call into the engine.
type ActionEvent struct {
	Time    time.Time
	Action  string // "ADD_USER", "BUY_STAR", "BUY_STARRY", "RENEW", "REMOVE", "VOTE"
	UserID  string
	MinerID string
	Applied bool // false when the engine returned the state unchanged
	Before  model.Summary
	After   model.Summary
	Detail  map[string]any
}

// PoolSnapshot records the pools after a decay tick.
type PoolSnapshot struct {
	Time    time.Time
	Summary model.Summary
}

// Recorder persists simulation history for analysis. It is write-only:
// nothing is read back to rebuild state.
type Recorder interface {
	RecordAction(evt *ActionEvent) error
	RecordSnapshot(snap *PoolSnapshot) error
	Close() error
}
