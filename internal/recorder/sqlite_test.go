package recorder

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MinerSim/internal/model"
	"MinerSim/internal/platform/jsonutil"
	"MinerSim/internal/platform/logger"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "sim.db")
	r, err := NewSQLiteRecorder(path, logger.NewWithWriter(io.Discard, "error"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RecordAction(t *testing.T) {
	r := openTestRecorder(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	err := r.RecordAction(&ActionEvent{
		Time:    at,
		Action:  "BUY_STAR",
		UserID:  "alice",
		MinerID: "m1",
		Applied: true,
		After:   model.Summary{StarPool: 350, StarryPool: 3500, PlatformProfit: 150, MinerTotal: 1},
		Detail:  map[string]any{"price": 500},
	})
	require.NoError(t, err)

	var (
		ts      int64
		action  string
		applied bool
		pool    float64
		total   int
		detail  string
	)
	row := r.db.QueryRow(`SELECT timestamp, action, applied, starry_pool_after, miner_total_after, detail FROM actions`)
	require.NoError(t, row.Scan(&ts, &action, &applied, &pool, &total, &detail))

	assert.Equal(t, at.Unix(), ts)
	assert.Equal(t, "BUY_STAR", action)
	assert.True(t, applied)
	assert.Equal(t, 3500.0, pool)
	assert.Equal(t, 1, total)

	var d map[string]float64
	require.NoError(t, jsonutil.Unmarshal([]byte(detail), &d))
	assert.Equal(t, 500.0, d["price"])
}

func TestSQLiteRecorder_RecordSnapshot(t *testing.T) {
	r := openTestRecorder(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.RecordSnapshot(&PoolSnapshot{
			Time:    time.Unix(int64(1000+i), 0),
			Summary: model.Summary{MiningPowerAccumulated: float64(1000 - i)},
		}))
	}

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM pool_snapshots`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordAction(&ActionEvent{}))
	assert.NoError(t, r.RecordSnapshot(&PoolSnapshot{}))
	assert.NoError(t, r.Close())
}
