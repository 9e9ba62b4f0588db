package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MinerSim/internal/platform/jsonutil"
	"MinerSim/internal/platform/logger"
)

// SQLiteRecorder persists simulation history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logger.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logger.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the simulator writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS actions (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp            INTEGER NOT NULL,
			action               TEXT NOT NULL,
			user_id              TEXT,
			miner_id             TEXT,
			applied              INTEGER NOT NULL,
			star_pool_before     REAL,
			star_pool_after      REAL,
			starry_pool_before   REAL,
			starry_pool_after    REAL,
			profit_before        REAL,
			profit_after         REAL,
			miner_total_after    INTEGER,
			detail               TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_ts ON actions(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_user ON actions(user_id)`,

		`CREATE TABLE IF NOT EXISTS pool_snapshots (
			id                       INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp                INTEGER NOT NULL,
			user_count               INTEGER,
			miner_total              INTEGER,
			star_pool                REAL,
			starry_pool              REAL,
			starry_total             REAL,
			mining_power_accumulated REAL,
			platform_profit          REAL,
			reward_rate              REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON pool_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAction(evt *ActionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	detail := "{}"
	if len(evt.Detail) > 0 {
		b, err := jsonutil.Marshal(evt.Detail)
		if err != nil {
			return fmt.Errorf("marshal detail: %w", err)
		}
		detail = string(b)
	}

	_, err := r.db.Exec(`INSERT INTO actions
		(timestamp, action, user_id, miner_id, applied,
		 star_pool_before, star_pool_after, starry_pool_before, starry_pool_after,
		 profit_before, profit_after, miner_total_after, detail)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		unix(evt.Time), evt.Action, evt.UserID, evt.MinerID, evt.Applied,
		evt.Before.StarPool, evt.After.StarPool,
		evt.Before.StarryPool, evt.After.StarryPool,
		evt.Before.PlatformProfit, evt.After.PlatformProfit,
		evt.After.MinerTotal, detail,
	)
	return err
}

func (r *SQLiteRecorder) RecordSnapshot(snap *PoolSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := snap.Summary
	_, err := r.db.Exec(`INSERT INTO pool_snapshots
		(timestamp, user_count, miner_total, star_pool, starry_pool, starry_total,
		 mining_power_accumulated, platform_profit, reward_rate)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		unix(snap.Time), s.UserCount, s.MinerTotal, s.StarPool, s.StarryPool, s.StarryTotal,
		s.MiningPowerAccumulated, s.PlatformProfit, s.RewardRate,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Infof("closing sqlite recorder")
	return r.db.Close()
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().Unix()
	}
	return t.Unix()
}
