package sim

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"MinerSim/internal/engine"
	"MinerSim/internal/model"
	"MinerSim/internal/platform/logger"
	"MinerSim/internal/recorder"
	"MinerSim/internal/stats"
)

var (
	ErrEmptyName       = errors.New("user name is empty")
	ErrUnknownUser     = errors.New("unknown user")
	ErrUnknownMiner    = errors.New("unknown miner")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrRejected        = errors.New("action rejected")
)

// Action names reported to the recorder and the logs.
const (
	ActionAddUser   = "ADD_USER"
	ActionBuyStar   = "BUY_STAR"
	ActionBuyStarry = "BUY_STARRY"
	ActionRenew     = "RENEW"
	ActionRemove    = "REMOVE"
	ActionVote      = "VOTE"
	ActionTick      = "TICK"
)

// Snapshot is one entry of the state history.
type Snapshot struct {
	Time  time.Time   `json:"time"`
	State model.State `json:"state"`
}

// Result describes the outcome of one call.
type Result struct {
	Applied bool
	ID      string // id created by the call, if any
	State   model.State
}

// Simulator holds the current state and serialises calls into the engine.
type Simulator struct {
	mu      sync.Mutex
	params  model.Params
	engine  *engine.Engine
	state   model.State
	history []Snapshot
	limit   int
	rec     recorder.Recorder
	log     *logger.Logger
}

// New creates a Simulator starting from an empty economy at the engine's
// current time. historyLimit <= 0 disables history.
func New(params model.Params, eng *engine.Engine, rec recorder.Recorder, log *logger.Logger, historyLimit int) *Simulator {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	s := &Simulator{
		params: params,
		engine: eng,
		state:  model.NewState(eng.Now()),
		limit:  historyLimit,
		rec:    rec,
		log:    log.With("component", "sim"),
	}
	s.remember(s.state.LastUpdateTime)
	return s
}

// Params returns the economy the simulator runs with.
func (s *Simulator) Params() model.Params {
	return s.params
}

// State returns the current snapshot.
func (s *Simulator) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns the retained snapshots, oldest first.
func (s *Simulator) History() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Snapshot(nil), s.history...)
}

// Summary returns the pool view of the current state.
func (s *Simulator) Summary() model.Summary {
	return stats.Summarize(s.params, s.State())
}

// UserStats returns the statistics of userID at the engine's current time.
func (s *Simulator) UserStats(userID string) (model.UserStats, error) {
	st := s.State()
	if _, ok := st.Users[userID]; !ok {
		return stats.UserStats(s.params, st, userID, s.engine.Now()), ErrUnknownUser
	}
	return stats.UserStats(s.params, st, userID, s.engine.Now()), nil
}

// FindUser looks a user up by id, then by case-insensitive name.
func (s *Simulator) FindUser(ref string) (model.User, bool) {
	st := s.State()
	if u, ok := st.Users[ref]; ok {
		return u, true
	}
	for _, u := range st.Users {
		if strings.EqualFold(u.Name, ref) {
			return u, true
		}
	}
	return model.User{}, false
}

// AddUser registers a new user and returns its id.
func (s *Simulator) AddUser(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	var id string
	s.apply(ActionAddUser, "", "", map[string]any{"name": name}, func(st model.State) model.State {
		var next model.State
		next, id = s.engine.AddUser(st, name)
		return next
	})
	return id, nil
}

// BuyMiner buys a miner for userID paid in currency.
func (s *Simulator) BuyMiner(userID string, currency model.Currency) (Result, error) {
	var (
		action string
		fn     func(model.Params, model.State, string) model.State
	)
	switch currency {
	case model.CurrencyStar:
		action, fn = ActionBuyStar, s.engine.BuyWithStar
	case model.CurrencyStarry:
		action, fn = ActionBuyStarry, s.engine.BuyWithStarry
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}

	res := s.apply(action, userID, "", nil, func(st model.State) model.State {
		return fn(s.params, st, userID)
	})
	if !res.Applied {
		return res, ErrUnknownUser
	}
	miners := res.State.Users[userID].Miners
	res.ID = miners[len(miners)-1].ID
	return res, nil
}

// Renew renews minerID of userID.
func (s *Simulator) Renew(userID, minerID string) (Result, error) {
	res := s.apply(ActionRenew, userID, minerID, nil, func(st model.State) model.State {
		return s.engine.Renew(s.params, st, userID, minerID)
	})
	return res, s.explain(res, userID, minerID)
}

// Remove deletes minerID from userID.
func (s *Simulator) Remove(userID, minerID string) (Result, error) {
	res := s.apply(ActionRemove, userID, minerID, nil, func(st model.State) model.State {
		return s.engine.Remove(s.params, st, userID, minerID)
	})
	return res, s.explain(res, userID, minerID)
}

// Vote casts a vote for userID.
func (s *Simulator) Vote(userID string, success bool) (Result, error) {
	res := s.apply(ActionVote, userID, "", map[string]any{"success": success}, func(st model.State) model.State {
		return s.engine.Vote(s.params, st, userID, success)
	})
	return res, s.explain(res, userID, "")
}

// Tick advances decay and reward release to the engine's current time.
func (s *Simulator) Tick() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := s.engine.Tick(s.params, prev)
	applied := !next.LastUpdateTime.Equal(prev.LastUpdateTime)
	s.state = next
	if !applied {
		return Result{State: next}
	}

	s.remember(next.LastUpdateTime)
	summary := stats.Summarize(s.params, next)
	if err := s.rec.RecordSnapshot(&recorder.PoolSnapshot{Time: next.LastUpdateTime, Summary: summary}); err != nil {
		s.log.Errorf("record snapshot: %v", err)
	}
	s.log.Debugf("tick: mining power %.2f, starry pool %.2f", summary.MiningPowerAccumulated, summary.StarryPool)
	return Result{Applied: true, State: next}
}

// apply runs fn against the current state under the lock, keeps the result,
// and reports it to the history, the recorder and the log.
func (s *Simulator) apply(action, userID, minerID string, detail map[string]any, fn func(model.State) model.State) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := fn(prev)
	applied := !reflect.DeepEqual(prev, next)
	s.state = next

	now := s.engine.Now()
	if applied {
		s.remember(now)
	}
	if err := s.rec.RecordAction(&recorder.ActionEvent{
		Time:    now,
		Action:  action,
		UserID:  userID,
		MinerID: minerID,
		Applied: applied,
		Before:  stats.Summarize(s.params, prev),
		After:   stats.Summarize(s.params, next),
		Detail:  detail,
	}); err != nil {
		s.log.Errorf("record action %s: %v", action, err)
	}
	s.log.Event(action, userID, applied, fmt.Sprintf("miners=%d starry_pool=%.2f", next.MinerTotal, next.StarryPool))

	return Result{Applied: applied, State: next}
}

// explain maps an unapplied result to the reason the engine ignored it.
func (s *Simulator) explain(res Result, userID, minerID string) error {
	if res.Applied {
		return nil
	}
	u, ok := res.State.Users[userID]
	if !ok {
		return ErrUnknownUser
	}
	if minerID != "" && u.MinerIndex(minerID) < 0 {
		return ErrUnknownMiner
	}
	return ErrRejected
}

// remember appends the current state to the history. Caller holds mu.
func (s *Simulator) remember(at time.Time) {
	if s.limit <= 0 {
		return
	}
	s.history = append(s.history, Snapshot{Time: at, State: s.state})
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
}
