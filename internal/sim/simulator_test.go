package sim

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MinerSim/internal/engine"
	"MinerSim/internal/model"
	"MinerSim/internal/platform/logger"
	"MinerSim/internal/recorder"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type memRecorder struct {
	actions   []recorder.ActionEvent
	snapshots []recorder.PoolSnapshot
}

func (m *memRecorder) RecordAction(evt *recorder.ActionEvent) error {
	m.actions = append(m.actions, *evt)
	return nil
}

func (m *memRecorder) RecordSnapshot(snap *recorder.PoolSnapshot) error {
	m.snapshots = append(m.snapshots, *snap)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func newTestSim(t *testing.T, limit int) (*Simulator, *fakeClock, *memRecorder) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	rec := &memRecorder{}
	eng := engine.New(clock, &seqIDs{})
	s := New(model.DefaultParams(), eng, rec, logger.NewWithWriter(io.Discard, "error"), limit)
	return s, clock, rec
}

func TestAddUser(t *testing.T) {
	s, _, rec := newTestSim(t, 10)

	_, err := s.AddUser("   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	id, err := s.AddUser(" Alice ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	u, ok := s.FindUser("alice")
	require.True(t, ok)
	assert.Equal(t, "Alice", u.Name)
	_, ok = s.FindUser(id)
	assert.True(t, ok)

	require.Len(t, rec.actions, 1)
	assert.Equal(t, ActionAddUser, rec.actions[0].Action)
	assert.True(t, rec.actions[0].Applied)
	assert.Len(t, s.History(), 2)
}

func TestBuyMiner(t *testing.T) {
	s, _, rec := newTestSim(t, 10)
	alice, err := s.AddUser("Alice")
	require.NoError(t, err)

	res, err := s.BuyMiner(alice, model.CurrencyStar)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "id-2", res.ID)
	assert.Equal(t, 1, s.State().MinerTotal)

	_, err = s.BuyMiner(alice, "gold")
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	res, err = s.BuyMiner("ghost", model.CurrencyStarry)
	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.False(t, res.Applied)

	last := rec.actions[len(rec.actions)-1]
	assert.Equal(t, ActionBuyStarry, last.Action)
	assert.False(t, last.Applied)
	assert.Equal(t, last.Before, last.After)
	assert.Len(t, s.History(), 3)
}

func TestRenewAndRemoveErrors(t *testing.T) {
	s, clock, _ := newTestSim(t, 10)
	alice, _ := s.AddUser("Alice")
	res, err := s.BuyMiner(alice, model.CurrencyStar)
	require.NoError(t, err)
	miner := res.ID

	_, err = s.Renew(alice, "nope")
	assert.ErrorIs(t, err, ErrUnknownMiner)
	_, err = s.Renew("ghost", miner)
	assert.ErrorIs(t, err, ErrUnknownUser)

	res, err = s.Renew(alice, miner)
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.Users[alice].Miners[0].RenewalCount)

	_, err = s.Renew(alice, miner)
	assert.ErrorIs(t, err, ErrRejected)

	clock.now = clock.now.Add(72 * time.Hour)
	_, err = s.Renew(alice, miner)
	assert.NoError(t, err)

	_, err = s.Remove(alice, miner)
	require.NoError(t, err)
	_, err = s.Remove(alice, miner)
	assert.ErrorIs(t, err, ErrUnknownMiner)
	assert.Equal(t, 0, s.State().MinerTotal)
}

func TestVoteOncePerDay(t *testing.T) {
	s, clock, _ := newTestSim(t, 10)
	alice, _ := s.AddUser("Alice")

	_, err := s.Vote(alice, true)
	require.NoError(t, err)
	_, err = s.Vote(alice, true)
	assert.ErrorIs(t, err, ErrRejected)

	clock.now = clock.now.Add(24 * time.Hour)
	_, err = s.Vote(alice, false)
	assert.NoError(t, err)

	st, err := s.UserStats(alice)
	require.NoError(t, err)
	assert.Equal(t, 2, st.VotingStats.TotalVotes)

	_, err = s.UserStats("ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestTick(t *testing.T) {
	s, clock, rec := newTestSim(t, 10)
	alice, _ := s.AddUser("Alice")
	_, err := s.BuyMiner(alice, model.CurrencyStar)
	require.NoError(t, err)

	clock.now = clock.now.Add(30 * time.Minute)
	assert.False(t, s.Tick().Applied)
	assert.Empty(t, rec.snapshots)

	clock.now = clock.now.Add(time.Hour)
	res := s.Tick()
	assert.True(t, res.Applied)
	require.Len(t, rec.snapshots, 1)
	assert.Equal(t, clock.now, rec.snapshots[0].Time)
	assert.Greater(t, res.State.Users[alice].Miners[0].AccumulatedReward, 0.0)
	assert.Less(t, res.State.MiningPowerAccumulated, 1000.0)
}

func TestHistoryIsBounded(t *testing.T) {
	s, _, _ := newTestSim(t, 3)
	alice, _ := s.AddUser("Alice")
	for i := 0; i < 5; i++ {
		_, err := s.BuyMiner(alice, model.CurrencyStar)
		require.NoError(t, err)
	}

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, 3, h[0].State.MinerTotal)
	assert.Equal(t, 5, h[2].State.MinerTotal)
}
