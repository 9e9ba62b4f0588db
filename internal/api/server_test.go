package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MinerSim/internal/engine"
	"MinerSim/internal/model"
	"MinerSim/internal/platform/jsonutil"
	"MinerSim/internal/platform/logger"
	"MinerSim/internal/sim"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func newTestServer(t *testing.T) (http.Handler, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	log := logger.NewWithWriter(io.Discard, "error")
	s := sim.New(model.DefaultParams(), engine.New(clock, &seqIDs{}), nil, log, 100)
	return NewServer(s, log).Handler(), clock
}

func do(t *testing.T, h http.Handler, method, path, body string, out any) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, jsonutil.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestScenarioOverHTTP(t *testing.T) {
	h, clock := newTestServer(t)

	var user model.User
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/users", `{"name":"Alice"}`, &user))
	assert.Equal(t, "id-1", user.ID)

	var miner model.Miner
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/users/id-1/miners", "", &miner))
	assert.Equal(t, model.CurrencyStar, miner.PurchaseType)
	assert.InDelta(t, 12600, miner.MiningPeriodReward, 1e-9)

	var sum model.Summary
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/summary", "", &sum))
	assert.InDelta(t, 350, sum.StarPool, 1e-9)
	assert.InDelta(t, 3500, sum.StarryPool, 1e-9)
	assert.InDelta(t, 150, sum.PlatformProfit, 1e-9)

	var vote model.Vote
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/users/id-1/votes", `{"success":false}`, &vote))
	assert.False(t, vote.Success)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/api/v1/users/id-1/votes", `{"success":true}`, nil))

	var renewed model.Miner
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/users/id-1/miners/id-2/renew", "", &renewed))
	assert.Equal(t, 1, renewed.RenewalCount)

	clock.now = clock.now.Add(3 * time.Hour)
	var tick map[string]any
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/tick", "", &tick))
	assert.Equal(t, true, tick["applied"])

	var st model.UserStats
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/users/id-1/stats", "", &st))
	assert.Equal(t, 1, st.TotalMiners)
	assert.Equal(t, 1, st.VotingStats.TotalVotes)

	var history []historyPoint
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/history", "", &history))
	assert.Len(t, history, 6) // initial, user, buy, vote, renew, tick

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/users/id-1/miners/id-2", "", nil))
	var state model.State
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/state", "", &state))
	assert.Zero(t, state.MinerTotal)
}

func TestErrors(t *testing.T) {
	h, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/users", `{"name":""}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/users", `{bad`, nil))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/v1/users/ghost/miners", "", nil))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/users/ghost/stats", "", nil))

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/users", `{"name":"Bob"}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/users/id-1/miners", `{"currency":"gold"}`, nil))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/v1/users/id-1/miners/nope", "", nil))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/v1/users/id-1/miners/nope/renew", "", nil))
}

func TestParams(t *testing.T) {
	h, _ := newTestServer(t)
	var p model.Params
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/params", "", &p))
	assert.Equal(t, model.DefaultParams(), p)
}
