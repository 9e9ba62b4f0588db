package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MinerSim/internal/model"
)

func TestPlayScenario(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := playScenario(model.DefaultParams(), start)

	assert.Equal(t, 1, r.Summary.MinerTotal)
	assert.InDelta(t, 350, r.Summary.StarPool, 1e-9)
	assert.InDelta(t, 3500, r.Summary.StarryPool, 1e-9)
	assert.InDelta(t, 150, r.Summary.PlatformProfit, 1e-9)

	require.Contains(t, r.State.Users, "0001")
	alice := r.State.Users["0001"]
	require.Len(t, alice.Miners, 1)
	assert.InDelta(t, 12600, alice.Miners[0].MiningPeriodReward, 1e-9)
	assert.InDelta(t, 1050, alice.Miners[0].AccumulatedReward, 1e-9)
	assert.Len(t, alice.VotingHistory, 1)
	assert.Equal(t, start.Add(6*time.Hour), r.State.LastUpdateTime)

	assert.Equal(t, 1, r.Stats.VotingStats.TotalVotes)
	assert.Zero(t, r.Stats.VotingStats.SuccessRate)
}

func TestNewApp(t *testing.T) {
	app := newApp()
	assert.Equal(t, "minersim", app.Name)
	require.Len(t, app.Commands, 1)
	assert.Equal(t, "scenario", app.Commands[0].Name)
}
