package engine

import (
	"math"

	"MinerSim/internal/model"
)

// RewardRate returns the expected starry reward per hour for a miner of the
// given elo against the current pool and aggregate mining power.
//
// With no miners the rate is undefined; it is reported as 0, as is any
// non-finite result.
func RewardRate(p model.Params, s model.State, elo float64) float64 {
	if s.MinerTotal == 0 {
		return 0
	}
	denom := s.MiningPowerAccumulated*p.MiningFactor + float64(s.MinerTotal)*p.InitialElo
	if denom == 0 {
		return 0
	}
	rate := p.EV * s.StarryPool * elo / denom
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}

// periodReward prices a full mining period for a miner of the given elo.
func periodReward(p model.Params, s model.State, elo float64) float64 {
	return RewardRate(p, s, elo) * p.MiningPeriodHours()
}
