package engine

import (
	"math"
	"time"

	"MinerSim/internal/model"
)

// Decay advances s to now. Below one elapsed hour it returns s unchanged.
//
// Accumulated mining power decays by MiningPowerDecayRate per hour. Each
// miner releases remaining*hours/(period hours) of its remaining reward into
// its accumulated reward. The released fraction is capped at 1 so remaining
// reward never goes negative after a long gap.
func Decay(p model.Params, s model.State, now time.Time) model.State {
	hours := now.Sub(s.LastUpdateTime).Hours()
	if hours < 1 {
		return s
	}

	next := s
	next.MiningPowerAccumulated = s.MiningPowerAccumulated * math.Pow(p.MiningPowerDecayRate, hours)
	next.LastUpdateTime = now

	fraction := 1.0
	if period := p.MiningPeriodHours(); period > 0 {
		fraction = math.Min(1, hours/period)
	}

	next.Users = make(map[string]model.User, len(s.Users))
	for id, u := range s.Users {
		miners := make([]model.Miner, len(u.Miners))
		for i, m := range u.Miners {
			released := m.RemainingReward * fraction
			m.AccumulatedReward += released
			m.RemainingReward -= released
			miners[i] = m
		}
		u.Miners = miners
		next.Users[id] = u
	}
	return next
}

// Tick runs Decay at the engine clock's current time.
func (e *Engine) Tick(p model.Params, s model.State) model.State {
	return Decay(p, s, e.clock.Now())
}
