package engine

import (
	"time"

	"MinerSim/internal/model"
)

// CanRenew reports whether m may be renewed at now. A miner that was never
// renewed is always eligible; otherwise a full mining period must have
// passed since the last renewal.
func CanRenew(p model.Params, m model.Miner, now time.Time) bool {
	if !m.Renewed() {
		return true
	}
	period := time.Duration(p.MiningPeriodHours() * float64(time.Hour))
	return now.Sub(m.LastRenewalTime) >= period
}

// Renew starts a new mining period for the miner.
//
// The fresh obligation is priced against s as it was before the renewal fee
// reaches the pools, unlike a purchase which sees its own contribution.
func (e *Engine) Renew(p model.Params, s model.State, userID, minerID string) model.State {
	u, ok := s.Users[userID]
	if !ok {
		return s
	}
	idx := u.MinerIndex(minerID)
	if idx < 0 {
		return s
	}

	now := e.clock.Now()
	if !CanRenew(p, u.Miners[idx], now) {
		return s
	}

	reward := periodReward(p, s, u.Miners[idx].Elo)
	starAdded := p.RenewalPrice * (1 - p.TakeRate)

	u = u.Clone()
	m := &u.Miners[idx]
	m.LastRenewalTime = now
	m.RenewalCount++
	m.MiningPeriodReward = reward
	m.RemainingReward = reward
	u.TotalInvestment += p.RenewalPrice

	next := s
	next.StarPool += starAdded
	next.StarryPool += starAdded * p.ExchangeRate
	next.StarryTotal += starAdded * p.ExchangeRate
	next.PlatformProfit += p.RenewalPrice * p.TakeRate
	return next.WithUser(u)
}
