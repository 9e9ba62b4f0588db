package engine

import "MinerSim/internal/model"

// Remove deletes a miner from its owner.
//
// The global mining power is rolled back by InitialElo whatever the miner's
// actual elo. Accrued and unreleased reward is discarded without refund.
func (e *Engine) Remove(p model.Params, s model.State, userID, minerID string) model.State {
	u, ok := s.Users[userID]
	if !ok {
		return s
	}
	idx := u.MinerIndex(minerID)
	if idx < 0 {
		return s
	}

	miners := make([]model.Miner, 0, len(u.Miners)-1)
	miners = append(miners, u.Miners[:idx]...)
	miners = append(miners, u.Miners[idx+1:]...)
	u = u.Clone()
	u.Miners = miners

	next := s
	next.MinerTotal--
	next.MiningPowerAccumulated -= p.InitialElo
	return next.WithUser(u)
}
