// Package stats derives read-only summaries from a simulation state.
package stats

import (
	"math"
	"time"

	"MinerSim/internal/engine"
	"MinerSim/internal/model"
)

const day = 24 * time.Hour

// UserStats summarises userID's miners and votes at now. An unknown user
// yields an empty summary.
func UserStats(p model.Params, s model.State, userID string, now time.Time) model.UserStats {
	u, ok := s.Users[userID]
	if !ok {
		return model.UserStats{MinerStats: []model.MinerStats{}}
	}

	periodHours := p.MiningPeriodHours()
	out := model.UserStats{
		TotalMiners:     len(u.Miners),
		TotalInvestment: u.TotalInvestment,
		MinerStats:      make([]model.MinerStats, 0, len(u.Miners)),
	}

	for _, m := range u.Miners {
		age := days(now.Sub(m.PurchaseTime))
		untilRenewal := p.MiningPeriod - age
		if m.Renewed() {
			untilRenewal = p.MiningPeriod - days(now.Sub(m.LastRenewalTime))
		}

		ms := model.MinerStats{
			ID:               m.ID,
			Type:             m.PurchaseType,
			Age:              age,
			Reward:           m.AccumulatedReward + safeDiv(m.RemainingReward, periodHours),
			ROI:              safeDiv(m.AccumulatedReward+m.RemainingReward, m.PurchasePrice),
			RenewalCount:     m.RenewalCount,
			TimeUntilRenewal: math.Max(0, untilRenewal),
		}
		out.MinerStats = append(out.MinerStats, ms)
		out.EstimatedDailyReward += ms.Reward
		out.TotalReward += m.AccumulatedReward + m.RemainingReward
	}

	out.VotingStats = votingStats(u.VotingHistory)
	out.TotalReward += out.VotingStats.TotalVotingRewards
	out.AverageROI = safeDiv(out.TotalReward, u.TotalInvestment)
	return out
}

func votingStats(history []model.Vote) model.VotingStats {
	vs := model.VotingStats{TotalVotes: len(history)}
	for _, v := range history {
		if v.Success {
			vs.SuccessfulVotes++
		}
		vs.TotalVotingRewards += v.Reward
	}
	if vs.TotalVotes > 0 {
		vs.SuccessRate = float64(vs.SuccessfulVotes) / float64(vs.TotalVotes)
	}
	return vs
}

// Summarize returns the pool balances and the current reward rate a freshly
// bought miner would earn.
func Summarize(p model.Params, s model.State) model.Summary {
	return model.Summary{
		UserCount:              len(s.Users),
		MinerTotal:             s.MinerTotal,
		StarPool:               s.StarPool,
		StarryPool:             s.StarryPool,
		StarryTotal:            s.StarryTotal,
		MiningPowerAccumulated: s.MiningPowerAccumulated,
		PlatformProfit:         s.PlatformProfit,
		RewardRate:             engine.RewardRate(p, s, p.InitialElo),
	}
}

func days(d time.Duration) float64 {
	return float64(d) / float64(day)
}

// safeDiv returns 0 instead of a non-finite quotient.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}
