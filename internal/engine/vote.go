package engine

import (
	"time"

	"MinerSim/internal/model"
)

// startOfDay returns local midnight of t in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// VotedToday reports whether u already cast a vote on now's calendar day.
func VotedToday(u model.User, now time.Time) bool {
	if u.LastVoteTime.IsZero() {
		return false
	}
	return !u.LastVoteTime.Before(startOfDay(now))
}

// voteRatio is todayVoteCount over the pre-vote history length, with the
// denominator floored at 1.
func voteRatio(u model.User) float64 {
	n := len(u.VotingHistory)
	if n < 1 {
		n = 1
	}
	return float64(u.TodayVoteCount) / float64(n)
}

// Vote records one vote per calendar day for userID.
//
// A successful vote pays VotingReward (converted to starry) from the starry
// pool when the user's ratio meets VotingSuccessThreshold. A second vote on
// the same day is ignored.
func (e *Engine) Vote(p model.Params, s model.State, userID string, success bool) model.State {
	u, ok := s.Users[userID]
	if !ok {
		return s
	}

	now := e.clock.Now()
	if VotedToday(u, now) {
		return s
	}

	var reward float64
	if success && voteRatio(u) >= p.VotingSuccessThreshold {
		reward = p.VotingReward * p.ExchangeRate
	}

	u = u.Clone()
	u.VotingHistory = append(u.VotingHistory, model.Vote{
		Timestamp: now,
		Success:   success,
		Reward:    reward,
	})
	if success {
		u.TodayVoteCount++
	}
	u.LastVoteTime = now
	u.StarryBalance += reward

	next := s
	next.StarryPool -= reward
	return next.WithUser(u)
}
