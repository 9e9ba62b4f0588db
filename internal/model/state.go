package model

import "time"

// Currency tags which internal currency paid for a miner.
type Currency string

const (
	CurrencyStar   Currency = "star"
	CurrencyStarry Currency = "starry"
)

// Miner is a single reward-earning unit owned by exactly one user.
type Miner struct {
	ID                 string    `json:"id"`
	Elo                float64   `json:"elo"`
	PurchaseTime       time.Time `json:"purchase_time"`
	PurchaseType       Currency  `json:"purchase_type"`
	PurchasePrice      float64   `json:"purchase_price"` // starry units when bought with starry
	AccumulatedReward  float64   `json:"accumulated_reward"`
	LastRenewalTime    time.Time `json:"last_renewal_time"` // zero until first renewal
	RenewalCount       int       `json:"renewal_count"`
	MiningPeriodReward float64   `json:"mining_period_reward"`
	RemainingReward    float64   `json:"remaining_reward"`
}

// Renewed reports whether the miner has been renewed at least once.
func (m Miner) Renewed() bool {
	return !m.LastRenewalTime.IsZero()
}

// Vote is one entry of a user's voting history.
type Vote struct {
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Reward    float64   `json:"reward"`
}

// User owns miners, balances and a chronological voting history.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Miners          []Miner   `json:"miners"`
	StarBalance     float64   `json:"star_balance"`
	StarryBalance   float64   `json:"starry_balance"`
	TotalInvestment float64   `json:"total_investment"`
	TotalReward     float64   `json:"total_reward"`
	VotingHistory   []Vote    `json:"voting_history"`
	TodayVoteCount  int       `json:"today_vote_count"`
	LastVoteTime    time.Time `json:"last_vote_time"` // zero before the first vote
}

// MinerIndex returns the position of minerID in u.Miners, or -1.
func (u User) MinerIndex(minerID string) int {
	for i, m := range u.Miners {
		if m.ID == minerID {
			return i
		}
	}
	return -1
}

// Clone returns a copy of u that shares no slices with it.
func (u User) Clone() User {
	c := u
	c.Miners = append([]Miner(nil), u.Miners...)
	c.VotingHistory = append([]Vote(nil), u.VotingHistory...)
	return c
}

// State is one immutable snapshot of the whole economy.
//
// Engine operations never modify a State in place; they return a new value.
// Untouched users may share backing arrays with the previous snapshot, so
// callers must not mutate Users entries directly either.
type State struct {
	MinerTotal             int             `json:"miner_total"`
	StarPool               float64         `json:"star_pool"`
	StarryPool             float64         `json:"starry_pool"`
	StarryTotal            float64         `json:"starry_total"`
	MiningPowerAccumulated float64         `json:"mining_power_accumulated"`
	PlatformProfit         float64         `json:"platform_profit"`
	Users                  map[string]User `json:"users"`
	LastUpdateTime         time.Time       `json:"last_update_time"`
}

// NewState returns an empty economy whose decay clock starts at now.
func NewState(now time.Time) State {
	return State{
		Users:          map[string]User{},
		LastUpdateTime: now,
	}
}

// WithUser returns a copy of s in which u replaces (or adds) the user with u.ID.
// The users map is copied; other users are shared with s.
func (s State) WithUser(u User) State {
	users := make(map[string]User, len(s.Users)+1)
	for id, v := range s.Users {
		users[id] = v
	}
	users[u.ID] = u
	s.Users = users
	return s
}

// CountMiners sums the miners owned by every user.
func (s State) CountMiners() int {
	n := 0
	for _, u := range s.Users {
		n += len(u.Miners)
	}
	return n
}
