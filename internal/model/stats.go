package model

// MinerStats is the per-miner projection shown to a user.
type MinerStats struct {
	ID               string   `json:"id"`
	Type             Currency `json:"type"`
	Age              float64  `json:"age"` // days
	Reward           float64  `json:"reward"`
	ROI              float64  `json:"roi"`
	RenewalCount     int      `json:"renewal_count"`
	TimeUntilRenewal float64  `json:"time_until_renewal"` // days, never negative
}

// VotingStats summarises a user's voting history.
type VotingStats struct {
	TotalVotes         int     `json:"total_votes"`
	SuccessfulVotes    int     `json:"successful_votes"`
	SuccessRate        float64 `json:"success_rate"`
	TotalVotingRewards float64 `json:"total_voting_rewards"`
}

// UserStats is the read-only summary of one user.
type UserStats struct {
	TotalMiners          int          `json:"total_miners"`
	TotalInvestment      float64      `json:"total_investment"`
	TotalReward          float64      `json:"total_reward"`
	AverageROI           float64      `json:"average_roi"`
	EstimatedDailyReward float64      `json:"estimated_daily_reward"`
	VotingStats          VotingStats  `json:"voting_stats"`
	MinerStats           []MinerStats `json:"miner_stats"`
}

// Summary is the system-wide view of the pools.
type Summary struct {
	UserCount              int     `json:"user_count"`
	MinerTotal             int     `json:"miner_total"`
	StarPool               float64 `json:"star_pool"`
	StarryPool             float64 `json:"starry_pool"`
	StarryTotal            float64 `json:"starry_total"`
	MiningPowerAccumulated float64 `json:"mining_power_accumulated"`
	PlatformProfit         float64 `json:"platform_profit"`
	RewardRate             float64 `json:"reward_rate"` // starry per hour for a fresh miner
}
