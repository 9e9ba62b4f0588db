package model

// Params is the immutable economic configuration of a simulation run.
type Params struct {
	TakeRate               float64 `yaml:"take_rate" json:"take_rate"`
	Affiliate              float64 `yaml:"affiliate" json:"affiliate"`
	MinerPrice             float64 `yaml:"miner_price" json:"miner_price"`
	MiningPeriod           float64 `yaml:"mining_period" json:"mining_period"` // days
	RenewalPrice           float64 `yaml:"renewal_price" json:"renewal_price"`
	ExchangeRate           float64 `yaml:"exchange_rate" json:"exchange_rate"` // starry per star
	InitialElo             float64 `yaml:"initial_elo" json:"initial_elo"`
	MiningFactor           float64 `yaml:"mining_factor" json:"mining_factor"`
	EV                     float64 `yaml:"ev" json:"ev"`
	VotingReward           float64 `yaml:"voting_reward" json:"voting_reward"` // star units, paid in starry
	MiningPowerDecayRate   float64 `yaml:"mining_power_decay_rate" json:"mining_power_decay_rate"`
	VotingSuccessThreshold float64 `yaml:"voting_success_threshold" json:"voting_success_threshold"`
}

// DefaultParams returns the stock economy.
func DefaultParams() Params {
	return Params{
		TakeRate:               0.3,
		Affiliate:              0.21,
		MinerPrice:             500,
		MiningPeriod:           3,
		RenewalPrice:           10,
		ExchangeRate:           10,
		InitialElo:             1000,
		MiningFactor:           1,
		EV:                     0.1,
		VotingReward:           1,
		MiningPowerDecayRate:   0.95,
		VotingSuccessThreshold: 0.7,
	}
}

// MiningPeriodHours is the length of one mining period in hours.
func (p Params) MiningPeriodHours() float64 {
	return p.MiningPeriod * 24
}
