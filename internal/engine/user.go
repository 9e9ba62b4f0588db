package engine

import "MinerSim/internal/model"

// AddUser registers a new user with empty balances and returns the new
// state together with the user's id.
func (e *Engine) AddUser(s model.State, name string) (model.State, string) {
	id := e.ids.NewID()
	u := model.User{
		ID:            id,
		Name:          name,
		Miners:        []model.Miner{},
		VotingHistory: []model.Vote{},
	}
	return s.WithUser(u), id
}
