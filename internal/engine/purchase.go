package engine

import "MinerSim/internal/model"

// BuyWithStar sells userID a miner paid in star.
//
// The net price flows into the star pool and, converted, into the starry pool
// and the minted starry total.
func (e *Engine) BuyWithStar(p model.Params, s model.State, userID string) model.State {
	u, ok := s.Users[userID]
	if !ok {
		return s
	}

	starAdded := p.MinerPrice * (1 - p.TakeRate)

	next := s
	next.MinerTotal++
	next.StarPool += starAdded
	next.StarryPool += starAdded * p.ExchangeRate
	next.StarryTotal += starAdded * p.ExchangeRate
	next.MiningPowerAccumulated += p.InitialElo
	next.PlatformProfit += p.MinerPrice * p.TakeRate

	return e.attachMiner(p, next, u, model.CurrencyStar, p.MinerPrice)
}

// BuyWithStarry sells userID a miner paid in starry.
//
// No star enters the system: the take-rate share is paid out of the star
// pool and withdrawn from the minted starry total, while the starry pool still
// grows by the net price converted at the exchange rate.
func (e *Engine) BuyWithStarry(p model.Params, s model.State, userID string) model.State {
	u, ok := s.Users[userID]
	if !ok {
		return s
	}

	starReduced := p.MinerPrice * p.TakeRate

	next := s
	next.MinerTotal++
	next.StarPool -= starReduced
	next.StarryPool += p.MinerPrice * (1 - p.TakeRate) * p.ExchangeRate
	next.StarryTotal -= starReduced * p.ExchangeRate
	next.MiningPowerAccumulated += p.InitialElo
	next.PlatformProfit += p.MinerPrice * p.TakeRate

	return e.attachMiner(p, next, u, model.CurrencyStarry, p.MinerPrice*p.ExchangeRate)
}

// attachMiner prices a new miner against the post-purchase pools and hands it
// to u. price is in the purchase currency's units.
func (e *Engine) attachMiner(p model.Params, s model.State, u model.User, currency model.Currency, price float64) model.State {
	reward := periodReward(p, s, p.InitialElo)
	m := model.Miner{
		ID:                 e.ids.NewID(),
		Elo:                p.InitialElo,
		PurchaseTime:       e.clock.Now(),
		PurchaseType:       currency,
		PurchasePrice:      price,
		MiningPeriodReward: reward,
		RemainingReward:    reward,
	}

	u = u.Clone()
	u.Miners = append(u.Miners, m)
	u.TotalInvestment += price
	return s.WithUser(u)
}
