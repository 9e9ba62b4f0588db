package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MinerSim/internal/model"
)

func (srv *Server) handleParams(c *gin.Context) {
	writeJSON(c, http.StatusOK, srv.sim.Params())
}

func (srv *Server) handleState(c *gin.Context) {
	writeJSON(c, http.StatusOK, srv.sim.State())
}

func (srv *Server) handleSummary(c *gin.Context) {
	writeJSON(c, http.StatusOK, srv.sim.Summary())
}

// historyPoint is one chart sample of the pools.
type historyPoint struct {
	Time                   int64   `json:"time"`
	MinerTotal             int     `json:"miner_total"`
	StarPool               float64 `json:"star_pool"`
	StarryPool             float64 `json:"starry_pool"`
	MiningPowerAccumulated float64 `json:"mining_power_accumulated"`
	PlatformProfit         float64 `json:"platform_profit"`
}

func (srv *Server) handleHistory(c *gin.Context) {
	history := srv.sim.History()
	points := make([]historyPoint, 0, len(history))
	for _, h := range history {
		points = append(points, historyPoint{
			Time:                   h.Time.UnixMilli(),
			MinerTotal:             h.State.MinerTotal,
			StarPool:               h.State.StarPool,
			StarryPool:             h.State.StarryPool,
			MiningPowerAccumulated: h.State.MiningPowerAccumulated,
			PlatformProfit:         h.State.PlatformProfit,
		})
	}
	writeJSON(c, http.StatusOK, points)
}

func (srv *Server) handleTick(c *gin.Context) {
	res := srv.sim.Tick()
	writeJSON(c, http.StatusOK, gin.H{"applied": res.Applied, "last_update_time": res.State.LastUpdateTime})
}

func (srv *Server) handleAddUser(c *gin.Context) {
	var req addUserRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := srv.sim.AddUser(req.Name)
	if err != nil {
		srv.fail(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, srv.sim.State().Users[id])
}

func (srv *Server) handleUserStats(c *gin.Context) {
	st, err := srv.sim.UserStats(c.Param("user"))
	if err != nil {
		srv.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, st)
}

func (srv *Server) handleBuy(c *gin.Context) {
	req := buyRequest{Currency: model.CurrencyStar}
	if !bindJSON(c, &req) {
		return
	}
	userID := c.Param("user")
	res, err := srv.sim.BuyMiner(userID, req.Currency)
	if err != nil {
		srv.fail(c, err)
		return
	}
	u := res.State.Users[userID]
	writeJSON(c, http.StatusCreated, u.Miners[len(u.Miners)-1])
}

func (srv *Server) handleRenew(c *gin.Context) {
	userID, minerID := c.Param("user"), c.Param("miner")
	res, err := srv.sim.Renew(userID, minerID)
	if err != nil {
		srv.fail(c, err)
		return
	}
	u := res.State.Users[userID]
	writeJSON(c, http.StatusOK, u.Miners[u.MinerIndex(minerID)])
}

func (srv *Server) handleRemove(c *gin.Context) {
	if _, err := srv.sim.Remove(c.Param("user"), c.Param("miner")); err != nil {
		srv.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (srv *Server) handleVote(c *gin.Context) {
	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := c.Param("user")
	res, err := srv.sim.Vote(userID, req.Success)
	if err != nil {
		srv.fail(c, err)
		return
	}
	h := res.State.Users[userID].VotingHistory
	writeJSON(c, http.StatusCreated, h[len(h)-1])
}
