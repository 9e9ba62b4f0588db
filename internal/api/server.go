// Package api exposes the simulator over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"MinerSim/internal/model"
	"MinerSim/internal/platform/jsonutil"
	"MinerSim/internal/platform/logger"
	"MinerSim/internal/sim"
)

// Server serves the simulator's operations and projections.
type Server struct {
	sim    *sim.Simulator
	log    *logger.Logger
	router *gin.Engine
	http   *http.Server
}

type addUserRequest struct {
	Name string `json:"name"`
}

type buyRequest struct {
	Currency model.Currency `json:"currency"`
}

type voteRequest struct {
	Success bool `json:"success"`
}

// NewServer builds the router for s.
func NewServer(s *sim.Simulator, log *logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	srv := &Server{sim: s, log: log.With("component", "api"), router: router}

	api := router.Group("/api/v1")
	api.GET("/params", srv.handleParams)
	api.GET("/state", srv.handleState)
	api.GET("/summary", srv.handleSummary)
	api.GET("/history", srv.handleHistory)
	api.POST("/tick", srv.handleTick)
	api.POST("/users", srv.handleAddUser)
	api.GET("/users/:user/stats", srv.handleUserStats)
	api.POST("/users/:user/miners", srv.handleBuy)
	api.POST("/users/:user/miners/:miner/renew", srv.handleRenew)
	api.DELETE("/users/:user/miners/:miner", srv.handleRemove)
	api.POST("/users/:user/votes", srv.handleVote)

	return srv
}

// Handler returns the HTTP handler.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (srv *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv.http = &http.Server{Addr: addr, Handler: srv.router, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		srv.log.Infof("http api listening on %s", addr)
		errCh <- srv.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.http.Shutdown(shutdownCtx)
	}
}

// writeJSON encodes v with the shared JSON codec.
func writeJSON(c *gin.Context, status int, v any) {
	b, err := jsonutil.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(status, "application/json; charset=utf-8", b)
}

// bindJSON decodes the request body. An empty body leaves v untouched.
func bindJSON(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := jsonutil.NewDecoder(c.Request.Body).Decode(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sim.ErrUnknownUser), errors.Is(err, sim.ErrUnknownMiner):
		return http.StatusNotFound
	case errors.Is(err, sim.ErrRejected):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (srv *Server) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
