package main

import (
	"fmt"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"MinerSim/internal/engine"
	"MinerSim/internal/model"
	"MinerSim/internal/platform/jsonutil"
	"MinerSim/internal/stats"
)

// stepClock is a clock the scenario advances by hand.
type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

// seqIDs numbers users and miners in creation order.
type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("%04d", g.n)
}

// scenarioReport is what the scenario subcommand prints.
type scenarioReport struct {
	Summary model.Summary   `json:"summary"`
	Stats   model.UserStats `json:"stats"`
	State   model.State     `json:"state"`
}

// playScenario adds Alice, buys a star miner, casts a failed vote, then lets
// six hours of decay pass.
func playScenario(p model.Params, start time.Time) scenarioReport {
	clock := &stepClock{now: start}
	eng := engine.New(clock, &seqIDs{})

	s := model.NewState(start)
	s, alice := eng.AddUser(s, "Alice")
	s = eng.BuyWithStar(p, s, alice)
	s = eng.Vote(p, s, alice, false)

	clock.now = clock.now.Add(6 * time.Hour)
	s = eng.Tick(p, s)

	return scenarioReport{
		Summary: stats.Summarize(p, s),
		Stats:   stats.UserStats(p, s, alice, clock.Now()),
		State:   s,
	}
}

func runScenario(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b, err := jsonutil.MarshalIndent(playScenario(cfg.Params, start), "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(b))
	return err
}
