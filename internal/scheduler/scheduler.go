package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"MinerSim/internal/model"
	"MinerSim/internal/notifier"
	"MinerSim/internal/platform/logger"
	"MinerSim/internal/sim"
)

// Notifier delivers report text to operators.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler drives the periodic decay tick and the daily pool report.
type Scheduler struct {
	Cron     *cron.Cron
	Sim      *sim.Simulator
	Notifier Notifier // nil disables reports
	Ctx      context.Context
	log      *logger.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, s *sim.Simulator, n Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Sim:      s,
		Notifier: n,
		Ctx:      ctx,
		log:      log.With("component", "scheduler"),
	}
}

// RegisterAll registers the tick and report tasks.
func (s *Scheduler) RegisterAll(tickCron, reportCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Infof("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Infof("scheduler stopped")
}

// RunTickNow executes the decay tick immediately.
func (s *Scheduler) RunTickNow() {
	s.tickTask()
}

func (s *Scheduler) tickTask() {
	res := s.Sim.Tick()
	if !res.Applied {
		s.log.Debugf("tick skipped: less than an hour since last update")
		return
	}
	s.log.Infof("tick applied at %s", res.State.LastUpdateTime.Format("2006-01-02 15:04"))
}

func (s *Scheduler) reportTask() {
	s.log.Infof("running pool report")
	st := s.Sim.State()
	s.trySend(notifier.FormatPoolStatus(s.Sim.Summary(), st.LastUpdateTime))
}

const helpText = "Commands:\n" +
	"• /status\n" +
	"• /adduser &lt;name&gt;\n" +
	"• /buy &lt;user&gt; [star|starry]\n" +
	"• /renew &lt;user&gt; &lt;miner&gt;\n" +
	"• /remove &lt;user&gt; &lt;miner&gt;\n" +
	"• /vote &lt;user&gt; yes|no\n" +
	"• /stats &lt;user&gt;"

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	args := fields[1:]

	switch fields[0] {
	case "/status":
		return notifier.FormatPoolStatus(s.Sim.Summary(), s.Sim.State().LastUpdateTime)

	case "/adduser":
		id, err := s.Sim.AddUser(strings.Join(args, " "))
		if err != nil {
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("✅ user created: %s", id)

	case "/buy":
		if len(args) < 1 {
			return helpText
		}
		u, ok := s.Sim.FindUser(args[0])
		if !ok {
			return "❌ " + sim.ErrUnknownUser.Error()
		}
		currency := model.CurrencyStar
		if len(args) > 1 {
			currency = model.Currency(strings.ToLower(args[1]))
		}
		res, err := s.Sim.BuyMiner(u.ID, currency)
		if err != nil {
			return "❌ " + err.Error()
		}
		m := res.State.Users[u.ID].Miners
		return fmt.Sprintf("✅ miner %s bought with %s, period reward %.2f", res.ID, currency, m[len(m)-1].MiningPeriodReward)

	case "/renew", "/remove":
		if len(args) < 2 {
			return helpText
		}
		u, ok := s.Sim.FindUser(args[0])
		if !ok {
			return "❌ " + sim.ErrUnknownUser.Error()
		}
		minerID := s.resolveMiner(u, args[1])
		var err error
		if fields[0] == "/renew" {
			_, err = s.Sim.Renew(u.ID, minerID)
		} else {
			_, err = s.Sim.Remove(u.ID, minerID)
		}
		if err != nil {
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("✅ %s %s done", strings.TrimPrefix(fields[0], "/"), minerID)

	case "/vote":
		if len(args) < 2 {
			return helpText
		}
		u, ok := s.Sim.FindUser(args[0])
		if !ok {
			return "❌ " + sim.ErrUnknownUser.Error()
		}
		success, err := parseOutcome(args[1])
		if err != nil {
			return "❌ " + err.Error()
		}
		res, err := s.Sim.Vote(u.ID, success)
		if errors.Is(err, sim.ErrRejected) {
			return "⏳ already voted today"
		}
		if err != nil {
			return "❌ " + err.Error()
		}
		h := res.State.Users[u.ID].VotingHistory
		return fmt.Sprintf("🗳 vote recorded, reward %.2f", h[len(h)-1].Reward)

	case "/stats":
		if len(args) < 1 {
			return helpText
		}
		u, ok := s.Sim.FindUser(args[0])
		if !ok {
			return "❌ " + sim.ErrUnknownUser.Error()
		}
		st, _ := s.Sim.UserStats(u.ID)
		return notifier.FormatUserStats(u.Name, st)

	default:
		return helpText
	}
}

// resolveMiner accepts a full miner id, an id prefix, or a 1-based index.
func (s *Scheduler) resolveMiner(u model.User, ref string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(u.Miners) {
		return u.Miners[n-1].ID
	}
	for _, m := range u.Miners {
		if m.ID == ref || strings.HasPrefix(m.ID, ref) {
			return m.ID
		}
	}
	return ref
}

func parseOutcome(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "y", "ok", "true", "1":
		return true, nil
	case "no", "n", "fail", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("vote outcome must be yes or no, got %q", v)
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		s.log.Infof("report (no notifier):\n%s", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Errorf("send notification: %v", err)
	}
}
