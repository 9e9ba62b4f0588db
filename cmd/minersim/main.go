package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "gopkg.in/urfave/cli.v1"

	"MinerSim/internal/api"
	"MinerSim/internal/config"
	"MinerSim/internal/engine"
	"MinerSim/internal/notifier"
	"MinerSim/internal/platform/logger"
	"MinerSim/internal/recorder"
	"MinerSim/internal/scheduler"
	"MinerSim/internal/sim"
)

var (
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "Path to the YAML config file",
		Value:  "configs/config.yaml",
		EnvVar: "CONFIG_PATH",
	}
	tickOnStartFlag = cli.BoolFlag{
		Name:   "tick-on-start",
		Usage:  "Run one decay tick immediately after start",
		EnvVar: "RUN_ON_START",
	}
	noHTTPFlag = cli.BoolFlag{
		Name:  "no-http",
		Usage: "Disable the HTTP API",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "minersim"
	app.Usage = "Closed-economy miner simulation"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{configFlag, tickOnStartFlag, noHTTPFlag}
	app.Action = run
	app.Commands = []cli.Command{
		{
			Name:   "scenario",
			Usage:  "Run the reference walkthrough and print the resulting state",
			Flags:  []cli.Flag{configFlag},
			Action: runScenario,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		path = ctx.GlobalString(configFlag.Name)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	log.Infof("minersim starting...")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	simulator := sim.New(cfg.Params, engine.New(engine.SystemClock{}, engine.UUIDGenerator{}), rec, log, cfg.History.Limit)

	// Context for graceful shutdown
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tn *notifier.TelegramNotifier
	var n scheduler.Notifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		n = tn
	}

	sched := scheduler.NewScheduler(runCtx, simulator, n, log)
	if err := sched.RegisterAll(cfg.Schedule.TickCron, cfg.Schedule.ReportCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(runCtx, sched.HandleCommand)
		log.Infof("telegram polling started")
	}

	if ctx.Bool(tickOnStartFlag.Name) {
		log.Infof("tick-on-start enabled, running decay tick now")
		sched.RunTickNow()
	}

	httpErr := make(chan error, 1)
	if !ctx.Bool(noHTTPFlag.Name) {
		srv := api.NewServer(simulator, log)
		go func() { httpErr <- srv.ListenAndServe(runCtx, cfg.HTTP.Addr) }()
	}

	log.Infof("minersim is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Infof("shutdown signal received, stopping...")
	case err := <-httpErr:
		if err != nil {
			log.Errorf("http api: %v", err)
			cancel()
			return err
		}
	}
	cancel()
	log.Infof("minersim stopped")
	return nil
}
