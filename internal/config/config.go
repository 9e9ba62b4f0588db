package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"MinerSim/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Params   model.Params `yaml:"params"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		TickCron   string `yaml:"tick_cron"`
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	History struct {
		Limit int `yaml:"limit"`
	} `yaml:"history"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Params: model.DefaultParams()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CRON_TICK"); v != "" {
		cfg.Schedule.TickCron = v
	}
	if v := os.Getenv("HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.Limit = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "0 0 * * * *"
	}
	if cfg.Schedule.ReportCron == "" {
		cfg.Schedule.ReportCron = "0 0 9 * * *"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "127.0.0.1:8080"
	}
	if cfg.History.Limit == 0 {
		cfg.History.Limit = 720
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that the economy is well formed.
func (c *Config) Validate() error {
	if err := ValidateParams(c.Params); err != nil {
		return err
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// ValidateParams rejects parameters the engine would divide by zero with.
func ValidateParams(p model.Params) error {
	if p.ExchangeRate <= 0 {
		return fmt.Errorf("params.exchange_rate must be positive")
	}
	if p.MiningPeriod <= 0 {
		return fmt.Errorf("params.mining_period must be positive")
	}
	if p.MiningPowerDecayRate <= 0 || p.MiningPowerDecayRate > 1 {
		return fmt.Errorf("params.mining_power_decay_rate must be in (0, 1]")
	}
	if p.TakeRate > 1 {
		return fmt.Errorf("params.take_rate must not exceed 1")
	}
	fields := map[string]float64{
		"take_rate":                p.TakeRate,
		"affiliate":                p.Affiliate,
		"miner_price":              p.MinerPrice,
		"renewal_price":            p.RenewalPrice,
		"initial_elo":              p.InitialElo,
		"mining_factor":            p.MiningFactor,
		"ev":                       p.EV,
		"voting_reward":            p.VotingReward,
		"voting_success_threshold": p.VotingSuccessThreshold,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("params.%s must not be negative", name)
		}
	}
	return nil
}

// TelegramEnabled reports whether a Telegram bot is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
