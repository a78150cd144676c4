package library

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Loan LoanConfig `yaml:"loan"`
	Log  LogConfig  `yaml:"log"`
	Seed SeedConfig `yaml:"seed"`
}

// LoanConfig holds the lending policy knobs.
type LoanConfig struct {
	PeriodDays    int     `yaml:"period_days"     env:"LOAN_PERIOD_DAYS"     env-default:"14"`
	DailyFineRate float64 `yaml:"daily_fine_rate" env:"LOAN_DAILY_FINE_RATE" env-default:"1.0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// SeedConfig points at an optional JSON seed file loaded at startup.
// When Path is empty the built-in sample data is used.
type SeedConfig struct {
	Path string `yaml:"path" env:"SEED_PATH"`
}

// LoadConfig reads configuration from the YAML file at path and from
// environment variables, ENV taking priority over the file and the file over
// env-default tags. An empty path loads from ENV + defaults only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded values for internal consistency.
func (c *Config) Validate() error {
	if c.Loan.PeriodDays <= 0 {
		return fmt.Errorf("loan.period_days must be positive, got %d", c.Loan.PeriodDays)
	}
	if c.Loan.DailyFineRate <= 0 {
		return fmt.Errorf("loan.daily_fine_rate must be positive, got %g", c.Loan.DailyFineRate)
	}
	return nil
}

// NewLogger creates a *slog.Logger from the LogConfig and installs it as the
// default logger. Format "json" produces structured JSON output; anything
// else produces human-readable text. Output is always os.Stderr.
func NewLogger(cfg LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
