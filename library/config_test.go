package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Loan.PeriodDays != 14 {
		t.Errorf("period days = %d, want 14", cfg.Loan.PeriodDays)
	}
	if cfg.Loan.DailyFineRate != 1.0 {
		t.Errorf("daily fine rate = %g, want 1.0", cfg.Loan.DailyFineRate)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults = %s/%s, want info/text", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LOAN_PERIOD_DAYS", "7")
	t.Setenv("LOAN_DAILY_FINE_RATE", "0.5")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Loan.PeriodDays != 7 {
		t.Errorf("period days = %d, want 7", cfg.Loan.PeriodDays)
	}
	if cfg.Loan.DailyFineRate != 0.5 {
		t.Errorf("daily fine rate = %g, want 0.5", cfg.Loan.DailyFineRate)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "loan:\n  period_days: 21\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Loan.PeriodDays != 21 {
		t.Errorf("period days = %d, want 21", cfg.Loan.PeriodDays)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %s, want debug", cfg.Log.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("LOAN_PERIOD_DAYS", "0")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected validation error for zero loan period")
	}

	t.Setenv("LOAN_PERIOD_DAYS", "14")
	t.Setenv("LOAN_DAILY_FINE_RATE", "-1")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected validation error for negative fine rate")
	}
}
