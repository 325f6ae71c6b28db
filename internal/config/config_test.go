package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "TZ", "HIGH_ABSENCE_THRESHOLD",
		"HIGH_ABSENCE_WINDOW_DAYS", "ABSENCE_ALERT_JOB_ENABLED", "ABSENCE_ALERT_JOB_INTERVAL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.Location.String() != "Europe/Paris" {
		t.Fatalf("expected Europe/Paris, got %s", cfg.Location)
	}
	if cfg.HighAbsenceThreshold != 5 {
		t.Fatalf("expected threshold 5, got %d", cfg.HighAbsenceThreshold)
	}
	if cfg.HighAbsenceWindowDays != 30 {
		t.Fatalf("expected 30-day window, got %d", cfg.HighAbsenceWindowDays)
	}
	if !cfg.AbsenceAlertJobEnabled {
		t.Fatalf("expected alert job enabled by default")
	}
	if cfg.AbsenceAlertJobInterval != time.Hour {
		t.Fatalf("expected hourly interval, got %s", cfg.AbsenceAlertJobInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("TZ", "UTC")
	t.Setenv("HIGH_ABSENCE_THRESHOLD", "3")
	t.Setenv("ABSENCE_ALERT_JOB_ENABLED", "false")
	t.Setenv("ABSENCE_ALERT_JOB_INTERVAL", "15m")

	cfg := Load()
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("expected :9999, got %s", cfg.HTTPAddr)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC, got %s", cfg.Location)
	}
	if cfg.HighAbsenceThreshold != 3 {
		t.Fatalf("expected threshold 3, got %d", cfg.HighAbsenceThreshold)
	}
	if cfg.AbsenceAlertJobEnabled {
		t.Fatalf("expected alert job disabled")
	}
	if cfg.AbsenceAlertJobInterval != 15*time.Minute {
		t.Fatalf("expected 15m interval, got %s", cfg.AbsenceAlertJobInterval)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("TZ", "Not/AZone")
	t.Setenv("HIGH_ABSENCE_THRESHOLD", "many")
	t.Setenv("ABSENCE_ALERT_JOB_INTERVAL", "soon")

	cfg := Load()
	if cfg.Location != time.UTC {
		t.Fatalf("bad zone must fall back to UTC, got %s", cfg.Location)
	}
	if cfg.HighAbsenceThreshold != 5 {
		t.Fatalf("bad int must fall back to 5, got %d", cfg.HighAbsenceThreshold)
	}
	if cfg.AbsenceAlertJobInterval != time.Hour {
		t.Fatalf("bad duration must fall back to 1h, got %s", cfg.AbsenceAlertJobInterval)
	}
}
