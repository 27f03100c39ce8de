package config

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-charts/internal/chart"
	"github.com/i474232898/weather-charts/internal/timefmt"
	"github.com/i474232898/weather-charts/internal/units"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DEFAULT_UNITS", "DEFAULT_TIMEZONE", "STORE_MAX_HISTORY", "STORE_MAX_AGE",
		"PRUNE_INTERVAL", "HOURLY_WIDTH", "HOURLY_HEIGHT", "POPUP_WIDTH", "POPUP_HEIGHT", "TIMELINE_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "8080" || cfg.DefaultUnits != units.Metric || cfg.DefaultTimezone != "UTC" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Hourly != chart.DefaultHourlyDimensions || cfg.Popup != chart.DefaultPopupDimensions {
		t.Errorf("unexpected dimensions %+v %+v", cfg.Hourly, cfg.Popup)
	}
	if cfg.StoreMaxHistory != 96 || cfg.StoreMaxAge != 24*time.Hour || cfg.PruneInterval != 15*time.Minute {
		t.Errorf("unexpected retention %d %v %v", cfg.StoreMaxHistory, cfg.StoreMaxAge, cfg.PruneInterval)
	}
	if cfg.TimelineInterval != 15 {
		t.Errorf("timeline interval = %d", cfg.TimelineInterval)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_UNITS", "imperial")
	t.Setenv("HOURLY_WIDTH", "1500.5")
	t.Setenv("TIMELINE_INTERVAL", "not-a-number")
	t.Setenv("STORE_MAX_AGE", "2h")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "9090" || cfg.DefaultUnits != units.Imperial || cfg.Hourly.Width != 1500.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.TimelineInterval != 15 {
		t.Errorf("unparsable ints should fall back to the default, got %d", cfg.TimelineInterval)
	}
	if cfg.StoreMaxAge != 2*time.Hour {
		t.Errorf("store max age = %v", cfg.StoreMaxAge)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
		want       error
	}{
		{"DEFAULT_UNITS", "kelvin", units.ErrInvalidSystem},
		{"DEFAULT_TIMEZONE", "Mars/Olympus", timefmt.ErrUnknownTimezone},
		{"STORE_MAX_AGE", "forever", nil},
		{"PRUNE_INTERVAL", "often", nil},
		{"POPUP_HEIGHT", "-1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
