package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-charts/internal/chart"
	"github.com/i474232898/weather-charts/internal/timefmt"
	"github.com/i474232898/weather-charts/internal/units"
)

type AppConfig struct {
	Port string

	// Chart defaults applied when a request leaves them out.
	DefaultUnits     units.System
	DefaultTimezone  string
	Hourly           chart.Dimensions
	Popup            chart.Dimensions
	TimelineInterval int

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// PruneInterval controls how often stale snapshots are dropped.
	PruneInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	cfg.Port = getenvDefault("PORT", "8080")

	sys, err := units.ParseSystem(getenvDefault("DEFAULT_UNITS", string(units.Metric)))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %w", err)
	}
	cfg.DefaultUnits = sys

	cfg.DefaultTimezone = getenvDefault("DEFAULT_TIMEZONE", "UTC")
	if _, err := timefmt.New(cfg.DefaultTimezone); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE: %w", err)
	}

	cfg.Hourly = chart.Dimensions{
		Width:  getenvFloat("HOURLY_WIDTH", chart.DefaultHourlyDimensions.Width),
		Height: getenvFloat("HOURLY_HEIGHT", chart.DefaultHourlyDimensions.Height),
	}
	if !cfg.Hourly.Valid() {
		return nil, fmt.Errorf("invalid HOURLY_WIDTH/HOURLY_HEIGHT: %vx%v", cfg.Hourly.Width, cfg.Hourly.Height)
	}
	cfg.Popup = chart.Dimensions{
		Width:  getenvFloat("POPUP_WIDTH", chart.DefaultPopupDimensions.Width),
		Height: getenvFloat("POPUP_HEIGHT", chart.DefaultPopupDimensions.Height),
	}
	if !cfg.Popup.Valid() {
		return nil, fmt.Errorf("invalid POPUP_WIDTH/POPUP_HEIGHT: %vx%v", cfg.Popup.Width, cfg.Popup.Height)
	}
	cfg.TimelineInterval = getenvInt("TIMELINE_INTERVAL", chart.DefaultTimelineInterval)

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	maxAge, err := time.ParseDuration(getenvDefault("STORE_MAX_AGE", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	// Scheduler interval: default 15 minutes.
	interval, err := time.ParseDuration(getenvDefault("PRUNE_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRUNE_INTERVAL: %w", err)
	}
	cfg.PruneInterval = interval

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
