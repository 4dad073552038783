package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zillafan80/inarbit-console/internal/observ"
)

type API struct {
	BaseURL      string  `yaml:"base_url"`
	TimeoutMs    int     `yaml:"timeout_ms"`
	RatePerSec   float64 `yaml:"rate_per_sec"`
}

type Stream struct {
	BaseURL          string `yaml:"base_url"`
	ReconnectDelayMs int    `yaml:"reconnect_delay_ms"`
}

type Polling struct {
	OrdersMs  int `yaml:"orders_ms"`
	FillsMs   int `yaml:"fills_ms"`
	HistoryMs int `yaml:"history_ms"`
	AlertsMs  int `yaml:"alerts_ms"`
}

type Root struct {
	TradingMode string          `yaml:"trading_mode"` // paper | live
	Keep        int             `yaml:"keep"`
	ParamsPath  string          `yaml:"params_path"`
	API         API             `yaml:"api"`
	Stream      Stream          `yaml:"stream"`
	Polling     Polling         `yaml:"polling"`
	Log         observ.LogConfig `yaml:"log"`
}

func Load(path string) (Root, error) {
	var c Root
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}

	if c.TradingMode == "" {
		c.TradingMode = "paper"
	}
	if c.Keep == 0 {
		c.Keep = 200
	}
	if c.ParamsPath == "" {
		c.ParamsPath = "data/reconcile_params.json"
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8091"
	}
	if c.API.TimeoutMs == 0 {
		c.API.TimeoutMs = 5000
	}
	if c.API.RatePerSec == 0 {
		c.API.RatePerSec = 10
	}

	if c.Stream.BaseURL == "" {
		c.Stream.BaseURL = "ws://localhost:8091"
	}
	if c.Stream.ReconnectDelayMs == 0 {
		c.Stream.ReconnectDelayMs = 3000
	}

	if c.Polling.OrdersMs == 0 {
		c.Polling.OrdersMs = 3000
	}
	if c.Polling.FillsMs == 0 {
		c.Polling.FillsMs = 5000
	}
	if c.Polling.HistoryMs == 0 {
		c.Polling.HistoryMs = 10000
	}
	if c.Polling.AlertsMs == 0 {
		c.Polling.AlertsMs = 15000
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	return c, nil
}
