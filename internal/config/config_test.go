package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "console.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBackfillsDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "trading_mode: live\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TradingMode != "live" {
		t.Fatalf("explicit value lost: %s", c.TradingMode)
	}
	if c.Keep != 200 {
		t.Fatalf("keep default: %d", c.Keep)
	}
	if c.API.BaseURL == "" || c.Stream.BaseURL == "" {
		t.Fatalf("endpoint defaults missing: %+v", c)
	}
	if c.Stream.ReconnectDelayMs != 3000 {
		t.Fatalf("reconnect delay default: %d", c.Stream.ReconnectDelayMs)
	}
	if c.Polling.OrdersMs == 0 || c.Polling.HistoryMs == 0 {
		t.Fatalf("polling defaults missing: %+v", c.Polling)
	}
	if c.Log.Level != "info" {
		t.Fatalf("log level default: %s", c.Log.Level)
	}
}

func TestLoadExplicitValuesWin(t *testing.T) {
	c, err := Load(writeConfig(t, `
keep: 500
api:
  base_url: http://engine:9000
  rate_per_sec: 2
stream:
  reconnect_delay_ms: 250
log:
  level: debug
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Keep != 500 || c.API.BaseURL != "http://engine:9000" || c.API.RatePerSec != 2 {
		t.Fatalf("explicit values lost: %+v", c)
	}
	if c.Stream.ReconnectDelayMs != 250 || c.Log.Level != "debug" {
		t.Fatalf("explicit values lost: %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing config file must error")
	}
}
