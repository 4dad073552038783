package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zillafan80/inarbit-console/internal/adapters"
	"github.com/zillafan80/inarbit-console/internal/analytics"
	"github.com/zillafan80/inarbit-console/internal/config"
	"github.com/zillafan80/inarbit-console/internal/console"
	"github.com/zillafan80/inarbit-console/internal/observ"
	"github.com/zillafan80/inarbit-console/internal/params"
	"github.com/zillafan80/inarbit-console/internal/transport"
)

func main() {
	cfgPath := flag.String("config", "config/console.yaml", "path to config file")
	metricsAddr := flag.String("metrics", "", "optional metrics listen address, e.g. :9095")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := observ.NewLogger(cfg.Log)

	store := params.NewStore(cfg.ParamsPath)
	working, err := store.Load()
	if err != nil {
		log.WithError(err).Warn("falling back to default parameters")
	}

	api := adapters.NewConsoleAPI(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutMs)*time.Millisecond, cfg.API.RatePerSec, log)
	mon := console.New(api, cfg.Stream.BaseURL, cfg.Keep, time.Duration(cfg.Stream.ReconnectDelayMs)*time.Millisecond, log)
	defer mon.Close()

	mon.SetTopic(transport.Topic{Channel: "orders", TradingMode: cfg.TradingMode})

	listQ := adapters.ListQuery{TradingMode: cfg.TradingMode, Limit: 100}
	histQ := adapters.HistoryQuery{TradingMode: cfg.TradingMode, Limit: 500}
	mon.StartPolling("orders", time.Duration(cfg.Polling.OrdersMs)*time.Millisecond, func(ctx context.Context) error {
		return mon.RefreshOrders(ctx, listQ)
	})
	mon.StartPolling("fills", time.Duration(cfg.Polling.FillsMs)*time.Millisecond, func(ctx context.Context) error {
		return mon.RefreshFills(ctx, listQ)
	})
	mon.StartPolling("history", time.Duration(cfg.Polling.HistoryMs)*time.Millisecond, func(ctx context.Context) error {
		return mon.RefreshHistory(ctx, histQ)
	})
	mon.StartPolling("alerts", time.Duration(cfg.Polling.AlertsMs)*time.Millisecond, func(ctx context.Context) error {
		return mon.RefreshAlerts(ctx)
	})

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observ.Handler())
		mux.Handle("/healthz", observ.Health())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	log.WithField("trading_mode", cfg.TradingMode).Info("console started")

	status := time.NewTicker(30 * time.Second)
	defer status.Stop()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-status.C:
			bundle := mon.Analytics(analytics.Window15m)
			merged, ok := mon.SuggestedParams(working)
			entry := log.WithFields(map[string]any{
				"buffered_events": mon.Events().Len(),
				"stream_messages": observ.CounterValue("channel_messages_total"),
				"pnl_count":       bundle.Summary.Count,
				"pnl_total":       bundle.Summary.Total,
				"win_rate":        bundle.Summary.WinRate,
				"max_drawdown":    bundle.Risk.MaxDrawdown,
			})
			if ok {
				entry = entry.WithField("suggested_limit", merged.Limit)
			}
			entry.Info("status")
		case <-sig:
			log.Info("shutting down")
			return
		}
	}
}
