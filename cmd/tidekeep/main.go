// SPDX-License-Identifier: MIT

// Command tidekeep runs the authoritative island-world game server
// described in spec.md: terrain, stone physics, tower formation, cloud
// destruction, and king arbitration, reachable over one WebSocket per
// client. Adapted from mk48's server_main/main.go CLI/HTTP wiring.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"tidekeep/internal/config"
	"tidekeep/internal/hub"
	"tidekeep/internal/logging"
	"tidekeep/internal/metrics"
	"tidekeep/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	logging.Init(os.Getenv("TIDEKEEP_DEBUG") != "")

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return 1
	}
	if cfg.MinPlayers < 0 {
		log.Error().Int("players", cfg.MinPlayers).Msg("invalid -players")
		return 1
	}

	reg := prometheus.NewRegistry()
	m := metrics.New()
	m.Register(reg)

	reporter := report.New(cfg.Report)

	h := hub.New(&cfg, m, reporter)
	go h.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeSocket)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		_ = json.NewEncoder(w).Encode(h.StatusJSON())
	})
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	server := &http.Server{
		Addr:    fmt.Sprint(":", cfg.Port),
		Handler: mux,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.ListenAndServe() }()

	log.Info().Int("port", cfg.Port).Msg("tidekeep server started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("listen error")
			return 1
		}
	case <-sig:
		log.Info().Msg("shutting down")
		h.Shutdown()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown failed")
		}
	}

	return 0
}
