// Package metrics holds the Prometheus collectors exported by the server.
// Grounded on leemwalker-thousand-worlds' internal/metrics package, which
// wires the same client_golang collectors into a comparable realtime
// backend.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all collectors registered by the server.
type Metrics struct {
	TickDuration      prometheus.Histogram
	ActiveStones      prometheus.Gauge
	ActiveTowers      prometheus.Gauge
	ActiveClouds      prometheus.Gauge
	ActiveConnections prometheus.Gauge
	TowersDestroyed   prometheus.Counter
	KingChanges       prometheus.Counter
}

// New builds a fresh, unregistered Metrics set.
func New() *Metrics {
	return &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tidekeep_tick_duration_seconds",
			Help:    "Duration of one physics+rules tick.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		ActiveStones: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tidekeep_active_stones",
			Help: "Number of stones currently in World State.",
		}),
		ActiveTowers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tidekeep_active_towers",
			Help: "Number of towers currently standing.",
		}),
		ActiveClouds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tidekeep_active_clouds",
			Help: "Number of clouds in the world.",
		}),
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tidekeep_active_connections",
			Help: "Number of open WebSocket connections.",
		}),
		TowersDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tidekeep_towers_destroyed_total",
			Help: "Total towers destroyed by cloud destruction sequences.",
		}),
		KingChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tidekeep_king_changes_total",
			Help: "Total king_update transitions broadcast.",
		}),
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.TickDuration,
		m.ActiveStones,
		m.ActiveTowers,
		m.ActiveClouds,
		m.ActiveConnections,
		m.TowersDestroyed,
		m.KingChanges,
	)
}
