// Package config loads the read-only, startup-only configuration record
// described in spec.md §6. It is populated once from flags whose defaults
// are seeded from environment variables (mk48-main.go style) and never
// mutated afterward.
package config

import (
	"flag"
	"os"
	"strconv"
)

// World holds terrain shape and global simulation parameters.
type World struct {
	Size              float32 // terrain side length, world units
	Gravity           float32 // negative
	MaxTerrainHeight  float32
	MinTerrainHeight  float32
	TerrainXScale     float32
	TerrainYScale     float32
	EdgeFalloff       float32
	ShoreRadius       float32 // fraction of half-world-size
	CloudHeight       float32
}

// Stone holds stone spawner and physics coefficients.
type Stone struct {
	MaxCount      int
	Bounce        float32
	Friction      float32
	RollFactor    float32
	MaxVelocity   float32
	StopThreshold float32
	WaveStrength  float32
	// Depth is the vertical size of one stacked stone block. Not named in
	// every upstream config variant (spec.md §9); treated here as a first
	// class Stone constant since king arbitration depends on it.
	Depth float32
}

// Tower holds tower formation/leveling thresholds.
type Tower struct {
	BaseRadius    float32
	GroupRadius   float32
	StonesPerLevel int
}

// Physics holds global time-scaling knobs.
type Physics struct {
	SpeedMultiplier float32
}

// Config is the full, immutable startup configuration.
type Config struct {
	World   World
	Stone   Stone
	Tower   Tower
	Physics Physics

	Port       int
	MinPlayers int
	Auth       string
	StaticDir  string

	// Report holds optional external status-reporting settings (internal/report).
	Report Report
}

// Report configures the optional AWS status snapshot uploader. Empty
// Bucket disables reporting (the Offline reporter is used).
type Report struct {
	Bucket string
	Region string
	Prefix string
}

// Default returns the configuration used when no flags/env vars override it.
func Default() Config {
	return Config{
		World: World{
			Size:             envFloat("TIDEKEEP_WORLD_SIZE", 1000),
			Gravity:          -9.8,
			MaxTerrainHeight: 35,
			MinTerrainHeight: -25,
			TerrainXScale:    18,
			TerrainYScale:    18,
			EdgeFalloff:      4,
			ShoreRadius:      0.8,
			CloudHeight:      60,
		},
		Stone: Stone{
			MaxCount:      48,
			Bounce:        0.4,
			Friction:      0.92,
			RollFactor:    1.4,
			MaxVelocity:   22,
			StopThreshold: 0.08,
			WaveStrength:  3.2,
			Depth:         1.0,
		},
		Tower: Tower{
			BaseRadius:     2.5,
			GroupRadius:    2.0,
			StonesPerLevel: 3,
		},
		Physics: Physics{
			SpeedMultiplier: 1.0,
		},
		Port:       envInt("PORT", 8192),
		MinPlayers: 0,
		Auth:       os.Getenv("TIDEKEEP_AUTH"),
		StaticDir:  os.Getenv("TIDEKEEP_STATIC_DIR"),
		Report: Report{
			Bucket: os.Getenv("TIDEKEEP_REPORT_BUCKET"),
			Region: envOr("TIDEKEEP_REPORT_REGION", "us-east-1"),
			Prefix: envOr("TIDEKEEP_REPORT_PREFIX", "tidekeep"),
		},
	}
}

// Load parses flags (seeded from environment-derived defaults) into a Config.
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("tidekeep", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "http/websocket service port")
	fs.IntVar(&cfg.MinPlayers, "players", cfg.MinPlayers, "minimum number of players (reserved, no bots are spawned)")
	fs.StringVar(&cfg.Auth, "auth", cfg.Auth, "admin auth code, unlocks authority-gated actions")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "directory of static client assets to serve, empty disables")
	fs.StringVar(&cfg.Report.Bucket, "report-bucket", cfg.Report.Bucket, "S3 bucket for periodic status snapshots, empty disables reporting")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(key string, fallback int) int {
	if raw, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float32) float32 {
	if raw, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(raw, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

func envOr(key, fallback string) string {
	if raw, ok := os.LookupEnv(key); ok && raw != "" {
		return raw
	}
	return fallback
}
