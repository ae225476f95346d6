// Package logging configures the process-wide zerolog logger.
//
// mk48 logs with bare fmt.Println/log.Println; this upgrades to the
// structured-logging idiom the rest of the retrieval pack uses for
// comparable websocket game/session backends (leemwalker-thousand-worlds).
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init installs the global logger. Call once from main.
func Init(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
