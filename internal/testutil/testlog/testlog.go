// Package testlog sets up logging for package tests.
package testlog

import (
	"testing"

	"github.com/danmuck/cecscope/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Start configures the global test logger once and returns a logger that
// writes through t, so its lines only show for failing or verbose runs.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	logging.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("start")
	return zerolog.New(zerolog.NewTestWriter(t)).With().Str("test", t.Name()).Logger()
}
