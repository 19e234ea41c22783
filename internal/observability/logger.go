package observability

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the service logger for a decoder node on stdout and
// returns it.
func InitLogger(node string, level zerolog.Level) zerolog.Logger {
	noColor := !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
	logger := NewLogger(colorable.NewColorableStdout(), node, level, noColor)
	log.Logger = logger
	return logger
}

// NewLogger builds a console logger tagged with the node name.
func NewLogger(w io.Writer, node string, level zerolog.Level, noColor bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("node", node).Logger()
}
