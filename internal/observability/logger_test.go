package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerTagsNodeAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "den", zerolog.WarnLevel, true)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("frame skipped")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "frame skipped") || !strings.Contains(out, "node=den") {
		t.Fatalf("unexpected log output: %q", out)
	}
}
