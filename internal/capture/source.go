package capture

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var ErrUnknownFormat = errors.New("capture: unknown format")

// Frame is one captured frame. Data is owned by the caller.
type Frame struct {
	Timestamp time.Time
	Flags     uint8
	Data      []byte
}

// Source yields frames until it returns io.EOF.
type Source interface {
	Next() (Frame, error)
}

// Format selects how a capture stream is framed.
type Format string

const (
	FormatText   Format = "text"
	FormatRecord Format = "record"
)

// ParseFormat accepts a format name; the empty string selects text.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatText:
		return FormatText, nil
	case FormatRecord:
		return FormatRecord, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// NewSource wraps r in the reader for format.
func NewSource(format Format, r io.Reader, limits Limits) (Source, error) {
	switch format {
	case FormatText, "":
		return NewLineReader(r), nil
	case FormatRecord:
		return NewRecordReader(r, limits), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
