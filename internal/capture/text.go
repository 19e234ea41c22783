package capture

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var (
	ErrSkipLine = errors.New("capture: no frame on line")
	ErrBadHex   = errors.New("capture: malformed hex frame")
)

// LineError reports a text line that could not be parsed.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("capture: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLine extracts the frame bytes from one text line. Accepted forms:
//
//	10:00:00:03
//	10 00 00 03
//	0x10 0x36
//	10000003
//	TRAFFIC: [   11041]	>> 4f:82:10:00
//
// Blank lines and lines starting with '#' return ErrSkipLine.
func ParseLine(line string) ([]byte, error) {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return nil, ErrSkipLine
	}
	if i := lastMarker(s); i >= 0 {
		tokens := strings.Fields(s[i+2:])
		if len(tokens) == 0 {
			return nil, ErrSkipLine
		}
		s = tokens[0]
	}

	var parts []string
	switch {
	case strings.Contains(s, ":"):
		parts = strings.Split(s, ":")
	case strings.ContainsAny(s, " \t"):
		parts = strings.Fields(s)
	default:
		b, err := hex.DecodeString(trimHexPrefix(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadHex, err)
		}
		return b, nil
	}

	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		p = trimHexPrefix(strings.TrimSpace(p))
		if len(p) == 0 || len(p) > 2 {
			return nil, fmt.Errorf("%w: %q", ErrBadHex, p)
		}
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadHex, p)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

func lastMarker(s string) int {
	return max(strings.LastIndex(s, ">>"), strings.LastIndex(s, "<<"))
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// LineReader reads one frame per non-empty text line.
type LineReader struct {
	sc   *bufio.Scanner
	line int
	now  func() time.Time
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{sc: bufio.NewScanner(r), now: time.Now}
}

// Next returns the next frame. Unparseable lines are returned as *LineError;
// the reader stays usable after one.
func (lr *LineReader) Next() (Frame, error) {
	for lr.sc.Scan() {
		lr.line++
		text := lr.sc.Text()
		data, err := ParseLine(text)
		if errors.Is(err, ErrSkipLine) {
			continue
		}
		if err != nil {
			return Frame{}, &LineError{Line: lr.line, Text: text, Err: err}
		}
		return Frame{Timestamp: lr.now(), Data: data}, nil
	}
	if err := lr.sc.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{}, io.EOF
}
