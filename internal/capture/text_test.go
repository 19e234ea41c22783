package capture

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/danmuck/cecscope/internal/testutil/testlog"
)

func TestParseLineFormats(t *testing.T) {
	want := []byte{0x10, 0x00, 0x00, 0x03}
	lines := []string{
		"10:00:00:03",
		"  10 00 00 03  ",
		"0x10 0x00 0x00 0x03",
		"10000003",
		"TRAFFIC: [           11041]\t>> 10:00:00:03",
		"TRAFFIC: [           11050]\t<< 10:00:00:03",
	}
	for _, line := range lines {
		got, err := ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("ParseLine(%q) = % x, want % x", line, got, want)
		}
	}
}

func TestParseLineSkipsBlankAndComments(t *testing.T) {
	for _, line := range []string{"", "   ", "# captured on the living room tv", "TRAFFIC: [ 1] >>"} {
		if _, err := ParseLine(line); !errors.Is(err, ErrSkipLine) {
			t.Fatalf("ParseLine(%q): expected ErrSkipLine, got %v", line, err)
		}
	}
}

func TestParseLineRejectsBadHex(t *testing.T) {
	for _, line := range []string{"1g:00", "100:00", "10::36", "abc", "NOTICE: connection opened"} {
		if _, err := ParseLine(line); !errors.Is(err, ErrBadHex) {
			t.Fatalf("ParseLine(%q): expected ErrBadHex, got %v", line, err)
		}
	}
}

func TestLineReaderReportsBadLinesAndContinues(t *testing.T) {
	testlog.Start(t)
	in := strings.Join([]string{
		"# header",
		"4f:82:10:00",
		"zz",
		"",
		"10:36",
	}, "\n")
	lr := NewLineReader(strings.NewReader(in))

	f, err := lr.Next()
	if err != nil || !bytes.Equal(f.Data, []byte{0x4f, 0x82, 0x10, 0x00}) {
		t.Fatalf("first frame: % x %v", f.Data, err)
	}

	_, err = lr.Next()
	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected LineError, got %v", err)
	}
	if lineErr.Line != 3 || !errors.Is(err, ErrBadHex) {
		t.Fatalf("unexpected line error: %+v", lineErr)
	}

	f, err = lr.Next()
	if err != nil || !bytes.Equal(f.Data, []byte{0x10, 0x36}) {
		t.Fatalf("second frame: % x %v", f.Data, err)
	}
	if _, err := lr.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Fatalf("default format: %q %v", f, err)
	}
	if f, err := ParseFormat("RECORD"); err != nil || f != FormatRecord {
		t.Fatalf("record format: %q %v", f, err)
	}
	if _, err := ParseFormat("pcap"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestOpenSerialRequiresPort(t *testing.T) {
	if _, err := OpenSerial(SerialConfig{}); !errors.Is(err, ErrNoSerialPort) {
		t.Fatalf("expected ErrNoSerialPort, got %v", err)
	}
	if _, err := OpenSerial(SerialConfig{Port: "/dev/cecscope-missing-port"}); err == nil {
		t.Fatalf("expected open error for missing port")
	}
}
