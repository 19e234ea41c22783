package capture

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func TestReadWriteRecordRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := []Record{
		{Header: Header{Flags: FlagOutgoing, Timestamp: ts.UnixNano()}, Frame: []byte{0x10, 0x00, 0x00, 0x03}},
		{Header: Header{Timestamp: ts.Add(time.Second).UnixNano()}, Frame: []byte{0x4F}},
	}
	var buf bytes.Buffer
	for _, rec := range in {
		if err := WriteRecord(&buf, rec, DefaultLimits()); err != nil {
			t.Fatalf("write record: %v", err)
		}
	}

	rr := NewRecordReader(&buf, DefaultLimits())
	for i, want := range in {
		got, err := rr.Next()
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if !bytes.Equal(got.Data, want.Frame) {
			t.Fatalf("record %d: frame % x, want % x", i, got.Data, want.Frame)
		}
		if got.Flags != want.Header.Flags || !got.Timestamp.Equal(time.Unix(0, want.Header.Timestamp)) {
			t.Fatalf("record %d: header mismatch: %+v", i, got)
		}
	}
	if _, err := rr.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReadRecordShortHeader(t *testing.T) {
	_, err := ReadRecord(bytes.NewReader([]byte{1, 2, 3}), DefaultLimits())
	if !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
}

func TestReadRecordBadMagic(t *testing.T) {
	buf := EncodeHeader(Header{Magic: 0xEDCE1001, Version: RecordVersion})
	_, err := ReadRecord(bytes.NewReader(buf), DefaultLimits())
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestReadRecordUnsupportedVersion(t *testing.T) {
	buf := EncodeHeader(Header{Magic: RecordMagic, Version: 9})
	_, err := ReadRecord(bytes.NewReader(buf), DefaultLimits())
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestReadRecordLimitsAndTruncation(t *testing.T) {
	head := EncodeHeader(Header{Magic: RecordMagic, Version: RecordVersion, Length: 20})
	if _, err := ReadRecord(bytes.NewReader(head), Limits{MaxFrameBytes: 16}); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	short := append(head, 0x10, 0x36)
	if _, err := ReadRecord(bytes.NewReader(short), DefaultLimits()); !errors.Is(err, ErrShortFrame) {
		t.Fatalf("expected ErrShortFrame, got %v", err)
	}
}

func TestWriteRecordRejectsOversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRecord(&buf, Record{Frame: make([]byte, 17)}, Limits{MaxFrameBytes: 16})
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written")
	}
}

func TestNewSourceSelectsReader(t *testing.T) {
	src, err := NewSource(FormatText, bytes.NewReader([]byte("10:36\n")), DefaultLimits())
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	if _, ok := src.(*LineReader); !ok {
		t.Fatalf("expected LineReader, got %T", src)
	}
	src, err = NewSource(FormatRecord, bytes.NewReader(nil), DefaultLimits())
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	if _, ok := src.(*RecordReader); !ok {
		t.Fatalf("expected RecordReader, got %T", src)
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF from empty record stream, got %v", err)
	}
}
