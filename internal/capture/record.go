package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	RecordMagic    uint32 = 0x43454331 // "CEC1"
	RecordVersion  uint16 = 1
	FixedHeaderLen        = 16

	// FlagOutgoing marks a frame sent by the capturing adapter itself.
	FlagOutgoing uint8 = 0x01
	// FlagNacked marks a frame that no follower acknowledged.
	FlagNacked uint8 = 0x02
)

var (
	ErrShortHeader        = errors.New("capture: short record header")
	ErrShortFrame         = errors.New("capture: short record frame")
	ErrBadMagic           = errors.New("capture: bad record magic")
	ErrUnsupportedVersion = errors.New("capture: unsupported record version")
	ErrFrameTooLarge      = errors.New("capture: frame too large")
)

// Header is the fixed record header:
//
//	magic(4) version(2) flags(1) length(1) timestamp_unix_nanos(8)
type Header struct {
	Magic     uint32
	Version   uint16
	Flags     uint8
	Length    uint8
	Timestamp int64
}

// Record is one captured frame on disk.
type Record struct {
	Header Header
	Frame  []byte
}

// Limits constrains record decode/encode memory use.
type Limits struct {
	MaxFrameBytes int
}

func DefaultLimits() Limits {
	return Limits{MaxFrameBytes: 255}
}

// ReadRecord reads one record. A stream that ends cleanly before a header
// yields io.EOF.
func ReadRecord(r io.Reader, limits Limits) (Record, error) {
	var fixed [FixedHeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, ErrShortHeader
		}
		return Record{}, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return Record{}, err
	}
	if h.Magic != RecordMagic {
		return Record{}, ErrBadMagic
	}
	if h.Version != RecordVersion {
		return Record{}, ErrUnsupportedVersion
	}
	if int(h.Length) > limits.MaxFrameBytes {
		return Record{}, ErrFrameTooLarge
	}

	frame := make([]byte, h.Length)
	if h.Length > 0 {
		if _, err := io.ReadFull(r, frame); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Record{}, ErrShortFrame
			}
			return Record{}, err
		}
	}
	return Record{Header: h, Frame: frame}, nil
}

// WriteRecord writes rec, filling in magic, version and length.
func WriteRecord(w io.Writer, rec Record, limits Limits) error {
	if len(rec.Frame) > limits.MaxFrameBytes || len(rec.Frame) > 0xFF {
		return ErrFrameTooLarge
	}
	h := rec.Header
	h.Magic = RecordMagic
	h.Version = RecordVersion
	h.Length = uint8(len(rec.Frame))

	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	if len(rec.Frame) > 0 {
		if _, err := w.Write(rec.Frame); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, FixedHeaderLen)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = h.Flags
	buf[7] = h.Length
	binary.BigEndian.PutUint64(buf[8:16], uint64(h.Timestamp))
	return buf
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) != FixedHeaderLen {
		return Header{}, fmt.Errorf("capture: invalid fixed header length: %d", len(b))
	}
	return Header{
		Magic:     binary.BigEndian.Uint32(b[0:4]),
		Version:   binary.BigEndian.Uint16(b[4:6]),
		Flags:     b[6],
		Length:    b[7],
		Timestamp: int64(binary.BigEndian.Uint64(b[8:16])),
	}, nil
}

// RecordReader adapts a record stream to Source.
type RecordReader struct {
	r      io.Reader
	limits Limits
}

func NewRecordReader(r io.Reader, limits Limits) *RecordReader {
	if limits.MaxFrameBytes <= 0 {
		limits = DefaultLimits()
	}
	return &RecordReader{r: r, limits: limits}
}

func (rr *RecordReader) Next() (Frame, error) {
	rec, err := ReadRecord(rr.r, rr.limits)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Timestamp: time.Unix(0, rec.Header.Timestamp),
		Flags:     rec.Header.Flags,
		Data:      rec.Frame,
	}, nil
}
