package cec

import (
	"fmt"
	"strings"
)

// Observer receives the outcome of every decode call.
type Observer interface {
	FrameDecoded(f *DecodedFrame)
	FrameRejected(err error)
}

// Decoder decodes frames. The zero value is ready to use; it holds no
// per-frame state and may be shared between goroutines.
type Decoder struct {
	Observer Observer
}

// Decode decodes b with a zero Decoder.
func Decode(b []byte) (*DecodedFrame, error) {
	return Decoder{}.Decode(b)
}

// Decode interprets b as one CEC frame. The only failure is an empty input;
// unknown codes, truncated parameters and trailing bytes are reported in the
// returned frame.
func (d Decoder) Decode(b []byte) (*DecodedFrame, error) {
	if len(b) == 0 {
		if d.Observer != nil {
			d.Observer.FrameRejected(ErrInvalidFrame)
		}
		return nil, ErrInvalidFrame
	}

	header := b[0]
	f := &DecodedFrame{
		Initiator:   Initiator(header >> 4),
		Destination: Destination(header & 0x0F),
		Length:      len(b),
		Consumed:    1,
	}
	f.Fields = append(f.Fields,
		newUintField(FieldInitiator, uint64(f.Initiator), f.Initiator.String()),
		newUintField(FieldDestination, uint64(f.Destination), f.Destination.String()),
	)

	var parts []string
	if len(b) == 1 {
		parts = append(parts, "Poll for "+f.Destination.String())
	} else {
		op := Opcode(b[1])
		f.Opcode = &op
		f.Fields = append(f.Fields, newUintField(FieldOpcode, uint64(op), op.String()))
		parts = append(parts, op.String())

		params := b[2:]
		if n := Resolve(op, len(b)); n < len(params) {
			params = params[:n]
		}
		fields, fragment := DecodeParams(op, params)
		f.Fields = append(f.Fields, fields...)
		f.Consumed = 2 + len(params)
		if fragment != "" {
			parts = append(parts, fragment)
		}
	}

	f.Diagnostics = diagnose(f)
	if extra := f.Extra(); extra > 0 {
		parts = append(parts, fmt.Sprintf("[Extra %d bytes]", extra))
	}
	f.Summary = strings.Join(parts, " ")

	if d.Observer != nil {
		d.Observer.FrameDecoded(f)
	}
	return f, nil
}
