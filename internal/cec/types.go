package cec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

const unknown = "Unknown"

// Initiator is the logical address of the device that sent a frame.
// 0xF reads as Unregistered.
type Initiator uint8

func (a Initiator) String() string {
	return lookup(initiatorNames, uint8(a)&0x0F, unknown)
}

// Destination is the logical address a frame is sent to.
// 0xF reads as Broadcast.
type Destination uint8

func (a Destination) String() string {
	return lookup(destinationNames, uint8(a)&0x0F, unknown)
}

// Opcode selects the message type of a non-poll frame.
type Opcode uint8

const (
	OpFeatureAbort           Opcode = 0x00
	OpGiveDeckStatus         Opcode = 0x1A
	OpDeckStatus             Opcode = 0x1B
	OpSetMenuLanguage        Opcode = 0x32
	OpStandby                Opcode = 0x36
	OpPlay                   Opcode = 0x41
	OpDeckControl            Opcode = 0x42
	OpUserControlPressed     Opcode = 0x44
	OpUserControlReleased    Opcode = 0x45
	OpSetOSDName             Opcode = 0x47
	OpSetOSDString           Opcode = 0x64
	OpSetTimerProgramTitle   Opcode = 0x67
	OpSystemAudioModeRequest Opcode = 0x70
	OpSetSystemAudioMode     Opcode = 0x72
	OpReportAudioStatus      Opcode = 0x7A
	OpSystemAudioModeStatus  Opcode = 0x7E
	OpRoutingChange          Opcode = 0x80
	OpRoutingInformation     Opcode = 0x81
	OpActiveSource           Opcode = 0x82
	OpReportPhysicalAddress  Opcode = 0x84
	OpSetStreamPath          Opcode = 0x86
	OpDeviceVendorID         Opcode = 0x87
	OpVendorCommand          Opcode = 0x89
	OpVendorRemoteButtonDown Opcode = 0x8A
	OpMenuRequest            Opcode = 0x8D
	OpMenuStatus             Opcode = 0x8E
	OpReportPowerStatus      Opcode = 0x90
	OpSetAnalogueService     Opcode = 0x92
	OpSetAudioRate           Opcode = 0x9A
	OpInactiveSource         Opcode = 0x9D
	OpCECVersion             Opcode = 0x9E
	OpVendorCommandWithID    Opcode = 0xA0
	OpCDCMessage             Opcode = 0xF8
	OpAbort                  Opcode = 0xFF
)

func (op Opcode) String() string {
	return lookup(opcodeNames, uint8(op), unknown)
}

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindUint Kind = iota + 1
	KindBytes
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// Value is a decoded field value. Label carries the symbolic name drawn from
// a lookup table or formatter, when one applies.
type Value struct {
	Kind  Kind
	Uint  uint64
	Bytes []byte
	Text  string
	Label string
}

// Field is one named value of a decoded frame.
type Field struct {
	Name  string
	Value Value
}

func newUintField(name string, v uint64, label string) Field {
	return Field{Name: name, Value: Value{Kind: KindUint, Uint: v, Label: label}}
}

func newBytesField(name string, v []byte) Field {
	buf := make([]byte, len(v))
	copy(buf, v)
	return Field{Name: name, Value: Value{Kind: KindBytes, Bytes: buf}}
}

func newTextField(name string, v string) Field {
	return Field{Name: name, Value: Value{Kind: KindText, Text: v}}
}

// Uint returns the field value as an unsigned integer.
func (f Field) Uint() (uint64, error) {
	if f.Value.Kind != KindUint {
		return 0, ErrFieldTypeMismatch
	}
	return f.Value.Uint, nil
}

// Bytes returns a copy of the field value as bytes.
func (f Field) Bytes() ([]byte, error) {
	if f.Value.Kind != KindBytes {
		return nil, ErrFieldTypeMismatch
	}
	buf := make([]byte, len(f.Value.Bytes))
	copy(buf, f.Value.Bytes)
	return buf, nil
}

// Text returns the field value as text.
func (f Field) Text() (string, error) {
	if f.Value.Kind != KindText {
		return "", ErrFieldTypeMismatch
	}
	return f.Value.Text, nil
}

// Display renders the field value the way a tree view shows it.
func (f Field) Display() string {
	v := f.Value
	switch v.Kind {
	case KindUint:
		if v.Label != "" {
			return fmt.Sprintf("%s (0x%02x)", v.Label, v.Uint)
		}
		return fmt.Sprintf("%d", v.Uint)
	case KindBytes:
		return hex.EncodeToString(v.Bytes)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

type fieldJSON struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

func (f Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{Name: f.Name, Kind: f.Value.Kind.String(), Label: f.Value.Label}
	switch f.Value.Kind {
	case KindUint:
		out.Value = f.Value.Uint
	case KindBytes:
		out.Value = hex.EncodeToString(f.Value.Bytes)
	case KindText:
		out.Value = f.Value.Text
	}
	return json.Marshal(out)
}

// DecodedFrame is the result of decoding one frame. It is built once per call
// and never retained by the decoder.
type DecodedFrame struct {
	Initiator   Initiator
	Destination Destination

	// Opcode is nil for poll frames.
	Opcode      *Opcode
	Fields      []Field
	Summary     string
	Diagnostics []Diagnostic

	// Length is the input length; Consumed counts header, opcode and the
	// parameter bytes actually decoded.
	Length   int
	Consumed int
}

// Source is the initiator column text.
func (f *DecodedFrame) Source() string {
	return f.Initiator.String()
}

// Dest is the destination column text.
func (f *DecodedFrame) Dest() string {
	return f.Destination.String()
}

func (f *DecodedFrame) IsPoll() bool {
	return f.Opcode == nil
}

// Extra returns the number of trailing bytes left undecoded.
func (f *DecodedFrame) Extra() int {
	if f.Length > f.Consumed {
		return f.Length - f.Consumed
	}
	return 0
}

// Field returns the first field with the given name.
func (f *DecodedFrame) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldsNamed returns every field with the given name, in decode order.
func (f *DecodedFrame) FieldsNamed(name string) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Name == name {
			out = append(out, field)
		}
	}
	return out
}

type frameJSON struct {
	Source      string       `json:"src"`
	Dest        string       `json:"dst"`
	Initiator   uint8        `json:"initiator"`
	Destination uint8        `json:"destination"`
	Opcode      *uint8       `json:"opcode,omitempty"`
	OpcodeName  string       `json:"opcode_name,omitempty"`
	Summary     string       `json:"summary"`
	Fields      []Field      `json:"fields"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Length      int          `json:"length"`
	Consumed    int          `json:"consumed"`
}

func (f *DecodedFrame) MarshalJSON() ([]byte, error) {
	out := frameJSON{
		Source:      f.Source(),
		Dest:        f.Dest(),
		Initiator:   uint8(f.Initiator),
		Destination: uint8(f.Destination),
		Summary:     f.Summary,
		Fields:      f.Fields,
		Diagnostics: f.Diagnostics,
		Length:      f.Length,
		Consumed:    f.Consumed,
	}
	if f.Opcode != nil {
		op := uint8(*f.Opcode)
		out.Opcode = &op
		out.OpcodeName = f.Opcode.String()
	}
	return json.Marshal(out)
}
