package cec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field names, kept compatible with the established cec.* display filters.
const (
	FieldInitiator   = "cec.src"
	FieldDestination = "cec.dst"
	FieldOpcode      = "cec.op"
	FieldParams      = "cec.params"

	FieldAbortOpcode           = "cec.params.op"
	FieldAbortReason           = "cec.params.abort_reason"
	FieldAnalogueBroadcastType = "cec.params.analogue_bcast_type"
	FieldAnalogueFrequency     = "cec.params.analog_freq"
	FieldAudioMute             = "cec.params.audio_mute"
	FieldAudioRate             = "cec.params.audio_status.rate"
	FieldAudioVolume           = "cec.params.audio_status.vol"
	FieldBroadcastSystem       = "cec.params.bcast_sys"
	FieldCDCMessage            = "cec.params.cdc_msg"
	FieldCDCParams             = "cec.params.cdc_params"
	FieldCECVersion            = "cec.params.cec_ver"
	FieldDeckControlMode       = "cec.params.deck_ctrl_mode"
	FieldDeckInfo              = "cec.params.deck_info"
	FieldDeviceType            = "cec.params.dev_type"
	FieldMenuLanguage          = "cec.params.menu_lang"
	FieldMenuRequestType       = "cec.params.menu_request_type"
	FieldMenuState             = "cec.params.menu_state"
	FieldOSDDisplayControl     = "cec.params.osd_display_ctrl"
	FieldOSDName               = "cec.params.osd_name"
	FieldOSDString             = "cec.params.osd_string"
	FieldPhysicalAddress       = "cec.params.phy_addr"
	FieldPlayMode              = "cec.params.play_mode"
	FieldPowerStatus           = "cec.params.pwr_status"
	FieldProgramTitle          = "cec.params.program_title"
	FieldStatusRequest         = "cec.params.status_request"
	FieldSystemAudioStatus     = "cec.params.system_audio_status"
	FieldUserControlCode       = "cec.params.usr_ctrl_code"
	FieldVendorCommand         = "cec.params.vendor_cmd"
	FieldVendorID              = "cec.params.vendor_id"
)

// DecodeParams decodes the parameter block of op into named fields and a
// summary fragment. Sub-fields that do not fit in params are omitted; text
// sub-fields keep the bytes that are present. Opcodes without a layout yield
// nothing.
func DecodeParams(op Opcode, params []byte) ([]Field, string) {
	l, ok := layouts[op]
	if !ok {
		return nil, ""
	}
	r := &paramReader{buf: params}
	if len(params) > 0 {
		r.fields = append(r.fields, newBytesField(FieldParams, params))
	}
	fragment := l.decode(r)
	return r.fields, fragment
}

// paramReader walks a parameter block. Every accessor checks bounds and
// records the field it produced.
type paramReader struct {
	buf    []byte
	fields []Field
}

func (r *paramReader) has(off, n int) bool {
	return off >= 0 && n > 0 && off+n <= len(r.buf)
}

func (r *paramReader) code(off int, name string, table map[uint8]string) (string, bool) {
	if !r.has(off, 1) {
		return "", false
	}
	v := r.buf[off]
	label := lookup(table, v, unknown)
	r.fields = append(r.fields, newUintField(name, uint64(v), label))
	return label, true
}

func (r *paramReader) physicalAddress(off int) (string, bool) {
	if !r.has(off, 2) {
		return "", false
	}
	v := binary.BigEndian.Uint16(r.buf[off : off+2])
	addr := FormatPhysicalAddress(v)
	r.fields = append(r.fields, newUintField(FieldPhysicalAddress, uint64(v), addr))
	return addr, true
}

func (r *paramReader) frequency(off int) (string, bool) {
	if !r.has(off, 2) {
		return "", false
	}
	v := binary.BigEndian.Uint16(r.buf[off : off+2])
	freq := FormatFrequency(v)
	r.fields = append(r.fields, newUintField(FieldAnalogueFrequency, uint64(v), freq))
	return freq, true
}

func (r *paramReader) vendorID(off int) (string, bool) {
	if !r.has(off, 3) {
		return "", false
	}
	b := r.buf[off : off+3]
	v := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	vendor := VendorName(v)
	r.fields = append(r.fields, newUintField(FieldVendorID, uint64(v), vendor))
	return vendor, true
}

// text reads up to n ASCII bytes at off; n < 0 reads to the end.
func (r *paramReader) text(off, n int, name string) (string, bool) {
	if off < 0 || off >= len(r.buf) {
		return "", false
	}
	end := len(r.buf)
	if n >= 0 && off+n < end {
		end = off + n
	}
	s := asciiText(r.buf[off:end])
	r.fields = append(r.fields, newTextField(name, s))
	return s, true
}

// remainder records every byte from off onwards as raw bytes.
func (r *paramReader) remainder(off int, name string) bool {
	if off < 0 || off >= len(r.buf) {
		return false
	}
	r.fields = append(r.fields, newBytesField(name, r.buf[off:]))
	return true
}

// asciiText stops at the first NUL and replaces bytes outside ASCII.
func asciiText(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < utf8.RuneSelf {
			sb.WriteByte(c)
			continue
		}
		sb.WriteRune(utf8.RuneError)
	}
	return sb.String()
}

func quoted(s string, ok bool) string {
	if !ok {
		return ""
	}
	return "'" + s + "'"
}

func prefixed(prefix, s string, ok bool) string {
	if !ok {
		return ""
	}
	return prefix + " " + s
}

func decodeFeatureAbort(r *paramReader) string {
	r.code(0, FieldAbortOpcode, opcodeNames)
	r.code(1, FieldAbortReason, abortReasons)
	return ""
}

func decodeGiveDeckStatus(r *paramReader) string {
	r.code(0, FieldStatusRequest, statusRequests)
	return ""
}

func decodeDeckStatus(r *paramReader) string {
	info, ok := r.code(0, FieldDeckInfo, deckInfo)
	return prefixed("is", quoted(info, ok), ok)
}

func decodeSetMenuLanguage(r *paramReader) string {
	lang, ok := r.text(0, 3, FieldMenuLanguage)
	return prefixed("to", quoted(lang, ok), ok)
}

func decodePlay(r *paramReader) string {
	return quoted(r.code(0, FieldPlayMode, playModes))
}

func decodeDeckControl(r *paramReader) string {
	return quoted(r.code(0, FieldDeckControlMode, deckControlModes))
}

func decodeUserControlPressed(r *paramReader) string {
	key, ok := r.code(0, FieldUserControlCode, userControlCodes)
	if !ok {
		return ""
	}
	return quoted(key, ok) + " button"
}

func decodeSetOSDName(r *paramReader) string {
	name, ok := r.text(0, -1, FieldOSDName)
	return prefixed("to", quoted(name, ok), ok)
}

func decodeSetOSDString(r *paramReader) string {
	r.code(0, FieldOSDDisplayControl, osdDisplayControls)
	return quoted(r.text(1, -1, FieldOSDString))
}

func decodeSetTimerProgramTitle(r *paramReader) string {
	return quoted(r.text(0, -1, FieldProgramTitle))
}

// A request without a physical address asks the audio system to shut down.
func decodeSystemAudioModeRequest(r *paramReader) string {
	if len(r.buf) == 0 {
		return "Shutdown"
	}
	addr, ok := r.physicalAddress(0)
	return prefixed("at", addr, ok)
}

func decodeSetSystemAudioMode(r *paramReader) string {
	status, ok := r.code(0, FieldSystemAudioStatus, systemAudioStates)
	return prefixed("to", quoted(status, ok), ok)
}

func decodeReportAudioStatus(r *paramReader) string {
	if !r.has(0, 1) {
		return ""
	}
	raw := r.buf[0]
	mute := uint8(0)
	if Muted(raw) {
		mute = 1
	}
	volume := FormatVolume(raw)
	r.fields = append(r.fields,
		newUintField(FieldAudioMute, uint64(mute), lookup(audioMuteStates, mute, unknown)),
		newUintField(FieldAudioVolume, uint64(raw&0x7F), volume),
	)
	if mute == 1 {
		return "is Muted"
	}
	return "is at " + volume + " Volume"
}

func decodeSystemAudioModeStatus(r *paramReader) string {
	status, ok := r.code(0, FieldSystemAudioStatus, systemAudioStates)
	return prefixed("is", quoted(status, ok), ok)
}

func decodeRoutingChange(r *paramReader) string {
	from, ok := r.physicalAddress(0)
	if !ok {
		return ""
	}
	to, ok := r.physicalAddress(2)
	if !ok {
		return "from " + from
	}
	return fmt.Sprintf("from %s to %s", from, to)
}

func decodeRoutingInformation(r *paramReader) string {
	addr, ok := r.physicalAddress(0)
	return prefixed("to", addr, ok)
}

func decodeActiveSource(r *paramReader) string {
	addr, ok := r.physicalAddress(0)
	return prefixed("to", addr, ok)
}

func decodeReportPhysicalAddress(r *paramReader) string {
	addr, ok := r.physicalAddress(0)
	r.code(2, FieldDeviceType, deviceTypes)
	return prefixed("of", addr, ok)
}

func decodeSetStreamPath(r *paramReader) string {
	addr, ok := r.physicalAddress(0)
	return prefixed("to", addr, ok)
}

func decodeDeviceVendorID(r *paramReader) string {
	vendor, ok := r.vendorID(0)
	return prefixed("is", vendor, ok)
}

func decodeVendorCommand(r *paramReader) string {
	r.remainder(0, FieldVendorCommand)
	return ""
}

func decodeMenuRequest(r *paramReader) string {
	kind, ok := r.code(0, FieldMenuRequestType, menuRequestTypes)
	return prefixed("to", kind, ok)
}

func decodeMenuStatus(r *paramReader) string {
	state, ok := r.code(0, FieldMenuState, menuStates)
	if !ok {
		return ""
	}
	return "is in a(n) " + state + " state"
}

func decodeReportPowerStatus(r *paramReader) string {
	state, ok := r.code(0, FieldPowerStatus, powerStates)
	return prefixed("is", state, ok)
}

func decodeSetAnalogueService(r *paramReader) string {
	r.code(0, FieldAnalogueBroadcastType, analogueBroadcastTypes)
	freq, ok := r.frequency(1)
	system, hasSystem := r.code(3, FieldBroadcastSystem, broadcastSystems)
	if !ok {
		return ""
	}
	if !hasSystem {
		return "at " + freq
	}
	return fmt.Sprintf("at %s (%s)", freq, system)
}

func decodeSetAudioRate(r *paramReader) string {
	rate, ok := r.code(0, FieldAudioRate, audioRates)
	return prefixed("to", quoted(rate, ok), ok)
}

func decodeInactiveSource(r *paramReader) string {
	addr, ok := r.physicalAddress(0)
	return prefixed("at", addr, ok)
}

func decodeCECVersion(r *paramReader) string {
	version, ok := r.code(0, FieldCECVersion, cecVersions)
	return prefixed("is", version, ok)
}

// The first three bytes carry the vendor ID; the command is whatever follows.
func decodeVendorCommandWithID(r *paramReader) string {
	vendor, ok := r.vendorID(0)
	r.remainder(3, FieldVendorCommand)
	return prefixed("from", vendor, ok)
}

func decodeCDCMessage(r *paramReader) string {
	r.physicalAddress(0)
	msg, ok := r.code(2, FieldCDCMessage, cdcMessages)
	r.remainder(3, FieldCDCParams)
	return quoted(msg, ok)
}
