package cec

type lengthRule uint8

const (
	// fixed: size bytes.
	ruleFixed lengthRule = iota
	// rest: every byte after the opcode.
	ruleRest
	// atLeast: size bytes when the whole frame is at least minFrame long,
	// otherwise none.
	ruleAtLeast
)

// paramDecoder decodes one opcode's parameter block and returns the summary
// fragment.
type paramDecoder func(r *paramReader) string

type layout struct {
	rule     lengthRule
	size     int
	minFrame int
	decode   paramDecoder
}

func fixed(n int, fn paramDecoder) layout {
	return layout{rule: ruleFixed, size: n, decode: fn}
}

func rest(fn paramDecoder) layout {
	return layout{rule: ruleRest, decode: fn}
}

func atLeast(minFrame, n int, fn paramDecoder) layout {
	return layout{rule: ruleAtLeast, size: n, minFrame: minFrame, decode: fn}
}

var layouts = map[Opcode]layout{
	OpFeatureAbort:           fixed(2, decodeFeatureAbort),
	OpGiveDeckStatus:         fixed(1, decodeGiveDeckStatus),
	OpDeckStatus:             fixed(1, decodeDeckStatus),
	OpSetMenuLanguage:        fixed(3, decodeSetMenuLanguage),
	OpPlay:                   fixed(1, decodePlay),
	OpDeckControl:            fixed(1, decodeDeckControl),
	OpUserControlPressed:     fixed(1, decodeUserControlPressed),
	OpSetOSDName:             rest(decodeSetOSDName),
	OpSetOSDString:           rest(decodeSetOSDString),
	OpSetTimerProgramTitle:   rest(decodeSetTimerProgramTitle),
	OpSystemAudioModeRequest: atLeast(4, 2, decodeSystemAudioModeRequest),
	OpSetSystemAudioMode:     fixed(1, decodeSetSystemAudioMode),
	OpReportAudioStatus:      fixed(1, decodeReportAudioStatus),
	OpSystemAudioModeStatus:  fixed(1, decodeSystemAudioModeStatus),
	OpRoutingChange:          fixed(4, decodeRoutingChange),
	OpRoutingInformation:     fixed(2, decodeRoutingInformation),
	OpActiveSource:           fixed(2, decodeActiveSource),
	OpReportPhysicalAddress:  fixed(3, decodeReportPhysicalAddress),
	OpSetStreamPath:          fixed(2, decodeSetStreamPath),
	OpDeviceVendorID:         fixed(3, decodeDeviceVendorID),
	OpVendorCommand:          rest(decodeVendorCommand),
	OpVendorRemoteButtonDown: rest(decodeVendorCommand),
	OpMenuRequest:            fixed(1, decodeMenuRequest),
	OpMenuStatus:             fixed(1, decodeMenuStatus),
	OpReportPowerStatus:      fixed(1, decodeReportPowerStatus),
	OpSetAnalogueService:     fixed(4, decodeSetAnalogueService),
	OpSetAudioRate:           fixed(1, decodeSetAudioRate),
	OpInactiveSource:         fixed(2, decodeInactiveSource),
	OpCECVersion:             fixed(1, decodeCECVersion),
	OpVendorCommandWithID:    rest(decodeVendorCommandWithID),
	OpCDCMessage:             rest(decodeCDCMessage),
}

// Resolve returns the nominal parameter length of op in a frame of frameLen
// bytes. Opcodes without a layout carry no parameters. The result may exceed
// what the frame holds; callers truncate to the bytes present.
func Resolve(op Opcode, frameLen int) int {
	l, ok := layouts[op]
	if !ok {
		return 0
	}
	switch l.rule {
	case ruleRest:
		if frameLen < 2 {
			return 0
		}
		return frameLen - 2
	case ruleAtLeast:
		if frameLen >= l.minFrame {
			return l.size
		}
		return 0
	default:
		return l.size
	}
}

// HasParameters reports whether op has a known parameter layout.
func HasParameters(op Opcode) bool {
	_, ok := layouts[op]
	return ok
}
