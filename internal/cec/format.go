package cec

import "fmt"

// FormatFrequency renders an analogue tuner frequency given in 62.5 kHz steps.
func FormatFrequency(raw uint16) string {
	khz := 62.5 * float64(raw)
	return fmt.Sprintf("%f kHz", khz)
}

// FormatVolume renders the volume view of an audio status byte. Bit 7 (mute)
// is ignored; see Muted.
func FormatVolume(raw uint8) string {
	pct := raw & 0x7F
	switch {
	case pct <= 100:
		return fmt.Sprintf("%d%%", pct)
	case pct == 0x7F:
		return "(Unknown)"
	default:
		return "(Reserved)"
	}
}

// Muted reports the mute view of an audio status byte.
func Muted(raw uint8) bool {
	return raw&0x80 != 0
}

// FormatPhysicalAddress renders a physical address as four dotted nibbles,
// most significant first.
func FormatPhysicalAddress(v uint16) string {
	return fmt.Sprintf("%X.%X.%X.%X", v>>12&0xF, v>>8&0xF, v>>4&0xF, v&0xF)
}
