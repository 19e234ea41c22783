package cec

func lookup[K comparable](table map[K]string, code K, def string) string {
	if name, ok := table[code]; ok {
		return name
	}
	return def
}

// Logical address names. The two tables differ only at 0xF.
var initiatorNames = map[uint8]string{
	0x0: "TV",
	0x1: "Recording Device 1",
	0x2: "Recording Device 2",
	0x3: "Tuner 1",
	0x4: "Playback Device 1",
	0x5: "Audio System",
	0x6: "Tuner 2",
	0x7: "Tuner 3",
	0x8: "Playback Device 2",
	0x9: "Recording Device 3",
	0xA: "Tuner 4",
	0xB: "Playback Device 3",
	0xE: "Free Use",
	0xF: "Unregistered",
}

var destinationNames = map[uint8]string{
	0x0: "TV",
	0x1: "Recording Device 1",
	0x2: "Recording Device 2",
	0x3: "Tuner 1",
	0x4: "Playback Device 1",
	0x5: "Audio System",
	0x6: "Tuner 2",
	0x7: "Tuner 3",
	0x8: "Playback Device 2",
	0x9: "Recording Device 3",
	0xA: "Tuner 4",
	0xB: "Playback Device 3",
	0xE: "Free Use",
	0xF: "Broadcast",
}

var opcodeNames = map[uint8]string{
	0x00: "Feature Abort",
	0x04: "Image View On",
	0x05: "Tuner Step Increment",
	0x06: "Tuner Step Decrement",
	0x07: "Tuner Device Status",
	0x08: "Give Tuner Device Status",
	0x09: "Record On",
	0x0A: "Record Status",
	0x0B: "Record Off",
	0x0D: "Text View On",
	0x0F: "Record TV Screen",
	0x1A: "Give Deck Status",
	0x1B: "Deck Status",
	0x32: "Set Menu Language",
	0x33: "Clear Analogue Timer",
	0x34: "Set Analogue Timer",
	0x35: "Timer Status",
	0x36: "Standby",
	0x41: "Play",
	0x42: "Deck Control",
	0x43: "Timer Cleared Status",
	0x44: "User Control Pressed",
	0x45: "User Control Released",
	0x46: "Give OSD Name",
	0x47: "Set OSD Name",
	0x64: "Set OSD String",
	0x67: "Set Timer Program Title",
	0x70: "System Audio Mode Request",
	0x71: "Give Audio Status",
	0x72: "Set System Audio Mode",
	0x7A: "Report Audio Status",
	0x7D: "Give System Audio Mode Status",
	0x7E: "System Audio Mode Status",
	0x80: "Routing Change",
	0x81: "Routing Information",
	0x82: "Active Source",
	0x83: "Give Physical Address",
	0x84: "Report Physical Address",
	0x85: "Request Active Source",
	0x86: "Set Stream Path",
	0x87: "Device Vendor ID",
	0x89: "Vendor Command",
	0x8A: "Vendor Remote Button Down",
	0x8B: "Vendor Remote Button Up",
	0x8C: "Give Device Vendor ID",
	0x8D: "Menu Request",
	0x8E: "Menu Status",
	0x8F: "Give Device Power Status",
	0x90: "Report Power Status",
	0x91: "Get Menu Language",
	0x92: "Set Analogue Service",
	0x93: "Set Digital Service",
	0x97: "Set Digital Timer",
	0x99: "Clear Digital Timer",
	0x9A: "Set Audio Rate",
	0x9D: "Inactive Source",
	0x9E: "CEC Version",
	0x9F: "Get CEC Version",
	0xA0: "Vendor Command With ID",
	0xA1: "Clear External Timer",
	0xA2: "Set External Timer",
	0xC0: "Initiate ARC",
	0xC1: "Report ARC Initiated",
	0xC2: "Report ARC Terminated",
	0xC3: "Request ARC Initiation",
	0xC4: "Request ARC Termination",
	0xC5: "Terminate ARC",
	0xF8: "CDC Message",
	0xFF: "Abort",
}

var abortReasons = map[uint8]string{
	0x00: "Unrecognized Opcode",
	0x01: "Not in correct mode to respond",
	0x02: "Cannot provide source",
	0x03: "Invalid operand",
	0x04: "Refused",
}

var analogueBroadcastTypes = map[uint8]string{
	0x00: "Cable",
	0x01: "Satellite",
	0x02: "Terrestrial",
}

var audioMuteStates = map[uint8]string{
	0x00: "Un-Muted",
	0x01: "Muted",
}

var audioRates = map[uint8]string{
	0x00: "Rate Control Off",
	0x01: "Standard Rate: 100%",
	0x02: "Fast Rate: 101% Max",
	0x03: "Slow Rate: 99% Min",
	0x04: "Standard Rate: 100.0%",
	0x05: "Fast Rate: 100.1% Max",
	0x06: "Slow Rate: 99.9% Min",
}

var broadcastSystems = map[uint8]string{
	0x00: "PAL B/G",
	0x01: "SECAM L'",
	0x02: "PAL M",
	0x03: "NTSC M",
	0x04: "PAL I",
	0x05: "SECAM DK",
	0x06: "SECAM B/G",
	0x07: "SECAM L",
	0x08: "PAL DK",
	0x1F: "Other System",
}

var cdcMessages = map[uint8]string{
	0x00: "CDC_HEC_InquireState",
	0x01: "CDC_HEC_ReportState",
	0x02: "CDC_HEC_SetState",
	0x03: "CDC_HEC_RequestDeactivation",
	0x04: "CDC_HEC_NotifyAlive",
	0x05: "CDC_HEC_Discover",
	0x06: "CDC_HEC_SetStateAdjacent",
}

var deckControlModes = map[uint8]string{
	0x01: "Skip Forward / Wind",
	0x02: "Skip Reverse / Rewind",
	0x03: "Stop",
	0x04: "Eject",
}

var deckInfo = map[uint8]string{
	0x11: "Play",
	0x12: "Record",
	0x13: "Play Reverse",
	0x14: "Still",
	0x15: "Slow",
	0x16: "Slow Reverse",
	0x17: "Fast Forward",
	0x18: "Fast Reverse",
	0x19: "No Media",
	0x1A: "Stop",
	0x1B: "Skip Forward / Wind",
	0x1C: "Skip Reverse / Rewind",
	0x1D: "Index Search Forward",
	0x1E: "Index Search Reverse",
	0x1F: "Other Status",
}

var deviceTypes = map[uint8]string{
	0x00: "TV",
	0x01: "Recording Device",
	0x03: "Tuner",
	0x04: "Playback Device",
	0x05: "Audio System",
}

var menuRequestTypes = map[uint8]string{
	0x00: "Activate",
	0x01: "Deactivate",
	0x02: "Query",
}

var menuStates = map[uint8]string{
	0x00: "Activated",
	0x01: "Deactivated",
}

var osdDisplayControls = map[uint8]string{
	0x00: "Display for default time",
	0x40: "Display until cleared",
	0x80: "Clear previous message",
}

var playModes = map[uint8]string{
	0x05: "Fast Forward Min Speed",
	0x06: "Fast Forward Medium Speed",
	0x07: "Fast Forward Max Speed",
	0x09: "Fast Reverse Min Speed",
	0x0A: "Fast Reverse Medium Speed",
	0x0B: "Fast Reverse Max Speed",
	0x15: "Slow Forward Min Speed",
	0x16: "Slow Forward Medium Speed",
	0x17: "Slow Forward Max Speed",
	0x19: "Slow Reverse Min Speed",
	0x1A: "Slow Reverse Medium Speed",
	0x1B: "Slow Reverse Max Speed",
	0x20: "Play Reverse",
	0x24: "Play Forward",
	0x25: "Play Still",
}

var powerStates = map[uint8]string{
	0x00: "On",
	0x01: "Standby",
	0x02: "In transition Standby to On",
	0x03: "In transition On to Standby",
}

var statusRequests = map[uint8]string{
	0x01: "On",
	0x02: "Off",
	0x03: "Once",
}

var systemAudioStates = map[uint8]string{
	0x00: "Off",
	0x01: "On",
}

var userControlCodes = map[uint8]string{
	0x00: "Select",
	0x01: "Up",
	0x02: "Down",
	0x03: "Left",
	0x04: "Right",
	0x05: "Right-Up",
	0x06: "Right-Down",
	0x07: "Left-Up",
	0x08: "Left-Down",
	0x09: "Root Menu",
	0x0A: "Setup Menu",
	0x0B: "Contents Menu",
	0x0C: "Favorites Menu",
	0x0D: "Exit",
	0x20: "0",
	0x21: "1",
	0x22: "2",
	0x23: "3",
	0x24: "4",
	0x25: "5",
	0x26: "6",
	0x27: "7",
	0x28: "8",
	0x29: "9",
	0x2A: "Dot",
	0x2B: "Enter",
	0x2C: "Clear",
	0x2F: "Next Favorite",
	0x30: "Channel Up",
	0x31: "Channel Down",
	0x32: "Previous Channel",
	0x33: "Sound Select",
	0x34: "Input Select",
	0x35: "Display Information",
	0x36: "Help",
	0x37: "Page Up",
	0x38: "Page Down",
	0x40: "Power",
	0x41: "Volume Up",
	0x42: "Volume Down",
	0x43: "Mute",
	0x44: "Play",
	0x45: "Stop",
	0x46: "Pause",
	0x47: "Record",
	0x48: "Rewind",
	0x49: "Fast forward",
	0x4A: "Eject",
	0x4B: "Forward",
	0x4C: "Backward",
	0x4D: "Stop-Record",
	0x4E: "Pause-Record",
	0x50: "Angle",
	0x51: "Sub picture",
	0x52: "Video on Demand",
	0x53: "Electronic Program Guide",
	0x54: "Timer Programming",
	0x55: "Initial Configuration",
	0x60: "Play Function",
	0x61: "Pause-Play Function",
	0x62: "Record Function",
	0x63: "Pause-Record Function",
	0x64: "Stop Function",
	0x65: "Mute Function",
	0x66: "Restore Volume Function",
	0x67: "Tune Function",
	0x68: "Select Media Function",
	0x69: "Select A/V Input Function",
	0x6A: "Select Audio Input Function",
	0x6B: "Power Toggle Function",
	0x6C: "Power Off Function",
	0x6D: "Power On Function",
	0x71: "F1 (Blue)",
	0x72: "F2 (Red)",
	0x73: "F3 (Green)",
	0x74: "F4 (Yellow)",
	0x75: "F5",
	0x76: "Data",
}

// vendorIDs holds IEEE OUIs seen on CEC buses.
var vendorIDs = map[uint32]string{
	0x000000: "Unknown",
	0x000039: "Toshiba",
	0x0000F0: "Samsung",
	0x0005CD: "Denon",
	0x000678: "Marantz",
	0x000982: "Loewe",
	0x0009B0: "Onkyo",
	0x000CB8: "Medion",
	0x000CE7: "Toshiba 2",
	0x001582: "Pulse-Eight",
	0x001950: "Harman-Kardon 2",
	0x001A11: "Google",
	0x0020C7: "Akai",
	0x002467: "AOC",
	0x008045: "Panasonic",
	0x00903E: "Philips",
	0x009053: "Daewoo",
	0x00A0DE: "Yamaha",
	0x00D0D5: "Grundig",
	0x00E036: "Pioneer",
	0x00E091: "LG",
	0x08001F: "Sharp",
	0x080046: "Sony",
	0x18C086: "Broadcom",
	0x6B746D: "Vizio",
	0x8065E9: "Benq",
	0x9C645E: "Harman-Kardon",
}

var cecVersions = map[uint8]string{
	0x00: "1.1",
	0x01: "1.2",
	0x02: "1.2a",
	0x03: "1.3",
	0x04: "1.3a",
	0x05: "1.4",
}

// VendorName returns the vendor registered for a 24-bit vendor ID.
func VendorName(id uint32) string {
	return lookup(vendorIDs, id&0xFFFFFF, unknown)
}

// AbortReason returns the name of a Feature Abort reason code.
func AbortReason(code uint8) string {
	return lookup(abortReasons, code, unknown)
}

// UserControlName returns the name of a remote-control key code.
func UserControlName(code uint8) string {
	return lookup(userControlCodes, code, unknown)
}
