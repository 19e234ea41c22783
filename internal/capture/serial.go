package capture

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
)

var ErrNoSerialPort = errors.New("capture: serial port not set")

const DefaultBaudRate = 115200

// SerialConfig selects a serial sniffer that prints one hex frame per line.
type SerialConfig struct {
	Port     string
	BaudRate int
}

// SerialSource reads text frames from a serial port.
type SerialSource struct {
	*LineReader
	port serial.Port
}

func OpenSerial(cfg SerialConfig) (*SerialSource, error) {
	if cfg.Port == "" {
		return nil, ErrNoSerialPort
	}
	baud := cfg.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("capture: open serial %s: %w", cfg.Port, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("capture: reset serial %s: %w", cfg.Port, err)
	}
	return &SerialSource{LineReader: NewLineReader(port), port: port}, nil
}

// Close releases the port and unblocks a pending Next.
func (s *SerialSource) Close() error {
	return s.port.Close()
}
