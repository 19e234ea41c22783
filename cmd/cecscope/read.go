package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/cecscope/internal/capture"
	"github.com/danmuck/cecscope/internal/cec"
	"github.com/danmuck/cecscope/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type readOptions struct {
	ConfigPath string
	Format     string
	SerialPort string
	BaudRate   int
}

func newReadCmd(out *outputOptions) *cobra.Command {
	var opts readOptions
	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Decode a capture stream from a file, stdin or a serial sniffer",
		Long: `Read frames from a capture and print one decoded line per frame.

Text captures hold one frame per line in any of the usual hex spellings,
including cec-client TRAFFIC lines. Record captures use the binary
framing written by capture recorders. With --serial the frames are read
as text lines from the sniffer attached to the port.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if opts.ConfigPath != "" {
				loaded, err := config.Load(opts.ConfigPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("format") {
				format, err := capture.ParseFormat(opts.Format)
				if err != nil {
					return err
				}
				cfg.Capture.Format = format
			}
			if cmd.Flags().Changed("serial") {
				cfg.Capture.SerialPort = opts.SerialPort
			}
			if cmd.Flags().Changed("baud") {
				cfg.Capture.BaudRate = opts.BaudRate
			}

			src, closeSrc, err := openSource(cmd, cfg.Capture, args)
			if err != nil {
				return err
			}
			defer closeSrc()
			return decodeStream(cmd.OutOrStdout(), src, cec.Decoder{}, *out)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to a cecscope TOML config")
	cmd.Flags().StringVar(&opts.Format, "format", string(capture.FormatText), "Capture format: text or record")
	cmd.Flags().StringVar(&opts.SerialPort, "serial", "", "Read text frames from this serial port instead of a file")
	cmd.Flags().IntVar(&opts.BaudRate, "baud", capture.DefaultBaudRate, "Serial baud rate")
	return cmd
}

func openSource(cmd *cobra.Command, cfg config.CaptureConfig, args []string) (capture.Source, func(), error) {
	if cfg.SerialPort != "" {
		if len(args) > 0 {
			return nil, nil, fmt.Errorf("read: a file and --serial are mutually exclusive")
		}
		port, err := capture.OpenSerial(capture.SerialConfig{Port: cfg.SerialPort, BaudRate: cfg.BaudRate})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("port", cfg.SerialPort).Int("baud", cfg.BaudRate).Msg("reading serial sniffer")
		return port, func() { _ = port.Close() }, nil
	}

	var r io.Reader = cmd.InOrStdin()
	closeFn := func() {}
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("read: %w", err)
		}
		r = f
		closeFn = func() { _ = f.Close() }
	}
	src, err := capture.NewSource(cfg.Format, r, capture.DefaultLimits())
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return src, closeFn, nil
}

// decodeStream prints every frame of src. Lines that do not parse and empty
// records are logged and skipped; any other read error ends the stream.
func decodeStream(w io.Writer, src capture.Source, decoder cec.Decoder, out outputOptions) error {
	for {
		frame, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var lineErr *capture.LineError
		if errors.As(err, &lineErr) {
			log.Warn().Int("line", lineErr.Line).Str("text", lineErr.Text).Err(lineErr.Err).Msg("skipping line")
			continue
		}
		if err != nil {
			return err
		}

		f, err := decoder.Decode(frame.Data)
		if err != nil {
			log.Warn().Err(err).Msg("skipping frame")
			continue
		}
		if err := printFrame(w, f, frame, out); err != nil {
			return err
		}
	}
}
