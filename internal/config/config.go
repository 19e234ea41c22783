package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/cecscope/internal/capture"
	"github.com/danmuck/cecscope/internal/logging"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Server  ServerConfig
	Capture CaptureConfig
	Log     LogConfig
}

type ServerConfig struct {
	Name          string
	Addr          string
	CorsOrigins   []string
	MaxFrameBytes int
	MaxBatch      int
}

type CaptureConfig struct {
	Format     capture.Format
	SerialPort string
	BaudRate   int
}

type LogConfig struct {
	Level string
}

type fileConfig struct {
	Server struct {
		Name          string   `toml:"name"`
		Addr          string   `toml:"addr"`
		CorsOrigins   []string `toml:"cors_origins"`
		MaxFrameBytes int      `toml:"max_frame_bytes"`
		MaxBatch      int      `toml:"max_batch"`
	} `toml:"server"`
	Capture struct {
		Format     string `toml:"format"`
		SerialPort string `toml:"serial_port"`
		BaudRate   int    `toml:"baud_rate"`
	} `toml:"capture"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:          "cecscope",
			Addr:          ":8080",
			CorsOrigins:   []string{"http://localhost:3000"},
			MaxFrameBytes: 64,
			MaxBatch:      256,
		},
		Capture: CaptureConfig{
			Format:   capture.FormatText,
			BaudRate: capture.DefaultBaudRate,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("server", "name") {
		cfg.Server.Name = strings.TrimSpace(raw.Server.Name)
	}
	if meta.IsDefined("server", "addr") {
		cfg.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}
	if meta.IsDefined("server", "cors_origins") {
		cfg.Server.CorsOrigins = normalizeOrigins(raw.Server.CorsOrigins)
	}
	if meta.IsDefined("server", "max_frame_bytes") {
		cfg.Server.MaxFrameBytes = raw.Server.MaxFrameBytes
	}
	if meta.IsDefined("server", "max_batch") {
		cfg.Server.MaxBatch = raw.Server.MaxBatch
	}

	if meta.IsDefined("capture", "format") {
		format, err := capture.ParseFormat(raw.Capture.Format)
		if err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		cfg.Capture.Format = format
	}
	if meta.IsDefined("capture", "serial_port") {
		cfg.Capture.SerialPort = strings.TrimSpace(raw.Capture.SerialPort)
	}
	if meta.IsDefined("capture", "baud_rate") {
		cfg.Capture.BaudRate = raw.Capture.BaudRate
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Server.Name) == "" {
		return fmt.Errorf("%w: server name is required", ErrInvalid)
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return fmt.Errorf("%w: server addr is required", ErrInvalid)
	}
	if cfg.Server.MaxFrameBytes < 1 || cfg.Server.MaxFrameBytes > 255 {
		return fmt.Errorf("%w: max_frame_bytes must be in [1,255], got %d", ErrInvalid, cfg.Server.MaxFrameBytes)
	}
	if cfg.Server.MaxBatch < 1 {
		return fmt.Errorf("%w: max_batch must be positive, got %d", ErrInvalid, cfg.Server.MaxBatch)
	}
	if cfg.Capture.BaudRate < 0 {
		return fmt.Errorf("%w: baud_rate must not be negative", ErrInvalid)
	}
	if cfg.Log.Level != "" {
		if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
			return fmt.Errorf("%w: unknown log level %q", ErrInvalid, cfg.Log.Level)
		}
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
