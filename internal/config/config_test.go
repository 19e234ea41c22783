package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/cecscope/internal/capture"
	"github.com/danmuck/cecscope/internal/testutil/testlog"
)

func TestLoadExampleConfig(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load(filepath.Join("..", "..", "cmd", "cecscope", "ex.config.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Name != "cecscope.livingroom" {
		t.Fatalf("unexpected name: %q", cfg.Server.Name)
	}
	if cfg.Server.Addr != "127.0.0.1:8090" {
		t.Fatalf("unexpected addr: %q", cfg.Server.Addr)
	}
	if len(cfg.Server.CorsOrigins) != 2 {
		t.Fatalf("unexpected cors origins: %+v", cfg.Server.CorsOrigins)
	}
	if cfg.Server.MaxFrameBytes != 32 {
		t.Fatalf("unexpected max frame bytes: %d", cfg.Server.MaxFrameBytes)
	}
	if cfg.Server.MaxBatch != 256 {
		t.Fatalf("max batch should keep its default, got %d", cfg.Server.MaxBatch)
	}
	if cfg.Capture.Format != capture.FormatRecord {
		t.Fatalf("unexpected format: %q", cfg.Capture.Format)
	}
	if cfg.Capture.SerialPort != "/dev/ttyACM0" || cfg.Capture.BaudRate != 38400 {
		t.Fatalf("unexpected serial config: %+v", cfg.Capture)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Log.Level)
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := Default()
	if cfg.Server.Addr != def.Server.Addr || cfg.Capture.Format != def.Capture.Format {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"frame limit": "[server]\nmax_frame_bytes = 0\n",
		"empty addr":  "[server]\naddr = \" \"\n",
		"log level":   "[log]\nlevel = \"loud\"\n",
		"batch":       "[server]\nmax_batch = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "[capture]\nformat = \"pcap\"\n"))
	if !errors.Is(err, capture.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
