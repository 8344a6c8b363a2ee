// Package config loads and saves picamerad's on-disk configuration from
// ~/.config/picamera/config.json, normalizing every numeric field to a sane
// range on the way in and out so a hand-edited or stale file can't hand the
// service a tick rate or connection cap that would wedge it.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/juju/errors"
)

// AppConfig is everything cmd/picamerad needs to start a Service and
// cmd/picamera needs to dial one.
type AppConfig struct {
	ServiceHost    string  `json:"service_host"`
	ServicePort    uint16  `json:"service_port"`
	MaxConnections int     `json:"max_connections"`
	TickRateHz     float64 `json:"tick_rate_hz"`
	MetricsAddr    string  `json:"metrics_addr"`
	ChunkSize      int     `json:"chunk_size"`
}

// Bounds every numeric field is clamped into by normalize. A TickRateHz
// outside its range would busy-loop the Service's poll ticker (too high) or
// stall it to uselessness (too low). ChunkSize is clamped the same way, but
// the file transfer does not read it: it always sends
// filetransfer.ChunkSize-byte chunks.
const (
	minMaxConnections = 1
	maxMaxConnections = 64

	minTickRateHz = 0.1
	maxTickRateHz = 100.0

	minChunkSize = 4096
	maxChunkSize = 8_000_000
)

func defaultConfig() *AppConfig {
	return &AppConfig{
		ServiceHost:    "0.0.0.0",
		ServicePort:    8989,
		MaxConnections: 8,
		TickRateHz:     2.0,
		MetricsAddr:    ":9090",
		ChunkSize:      1_000_000,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize clamps cfg's numeric fields in place so neither a hand-edited
// config.json nor a caller-constructed AppConfig can push the service
// outside operable bounds.
func normalize(cfg *AppConfig) {
	cfg.MaxConnections = clampInt(cfg.MaxConnections, minMaxConnections, maxMaxConnections)
	cfg.TickRateHz = clampFloat(cfg.TickRateHz, minTickRateHz, maxTickRateHz)
	cfg.ChunkSize = clampInt(cfg.ChunkSize, minChunkSize, maxChunkSize)
}

type paths struct {
	dir  string
	file string
}

func resolvePaths() (paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return paths{}, errors.Annotate(err, "config: resolve home directory")
	}
	dir := filepath.Join(home, ".config", "picamera")
	return paths{dir: dir, file: filepath.Join(dir, "config.json")}, nil
}

// Load reads config.json, returning defaultConfig if it doesn't exist yet.
// Fields absent from an existing file keep their default values, and every
// numeric field present is clamped via normalize before being returned.
func Load() (*AppConfig, error) {
	p, err := resolvePaths()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p.file)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	} else if err != nil {
		return nil, errors.Annotate(err, "config: open")
	}
	defer f.Close()

	cfg := defaultConfig()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, errors.Annotate(err, "config: decode")
	}

	normalize(cfg)
	return cfg, nil
}

// Save clamps cfg via normalize and writes it to ~/.config/picamera/config.json,
// creating the directory if this is the first run.
func Save(cfg *AppConfig) error {
	p, err := resolvePaths()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return errors.Annotate(err, "config: create directory")
	}

	normalized := *cfg
	normalize(&normalized)

	data, err := json.MarshalIndent(&normalized, "", "  ")
	if err != nil {
		return errors.Annotate(err, "config: marshal")
	}

	if err := os.WriteFile(p.file, data, 0644); err != nil {
		return errors.Annotate(err, "config: write")
	}
	return nil
}
