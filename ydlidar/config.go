package ydlidar

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the driver settings. Zero values are replaced by the
// defaults of DefaultConfig when the driver starts.
type Config struct {
	// Port is the serial device path. Empty selects the last port found.
	Port  string `yaml:"port"`
	Model Model  `yaml:"model"`

	// ReadTimeout bounds a single poll of the serial port.
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// ReadTrials is how often a command response is polled for before
	// giving up with ErrTimeout.
	ReadTrials     int           `yaml:"read_trials"`
	ReadRetryDelay time.Duration `yaml:"read_retry_delay"`

	ChunkQueueSize int `yaml:"chunk_queue_size"`
	ScanQueueSize  int `yaml:"scan_queue_size"`
	// ParserIdle is how long the parser sleeps when no bytes are queued.
	ParserIdle time.Duration `yaml:"parser_idle"`
	// SettleDelay separates the two stop-and-flush rounds at startup.
	SettleDelay time.Duration `yaml:"settle_delay"`

	SetDTR bool `yaml:"set_dtr"`
	// SkipFlush keeps bytes already pending on the link at startup, which
	// a replayed capture needs.
	SkipFlush bool `yaml:"skip_flush"`
}

// DefaultConfig returns the default settings for an X2.
func DefaultConfig() Config {
	return Config{
		Model:          ModelX2,
		ReadTimeout:    10 * time.Millisecond,
		ReadTrials:     3,
		ReadRetryDelay: 10 * time.Millisecond,
		ChunkQueueSize: 200,
		ScanQueueSize:  10,
		ParserIdle:     10 * time.Millisecond,
		SettleDelay:    10 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Model == 0 {
		c.Model = d.Model
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.ReadTrials <= 0 {
		c.ReadTrials = d.ReadTrials
	}
	if c.ReadRetryDelay <= 0 {
		c.ReadRetryDelay = d.ReadRetryDelay
	}
	if c.ChunkQueueSize <= 0 {
		c.ChunkQueueSize = d.ChunkQueueSize
	}
	if c.ScanQueueSize <= 0 {
		c.ScanQueueSize = d.ScanQueueSize
	}
	if c.ParserIdle <= 0 {
		c.ParserIdle = d.ParserIdle
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = d.SettleDelay
	}
	return c
}

// LoadConfig reads a YAML config file. Settings missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return cfg, fmt.Errorf("config file must have .yaml extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", cleanPath, err)
	}
	return cfg, nil
}
