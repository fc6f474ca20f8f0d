// Package config holds the host tool configuration: which serial
// device to read, at what baud rate, and the sampling rate the firmware
// was built with. Values come from an optional YAML file with flag
// overrides applied by the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Firmware defaults; must match targets/rp2040.
const (
	DefaultBaud              = 128000
	DefaultSamplingRate      = 100000
	DefaultMonitorIntervalMs = 500
)

type Config struct {
	// Device is the serial device path (e.g. /dev/ttyUSB0)
	Device string `yaml:"device"`

	// Baud must match the firmware's data UART
	Baud int `yaml:"baud"`

	// SamplingRate is the firmware's sampling rate in Hz. The host
	// has no way to discover it (the wire is raw bytes), so it is
	// configuration on both ends.
	SamplingRate int `yaml:"sampling_rate"`

	// MonitorIntervalMs is the simulator's monitor cycle period
	MonitorIntervalMs int `yaml:"monitor_interval_ms"`
}

// Load reads a YAML configuration file and applies defaults. An empty
// path returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.SamplingRate == 0 {
		cfg.SamplingRate = DefaultSamplingRate
	}
	if cfg.MonitorIntervalMs == 0 {
		cfg.MonitorIntervalMs = DefaultMonitorIntervalMs
	}
}

// Validate checks configuration correctness. It does not mutate the
// configuration.
func Validate(cfg *Config) error {
	if cfg.SamplingRate <= 0 {
		return fmt.Errorf("sampling_rate must be positive, got %d", cfg.SamplingRate)
	}
	if cfg.Baud <= 0 {
		return fmt.Errorf("baud must be positive, got %d", cfg.Baud)
	}
	if cfg.MonitorIntervalMs <= 0 {
		return fmt.Errorf("monitor_interval_ms must be positive, got %d", cfg.MonitorIntervalMs)
	}

	// The sample flow is rate/8 bytes per second; a serial frame is
	// 10 bits on the wire (start + 8 data + stop), so the line moves
	// at most baud/10 bytes per second. A rate past that bound can
	// only end in overrun reports.
	byteFlow := cfg.SamplingRate / 8
	lineCapacity := cfg.Baud / 10
	if byteFlow > lineCapacity {
		return fmt.Errorf(
			"sampling rate %d Hz needs %d B/s but %d baud carries at most %d B/s: reduce the sampling rate or increase the baud rate",
			cfg.SamplingRate, byteFlow, cfg.Baud, lineCapacity,
		)
	}

	return nil
}
