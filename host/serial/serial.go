package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate; must match the firmware's data UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware's
// default data UART settings
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        128000, // Firmware data UART default
		ReadTimeout: 1000,   // 1s read timeout
	}
}
