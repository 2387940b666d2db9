package console

import (
	"errors"
	"fmt"
)

// DefaultBaud matches the rate node firmware uses for its console.
const DefaultBaud = 115200

// ErrInvalidSerial marks a serial configuration that can never open.
var ErrInvalidSerial = errors.New("invalid serial config")

// SerialConfig describes a serial console device.
type SerialConfig struct {
	Path string
	Baud int
	// WaitDSR makes Ready wait for the DSR modem line, i.e. for the host
	// side to open the port.
	WaitDSR bool
}

func (c SerialConfig) withDefaults() SerialConfig {
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	return c
}

func (c SerialConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: device path is required", ErrInvalidSerial)
	}
	if _, ok := baudRates[c.Baud]; !ok {
		return fmt.Errorf("%w: unsupported baud rate %d", ErrInvalidSerial, c.Baud)
	}
	return nil
}

// SerialOpener returns an Opener for WaitReady.
func SerialOpener(cfg SerialConfig) Opener {
	return func() (Port, error) {
		s, err := OpenSerial(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
