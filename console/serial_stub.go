//go:build !linux

package console

var baudRates = map[int]uint32{
	9600: 0, 19200: 0, 38400: 0, 57600: 0,
	115200: 0, 230400: 0, 460800: 0, 921600: 0,
}

// Serial is unavailable on this platform.
type Serial struct{}

func OpenSerial(cfg SerialConfig) (*Serial, error) {
	if err := cfg.withDefaults().validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}

func (*Serial) Write(p []byte) (int, error) { return 0, ErrUnsupported }
func (*Serial) Ready() bool                 { return false }
func (*Serial) LineEnding() string          { return "\r\n" }
func (*Serial) Close() error                { return nil }
