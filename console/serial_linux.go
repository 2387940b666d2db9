//go:build linux

package console

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var baudRates = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// Serial is a tty configured raw 8N1.
type Serial struct {
	f       *os.File
	fd      int
	waitDSR bool
}

// OpenSerial opens and configures the device. Output post-processing is
// disabled, so lines are terminated with CRLF by the Printer.
func OpenSerial(cfg SerialConfig) (*Serial, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	speed := baudRates[cfg.Baud]

	fd, err := unix.Open(cfg.Path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Path, err)
	}

	if err := configureRaw(fd, speed); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("configure serial %s: %w", cfg.Path, err)
	}
	if err := unix.SetNonblock(fd, false); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("configure serial %s: %w", cfg.Path, err)
	}

	return &Serial{
		f:       os.NewFile(uintptr(fd), cfg.Path),
		fd:      fd,
		waitDSR: cfg.WaitDSR,
	}, nil
}

func configureRaw(fd int, speed uint32) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}

	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CBAUD
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | speed
	t.Ispeed = speed
	t.Ospeed = speed

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	return nil
}

func (s *Serial) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

func (s *Serial) Ready() bool {
	if !s.waitDSR {
		return true
	}
	status, err := unix.IoctlGetInt(s.fd, unix.TIOCMGET)
	if err != nil {
		return false
	}
	return status&unix.TIOCM_DSR != 0
}

func (s *Serial) LineEnding() string {
	return "\r\n"
}

func (s *Serial) Close() error {
	return s.f.Close()
}
