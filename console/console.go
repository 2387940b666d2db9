// Package console is the diagnostic output channel.
//
// A Port may not be usable right away (a USB serial device that has not
// enumerated yet, or a host that has not opened the line). WaitReady gates
// on readiness with a bounded wait and falls back to discarding output, so a
// disconnected console never stalls provisioning.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	readyInitialInterval = 50 * time.Millisecond
	readyMaxInterval     = 1 * time.Second

	// DefaultReadyTimeout bounds WaitReady when the caller has no opinion.
	DefaultReadyTimeout = 10 * time.Second
)

var (
	ErrNotReady    = errors.New("console not ready")
	ErrUnsupported = errors.New("serial console not supported on this platform")
)

// Port is a diagnostic output channel.
type Port interface {
	io.Writer
	// Ready reports whether output will reach a reader.
	Ready() bool
	Close() error
}

// Opener opens a Port. WaitReady calls it again until it succeeds, unless the
// error is ErrInvalidSerial or ErrUnsupported.
type Opener func() (Port, error)

// WaitReady opens a port and blocks until it reports ready.
//
// A zero timeout waits without bound. On expiry the returned port discards
// everything written to it and the error wraps ErrNotReady; callers are
// expected to continue with the discarding port.
func WaitReady(ctx context.Context, open Opener, timeout time.Duration) (Port, error) {
	var port Port
	check := func() error {
		if port == nil {
			p, err := open()
			if errors.Is(err, ErrInvalidSerial) || errors.Is(err, ErrUnsupported) {
				return backoff.Permanent(err)
			}
			if err != nil {
				return err
			}
			port = p
		}
		if !port.Ready() {
			return ErrNotReady
		}
		return nil
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(readyInitialInterval),
		backoff.WithMaxInterval(readyMaxInterval),
		backoff.WithMaxElapsedTime(timeout),
	)
	err := backoff.Retry(check, backoff.WithContext(b, ctx))
	if err == nil {
		return port, nil
	}

	if port != nil {
		_ = port.Close()
	}
	if !errors.Is(err, ErrNotReady) {
		err = errors.Join(ErrNotReady, err)
	}
	return Discard(), fmt.Errorf("wait ready after %s: %w", timeout, err)
}

type writerPort struct {
	io.Writer
}

func (writerPort) Ready() bool  { return true }
func (writerPort) Close() error { return nil }

// Writer adapts w into an always-ready port. Close does not close w.
func Writer(w io.Writer) Port {
	return writerPort{Writer: w}
}

// Discard returns a ready port that drops all output.
func Discard() Port {
	return writerPort{Writer: io.Discard}
}
