// Package eeprom emulates a small byte-addressable EEPROM on top of a
// persistent backing.
//
// Reads and writes hit a RAM cache loaded by Begin. Nothing reaches the
// backing until Commit, so uncommitted writes are lost when the process ends,
// the same way flash-emulated EEPROM behaves on microcontrollers.
package eeprom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
)

// MaxSize is the largest region Begin accepts.
const MaxSize = 4096

// Erased is the value of a byte that was never committed.
const Erased byte = 0xFF

var (
	ErrNotBegun    = errors.New("eeprom not initialized")
	ErrOutOfRange  = errors.New("offset out of range")
	ErrInvalidSize = errors.New("invalid eeprom size")
)

// Backing persists the EEPROM image.
type Backing interface {
	// Load returns the stored image. It may be shorter than size when the
	// backing has never been committed.
	Load(ctx context.Context, size int) ([]byte, error)
	// Store persists the full image.
	Store(ctx context.Context, data []byte) error
	Close() error
}

// OpenFunc opens a Backing on first use.
type OpenFunc func() (Backing, error)

// EEPROM is a cached view over a Backing. It is not safe for concurrent use;
// one routine owns the region for the life of the program.
type EEPROM struct {
	open    OpenFunc
	backing Backing
	cache   []byte
	dirty   bool
}

func New(backing Backing) *EEPROM {
	return &EEPROM{backing: backing}
}

// NewDeferred opens its backing in Begin, so a backing that cannot be opened
// fails initialization like any other storage fault.
func NewDeferred(open OpenFunc) *EEPROM {
	return &EEPROM{open: open}
}

// Begin reserves size bytes and loads them from the backing.
func (e *EEPROM) Begin(ctx context.Context, size int) error {
	if size <= 0 || size > MaxSize {
		return fmt.Errorf("begin %d bytes: %w", size, ErrInvalidSize)
	}
	if e.backing == nil {
		if e.open == nil {
			return fmt.Errorf("begin: no backing")
		}
		b, err := e.open()
		if err != nil {
			return fmt.Errorf("begin: open backing: %w", err)
		}
		e.backing = b
	}

	data, err := e.backing.Load(ctx, size)
	if err != nil {
		return fmt.Errorf("begin: load backing: %w", err)
	}

	cache := bytes.Repeat([]byte{Erased}, size)
	copy(cache, data)
	e.cache = cache
	e.dirty = false
	return nil
}

// Length returns the reserved size, or 0 before Begin.
func (e *EEPROM) Length() int {
	return len(e.cache)
}

// Read returns the cached byte at off.
func (e *EEPROM) Read(off int) (byte, error) {
	if err := e.check(off); err != nil {
		return 0, fmt.Errorf("read offset %d: %w", off, err)
	}
	return e.cache[off], nil
}

// Write updates the cached byte at off.
func (e *EEPROM) Write(off int, v byte) error {
	if err := e.check(off); err != nil {
		return fmt.Errorf("write offset %d: %w", off, err)
	}
	if e.cache[off] != v {
		e.cache[off] = v
		e.dirty = true
	}
	return nil
}

// Commit flushes the cache to the backing if anything changed.
func (e *EEPROM) Commit(ctx context.Context) error {
	if e.cache == nil {
		return fmt.Errorf("commit: %w", ErrNotBegun)
	}
	if !e.dirty {
		return nil
	}

	image := make([]byte, len(e.cache))
	copy(image, e.cache)
	if err := e.backing.Store(ctx, image); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	e.dirty = false
	return nil
}

// End commits pending writes and drops the cache. The backing stays open.
func (e *EEPROM) End(ctx context.Context) error {
	if e.cache == nil {
		return nil
	}
	err := e.Commit(ctx)
	e.cache = nil
	e.dirty = false
	return err
}

// Close releases the backing without committing.
func (e *EEPROM) Close() error {
	e.cache = nil
	e.dirty = false
	if e.backing == nil {
		return nil
	}
	return e.backing.Close()
}

func (e *EEPROM) check(off int) error {
	if e.cache == nil {
		return ErrNotBegun
	}
	if off < 0 || off >= len(e.cache) {
		return ErrOutOfRange
	}
	return nil
}
