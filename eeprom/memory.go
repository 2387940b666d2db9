package eeprom

import (
	"context"
	"errors"
	"sync"
)

var errClosed = errors.New("backing closed")

// Memory is a Backing that lives for the life of the process.
type Memory struct {
	mu     sync.Mutex
	data   []byte
	stores int
	closed bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context, size int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, errClosed
	}
	n := min(size, len(m.data))
	out := make([]byte, n)
	copy(out, m.data)
	return out, nil
}

func (m *Memory) Store(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errClosed
	}
	m.data = append(m.data[:0], data...)
	m.stores++
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Stores reports how many times the image was persisted.
func (m *Memory) Stores() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stores
}

// Snapshot returns a copy of the persisted image.
func (m *Memory) Snapshot() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
