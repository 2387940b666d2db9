// Package config holds named provisioning targets.
//
// Config is stored at $XDG_CONFIG_HOME/setnodeid/config.yaml (defaults to
// ~/.config/setnodeid/config.yaml) and follows the kubeconfig pattern: named
// targets with a current-target selector. A target says where the identity
// byte is stored and where diagnostics are printed.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backend kinds.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Target describes one node's storage and console.
type Target struct {
	Store        string        `yaml:"store,omitempty"`      // file, sqlite or memory
	StorePath    string        `yaml:"store-path,omitempty"` // image or database path
	Console      string        `yaml:"console,omitempty"`    // serial device; empty means stdout
	Baud         int           `yaml:"baud,omitempty"`
	WaitDSR      bool          `yaml:"wait-dsr,omitempty"`
	// ReadyTimeout bounds the wait for the console. Nil means unset; an
	// explicit 0 waits forever.
	ReadyTimeout *time.Duration `yaml:"ready-timeout,omitempty"`
}

// Timeout returns the ready timeout, or def when it is unset.
func (t Target) Timeout(def time.Duration) time.Duration {
	if t.ReadyTimeout == nil {
		return def
	}
	return *t.ReadyTimeout
}

// Duration returns a pointer to d for Target.ReadyTimeout.
func Duration(d time.Duration) *time.Duration { return &d }

// Validate checks the fields that can be wrong on their own.
func (t Target) Validate() error {
	switch t.Store {
	case "", StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want %s, %s or %s)", t.Store, StoreFile, StoreSQLite, StoreMemory)
	}
	if t.Baud < 0 {
		return fmt.Errorf("baud must not be negative")
	}
	if t.ReadyTimeout != nil && *t.ReadyTimeout < 0 {
		return fmt.Errorf("ready-timeout must not be negative")
	}
	return nil
}

// Merge returns t with every zero field filled from base.
func (t Target) Merge(base Target) Target {
	if t.Store == "" {
		t.Store = base.Store
	}
	if t.StorePath == "" {
		t.StorePath = base.StorePath
	}
	if t.Console == "" {
		t.Console = base.Console
	}
	if t.Baud == 0 {
		t.Baud = base.Baud
	}
	if !t.WaitDSR {
		t.WaitDSR = base.WaitDSR
	}
	if t.ReadyTimeout == nil {
		t.ReadyTimeout = base.ReadyTimeout
	}
	return t
}

// Config holds named targets and the current selection.
type Config struct {
	CurrentTarget string            `yaml:"current-target"`
	Targets       map[string]Target `yaml:"targets"`
}

// Path returns the config file location. It respects XDG_CONFIG_HOME,
// falling back to ~/.config/setnodeid/config.yaml.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "setnodeid", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "setnodeid", "config.yaml")
}

// Load reads the config file. If the file does not exist, an empty Config
// is returned (not an error).
func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{Targets: make(map[string]Target)}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Targets == nil {
		cfg.Targets = make(map[string]Target)
	}
	for name, t := range cfg.Targets {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("target %q: %w", name, err)
		}
	}
	return &cfg, nil
}

// Save writes the config to disk, creating directories as needed.
func (c *Config) Save() error {
	p := Path()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Current returns the current target name and value.
// The bool is false when no current target is set.
func (c *Config) Current() (string, Target, bool) {
	if c.CurrentTarget == "" {
		return "", Target{}, false
	}
	t, ok := c.Targets[c.CurrentTarget]
	if !ok {
		return "", Target{}, false
	}
	return c.CurrentTarget, t, true
}

// Resolve returns the named target, or the current one when name is empty.
// With no name and no current target it returns an empty Target.
func (c *Config) Resolve(name string) (Target, error) {
	if name == "" {
		_, t, _ := c.Current()
		return t, nil
	}
	t, ok := c.Targets[name]
	if !ok {
		return Target{}, fmt.Errorf("target %q not found", name)
	}
	return t, nil
}

// Use sets the current target. It returns an error if the name doesn't exist.
func (c *Config) Use(name string) error {
	if _, ok := c.Targets[name]; !ok {
		return fmt.Errorf("target %q not found", name)
	}
	c.CurrentTarget = name
	return nil
}

// Set adds or updates a named target.
func (c *Config) Set(name string, t Target) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("target %q: %w", name, err)
	}
	c.Targets[name] = t
	return nil
}

// Remove deletes a target. If it was the current target, current-target
// is cleared. Returns an error if the name doesn't exist.
func (c *Config) Remove(name string) error {
	if _, ok := c.Targets[name]; !ok {
		return fmt.Errorf("target %q not found", name)
	}
	delete(c.Targets, name)
	if c.CurrentTarget == name {
		c.CurrentTarget = ""
	}
	return nil
}
