package cmdutil

import (
	"context"
	"fmt"
	"io"
	"time"

	"setnodeid/config"
	"setnodeid/console"
	"setnodeid/eeprom"
	"setnodeid/platform"

	"github.com/spf13/cobra"
)

// Defaults apply when neither a flag nor the selected target sets a field.
var Defaults = config.Target{
	Store:        config.StoreFile,
	Baud:         console.DefaultBaud,
	ReadyTimeout: config.Duration(console.DefaultReadyTimeout),
}

// TargetFlags are the storage and console flags shared by subcommands.
type TargetFlags struct {
	Target       string
	Store        string
	StorePath    string
	Console      string
	Baud         int
	WaitDSR      bool
	ReadyTimeout time.Duration
}

func (f *TargetFlags) Bind(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&f.Target, "target", "", "Named target from the config file (default: current target)")
	fs.StringVar(&f.Store, "store", "", "Identity store: file, sqlite or memory (default file)")
	fs.StringVar(&f.StorePath, "store-path", "", "Path of the identity image or database")
	fs.StringVar(&f.Console, "console", "", "Serial device for diagnostics (default stdout)")
	fs.IntVar(&f.Baud, "baud", console.DefaultBaud, "Serial console baud rate")
	fs.BoolVar(&f.WaitDSR, "wait-dsr", false, "Wait for the host to assert DSR before printing")
	fs.DurationVar(&f.ReadyTimeout, "ready-timeout", console.DefaultReadyTimeout, "How long to wait for the console; 0 waits forever")
}

// Resolve layers explicitly set flags over the selected config target over
// Defaults.
func (f *TargetFlags) Resolve(cmd *cobra.Command) (config.Target, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Target{}, err
	}
	base, err := cfg.Resolve(f.Target)
	if err != nil {
		return config.Target{}, err
	}
	t := base.Merge(Defaults)

	changed := cmd.Flags().Changed
	if changed("store") {
		t.Store = f.Store
	}
	if changed("store-path") {
		t.StorePath = f.StorePath
	}
	if changed("console") {
		t.Console = f.Console
	}
	if changed("baud") {
		t.Baud = f.Baud
	}
	if changed("wait-dsr") {
		t.WaitDSR = f.WaitDSR
	}
	if changed("ready-timeout") {
		t.ReadyTimeout = config.Duration(f.ReadyTimeout)
	}

	if err := t.Validate(); err != nil {
		return config.Target{}, err
	}
	return t, nil
}

// NewStore returns an EEPROM whose backing is opened on Begin.
func NewStore(t config.Target) *eeprom.EEPROM {
	return eeprom.NewDeferred(func() (eeprom.Backing, error) {
		return platform.OpenBacking(t.Store, t.StorePath)
	})
}

// StorePath reports where t keeps the identity byte.
func StorePath(t config.Target) string {
	if t.StorePath != "" {
		return t.StorePath
	}
	switch t.Store {
	case config.StoreSQLite:
		return platform.DefaultDatabasePath()
	case config.StoreMemory:
		return "(memory)"
	default:
		return platform.DefaultImagePath()
	}
}

// Console opens the diagnostic port for t through the readiness gate.
// Without a serial device, diagnostics go to stdout.
type Console struct {
	target config.Target
	stdout io.Writer
	port   console.Port
}

func NewConsole(t config.Target, stdout io.Writer) *Console {
	return &Console{target: t, stdout: stdout}
}

func (c *Console) Open(ctx context.Context) (io.Writer, error) {
	open := func() (console.Port, error) { return console.Writer(c.stdout), nil }
	if c.target.Console != "" {
		open = console.SerialOpener(console.SerialConfig{
			Path:    c.target.Console,
			Baud:    c.target.Baud,
			WaitDSR: c.target.WaitDSR,
		})
	}

	port, err := console.WaitReady(ctx, open, c.target.Timeout(console.DefaultReadyTimeout))
	c.port = port
	if err != nil {
		return port, fmt.Errorf("open console: %w", err)
	}
	return port, nil
}

func (c *Console) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}
