package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Targets) != 0 || cfg.CurrentTarget != "" {
		t.Fatalf("Load() = %+v, want empty config", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	bench := Target{
		Store:        StoreSQLite,
		StorePath:    "/var/lib/node/eeprom.db",
		Console:      "/dev/ttyACM0",
		Baud:         115200,
		WaitDSR:      true,
		ReadyTimeout: Duration(3 * time.Second),
	}
	if err := cfg.Set("bench", bench); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Use("bench"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "setnodeid", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	name, got, ok := loaded.Current()
	if !ok || name != "bench" {
		t.Fatalf("Current() = %q, %v, want bench", name, ok)
	}
	if !reflect.DeepEqual(got, bench) {
		t.Fatalf("Current() target = %+v, want %+v", got, bench)
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	p := filepath.Join(dir, "setnodeid", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "current-target: x\ntargets:\n  x:\n    store: floppy\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject unknown store kind")
	}
}

func TestRemoveClearsCurrent(t *testing.T) {
	cfg := &Config{Targets: map[string]Target{"a": {}, "b": {}}, CurrentTarget: "a"}

	if err := cfg.Remove("a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if cfg.CurrentTarget != "" {
		t.Fatalf("CurrentTarget = %q, want empty", cfg.CurrentTarget)
	}
	if err := cfg.Remove("a"); err == nil {
		t.Fatal("Remove() of missing target should fail")
	}
	if err := cfg.Use("missing"); err == nil {
		t.Fatal("Use() of missing target should fail")
	}
}

func TestResolveAndMerge(t *testing.T) {
	cfg := &Config{
		Targets:       map[string]Target{"bench": {Store: StoreSQLite, Baud: 9600}},
		CurrentTarget: "bench",
	}

	cur, err := cfg.Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") error = %v", err)
	}
	if cur.Store != StoreSQLite {
		t.Fatalf("Resolve(\"\") = %+v, want current target", cur)
	}
	if _, err := cfg.Resolve("nope"); err == nil {
		t.Fatal("Resolve() of missing target should fail")
	}

	merged := Target{Console: "/dev/ttyUSB0"}.Merge(cur)
	want := Target{Store: StoreSQLite, Console: "/dev/ttyUSB0", Baud: 9600}
	if merged != want {
		t.Fatalf("Merge() = %+v, want %+v", merged, want)
	}
}

func TestZeroReadyTimeoutIsKept(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Set("field", Target{Console: "/dev/ttyACM0", ReadyTimeout: Duration(0)}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "setnodeid", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ready-timeout: 0s") {
		t.Fatalf("config = %q, want explicit ready-timeout", data)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	merged := loaded.Targets["field"].Merge(Target{ReadyTimeout: Duration(10 * time.Second)})
	if got := merged.Timeout(time.Minute); got != 0 {
		t.Fatalf("Timeout() = %s, want 0 (wait forever)", got)
	}
	if got := (Target{}).Timeout(time.Minute); got != time.Minute {
		t.Fatalf("unset Timeout() = %s, want default", got)
	}
}
