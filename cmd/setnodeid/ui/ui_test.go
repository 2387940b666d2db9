package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestKeyValuesAlignsLabels(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	got := KeyValues("  ", KV("node id", "7"), KV("store", "file"))
	want := "  node id: 7\n  store:   file\n"
	if got != want {
		t.Fatalf("KeyValues() = %q, want %q", got, want)
	}
}

func TestConfigureColorDisabledByNoColor(t *testing.T) {
	t.Setenv(envNoColor, "1")
	ConfigureColor()

	if got := SuccessMsg("saved %s", "bench"); got != "✓ saved bench" {
		t.Fatalf("SuccessMsg() = %q, want plain text", got)
	}
}

func TestTableContainsCells(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := Table([]string{"NAME", "STORE"}, [][]string{{"bench", "sqlite"}})
	for _, want := range []string{"NAME", "STORE", "bench", "sqlite"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Table() = %q, missing %q", out, want)
		}
	}
}
