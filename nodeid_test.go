package setnodeid

import "testing"

func TestParseNodeIDAcceptsByteRange(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want NodeID
	}{
		{in: "0", want: 0},
		{in: "1", want: 1},
		{in: " 42 ", want: 42},
		{in: "255", want: 255},
	} {
		got, err := ParseNodeID(tc.in)
		if err != nil {
			t.Fatalf("ParseNodeID(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseNodeID(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseNodeIDRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "256", "-1", "0x10", "one"} {
		if _, err := ParseNodeID(in); err == nil {
			t.Fatalf("ParseNodeID(%q) should fail", in)
		}
	}
}

func TestNodeIDString(t *testing.T) {
	if got := NodeID(255).String(); got != "255" {
		t.Fatalf("String() = %q, want %q", got, "255")
	}
}
