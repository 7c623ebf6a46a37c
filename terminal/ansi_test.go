package terminal

import (
	"bytes"
	"testing"
)

func TestCursorPos(t *testing.T) {
	cases := []struct {
		row, col int
		want     string
	}{
		{1, 1, "\x1b[1;1H"},
		{24, 80, "\x1b[24;80H"},
		{-3, 5, "\x1b[0;5H"},
	}
	for _, tc := range cases {
		got := CursorPos(tc.row, tc.col)
		if string(got) != tc.want {
			t.Errorf("CursorPos(%d, %d) = %q, want %q", tc.row, tc.col, got, tc.want)
		}
	}
}

// A terminal may answer the cell geometry query with an absurd but
// grammatical row count; positioning must format it, not crash.
func TestCursorPosLargeValues(t *testing.T) {
	got := CursorPos(999999, 1048576)
	if string(got) != "\x1b[999999;1048576H" {
		t.Errorf("Expected large coordinates formatted verbatim, got %q", got)
	}
}

func TestEmergencyResetSequence(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.String()
	for _, want := range []string{"\x1b[?1003l\x1b[?1006l", "\x1b[?25h", "\x1b[0m", "\x1bc"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("Expected reset output to contain %q, got %q", want, out)
		}
	}
}
