package terminal

import (
	"io"
	"strconv"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csiClear = []byte("\x1b[2J\x1b[H")
	csiHome  = []byte("\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	// Cursor control
	CursorHide = []byte("\x1b[?25l")
	CursorShow = []byte("\x1b[?25h")

	// Mouse tracking: ?1003 reports all motion, ?1006 switches the wire
	// format to SGR so coordinates are not capped at 223
	MouseEnable  = []byte("\x1b[?1003h\x1b[?1006h")
	MouseDisable = []byte("\x1b[?1003l\x1b[?1006l")

	// ClearScreen clears and homes the cursor
	ClearScreen = csiClear

	// CursorHome moves the cursor to the top-left cell
	CursorHome = csiHome
)

// CursorPos returns the positioning sequence for a 1-indexed row/column
func CursorPos(row, col int) []byte {
	buf := make([]byte, 0, 12)
	buf = append(buf, "\x1b["...)
	buf = appendInt(buf, row)
	buf = append(buf, ';')
	buf = appendInt(buf, col)
	buf = append(buf, 'H')
	return buf
}

func appendInt(buf []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	return strconv.AppendInt(buf, int64(n), 10)
}

// EmergencyReset attempts to restore terminal to sane state.
// Call this from panic recovery if the session cleanup cannot run.
func EmergencyReset(w io.Writer) {
	w.Write(MouseDisable)
	w.Write(CursorShow)
	w.Write(csiSGR0)
	w.Write(csiRIS)
}
