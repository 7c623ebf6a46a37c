package terminal

import (
	"bytes"
	"io"
	"strconv"
	"time"
)

// GeometryQuery pairs a CSI window request with the report code that
// introduces its reply.
type GeometryQuery struct {
	Request []byte
	Code    int
}

var (
	// CellGeometry reports the text area size in character cells
	// (reply: CSI 8 ; rows ; cols t)
	CellGeometry = GeometryQuery{Request: []byte("\x1b[18t"), Code: 8}

	// PixelGeometry reports the text area size in pixels
	// (reply: CSI 4 ; height ; width t)
	PixelGeometry = GeometryQuery{Request: []byte("\x1b[14t"), Code: 4}
)

const queryPollInterval = 50 * time.Millisecond

// Query sends q's request and polls until the matching report arrives or
// timeout elapses. On a match the two numeric groups are returned and any
// bytes after the matched reply are pushed back onto the parser's pending
// buffer. On timeout the supplied defaults are returned and the parser is
// left untouched. Only write and read failures surface as errors.
func Query(b Backend, p *Parser, q GeometryQuery, defA, defB int, timeout time.Duration) (int, int, error) {
	if err := b.Write(q.Request); err != nil {
		return 0, 0, err
	}

	deadline := time.Now().Add(timeout)
	var buf []byte
	for time.Now().Before(deadline) {
		data, err := b.ReadTimeout(queryPollInterval)
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, 0, err
		}
		if len(data) == 0 {
			continue // Timeout tick
		}
		buf = append(buf, data...)
		if a, bv, end, ok := scanReport(buf, q.Code); ok {
			p.PushFront(buf[end:])
			return a, bv, nil
		}
	}
	return defA, defB, nil
}

// scanReport searches buf for ESC [ code ; A ; B t and returns the two
// numeric groups plus the offset one past the terminating 't'.
func scanReport(buf []byte, code int) (a, b, end int, ok bool) {
	prefix := []byte("\x1b[" + strconv.Itoa(code) + ";")
	for start := 0; start < len(buf); start++ {
		idx := bytes.Index(buf[start:], prefix)
		if idx < 0 {
			return 0, 0, 0, false
		}
		i := start + idx + len(prefix)

		av, i, okA := scanNumber(buf, i)
		if okA && i < len(buf) && buf[i] == ';' {
			bv, j, okB := scanNumber(buf, i+1)
			if okB && j < len(buf) && buf[j] == 't' {
				return av, bv, j + 1, true
			}
		}
		start += idx // Resume search after this candidate
	}
	return 0, 0, 0, false
}

// scanNumber reads a decimal run at buf[i:], returning the value and the
// index of the first non-digit byte
func scanNumber(buf []byte, i int) (int, int, bool) {
	v := 0
	digits := 0
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		v = v*10 + int(buf[i]-'0')
		if v > 1<<20 { // Sanity limit
			return 0, 0, false
		}
		i++
		digits++
	}
	return v, i, digits > 0
}
