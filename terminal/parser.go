package terminal

// Parser is an incremental classifier for raw terminal input. It keeps a
// pending buffer across Feed calls so escape sequences split over read
// boundaries reassemble: any way of chunking a byte stream into Feed
// calls yields the same event sequence as feeding it whole.
//
// A leading ESC that can never complete either grammar (not followed by
// '[', or a CSI body with bytes outside the parameter and final ranges)
// is retained indefinitely and blocks classification until a later feed
// happens to realign the buffer. Interactive streams from a terminal do
// not produce such prefixes.
type Parser struct {
	pending []byte
}

// Feed appends data to the pending buffer and drains every fully
// recognized prefix into events, in arrival order.
func (p *Parser) Feed(data []byte) []Event {
	p.pending = append(p.pending, data...)

	var events []Event
	i := 0
	n := len(p.pending)

	for i < n {
		b := p.pending[i]

		if b == 0x1b {
			consumed, ev, ok := scanEscape(p.pending[i:])
			if !ok {
				break // Incomplete or unmatchable, wait for more data
			}
			events = append(events, ev)
			i += consumed
			continue
		}

		// Fast path: single-byte character
		if b < 0x80 {
			events = append(events, Event{Type: EventChar, Rune: rune(b)})
			i++
			continue
		}

		// UTF-8 multibyte
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			// Invalid start byte, skip
			i++
			continue
		}
		if i+seqLen > n {
			break // Incomplete UTF-8, wait for more data
		}
		rn, size := decodeRune(p.pending[i:])
		events = append(events, Event{Type: EventChar, Rune: rn})
		i += size
	}

	// Compact buffer
	if i > 0 {
		if i >= n {
			p.pending = p.pending[:0]
		} else {
			copy(p.pending, p.pending[i:])
			p.pending = p.pending[:n-i]
		}
	}
	return events
}

// PushFront prepends data ahead of the pending buffer. The geometry
// query uses this to hand back bytes that trailed a matched reply.
func (p *Parser) PushFront(data []byte) {
	if len(data) == 0 {
		return
	}
	merged := make([]byte, 0, len(data)+len(p.pending))
	merged = append(merged, data...)
	merged = append(merged, p.pending...)
	p.pending = merged
}

// scanEscape classifies an escape-prefixed head. ok is false when the
// head is incomplete or unmatchable; the caller retains the buffer.
func scanEscape(data []byte) (consumed int, ev Event, ok bool) {
	if len(data) < 2 {
		return 0, Event{}, false
	}
	if data[1] != '[' {
		// Neither grammar starts ESC-other; permanent retention
		return 0, Event{}, false
	}
	if len(data) < 3 {
		return 0, Event{}, false
	}
	if data[2] == '<' {
		return scanSGRMouse(data)
	}
	return scanCSI(data)
}

// scanSGRMouse scans ESC [ < Btn ; Col ; Row M|m
func scanSGRMouse(data []byte) (int, Event, bool) {
	var vals [3]int
	field := 0
	digits := 0

	for i := 3; i < len(data); i++ {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			vals[field] = vals[field]*10 + int(b-'0')
			if vals[field] > 9999 { // Sanity limit
				return 0, Event{}, false
			}
			digits++
		case b == ';':
			if field >= 2 || digits == 0 {
				return 0, Event{}, false
			}
			field++
			digits = 0
		case b == 'M' || b == 'm':
			if field != 2 || digits == 0 {
				return 0, Event{}, false
			}
			ev := Event{
				Type: EventMouse,
				Btn:  vals[0],
				Col:  vals[1],
				Row:  vals[2],
				Kind: b,
			}
			return i + 1, ev, true
		default:
			return 0, Event{}, false
		}
	}
	return 0, Event{}, false
}

// scanCSI scans ESC [ params final, params in [0-9;?], final in [@-~]
func scanCSI(data []byte) (int, Event, bool) {
	i := 2
	for i < len(data) {
		b := data[i]
		if (b >= '0' && b <= '9') || b == ';' || b == '?' {
			i++
			continue
		}
		if b >= 0x40 && b <= 0x7e {
			end := i + 1
			ev := Event{Type: EventControl, Seq: string(data[:end])}
			return end, ev, true
		}
		// Byte outside the CSI grammar; permanent retention
		return 0, Event{}, false
	}
	return 0, Event{}, false
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	if b < 0x80 {
		return 1
	}
	if b&0xe0 == 0xc0 {
		return 2
	}
	if b&0xf0 == 0xe0 {
		return 3
	}
	if b&0xf8 == 0xf0 {
		return 4
	}
	return 0 // Invalid
}

// decodeRune decodes the first UTF-8 rune from data
func decodeRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, 0
	}

	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var min rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size = 2
		min = 0x80
		r = rune(b & 0x1f)
	case b&0xf0 == 0xe0:
		size = 3
		min = 0x800
		r = rune(b & 0x0f)
	case b&0xf8 == 0xf0:
		size = 4
		min = 0x10000
		r = rune(b & 0x07)
	default:
		return 0xFFFD, 1 // Invalid, return replacement char
	}

	if len(data) < size {
		return 0xFFFD, 1
	}

	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}

	if r < min {
		return 0xFFFD, 1 // Overlong encoding
	}

	return r, size
}
