// Package kitty encodes image transmissions for the kitty graphics
// protocol (https://sw.kovidgoyal.net/kitty/graphics-protocol/).
//
// The encoder is pure: it turns a pixel payload plus a parameter set
// into ready-to-write APC frames and performs no I/O itself. Payloads
// are base64-encoded and split into fixed-size chunks; every frame but
// the last carries the m=1 continuation flag.
package kitty

import (
	"bytes"
	"encoding/base64"
	"strconv"
)

// ChunkSize is the maximum base64 text length carried by one frame
const ChunkSize = 4096

// Frame delimiters: ESC _G introduces a graphics command, ESC \ (ST)
// terminates it.
var (
	apcStart = []byte("\x1b_G")
	apcEnd   = []byte("\x1b\\")
)

// Pixel format values for Params.Format
const (
	FormatRGBA = 32
	FormatRGB  = 24
)

// Params is the control data for one image transmission
type Params struct {
	Action       byte // 'T' = transmit and display
	Format       int  // pixel format, FormatRGBA for raw RGBA
	Width        int  // payload width in pixels (s=)
	Height       int  // payload height in pixels (v=)
	ImageID      uint32
	Columns      int // display width in terminal cells (c=), 0 to omit
	Rows         int // display height in terminal cells (r=), 0 to omit
	PlacementID  uint32
	Quiet        int  // q=2 suppresses success and failure responses
	NoCursorMove bool // C=1: leave the cursor where it is
}

// control renders the key=value parameter list for the opening frame
func (p Params) control(buf *bytes.Buffer) {
	buf.WriteString("a=")
	buf.WriteByte(p.Action)
	writePair(buf, "f", p.Format)
	writePair(buf, "s", p.Width)
	writePair(buf, "v", p.Height)
	writePair(buf, "i", int(p.ImageID))
	if p.Quiet != 0 {
		writePair(buf, "q", p.Quiet)
	}
	if p.Columns != 0 {
		writePair(buf, "c", p.Columns)
	}
	if p.Rows != 0 {
		writePair(buf, "r", p.Rows)
	}
	if p.PlacementID != 0 {
		writePair(buf, "p", int(p.PlacementID))
	}
	if p.NoCursorMove {
		writePair(buf, "C", 1)
	}
}

func writePair(buf *bytes.Buffer, key string, value int) {
	buf.WriteByte(',')
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(strconv.Itoa(value))
}

// Frames encodes payload into protocol frames. The first frame carries
// the full parameter set plus the first chunk; continuation frames carry
// only the m flag and their chunk. The caller writes the frames in order.
func Frames(p Params, payload []byte) [][]byte {
	data := encodeBase64(payload)

	var frames [][]byte
	idx := 0
	first := true
	for first || idx < len(data) {
		end := idx + ChunkSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[idx:end]
		idx = end

		more := 0
		if idx < len(data) {
			more = 1
		}

		var buf bytes.Buffer
		buf.Write(apcStart)
		if first {
			p.control(&buf)
			writePair(&buf, "m", more)
			first = false
		} else {
			buf.WriteString("m=")
			buf.WriteString(strconv.Itoa(more))
		}
		buf.WriteByte(';')
		buf.Write(chunk)
		buf.Write(apcEnd)
		frames = append(frames, buf.Bytes())
	}
	return frames
}

func encodeBase64(payload []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(payload)))
	base64.StdEncoding.Encode(out, payload)
	return out
}

// Delete encodes a frame that removes image imageID from the terminal.
// A non-zero placementID scopes the delete to that placement; deleteData
// (d=I instead of d=i) also discards the stored pixel data.
func Delete(imageID, placementID uint32, deleteData bool) []byte {
	var buf bytes.Buffer
	buf.Write(apcStart)
	buf.WriteString("a=d,d=")
	if deleteData {
		buf.WriteByte('I')
	} else {
		buf.WriteByte('i')
	}
	writePair(&buf, "i", int(imageID))
	if placementID != 0 {
		writePair(&buf, "p", int(placementID))
	}
	buf.Write(apcEnd)
	return buf.Bytes()
}
