package terminal

// EventType distinguishes input event categories
type EventType uint8

const (
	EventChar EventType = iota
	EventMouse
	EventControl
)

// SGR mouse button codes (low two bits of the button byte)
const (
	MouseLeft   = 0
	MouseMiddle = 1
	MouseRight  = 2
	MouseNone   = 3 // motion with no button held
)

// mouseMotionBit is set on the button byte for motion reports
const mouseMotionBit = 32

// Event is one classified input event. Mouse events keep the raw SGR
// values: button code as reported, 1-indexed cell coordinates, and the
// terminator byte ('M' for press/drag, 'm' for release).
type Event struct {
	Type EventType

	Rune rune   // EventChar
	Seq  string // EventControl: the raw escape sequence

	Btn  int  // EventMouse: raw button code
	Col  int  // EventMouse: cell column, 1-indexed
	Row  int  // EventMouse: cell row, 1-indexed
	Kind byte // EventMouse: terminator byte
}

// Button returns the button identity bits of a mouse event
func (e Event) Button() int {
	return e.Btn & 0x03
}

// IsMotion reports whether the mouse event is a motion report
func (e Event) IsMotion() bool {
	return e.Btn&mouseMotionBit != 0
}

// IsRelease reports whether the mouse event is a button release
func (e Event) IsRelease() bool {
	return e.Kind == 'm'
}
