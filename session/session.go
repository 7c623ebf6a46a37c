// Package session orchestrates the painter: it owns the framebuffer, the
// event parser, the double-buffered image slots, and the polling loop
// that turns terminal input into paint strokes and retransmissions.
package session

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paintbox/canvas"
	"paintbox/kitty"
	"paintbox/terminal"
)

const (
	pollInterval    = 50 * time.Millisecond
	geometryTimeout = 500 * time.Millisecond

	minBrushRadius = 1
	maxBrushRadius = 64

	fallbackWidth  = 640
	fallbackHeight = 400
)

// Session is the single-threaded painting loop. All state below is owned
// and mutated by that one loop; there is no sharing.
type Session struct {
	cfg     Config
	backend terminal.Backend
	parser  *terminal.Parser
	fb      *canvas.Framebuffer

	// Double-buffered image slots: at most one is displayed at a time,
	// and renders alternate between them so the old frame stays visible
	// until the new one has been transmitted.
	slots       [2]uint32
	active      int // index into slots, -1 when nothing is displayed
	placementID uint32

	// Terminal geometry, set once at startup
	cols       int
	rows       int
	canvasRows int
	pixelW     int // window pixel size from CSI 14 t, 0 when unreported
	pixelH     int

	// Live brush state
	palette     []PaletteEntry
	colorIndex  int
	brushColor  canvas.Color
	brushRadius int
	statusMsg   string

	// Drag path state: nil means Idle, non-nil means Dragging from here
	prev *canvas.Point

	sigCh chan os.Signal
}

// New builds a session around a backend. The framebuffer is created
// immediately for fixed-size configs and after the geometry query for
// fit-to-window ones.
func New(cfg Config, backend terminal.Backend) *Session {
	s := &Session{
		cfg:         cfg,
		backend:     backend,
		parser:      &terminal.Parser{},
		slots:       [2]uint32{4242, 4243},
		active:      -1,
		placementID: 1,
		cols:        80,
		rows:        24,
		brushColor:  cfg.BrushColor,
		brushRadius: clampRadius(cfg.BrushRadius),
		sigCh:       make(chan os.Signal, 1),
	}
	if cfg.StatusRows < 1 {
		s.cfg.StatusRows = 1
	}
	s.canvasRows = max(s.rows-s.cfg.StatusRows, 1)
	s.initPalette()
	if cfg.Width > 0 && cfg.Height > 0 {
		s.fb = canvas.New(cfg.Width, cfg.Height, cfg.Background)
	}
	return s
}

// initPalette normalizes the configured palette: an empty palette gets a
// synthetic entry for the brush color, and a brush color missing from
// the palette is prepended so the cycle order always starts on it.
func (s *Session) initPalette() {
	s.palette = append([]PaletteEntry(nil), s.cfg.Palette...)
	if len(s.palette) == 0 {
		s.palette = []PaletteEntry{{Name: "Default", Color: s.brushColor}}
		s.colorIndex = 0
		return
	}
	for i, entry := range s.palette {
		if entry.Color == s.brushColor {
			s.colorIndex = i
			return
		}
	}
	s.palette = append([]PaletteEntry{{Name: "Current", Color: s.brushColor}}, s.palette...)
	s.colorIndex = 0
}

// Run drives the session until quit, end of input, an interrupt signal,
// or a fatal write error. Terminal side effects are scoped: mouse
// tracking, image slots, and cursor visibility are released on every
// exit path before the backend restores the input mode.
func (s *Session) Run() (err error) {
	if err = s.backend.Init(); err != nil {
		return err
	}
	defer s.backend.Fini()

	signal.Notify(s.sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.sigCh)

	defer func() {
		if cleanupErr := s.cleanup(); err == nil {
			err = cleanupErr
		}
	}()

	if err = s.write(terminal.CursorHide); err != nil {
		return err
	}
	if err = s.write(terminal.ClearScreen); err != nil {
		return err
	}

	if err = s.queryGeometry(); err != nil {
		return err
	}
	s.initFramebuffer()

	if err = s.write(terminal.MouseEnable); err != nil {
		return err
	}
	if err = s.render(); err != nil {
		return err
	}

	// The geometry query may have pushed reply-trailing bytes back onto
	// the parser; classify them before waiting for fresh input.
	if quit, derr := s.dispatchAll(s.parser.Feed(nil)); quit || derr != nil {
		return derr
	}

	for {
		select {
		case <-s.sigCh:
			return nil
		default:
		}

		data, rerr := s.backend.ReadTimeout(pollInterval)
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
		if len(data) == 0 {
			continue
		}
		if quit, derr := s.dispatchAll(s.parser.Feed(data)); quit || derr != nil {
			return derr
		}
	}
}

// cleanup releases every terminal side effect: mouse tracking off, both
// image slots deleted regardless of which was active, cursor restored.
func (s *Session) cleanup() error {
	var firstErr error
	write := func(p []byte) {
		if werr := s.backend.Write(p); werr != nil && firstErr == nil {
			firstErr = werr
		}
	}
	write(terminal.MouseDisable)
	for _, id := range s.slots {
		write(kitty.Delete(id, 0, true))
	}
	write(terminal.CursorShow)
	return firstErr
}

// queryGeometry asks the terminal for its cell and pixel dimensions,
// falling back to the ioctl-reported size when no reply arrives.
func (s *Session) queryGeometry() error {
	defCols, defRows := s.backend.Size()

	rows, cols, err := terminal.Query(s.backend, s.parser, terminal.CellGeometry, defRows, defCols, geometryTimeout)
	if err != nil {
		return err
	}
	s.rows = rows
	s.cols = cols
	s.canvasRows = max(s.rows-s.cfg.StatusRows, 1)

	h, w, err := terminal.Query(s.backend, s.parser, terminal.PixelGeometry, 0, 0, geometryTimeout)
	if err != nil {
		return err
	}
	s.pixelH = h
	s.pixelW = w
	return nil
}

// initFramebuffer sizes a fit-to-window canvas from the pixel geometry
// reply, covering only the rows the canvas occupies
func (s *Session) initFramebuffer() {
	if s.fb != nil {
		return
	}
	w, h := fallbackWidth, fallbackHeight
	if s.pixelW > 0 && s.pixelH > 0 && s.rows > 0 {
		w = s.pixelW
		h = max(s.pixelH*s.canvasRows/s.rows, 1)
	}
	s.fb = canvas.New(w, h, s.cfg.Background)
}

func (s *Session) dispatchAll(events []terminal.Event) (bool, error) {
	for _, ev := range events {
		quit, err := s.dispatch(ev)
		if quit || err != nil {
			return quit, err
		}
	}
	return false, nil
}

func (s *Session) dispatch(ev terminal.Event) (bool, error) {
	switch ev.Type {
	case terminal.EventChar:
		return s.handleChar(ev.Rune)
	case terminal.EventMouse:
		return false, s.handleMouse(ev)
	case terminal.EventControl:
		// Stray replies; geometry was answered at startup
	}
	return false, nil
}

func (s *Session) handleChar(r rune) (bool, error) {
	switch r {
	case 'q', 'Q', 0x03: // Ctrl-C arrives as a plain byte in raw mode
		return true, nil
	case 'c':
		return false, s.cycleColor(1)
	case 'C':
		return false, s.cycleColor(-1)
	case '[':
		return false, s.changeBrushRadius(-1)
	case ']':
		return false, s.changeBrushRadius(1)
	case '{':
		return false, s.changeBrushRadius(-5)
	case '}':
		return false, s.changeBrushRadius(5)
	case 'x', 'X':
		return false, s.clearCanvas()
	case 's', 'S':
		return false, s.saveCanvas()
	}
	return false, nil
}

// handleMouse runs the two-state drag machine. Idle is prev == nil;
// Dragging is prev set. Only the primary button paints.
func (s *Session) handleMouse(ev terminal.Event) error {
	if ev.IsRelease() {
		s.prev = nil
		return nil
	}
	if ev.Btn&64 != 0 {
		return nil // Scroll wheel
	}

	switch ev.Button() {
	case terminal.MouseNone:
		if ev.IsMotion() {
			s.prev = nil
		}
		return nil
	case terminal.MouseLeft:
	default:
		return nil // Middle/right: no state change
	}

	if ev.Row > s.canvasRows {
		s.prev = nil
		return nil
	}

	pt := s.cellToCanvas(ev.Col, ev.Row)
	if s.prev != nil {
		s.fb.PaintLine(s.prev.X, s.prev.Y, pt.X, pt.Y, s.brushRadius, s.brushColor)
	} else {
		s.fb.PaintDisc(pt.X, pt.Y, s.brushRadius, s.brushColor)
	}
	s.prev = &pt
	return s.render()
}

// cellToCanvas maps a 1-indexed terminal cell to the nearest framebuffer
// pixel: cell centers project onto the canvas proportionally, then clamp.
func (s *Session) cellToCanvas(col, row int) canvas.Point {
	fx := (float64(col) - 0.5) / float64(max(s.cols, 1))
	fy := (float64(row) - 0.5) / float64(max(s.canvasRows, 1))
	x := int(math.Round(fx * float64(s.fb.Width())))
	y := int(math.Round(fy * float64(s.fb.Height())))
	return canvas.Point{
		X: clampInt(x, 0, s.fb.Width()-1),
		Y: clampInt(y, 0, s.fb.Height()-1),
	}
}

func (s *Session) cycleColor(step int) error {
	n := len(s.palette)
	s.colorIndex = ((s.colorIndex+step)%n + n) % n
	entry := s.palette[s.colorIndex]
	s.brushColor = entry.Color
	s.statusMsg = "Color -> " + entry.Name
	return s.renderStatus()
}

func (s *Session) changeBrushRadius(delta int) error {
	next := clampRadius(s.brushRadius + delta)
	switch {
	case next != s.brushRadius:
		s.brushRadius = next
		s.statusMsg = fmt.Sprintf("Radius -> %d", next)
	case delta < 0:
		s.statusMsg = "Radius at minimum"
	case delta > 0:
		s.statusMsg = "Radius at maximum"
	}
	return s.renderStatus()
}

func (s *Session) clearCanvas() error {
	s.fb.Clear()
	s.prev = nil
	s.statusMsg = "Canvas cleared"
	return s.render()
}

// saveCanvas writes the PNG export. Failure is recoverable: it surfaces
// as a status message, not a session error.
func (s *Session) saveCanvas() error {
	if err := s.fb.SavePNG(s.cfg.OutputPath); err != nil {
		s.statusMsg = "Save failed: " + err.Error()
	} else {
		s.statusMsg = "Saved " + s.cfg.OutputPath
	}
	return s.renderStatus()
}

// render transmits the framebuffer under the slot not currently shown,
// then deletes the old slot. Deleting only after the replacement has
// been sent is what keeps the swap flicker-free.
func (s *Session) render() error {
	next := (s.active + 1) % len(s.slots)
	params := kitty.Params{
		Action:       'T',
		Format:       kitty.FormatRGBA,
		Width:        s.fb.Width(),
		Height:       s.fb.Height(),
		ImageID:      s.slots[next],
		Columns:      s.cols,
		Rows:         s.canvasRows,
		PlacementID:  s.placementID,
		Quiet:        2,
		NoCursorMove: true,
	}
	for _, frame := range kitty.Frames(params, s.fb.Pix()) {
		if err := s.write(frame); err != nil {
			return err
		}
	}
	if s.active != -1 {
		if err := s.write(kitty.Delete(s.slots[s.active], s.placementID, true)); err != nil {
			return err
		}
	}
	s.active = next
	return s.renderStatus()
}

// write sends raw bytes to the terminal. Failures are fatal: there is no
// meaningful recovery mid-protocol-frame.
func (s *Session) write(p []byte) error {
	return s.backend.Write(p)
}

func clampRadius(r int) int {
	return clampInt(r, minBrushRadius, maxBrushRadius)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

