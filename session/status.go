package session

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"paintbox/terminal"
)

// Kitty terminals are truecolor; the swatch uses the profile directly
// instead of re-detecting it through the raw-mode tty.
var statusProfile = termenv.TrueColor

const swatchWidth = 3 // two block cells plus a separating space

// renderStatus writes the one-line tool readout on the first reserved
// row, padded to the full width, and homes the cursor afterwards. A
// transient message is shown once and then cleared.
func (s *Session) renderStatus() error {
	if s.cols <= 0 || s.rows <= 0 {
		return nil
	}
	row := s.canvasRows + 1
	if row > s.rows {
		row = s.rows
	}

	entry := s.palette[s.colorIndex]
	hex := fmt.Sprintf("#%02X%02X%02X", entry.Color.R, entry.Color.G, entry.Color.B)

	line := fmt.Sprintf("[Q]uit  [C]olor  [ [ / ] ] Radius  [X]Clear  [S]ave  Color: %s %s  Radius: %d",
		entry.Name, hex, s.brushRadius)
	if s.statusMsg != "" {
		line += "  | " + s.statusMsg
	}

	// Palette names may be multibyte, so truncate and pad by display
	// width rather than byte length
	budget := s.cols - swatchWidth
	if budget < 0 {
		budget = 0
	}
	if runewidth.StringWidth(line) > budget {
		line = runewidth.Truncate(line, budget, "")
	}
	line += strings.Repeat(" ", max(budget-runewidth.StringWidth(line), 0))

	swatch := statusProfile.String("██").Foreground(statusProfile.Color(hex)).String()

	var out strings.Builder
	out.Write(terminal.CursorPos(row, 1))
	out.WriteString(swatch)
	out.WriteByte(' ')
	out.WriteString(line)
	out.Write(terminal.CursorHome)

	if err := s.write([]byte(out.String())); err != nil {
		return err
	}
	s.statusMsg = ""
	return nil
}
