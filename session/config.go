package session

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"paintbox/canvas"
)

// PaletteEntry is a named brush color
type PaletteEntry struct {
	Name  string
	Color canvas.Color
}

// Config holds the startup parameters for a painting session. It is
// immutable after construction; live brush state is kept on the Session.
type Config struct {
	// Canvas dimensions in pixels. Zero means fit to the terminal's
	// reported pixel geometry (640x400 when the terminal stays silent).
	Width  int
	Height int

	Background  canvas.Color
	BrushColor  canvas.Color
	BrushRadius int
	Palette     []PaletteEntry

	// StatusRows is the number of terminal rows reserved below the canvas
	StatusRows int

	// OutputPath is where the save key writes the PNG export
	OutputPath string
}

// DefaultConfig returns the stock palette and canvas parameters
func DefaultConfig() Config {
	return Config{
		Width:       640,
		Height:      400,
		Background:  canvas.Color{R: 12, G: 12, B: 12, A: 255},
		BrushColor:  canvas.Color{R: 255, G: 102, B: 0, A: 255},
		BrushRadius: 10,
		Palette: []PaletteEntry{
			{"Orange", canvas.Color{R: 255, G: 102, B: 0, A: 255}},
			{"Sky", canvas.Color{R: 0, G: 170, B: 255, A: 255}},
			{"Lime", canvas.Color{R: 120, G: 220, B: 50, A: 255}},
			{"Magenta", canvas.Color{R: 200, G: 64, B: 220, A: 255}},
			{"White", canvas.Color{R: 240, G: 240, B: 240, A: 255}},
		},
		StatusRows: 1,
		OutputPath: "drawing.png",
	}
}

// paletteFile is the YAML shape for user palettes:
//
//	palette:
//	  - name: Rust
//	    color: "#B7410E"
type paletteFile struct {
	Palette []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
	} `yaml:"palette"`
}

// LoadPalette reads a YAML palette file with #RRGGBB color values
func LoadPalette(path string) ([]PaletteEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf paletteFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parsing palette %s: %w", path, err)
	}

	entries := make([]PaletteEntry, 0, len(pf.Palette))
	for _, e := range pf.Palette {
		c, err := colorful.Hex(e.Color)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", e.Name, err)
		}
		r, g, b := c.RGB255()
		entries = append(entries, PaletteEntry{
			Name:  e.Name,
			Color: canvas.Color{R: r, G: g, B: b, A: 255},
		})
	}
	return entries, nil
}
