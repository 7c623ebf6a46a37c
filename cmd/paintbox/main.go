package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/pflag"

	"paintbox/session"
	"paintbox/terminal"
)

var (
	widthFlag   = pflag.Int("width", 640, "Canvas width in pixels")
	heightFlag  = pflag.Int("height", 400, "Canvas height in pixels")
	fitFlag     = pflag.Bool("fit", false, "Size the canvas to the terminal's reported pixel geometry")
	radiusFlag  = pflag.Int("radius", 10, "Initial brush radius in pixels")
	outputFlag  = pflag.String("output", "drawing.png", "Path for the PNG export")
	paletteFlag = pflag.String("palette", "", "YAML palette file (overrides the built-in palette)")
	debugFlag   = pflag.Bool("debug", false, "Write debug logs to "+logDir+"/")
)

func main() {
	// Panic recovery: the terminal must come back in a usable state even
	// when the session crashes mid-frame.
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)

			// Raw mode may still be active, so \r\n keeps the trace readable
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mPAINTBOX CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	pflag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := session.DefaultConfig()
	cfg.Width = *widthFlag
	cfg.Height = *heightFlag
	if *fitFlag {
		cfg.Width, cfg.Height = 0, 0
	}
	cfg.BrushRadius = *radiusFlag
	cfg.OutputPath = *outputFlag

	if *paletteFlag != "" {
		entries, err := session.LoadPalette(*paletteFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load palette: %v\n", err)
			os.Exit(1)
		}
		if len(entries) > 0 {
			cfg.Palette = entries
			cfg.BrushColor = entries[0].Color
		}
	}

	s := session.New(cfg, terminal.NewBackend())
	if err := s.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "paintbox: %v\n", err)
		os.Exit(1)
	}
}
