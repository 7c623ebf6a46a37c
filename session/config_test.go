package session

import (
	"os"
	"path/filepath"
	"testing"

	"paintbox/canvas"
)

func writePalette(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palette.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write palette file: %v", err)
	}
	return path
}

func TestLoadPalette(t *testing.T) {
	path := writePalette(t, `palette:
  - name: Rust
    color: "#B7410E"
  - name: Teal
    color: "#008080"
`)

	entries, err := LoadPalette(path)
	if err != nil {
		t.Fatalf("LoadPalette failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	want := canvas.Color{R: 0xB7, G: 0x41, B: 0x0E, A: 255}
	if entries[0].Name != "Rust" || entries[0].Color != want {
		t.Errorf("Expected Rust %v, got %+v", want, entries[0])
	}
	if entries[1].Color.A != 255 {
		t.Error("Expected opaque alpha on parsed colors")
	}
}

func TestLoadPaletteBadHex(t *testing.T) {
	path := writePalette(t, `palette:
  - name: Broken
    color: "not-a-color"
`)

	if _, err := LoadPalette(path); err == nil {
		t.Error("Expected error for malformed hex color")
	}
}

func TestLoadPaletteMissingFile(t *testing.T) {
	if _, err := LoadPalette(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
