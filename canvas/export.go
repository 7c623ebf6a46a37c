package canvas

import (
	"image"
	"image/png"
	"io"
	"os"
)

// WritePNG encodes the framebuffer as a lossless PNG. The buffer holds
// straight (non-premultiplied) alpha, so it maps onto image.NRGBA as-is.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.pix)
	return png.Encode(w, img)
}

// SavePNG writes the framebuffer to a PNG file at path
func (f *Framebuffer) SavePNG(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.WritePNG(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
