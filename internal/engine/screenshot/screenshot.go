// Package screenshot writes captured frames to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer names and saves frames under a directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter saves into dir, which is created on first use.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Filename returns the path a frame tagged with label would be saved to.
func (w *Writer) Filename(label string) string {
	name := fmt.Sprintf("%s_%s.png", label, w.now().Format("2006-01-02_15-04-05.000"))
	return filepath.Join(w.dir, name)
}

// SavePixels writes bottom-up RGBA rows, as read back from GL, as a
// top-down PNG and returns its path.
func (w *Writer) SavePixels(label string, pixels []byte, width, height int) (string, error) {
	img, err := FromGL(pixels, width, height)
	if err != nil {
		return "", err
	}
	return w.Save(label, img)
}

// Save writes img as a PNG and returns its path.
func (w *Writer) Save(label string, img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}
	path := w.Filename(label)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// FromGL flips GL's bottom-left origin rows into an image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
