// Package screenshot writes captured frames as PNG files.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Writer names and writes screenshot files in one directory.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a Writer. An empty dir means the working directory.
func New(dir, prefix string) *Writer {
	if prefix == "" {
		prefix = "screenshot"
	}
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Save encodes bottom-up RGBA pixels as a PNG and returns the file path.
// It never overwrites an existing file.
func (w *Writer) Save(pixels []byte, width, height int) (string, error) {
	img, err := FromGL(pixels, width, height)
	if err != nil {
		return "", err
	}
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, path, err := w.create()
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, f.Close()
}

// create opens a new file named after the current time, adding a counter
// when several shots land in the same second.
func (w *Writer) create() (*os.File, string, error) {
	stamp := w.now().Format("2006-01-02_15-04-05")
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s_%s.png", w.prefix, stamp)
		if n > 1 {
			name = fmt.Sprintf("%s_%s_%d.png", w.prefix, stamp, n)
		}
		path := filepath.Join(w.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("creating file: %w", err)
		}
		return f, path, nil
	}
}

// FromGL copies pixels read from a GL framebuffer, whose first row is the
// bottom of the image, into a top-down image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		dst := y * img.Stride
		copy(img.Pix[dst:dst+row], pixels[src:src+row])
	}
	return img, nil
}
