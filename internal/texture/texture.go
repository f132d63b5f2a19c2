// Package texture decodes material texture maps into tightly packed pixel
// buffers for the model loader.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

var _ wavefront.ImageDecoder = (*Decoder)(nil)

type cacheKey struct {
	path string
	flip bool
}

// Decoder implements wavefront.ImageDecoder for files on disk. Each decoded
// file is kept so materials sharing a map share one buffer; use one Decoder
// per model load.
type Decoder struct {
	log   *zap.Logger
	cache map[cacheKey]*wavefront.Image
}

// NewDecoder creates a decoder. A nil logger disables logging.
func NewDecoder(log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{
		log:   log,
		cache: make(map[cacheKey]*wavefront.Image),
	}
}

// Decode reads and decodes the image at path.
func (d *Decoder) Decode(path string, flipVertically bool) (*wavefront.Image, error) {
	key := cacheKey{path: filepath.Clean(path), flip: flipVertically}
	if img, ok := d.cache[key]; ok {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src, format, err := decode(data, path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	img := FromImage(src, flipVertically)
	d.cache[key] = img

	d.log.Debug("texture decoded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("channels", img.Channels))
	return img, nil
}

func decode(data []byte, path string) (image.Image, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := DecodeTGA(data)
		return img, "tga", err
	}
	return image.Decode(bytes.NewReader(data))
}

// FromImage packs img into 3-channel RGB, or 4-channel RGBA when it has any
// transparency. With flip set the bottom row comes first.
func FromImage(img image.Image, flip bool) *wavefront.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	channels := 3
	if !isOpaque(img) {
		channels = 4
	}

	pixels := make([]byte, 0, w*h*channels)
	for row := 0; row < h; row++ {
		y := b.Min.Y + row
		if flip {
			y = b.Max.Y - 1 - row
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels = append(pixels, c.R, c.G, c.B)
			if channels == 4 {
				pixels = append(pixels, c.A)
			}
		}
	}

	return &wavefront.Image{
		Width:    w,
		Height:   h,
		Channels: channels,
		Pixels:   pixels,
	}
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
