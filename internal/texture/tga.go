package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeTrueColor    = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeTrueColorRLE = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes an uncompressed or RLE compressed true-color (24/32 bit)
// or grayscale (8 bit) TGA image. TGA has no magic number, so callers pick
// this decoder by file extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, errTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	rle := imageType == TGATypeTrueColorRLE || imageType == TGATypeGrayRLE
	switch {
	case gray && bpp != 8:
		return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d", bpp)
	case !gray && imageType != TGATypeTrueColor && imageType != TGATypeTrueColorRLE:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty TGA image %dx%d", width, height)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := &tgaDecoder{
		src:         data[offset:],
		bytesPer:    bpp / 8,
		width:       width,
		height:      height,
		topToBottom: descriptor&0x20 != 0,
	}
	if gray {
		d.gray = image.NewGray(image.Rect(0, 0, width, height))
	} else {
		d.rgba = image.NewNRGBA(image.Rect(0, 0, width, height))
	}

	var err error
	if rle {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	if gray {
		return d.gray, nil
	}
	return d.rgba, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	bytesPer    int
	width       int
	height      int
	topToBottom bool

	gray *image.Gray
	rgba *image.NRGBA
}

func (d *tgaDecoder) decodeRaw() error {
	n := d.width * d.height
	if len(d.src) < n*d.bytesPer {
		return errTGATruncated
	}
	for i := 0; i < n; i++ {
		d.set(i, d.src[d.pos:d.pos+d.bytesPer])
		d.pos += d.bytesPer
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	n := d.width * d.height
	for i := 0; i < n; {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated.
			if d.pos+d.bytesPer > len(d.src) {
				return errTGATruncated
			}
			px := d.src[d.pos : d.pos+d.bytesPer]
			d.pos += d.bytesPer
			for ; count > 0 && i < n; count-- {
				d.set(i, px)
				i++
			}
			continue
		}

		// Raw packet: count literal pixels.
		if d.pos+count*d.bytesPer > len(d.src) {
			return errTGATruncated
		}
		for ; count > 0 && i < n; count-- {
			d.set(i, d.src[d.pos:d.pos+d.bytesPer])
			d.pos += d.bytesPer
			i++
		}
	}
	return nil
}

// set stores pixel number i in file order. TGA rows are bottom-up unless
// descriptor bit 5 is set.
func (d *tgaDecoder) set(i int, px []byte) {
	x := i % d.width
	y := i / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}

	if d.gray != nil {
		d.gray.SetGray(x, y, color.Gray{Y: px[0]})
		return
	}
	a := uint8(255)
	if d.bytesPer == 4 {
		a = px[3]
	}
	// BGR(A) byte order.
	d.rgba.SetNRGBA(x, y, color.NRGBA{R: px[2], G: px[1], B: px[0], A: a})
}
