package texture

import (
	"image"
	"image/color"
	"testing"
)

// makeTGA builds a TGA file with the given header fields and pixel payload.
func makeTGA(imageType, bpp, descriptor byte, width, height int, payload []byte) []byte {
	header := make([]byte, 18)
	header[2] = imageType
	header[12] = byte(width)
	header[13] = byte(width >> 8)
	header[14] = byte(height)
	header[15] = byte(height >> 8)
	header[16] = bpp
	header[17] = descriptor
	return append(header, payload...)
}

func TestDecodeTGA_Uncompressed24(t *testing.T) {
	// 2x2 bottom-up: first stored row is the bottom row.
	payload := []byte{
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	}
	img, err := DecodeTGA(makeTGA(TGATypeTrueColor, 24, 0, 2, 2, payload))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 1, color.NRGBA{255, 0, 0, 255}},
		{1, 1, color.NRGBA{0, 255, 0, 255}},
		{0, 0, color.NRGBA{0, 0, 255, 255}},
		{1, 0, color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		got := color.NRGBAModel.Convert(img.At(tt.x, tt.y)).(color.NRGBA)
		if got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGA_TopToBottom32(t *testing.T) {
	payload := []byte{10, 20, 30, 128}
	img, err := DecodeTGA(makeTGA(TGATypeTrueColor, 32, 0x20, 1, 1, payload))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	got := img.(*image.NRGBA).NRGBAAt(0, 0)
	want := color.NRGBA{R: 30, G: 20, B: 10, A: 128}
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTGA_RLE(t *testing.T) {
	// One run packet of 3 red pixels followed by one raw packet of 1 blue.
	payload := []byte{
		0x82, 0, 0, 255,
		0x00, 255, 0, 0,
	}
	img, err := DecodeTGA(makeTGA(TGATypeTrueColorRLE, 24, 0x20, 4, 1, payload))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	rgba := img.(*image.NRGBA)
	for x := 0; x < 3; x++ {
		if got := rgba.NRGBAAt(x, 0); got != (color.NRGBA{255, 0, 0, 255}) {
			t.Errorf("pixel %d = %v, want red", x, got)
		}
	}
	if got := rgba.NRGBAAt(3, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("pixel 3 = %v, want blue", got)
	}
}

func TestDecodeTGA_Gray(t *testing.T) {
	img, err := DecodeTGA(makeTGA(TGATypeGray, 8, 0x20, 2, 1, []byte{0, 200}))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	if got := img.(*image.Gray).GrayAt(1, 0).Y; got != 200 {
		t.Errorf("gray = %d, want 200", got)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			d := makeTGA(TGATypeTrueColor, 24, 0, 1, 1, []byte{0, 0, 0})
			d[1] = 1
			return d
		}()},
		{"unsupported type", makeTGA(1, 8, 0, 1, 1, []byte{0})},
		{"unsupported depth", makeTGA(TGATypeTrueColor, 16, 0, 1, 1, []byte{0, 0})},
		{"truncated pixels", makeTGA(TGATypeTrueColor, 24, 0, 2, 2, []byte{1, 2, 3})},
		{"truncated RLE", makeTGA(TGATypeTrueColorRLE, 24, 0, 2, 1, []byte{0x81, 1})},
		{"empty image", makeTGA(TGATypeTrueColor, 24, 0, 0, 0, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
