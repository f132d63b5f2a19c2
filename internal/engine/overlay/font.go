package overlay

import (
	"image"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasColumns = 16
)

// glyphAtlas is a fixed-width bitmap font rendered into a single alpha
// image, one cell per printable ASCII character.
type glyphAtlas struct {
	img     *image.Alpha
	cellW   int
	cellH   int
	advance int
}

func newGlyphAtlas(face *basicfont.Face) *glyphAtlas {
	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasColumns - 1) / atlasColumns

	a := &glyphAtlas{
		cellW:   face.Advance,
		cellH:   face.Height,
		advance: face.Advance,
	}
	a.img = image.NewAlpha(image.Rect(0, 0, atlasColumns*a.cellW, rows*a.cellH))

	d := font.Drawer{Dst: a.img, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		i := int(r - firstGlyph)
		col, row := i%atlasColumns, i/atlasColumns
		d.Dot = fixed.P(col*a.cellW, row*a.cellH+face.Ascent)
		d.DrawString(string(r))
	}
	return a
}

// uv returns the texture coordinates of r's cell. Characters outside the
// atlas map to '?'.
func (a *glyphAtlas) uv(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	col, row := i%atlasColumns, i/atlasColumns

	b := a.img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	u0 = float32(col*a.cellW) / w
	v0 = float32(row*a.cellH) / h
	u1 = float32((col+1)*a.cellW) / w
	v1 = float32((row+1)*a.cellH) / h
	return
}

// measure returns the unscaled pixel size of text, which may span lines.
func (a *glyphAtlas) measure(text string) (w, h int) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		w = max(w, utf8.RuneCountInString(line)*a.advance)
	}
	return w, len(lines) * a.cellH
}
