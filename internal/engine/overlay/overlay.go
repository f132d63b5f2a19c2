// Package overlay draws a 2D text and panel layer on top of the 3D scene.
package overlay

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font/basicfont"

	"github.com/UnkushB/toy-obj-viewer/internal/engine/shader"
	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

const (
	solidFloats = 6 // x, y, r, g, b, a
	textFloats  = 8 // x, y, u, v, r, g, b, a
)

const solidVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;
uniform mat4 uProjection;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = vColor;
}
`

const textVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;
uniform mat4 uProjection;
out vec2 vTexCoord;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const textFragmentShader = `#version 410 core
uniform sampler2D uGlyphs;
in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;
void main() {
	float coverage = texture(uGlyphs, vTexCoord).r;
	FragColor = vec4(vColor.rgb, vColor.a * coverage);
}
`

// Overlay batches quads and text for one frame and draws them in End.
// Coordinates are drawable pixels with the origin at the top left.
type Overlay struct {
	width, height int
	scale         float32

	solid *shader.Program
	text  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32
	glyphTex           uint32

	atlas      *glyphAtlas
	solidVerts []float32
	textVerts  []float32
}

// New creates the overlay for a drawable of the given size. scale multiplies
// the 7x13 glyph size.
func New(width, height int, scale float32) (*Overlay, error) {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{
		width:      width,
		height:     height,
		scale:      scale,
		atlas:      newGlyphAtlas(basicfont.Face7x13),
		solidVerts: make([]float32, 0, 1024),
		textVerts:  make([]float32, 0, 4096),
	}

	var err error
	if o.solid, err = shader.New(solidVertexShader, solidFragmentShader); err != nil {
		return nil, fmt.Errorf("overlay solid shader: %w", err)
	}
	if o.text, err = shader.New(textVertexShader, textFragmentShader); err != nil {
		o.solid.Delete()
		return nil, fmt.Errorf("overlay text shader: %w", err)
	}

	o.solidVAO, o.solidVBO = newBuffers(solidFloats, 2, 4)
	o.textVAO, o.textVBO = newBuffers(textFloats, 2, 2, 4)
	o.glyphTex = uploadAtlas(o.atlas)
	return o, nil
}

// newBuffers creates a VAO/VBO pair with float attributes of the given
// sizes at consecutive locations.
func newBuffers(stride int, sizes ...int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	offset := 0
	for loc, size := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(loc))
		offset += int(size)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

func uploadAtlas(a *glyphAtlas) uint32 {
	var tex uint32
	b := a.img.Bounds()
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Resize updates the drawable size.
func (o *Overlay) Resize(width, height int) {
	o.width, o.height = width, height
}

// Begin discards anything queued since the last End.
func (o *Overlay) Begin() {
	o.solidVerts = o.solidVerts[:0]
	o.textVerts = o.textVerts[:0]
}

// End draws the queued panels, then the queued text.
func (o *Overlay) End() {
	if len(o.solidVerts) == 0 && len(o.textVerts) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	proj := math.Ortho(0, float32(o.width), float32(o.height), 0, -1, 1)

	if len(o.solidVerts) > 0 {
		o.solid.Use()
		o.solid.SetMat4("uProjection", proj)
		drawBatch(o.solidVAO, o.solidVBO, o.solidVerts, solidFloats)
	}
	if len(o.textVerts) > 0 {
		o.text.Use()
		o.text.SetMat4("uProjection", proj)
		o.text.SetInt("uGlyphs", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, o.glyphTex)
		drawBatch(o.textVAO, o.textVBO, o.textVerts, textFloats)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.DEPTH_TEST)
}

func drawBatch(vao, vbo uint32, verts []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/stride))
}

// Close releases GL resources.
func (o *Overlay) Close() {
	for _, vao := range []*uint32{&o.solidVAO, &o.textVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, vbo := range []*uint32{&o.solidVBO, &o.textVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if o.glyphTex != 0 {
		gl.DeleteTextures(1, &o.glyphTex)
		o.glyphTex = 0
	}
	o.solid.Delete()
	o.text.Delete()
}

// DrawRect queues a filled rectangle.
func (o *Overlay) DrawRect(x, y, w, h float32, c Color) {
	o.solidVerts = appendSolidQuad(o.solidVerts, x, y, w, h, c)
}

// DrawPanel queues a filled rectangle with a one pixel border.
func (o *Overlay) DrawPanel(x, y, w, h float32, bg, border Color) {
	o.DrawRect(x, y, w, h, bg)
	o.DrawRect(x, y, w, 1, border)
	o.DrawRect(x, y+h-1, w, 1, border)
	o.DrawRect(x, y+1, 1, h-2, border)
	o.DrawRect(x+w-1, y+1, 1, h-2, border)
}

// DrawText queues text with its top-left corner at (x, y).
func (o *Overlay) DrawText(x, y float32, text string, c Color) {
	o.textVerts = appendText(o.textVerts, o.atlas, x, y, o.scale, text, c)
}

// MeasureText returns the on-screen size of text.
func (o *Overlay) MeasureText(text string) (w, h float32) {
	tw, th := o.atlas.measure(text)
	return float32(tw) * o.scale, float32(th) * o.scale
}

// LineHeight returns the height of one line of text.
func (o *Overlay) LineHeight() float32 {
	return float32(o.atlas.cellH) * o.scale
}

func appendSolidQuad(dst []float32, x, y, w, h float32, c Color) []float32 {
	return append(dst,
		x, y, c.R, c.G, c.B, c.A,
		x+w, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,

		x, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,
		x, y+h, c.R, c.G, c.B, c.A,
	)
}

func appendTexturedQuad(dst []float32, x, y, w, h, u0, v0, u1, v1 float32, c Color) []float32 {
	return append(dst,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,

		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// appendText lays out text left to right, one quad per glyph. Spaces
// advance the pen without emitting geometry.
func appendText(dst []float32, a *glyphAtlas, x, y, scale float32, text string, c Color) []float32 {
	cw := float32(a.cellW) * scale
	ch := float32(a.cellH) * scale
	penX := x
	for _, r := range text {
		switch r {
		case '\n':
			penX = x
			y += ch
			continue
		case ' ':
			penX += float32(a.advance) * scale
			continue
		}
		u0, v0, u1, v1 := a.uv(r)
		dst = appendTexturedQuad(dst, penX, y, cw, ch, u0, v0, u1, v1, c)
		penX += float32(a.advance) * scale
	}
	return dst
}
