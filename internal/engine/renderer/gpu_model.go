package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

// Vertex attribute layout of wavefront.Vertex.
const (
	vertexStride   = int32(unsafe.Sizeof(wavefront.Vertex{}))
	positionOffset = unsafe.Offsetof(wavefront.Vertex{}.Position)
	texCoordOffset = unsafe.Offsetof(wavefront.Vertex{}.TexCoord)
	normalOffset   = unsafe.Offsetof(wavefront.Vertex{}.Normal)
)

// GPUModel is the GL state for one model. It implements stage.Resources.
type GPUModel struct {
	meshes    []gpuMesh
	textures  []uint32
	transform math.Mat4
	released  bool
}

type gpuMesh struct {
	vao, vbo uint32
	count    int32

	centroid    math.Vec3 // model space
	transparent bool

	diffuse     math.Vec3
	specular    math.Vec3
	shininess   float32
	opacity     float32
	useAlpha    bool
	diffuseMap  uint32
	specularMap uint32
}

// Release deletes all buffers, vertex arrays and textures.
func (gm *GPUModel) Release() {
	if gm.released {
		return
	}
	gm.released = true
	for i := range gm.meshes {
		m := &gm.meshes[i]
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	if len(gm.textures) > 0 {
		gl.DeleteTextures(int32(len(gm.textures)), &gm.textures[0])
	}
	gm.meshes, gm.textures = nil, nil
}

func upload(m *wavefront.Model) (*GPUModel, error) {
	gm := &GPUModel{transform: m.Transform()}
	images := make(map[*wavefront.Image]uint32)

	texture := func(img *wavefront.Image, srgb bool) uint32 {
		if img == nil {
			return 0
		}
		if id, ok := images[img]; ok {
			return id
		}
		id := uploadImage(img, srgb)
		images[img] = id
		gm.textures = append(gm.textures, id)
		return id
	}

	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		if len(mesh.Vertices) == 0 {
			continue
		}
		mat := m.Material(mesh)

		g := gpuMesh{
			count:       int32(len(mesh.Vertices)),
			centroid:    mesh.Centroid(),
			transparent: isTransparent(mat),
			diffuse:     mat.Diffuse,
			specular:    mat.Specular,
			shininess:   mat.Shininess,
			opacity:     mat.Opacity,
			useAlpha:    mat.UsesAlpha(),
			diffuseMap:  texture(mat.DiffuseMap, true),
			specularMap: texture(mat.SpecularMap, false),
		}
		g.vao, g.vbo = uploadVertices(mesh.Vertices)
		gm.meshes = append(gm.meshes, g)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		gm.Release()
		return nil, fmt.Errorf("upload %s: GL error 0x%x", m.SourcePath, code)
	}
	return gm, nil
}

func uploadVertices(verts []wavefront.Vertex) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(vertexStride), unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, positionOffset)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride, texCoordOffset)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, vertexStride, normalOffset)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

func uploadImage(img *wavefront.Image, srgb bool) uint32 {
	internal, format := textureFormat(img.Channels, srgb)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	// Rows of 3-channel images are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(img.Width), int32(img.Height), 0,
		format, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// textureFormat returns the internal and pixel formats for a 3 or 4
// channel image. Color maps are stored as sRGB.
func textureFormat(channels int, srgb bool) (internal int32, format uint32) {
	switch {
	case channels == 4 && srgb:
		return gl.SRGB8_ALPHA8, gl.RGBA
	case channels == 4:
		return gl.RGBA8, gl.RGBA
	case srgb:
		return gl.SRGB8, gl.RGB
	default:
		return gl.RGB8, gl.RGB
	}
}

// isTransparent reports whether a material needs blending.
func isTransparent(mat wavefront.Material) bool {
	return mat.UsesAlpha() || mat.Opacity < 1
}
