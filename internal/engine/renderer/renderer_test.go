package renderer

import (
	"slices"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

func TestVertexLayout(t *testing.T) {
	if vertexStride != 32 {
		t.Errorf("stride = %d, want 32", vertexStride)
	}
	if positionOffset != 0 || texCoordOffset != 12 || normalOffset != 20 {
		t.Errorf("offsets = %d/%d/%d, want 0/12/20", positionOffset, texCoordOffset, normalOffset)
	}
}

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		channels int
		srgb     bool
		internal int32
		format   uint32
	}{
		{3, true, gl.SRGB8, gl.RGB},
		{4, true, gl.SRGB8_ALPHA8, gl.RGBA},
		{3, false, gl.RGB8, gl.RGB},
		{4, false, gl.RGBA8, gl.RGBA},
	}
	for _, tt := range tests {
		internal, format := textureFormat(tt.channels, tt.srgb)
		if internal != tt.internal || format != tt.format {
			t.Errorf("textureFormat(%d, %v) = 0x%x, 0x%x", tt.channels, tt.srgb, internal, format)
		}
	}
}

func TestIsTransparent(t *testing.T) {
	opaque := wavefront.DefaultMaterial("opaque")
	faded := wavefront.DefaultMaterial("faded")
	faded.Opacity = 0.5
	cutout := wavefront.DefaultMaterial("cutout")
	cutout.DiffuseMap = &wavefront.Image{Width: 1, Height: 1, Channels: 4, Pixels: make([]byte, 4)}

	if isTransparent(opaque) {
		t.Error("opaque material reported transparent")
	}
	if !isTransparent(faded) || !isTransparent(cutout) {
		t.Error("transparent material reported opaque")
	}
}

func TestDrawOrder(t *testing.T) {
	meshes := []gpuMesh{
		{centroid: math.Vec3{Z: -5}, transparent: true},
		{centroid: math.Vec3{Z: 0}},
		{centroid: math.Vec3{Z: 4}, transparent: true},
		{centroid: math.Vec3{Z: -1}, transparent: true},
		{centroid: math.Vec3{Z: 9}},
	}
	eye := math.Vec3{Z: 10}

	got := drawOrder(meshes, math.Identity(), eye)
	want := []int{1, 4, 0, 3, 2}
	if !slices.Equal(got, want) {
		t.Errorf("drawOrder() = %v, want %v", got, want)
	}

	// Mirroring the model puts the far mesh nearest.
	mirror := math.Scale(1, 1, -1)
	got = drawOrder(meshes, mirror, eye)
	want = []int{1, 4, 2, 3, 0}
	if !slices.Equal(got, want) {
		t.Errorf("drawOrder(mirrored) = %v, want %v", got, want)
	}
}

func TestLightDirection(t *testing.T) {
	tests := []struct {
		azimuth, elevation float32
		want               math.Vec3
	}{
		{0, 90, math.Vec3{Y: -1}},
		{0, 0, math.Vec3{Z: -1}},
		{90, 0, math.Vec3{X: -1}},
		{180, 0, math.Vec3{Z: 1}},
		{0, -90, math.Vec3{Y: 1}},
	}
	for _, tt := range tests {
		got := LightDirection(tt.azimuth, tt.elevation)
		if got.Sub(tt.want).Length() > 1e-5 {
			t.Errorf("LightDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
		}
		if l := got.Length(); l < 0.9999 || l > 1.0001 {
			t.Errorf("LightDirection(%v, %v) length = %v", tt.azimuth, tt.elevation, l)
		}
	}
}
