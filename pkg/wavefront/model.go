// Package wavefront loads Wavefront OBJ models and their MTL material
// libraries into triangulated, per-material meshes.
//
// Supported records: v, vt, vn, f (v/vt/vn and v//vn), mtllib, usemtl in
// OBJ files; newmtl, Kd, Ks, Ns, d, Tr, map_Kd, map_Ka, map_Ks in MTL files.
// Polygons with more than three vertices are ear-clipped.
package wavefront

import (
	"go.uber.org/multierr"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

// Vertex is one corner of a triangle.
type Vertex struct {
	Position math.Vec3
	TexCoord math.Vec2 // (0,0) for v//vn faces
	Normal   math.Vec3
}

// Mesh is a run of triangles sharing one material. len(Vertices) is always
// a multiple of 3.
type Mesh struct {
	Vertices []Vertex
	Material MaterialID
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Centroid returns the mean vertex position, or the origin for an empty
// mesh.
func (m *Mesh) Centroid() math.Vec3 {
	if len(m.Vertices) == 0 {
		return math.Vec3{}
	}
	var sum math.Vec3
	for i := range m.Vertices {
		sum = sum.Add(m.Vertices[i].Position)
	}
	return sum.Scale(1 / float32(len(m.Vertices)))
}

// Model is a fully loaded OBJ file. It is not modified after Load returns.
type Model struct {
	SourcePath string
	Meshes     []Mesh
	Materials  *MaterialTable

	// Centroid is the area-weighted centroid of all triangles.
	Centroid math.Vec3
	// Radius is the largest distance from Centroid to any position in the
	// file, referenced by a face or not.
	Radius float32
	// Area is the total triangle surface area.
	Area float32

	// Warnings lists recoverable problems in file order.
	Warnings []error
}

// Material returns the material bound to mesh.
func (m *Model) Material(mesh *Mesh) Material {
	return m.Materials.Get(mesh.Material)
}

// UsesAlpha reports whether mesh is drawn with its diffuse map's alpha.
func (m *Model) UsesAlpha(mesh *Mesh) bool {
	mat := m.Material(mesh)
	return mat.UsesAlpha()
}

// TriangleCount returns the number of triangles across all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Meshes {
		n += m.Meshes[i].TriangleCount()
	}
	return n
}

// Transform returns the matrix that centers the model on its centroid and
// scales it into the unit sphere.
func (m *Model) Transform() math.Mat4 {
	return math.Normalizing(m.Centroid, m.Radius)
}

// Err combines all warnings into one error, or nil when there were none.
func (m *Model) Err() error {
	return multierr.Combine(m.Warnings...)
}
