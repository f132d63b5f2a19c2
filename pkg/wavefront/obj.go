package wavefront

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

// Load reads the OBJ file at path, its material libraries and textures, and
// returns the finished model. Relative "mtllib" paths are resolved against
// the directory of path.
func Load(path string, opts ...Option) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	defer f.Close()

	return parse(f, path, filepath.Dir(path), newOptions(opts))
}

// Parse reads OBJ records from r. Relative "mtllib" paths are resolved
// against dir.
func Parse(r io.Reader, dir string, opts ...Option) (*Model, error) {
	return parse(r, "", dir, newOptions(opts))
}

func parse(r io.Reader, path, dir string, o *options) (*Model, error) {
	b := &builder{
		opts:      o,
		path:      path,
		dir:       dir,
		materials: NewMaterialTable(),
		libraries: make(map[string]bool),
	}
	b.active.Material = b.materials.Default()

	if err := scanRecords(r, path, b.record); err != nil {
		return nil, err
	}
	return b.finish()
}

// builder holds the parse-time state of one load.
type builder struct {
	opts *options
	path string
	dir  string

	positions []math.Vec3
	texCoords []math.Vec2
	normals   []math.Vec3

	materials *MaterialTable
	libraries map[string]bool

	meshes   []Mesh
	active   Mesh
	selected bool // a usemtl has been seen

	// Running sums for the area-weighted centroid.
	weighted [3]float64
	area     float64

	warnings []error
}

func (b *builder) record(keyword string, c *cursor) error {
	switch keyword {
	case "v":
		p, err := c.vec3()
		if err != nil {
			return err
		}
		b.positions = append(b.positions, p)
	case "vt":
		t, err := c.vec2()
		if err != nil {
			return err
		}
		b.texCoords = append(b.texCoords, t)
	case "vn":
		n, err := c.vec3()
		if err != nil {
			return err
		}
		b.normals = append(b.normals, n)
	case "f":
		return b.face(c)
	case "mtllib":
		return b.mtllib(c.rest())
	case "usemtl":
		b.usemtl(c.rest(), c.lineNo)
	}
	return nil
}

func (b *builder) face(c *cursor) error {
	poly, err := b.resolveFace(c)
	if err != nil {
		var fe *FaceError
		if errors.As(err, &fe) {
			b.warn(fe)
			return nil
		}
		return err
	}

	if len(poly) == 3 {
		b.emit(Triangle{poly[0], poly[1], poly[2]})
		return nil
	}

	tris, err := Triangulate(poly)
	for _, t := range tris {
		b.emit(t)
	}
	if err != nil {
		var te *TriangulationError
		if errors.As(err, &te) {
			te.Path, te.Line = c.path, c.lineNo
		}
		b.warn(err)
	}
	return nil
}

// emit appends a triangle to the active mesh and folds it into the
// centroid sums.
func (b *builder) emit(t Triangle) {
	b.active.Vertices = append(b.active.Vertices, t.A, t.B, t.C)

	a := float64(t.Area())
	c := t.Centroid()
	b.weighted[0] += a * float64(c.X)
	b.weighted[1] += a * float64(c.Y)
	b.weighted[2] += a * float64(c.Z)
	b.area += a
}

// mtllib loads the library once per model.
func (b *builder) mtllib(ref string) error {
	path := resolvePath(b.dir, ref)
	if b.libraries[path] {
		return nil
	}
	b.libraries[path] = true

	o := *b.opts
	o.onWarning = b.collect
	if _, err := loadMaterials(path, b.materials, &o); err != nil {
		return fmt.Errorf("mtllib %s: %w", ref, err)
	}
	return nil
}

func (b *builder) usemtl(name string, line int) {
	id, ok := b.materials.Lookup(name)
	if !ok {
		b.warn(fmt.Errorf("%s:%d: %w %q (%s)", b.path, line, ErrUnknownMaterial, name, b.opts.unknown))
		if b.opts.unknown == UnknownMaterialFallback {
			id = b.materials.Default()
		} else {
			id = b.materials.Put(DefaultMaterial(name))
		}
	}

	if !b.selected {
		// The first usemtl binds the mesh that is already open.
		b.selected = true
		b.active.Material = id
		return
	}
	if len(b.active.Vertices) > 0 {
		b.meshes = append(b.meshes, b.active)
	}
	b.active = Mesh{Material: id}
}

func (b *builder) warn(err error) {
	b.opts.warn(err)
	b.warnings = append(b.warnings, err)
}

// collect records a warning already logged by a nested loader.
func (b *builder) collect(err error) {
	if b.opts.onWarning != nil {
		b.opts.onWarning(err)
	}
	b.warnings = append(b.warnings, err)
}

// finish closes the last mesh, computes the centroid and radius and drops
// the vertex pools.
func (b *builder) finish() (*Model, error) {
	b.meshes = append(b.meshes, b.active)

	if !(b.area > 0) || gomath.IsInf(b.area, 1) {
		name := b.path
		if name == "" {
			name = "<input>"
		}
		return nil, fmt.Errorf("%w: %s", ErrDegenerateModel, name)
	}

	centroid := math.Vec3{
		X: float32(b.weighted[0] / b.area),
		Y: float32(b.weighted[1] / b.area),
		Z: float32(b.weighted[2] / b.area),
	}
	var radius float32
	for _, p := range b.positions {
		radius = max(radius, p.Distance(centroid))
	}

	m := &Model{
		SourcePath: b.path,
		Meshes:     b.meshes,
		Materials:  b.materials,
		Centroid:   centroid,
		Radius:     radius,
		Area:       float32(b.area),
		Warnings:   b.warnings,
	}

	b.opts.log.Info("model loaded",
		zap.String("path", b.path),
		zap.Int("positions", len(b.positions)),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("materials", m.Materials.Len()),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("warnings", len(m.Warnings)),
		zap.Float32("radius", radius))

	b.positions, b.texCoords, b.normals = nil, nil, nil
	b.meshes, b.warnings = nil, nil
	return m, nil
}
