package wavefront

import (
	"fmt"
	"slices"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

// Triangle is three vertices in winding order.
type Triangle struct {
	A, B, C Vertex
}

// Area returns the surface area of the triangle.
func (t Triangle) Area() float32 {
	e1 := t.B.Position.Sub(t.A.Position)
	e2 := t.C.Position.Sub(t.A.Position)
	return 0.5 * e1.Cross(e2).Length()
}

// Centroid returns the mean of the three positions.
func (t Triangle) Centroid() math.Vec3 {
	return t.A.Position.Add(t.B.Position).Add(t.C.Position).Scale(1.0 / 3.0)
}

// Triangulate splits a planar, simple polygon loop into len(poly)-2
// triangles by ear clipping. The input is not modified.
//
// If the loop runs out of ears (self-intersecting or degenerate input) the
// triangles found so far are returned with a *TriangulationError.
func Triangulate(poly []Vertex) ([]Triangle, error) {
	switch n := len(poly); {
	case n < 3:
		return nil, fmt.Errorf("%w: %d vertices", ErrDegenerateFace, n)
	case n == 3:
		return []Triangle{{poly[0], poly[1], poly[2]}}, nil
	}

	loop := slices.Clone(poly)
	a, b := dominantPlane(newellNormal(loop))

	// Ear tests below assume counter-clockwise order in the (a, b) plane.
	if clockwiseArea(loop, a, b) > 0 {
		slices.Reverse(loop)
	}

	tris := make([]Triangle, 0, len(loop)-2)
	for len(loop) > 3 {
		i, ok := findEar(loop, a, b)
		if !ok {
			return tris, &TriangulationError{
				Vertices:  len(poly),
				Emitted:   len(tris),
				Remaining: len(loop),
			}
		}
		n := len(loop)
		mid := (i + 1) % n
		tris = append(tris, Triangle{loop[i], loop[mid], loop[(i+2)%n]})
		loop = slices.Delete(loop, mid, mid+1)
	}
	return append(tris, Triangle{loop[0], loop[1], loop[2]}), nil
}

// newellNormal returns the normalized polygon normal by Newell's method.
func newellNormal(loop []Vertex) math.Vec3 {
	var n math.Vec3
	for i := range loop {
		cur := loop[i].Position
		next := loop[(i+1)%len(loop)].Position
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalize()
}

// dominantPlane returns the two axes left after dropping the one most
// aligned with the normal. Ties go to X, then Y.
func dominantPlane(n math.Vec3) (int, int) {
	x, y, z := abs32(n.X), abs32(n.Y), abs32(n.Z)
	switch {
	case x >= y && x >= z:
		return 1, 2
	case y >= z:
		return 0, 2
	default:
		return 0, 1
	}
}

// clockwiseArea returns twice the signed area of the projected loop,
// positive for clockwise order.
func clockwiseArea(loop []Vertex, a, b int) float32 {
	var sum float32
	for i := range loop {
		cur := loop[i].Position
		next := loop[(i+1)%len(loop)].Position
		sum += (next.Axis(a) - cur.Axis(a)) * (next.Axis(b) + cur.Axis(b))
	}
	return sum
}

// findEar returns the first i such that (i, i+1, i+2) is a convex corner
// containing no other loop vertex.
func findEar(loop []Vertex, a, b int) (int, bool) {
	n := len(loop)
	for i := 0; i < n; i++ {
		prev := loop[i].Position.Project(a, b)
		cur := loop[(i+1)%n].Position.Project(a, b)
		next := loop[(i+2)%n].Position.Project(a, b)

		if prev.Sub(cur).Cross(next.Sub(cur)) > 0 {
			continue // reflex
		}
		if !containsOther(loop, i, a, b, prev, cur, next) {
			return i, true
		}
	}
	return 0, false
}

// containsOther reports whether any vertex outside the candidate ear lies
// inside or on triangle (prev, cur, next).
func containsOther(loop []Vertex, i, a, b int, prev, cur, next math.Vec2) bool {
	n := len(loop)
	for j := 0; j < n; j++ {
		if j == i || j == (i+1)%n || j == (i+2)%n {
			continue
		}
		p := loop[j].Position.Project(a, b)
		d1 := p.Sub(cur).Cross(prev.Sub(cur))
		d2 := p.Sub(next).Cross(cur.Sub(next))
		d3 := p.Sub(prev).Cross(next.Sub(prev))
		if d1 >= 0 && d2 >= 0 && d3 >= 0 {
			return true
		}
	}
	return false
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
