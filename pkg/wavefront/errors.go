package wavefront

import (
	"errors"
	"fmt"
)

// Recoverable load errors. The record is skipped or partially used, a
// warning is reported and loading continues.
var (
	ErrUnsupportedFaceEncoding = errors.New("unsupported face encoding")
	ErrDegenerateFace          = errors.New("face has fewer than 3 vertices")
	ErrTriangulation           = errors.New("polygon triangulation failed")
	ErrTextureDecode           = errors.New("texture decode failed")
	ErrUnknownMaterial         = errors.New("unknown material")
)

// Fatal load errors.
var (
	ErrMissingFile     = errors.New("missing or unreadable file")
	ErrParse           = errors.New("malformed record")
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	ErrDegenerateModel = errors.New("degenerate model: total surface area is zero")
)

// ParseError reports a malformed token. It matches ErrParse as well as the
// wrapped cause.
type ParseError struct {
	Path   string
	Line   int // 1-based
	Column int // 1-based byte offset of the offending token
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	name := e.Path
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %v: %q", name, e.Line, e.Column, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse for every ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// FaceError reports a face record that was skipped.
type FaceError struct {
	Path     string
	Line     int
	Encoding FaceEncoding
	Err      error
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("%s:%d: face skipped (%s): %v", e.Path, e.Line, e.Encoding, e.Err)
}

func (e *FaceError) Unwrap() error { return e.Err }

// TriangulationError reports a polygon for which no further ear could be
// found. Emitted triangles were kept; Remaining vertices were dropped.
type TriangulationError struct {
	Path      string
	Line      int
	Vertices  int
	Emitted   int
	Remaining int
}

func (e *TriangulationError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %d-gon stopped after %d triangles with %d vertices left",
		e.Path, e.Line, ErrTriangulation, e.Vertices, e.Emitted, e.Remaining)
}

func (e *TriangulationError) Is(target error) bool { return target == ErrTriangulation }

// TextureError reports a texture map that could not be used.
type TextureError struct {
	Material string
	Map      string // MTL keyword, e.g. "map_Kd"
	Path     string
	Err      error
}

func (e *TextureError) Error() string {
	return fmt.Sprintf("material %q %s %s: %v", e.Material, e.Map, e.Path, e.Err)
}

func (e *TextureError) Unwrap() error { return e.Err }

func (e *TextureError) Is(target error) bool { return target == ErrTextureDecode }
