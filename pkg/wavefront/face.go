package wavefront

import (
	"fmt"
	"strings"
)

// FaceEncoding describes how a face record encodes its vertex groups.
type FaceEncoding int

const (
	EncodingUnsupported FaceEncoding = iota // v, v/vt and anything else
	EncodingPosTexNorm                      // v/vt/vn
	EncodingPosNorm                         // v//vn
)

// String returns the OBJ notation for the encoding.
func (e FaceEncoding) String() string {
	switch e {
	case EncodingPosTexNorm:
		return "v/vt/vn"
	case EncodingPosNorm:
		return "v//vn"
	default:
		return "unsupported"
	}
}

// classifyFace inspects the first vertex group of a face.
func classifyFace(group string) FaceEncoding {
	first := strings.IndexByte(group, '/')
	if first < 0 {
		return EncodingUnsupported
	}
	second := strings.IndexByte(group[first+1:], '/')
	switch {
	case second < 0:
		return EncodingUnsupported
	case second == 0:
		return EncodingPosNorm
	default:
		return EncodingPosTexNorm
	}
}

// resolveIndex maps an OBJ index onto a pool of n elements. Positive
// indices are 1-based; zero and negative indices count back from the end.
func resolveIndex(raw, n int) (int, bool) {
	i := raw - 1
	if raw <= 0 {
		i = n + raw
	}
	return i, i >= 0 && i < n
}

// resolveFace reads the vertex groups of a face record into a polygon loop.
// Recoverable problems are returned as *FaceError, malformed numbers as
// *ParseError.
func (b *builder) resolveFace(c *cursor) ([]Vertex, error) {
	type group struct {
		text string
		col  int
	}
	var groups []group
	for !c.done() {
		col := c.pos
		groups = append(groups, group{text: c.token(), col: col})
	}

	enc := EncodingUnsupported
	if len(groups) > 0 {
		enc = classifyFace(groups[0].text)
	}
	if enc == EncodingUnsupported {
		return nil, b.faceError(c, enc, ErrUnsupportedFaceEncoding)
	}
	if len(groups) < 3 {
		return nil, b.faceError(c, enc, ErrDegenerateFace)
	}

	poly := make([]Vertex, 0, len(groups))
	for _, g := range groups {
		parts := strings.Split(g.text, "/")
		if len(parts) != 3 || (parts[1] == "") != (enc == EncodingPosNorm) {
			return nil, b.faceError(c, enc,
				fmt.Errorf("%w: group %q mixed into %s face", ErrUnsupportedFaceEncoding, g.text, enc))
		}

		var v Vertex
		pi, err := c.index(parts[0], g.col, len(b.positions))
		if err != nil {
			return nil, err
		}
		v.Position = b.positions[pi]

		if enc == EncodingPosTexNorm {
			ti, err := c.index(parts[1], g.col, len(b.texCoords))
			if err != nil {
				return nil, err
			}
			v.TexCoord = b.texCoords[ti]
		}

		ni, err := c.index(parts[2], g.col, len(b.normals))
		if err != nil {
			return nil, err
		}
		v.Normal = b.normals[ni]

		poly = append(poly, v)
	}
	return poly, nil
}

func (b *builder) faceError(c *cursor, enc FaceEncoding, err error) *FaceError {
	return &FaceError{Path: c.path, Line: c.lineNo, Encoding: enc, Err: err}
}
