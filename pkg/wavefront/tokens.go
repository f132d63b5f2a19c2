package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"strconv"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

// maxLineLength bounds a single OBJ/MTL record.
const maxLineLength = 1 << 20

// cursor walks one record line.
type cursor struct {
	path   string
	line   string
	lineNo int
	pos    int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// skipSpace advances past whitespace.
func (c *cursor) skipSpace() {
	for c.pos < len(c.line) && isSpace(c.line[c.pos]) {
		c.pos++
	}
}

// done reports whether only whitespace remains.
func (c *cursor) done() bool {
	c.skipSpace()
	return c.pos >= len(c.line)
}

// token reads one whitespace-delimited token, consuming the whitespace on
// both sides. Returns "" at end of line.
func (c *cursor) token() string {
	c.skipSpace()
	start := c.pos
	for c.pos < len(c.line) && !isSpace(c.line[c.pos]) {
		c.pos++
	}
	tok := c.line[start:c.pos]
	c.skipSpace()
	return tok
}

// rest returns the remainder of the line with trailing whitespace removed.
// Names and paths may contain inner spaces.
func (c *cursor) rest() string {
	c.skipSpace()
	end := len(c.line)
	for end > c.pos && isSpace(c.line[end-1]) {
		end--
	}
	s := c.line[c.pos:end]
	c.pos = len(c.line)
	return s
}

// scalar parses one float. A missing value yields 1.0, which is what
// records like "Ns" and "d" fall back to when left empty.
func (c *cursor) scalar() (float32, error) {
	c.skipSpace()
	col := c.pos
	tok := c.token()
	if tok == "" {
		return 1, nil
	}
	return c.float(tok, col)
}

// tuple fills dst with up to len(dst) floats. Components without a token
// keep their current value.
func (c *cursor) tuple(dst []float32) error {
	for i := range dst {
		c.skipSpace()
		col := c.pos
		tok := c.token()
		if tok == "" {
			return nil
		}
		f, err := c.float(tok, col)
		if err != nil {
			return err
		}
		dst[i] = f
	}
	return nil
}

func (c *cursor) vec2() (math.Vec2, error) {
	var v [2]float32
	err := c.tuple(v[:])
	return math.Vec2{X: v[0], Y: v[1]}, err
}

func (c *cursor) vec3() (math.Vec3, error) {
	var v [3]float32
	err := c.tuple(v[:])
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, err
}

func (c *cursor) float(tok string, col int) (float32, error) {
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, c.errorAt(col, fmt.Errorf("number %q: %w", tok, unwrapNum(err)))
	}
	if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
		return 0, c.errorAt(col, fmt.Errorf("number %q is not finite", tok))
	}
	return float32(f), nil
}

// index parses a face index and resolves it against a pool of poolLen
// elements.
func (c *cursor) index(tok string, col, poolLen int) (int, error) {
	raw, err := strconv.Atoi(tok)
	if err != nil {
		return 0, c.errorAt(col, fmt.Errorf("index %q: %w", tok, unwrapNum(err)))
	}
	i, ok := resolveIndex(raw, poolLen)
	if !ok {
		return 0, c.errorAt(col, fmt.Errorf("%w: %d with %d elements", ErrIndexOutOfRange, raw, poolLen))
	}
	return i, nil
}

func (c *cursor) errorAt(col int, err error) *ParseError {
	return &ParseError{
		Path:   c.path,
		Line:   c.lineNo,
		Column: col + 1,
		Text:   c.line,
		Err:    err,
	}
}

// unwrapNum strips strconv's function/input prefix, keeping ErrSyntax or
// ErrRange.
func unwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// scanRecords calls fn with a cursor positioned after the record keyword for
// every non-blank, non-comment line.
func scanRecords(r io.Reader, path string, fn func(keyword string, c *cursor) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		c := &cursor{path: path, line: sc.Text(), lineNo: lineNo}
		keyword := c.token()
		if keyword == "" || keyword[0] == '#' {
			continue
		}
		if err := fn(keyword, c); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return &ParseError{Path: path, Line: lineNo + 1, Column: 1, Err: err}
		}
		name := path
		if name == "" {
			name = "<input>"
		}
		return fmt.Errorf("%w: %s: %w", ErrMissingFile, name, err)
	}
	return nil
}
