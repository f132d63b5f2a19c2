package wavefront

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LoadMaterials reads the MTL file at path into table and returns it. A nil
// table is replaced by a new one. Texture paths are resolved against the
// directory of path.
func LoadMaterials(path string, table *MaterialTable, opts ...Option) (*MaterialTable, error) {
	return loadMaterials(path, table, newOptions(opts))
}

// ParseMaterials reads MTL records from r into table and returns it.
// Relative texture paths are resolved against dir.
func ParseMaterials(r io.Reader, dir string, table *MaterialTable, opts ...Option) (*MaterialTable, error) {
	return parseMaterials(r, "", dir, table, newOptions(opts))
}

func loadMaterials(path string, table *MaterialTable, o *options) (*MaterialTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	defer f.Close()

	return parseMaterials(f, path, filepath.Dir(path), table, o)
}

func parseMaterials(r io.Reader, path, dir string, table *MaterialTable, o *options) (*MaterialTable, error) {
	if table == nil {
		table = NewMaterialTable()
	}

	p := &mtlParser{opts: o, dir: dir, table: table}
	if err := scanRecords(r, path, p.record); err != nil {
		return nil, err
	}
	p.flush()

	o.log.Debug("material library loaded",
		zap.String("path", path),
		zap.Int("defined", p.defined),
		zap.Int("materials", table.Len()))
	return table, nil
}

type mtlParser struct {
	opts    *options
	dir     string
	table   *MaterialTable
	cur     *Material // nil until the first newmtl
	defined int
}

func (p *mtlParser) record(keyword string, c *cursor) error {
	if keyword == "newmtl" {
		p.flush()
		m := DefaultMaterial(c.rest())
		p.cur = &m
		return nil
	}
	if p.cur == nil {
		return nil
	}

	var err error
	switch keyword {
	case "Kd":
		p.cur.Diffuse, err = c.vec3()
	case "Ks":
		p.cur.Specular, err = c.vec3()
	case "Ns":
		p.cur.Shininess, err = c.scalar()
	case "d":
		p.cur.Opacity, err = c.scalar()
	case "Tr":
		var tr float32
		if tr, err = c.scalar(); err == nil {
			p.cur.Opacity = 1 - tr
		}
	case "map_Kd", "map_Ka":
		p.cur.DiffuseMap = p.texture(keyword, c.rest())
	case "map_Ks":
		p.cur.SpecularMap = p.texture(keyword, c.rest())
	}
	return err
}

// flush stores the open material.
func (p *mtlParser) flush() {
	if p.cur == nil {
		return
	}
	p.table.Put(*p.cur)
	p.defined++
	p.cur = nil
}

// texture decodes a map and returns nil, after reporting a warning, when it
// cannot be used.
func (p *mtlParser) texture(keyword, ref string) *Image {
	path := resolvePath(p.dir, ref)
	fail := func(err error) *Image {
		p.opts.warn(&TextureError{Material: p.cur.Name, Map: keyword, Path: path, Err: err})
		return nil
	}

	if ref == "" {
		return fail(errors.New("empty path"))
	}
	if p.opts.decoder == nil {
		return fail(errors.New("no image decoder configured"))
	}
	img, err := p.opts.decoder.Decode(path, true)
	if err != nil {
		return fail(err)
	}
	if img == nil || img.Channels != 3 && img.Channels != 4 {
		ch := 0
		if img != nil {
			ch = img.Channels
		}
		return fail(fmt.Errorf("unsupported channel count %d", ch))
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pixels) < img.Width*img.Height*img.Channels {
		return fail(fmt.Errorf("%dx%d image with %d bytes of pixels", img.Width, img.Height, len(img.Pixels)))
	}
	return img
}

// resolvePath joins a relative reference onto dir. Backslash separators
// written by Windows exporters are accepted.
func resolvePath(dir, ref string) string {
	ref = filepath.FromSlash(strings.ReplaceAll(ref, `\`, "/"))
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(dir, ref)
}
