package wavefront

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

func TestMaterialTable_ZeroValue(t *testing.T) {
	var table MaterialTable
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	id, ok := table.Lookup(DefaultMaterialName)
	if !ok || id != table.Default() {
		t.Fatalf("Lookup(%q) = %d, %v", DefaultMaterialName, id, ok)
	}

	m := table.Get(id)
	want := DefaultMaterial(DefaultMaterialName)
	if m != want {
		t.Errorf("default material = %+v, want %+v", m, want)
	}
	if table.Get(99).Name != DefaultMaterialName {
		t.Error("unknown id does not resolve to the default material")
	}
}

func TestMaterialTable_PutKeepsHandle(t *testing.T) {
	table := NewMaterialTable()
	a := table.Put(DefaultMaterial("A"))
	b := table.Put(DefaultMaterial("B"))

	red := DefaultMaterial("A")
	red.Diffuse = math.Vec3{X: 1}
	if got := table.Put(red); got != a {
		t.Errorf("replacing A returned id %d, want %d", got, a)
	}
	if table.Get(a).Diffuse != red.Diffuse {
		t.Errorf("A not replaced: %+v", table.Get(a))
	}
	if table.Get(b).Name != "B" {
		t.Errorf("B moved: %+v", table.Get(b))
	}
	if got := strings.Join(table.Names(), ","); got != "default_mat,A,B" {
		t.Errorf("Names() = %s", got)
	}
}

func TestParseMaterials_TwoMaterials(t *testing.T) {
	input := `
newmtl A
Kd 1 0 0
Ns 10
newmtl B
Kd 0 1 0
`
	table, err := ParseMaterials(strings.NewReader(input), "", nil)
	if err != nil {
		t.Fatalf("ParseMaterials: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	get := func(name string) Material {
		t.Helper()
		id, ok := table.Lookup(name)
		if !ok {
			t.Fatalf("material %q missing", name)
		}
		return table.Get(id)
	}

	a := get("A")
	if a.Diffuse != (math.Vec3{X: 1}) || a.Shininess != 10 {
		t.Errorf("A = %+v", a)
	}
	if a.Specular != math.Splat3(1) || a.Opacity != 1 {
		t.Errorf("A lost defaults: %+v", a)
	}

	b := get("B")
	if b.Diffuse != (math.Vec3{Y: 1}) || b.Shininess != 32 {
		t.Errorf("B = %+v", b)
	}

	if d := get(DefaultMaterialName); d != DefaultMaterial(DefaultMaterialName) {
		t.Errorf("default_mat changed: %+v", d)
	}
}

func TestParseMaterials_Properties(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, m Material)
	}{
		{
			name:  "specular",
			input: "newmtl m\nKs 0.5 0.25 0.125\n",
			check: func(t *testing.T, m Material) {
				if m.Specular != (math.Vec3{X: 0.5, Y: 0.25, Z: 0.125}) {
					t.Errorf("Specular = %v", m.Specular)
				}
			},
		},
		{
			name:  "dissolve",
			input: "newmtl m\nd 0.25\n",
			check: func(t *testing.T, m Material) {
				if m.Opacity != 0.25 {
					t.Errorf("Opacity = %v, want 0.25", m.Opacity)
				}
			},
		},
		{
			name:  "transparency is inverted dissolve",
			input: "newmtl m\nTr 0.25\n",
			check: func(t *testing.T, m Material) {
				if m.Opacity != 0.75 {
					t.Errorf("Opacity = %v, want 0.75", m.Opacity)
				}
			},
		},
		{
			name:  "empty Ns means one",
			input: "newmtl m\nNs\n",
			check: func(t *testing.T, m Material) {
				if m.Shininess != 1 {
					t.Errorf("Shininess = %v, want 1", m.Shininess)
				}
			},
		},
		{
			name:  "partial Kd keeps zero",
			input: "newmtl m\nKd 0.5\n",
			check: func(t *testing.T, m Material) {
				if m.Diffuse != (math.Vec3{X: 0.5}) {
					t.Errorf("Diffuse = %v, want (0.5,0,0)", m.Diffuse)
				}
			},
		},
		{
			name:  "unknown records ignored",
			input: "newmtl m\nKa 1 1 1\nillum 2\nNi 1.5\nKd 0 0 1\n",
			check: func(t *testing.T, m Material) {
				if m.Diffuse != (math.Vec3{Z: 1}) {
					t.Errorf("Diffuse = %v", m.Diffuse)
				}
			},
		},
		{
			name:  "name with spaces",
			input: "newmtl  Red Brick \nKd 1 0 0\n",
			check: func(t *testing.T, m Material) {
				if m.Name != "Red Brick" {
					t.Errorf("Name = %q", m.Name)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseMaterials(strings.NewReader(tt.input), "", nil)
			if err != nil {
				t.Fatalf("ParseMaterials: %v", err)
			}
			if table.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", table.Len())
			}
			tt.check(t, table.Get(1))
		})
	}
}

func TestParseMaterials_RecordsBeforeNewmtlIgnored(t *testing.T) {
	input := "Kd 1 1 1\nNs 5\nnewmtl m\n"
	table, err := ParseMaterials(strings.NewReader(input), "", nil)
	if err != nil {
		t.Fatalf("ParseMaterials: %v", err)
	}
	if d := table.Get(table.Default()); d != DefaultMaterial(DefaultMaterialName) {
		t.Errorf("default_mat modified: %+v", d)
	}
	if m := table.Get(1); m != DefaultMaterial("m") {
		t.Errorf("m = %+v", m)
	}
}

func TestParseMaterials_MalformedNumber(t *testing.T) {
	_, err := ParseMaterials(strings.NewReader("newmtl m\nKd 1 x 0\n"), "", nil)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Line != 2 || pe.Column != 6 {
		t.Errorf("position = %d:%d, want 2:6", pe.Line, pe.Column)
	}
}

func TestParseMaterials_Textures(t *testing.T) {
	images := map[string]*Image{
		"rgb.png":  {Width: 1, Height: 1, Channels: 3, Pixels: []byte{1, 2, 3}},
		"rgba.png": {Width: 1, Height: 1, Channels: 4, Pixels: []byte{1, 2, 3, 4}},
		"gray.png": {Width: 1, Height: 1, Channels: 2, Pixels: []byte{1, 2}},
		"blank.png": {Width: 0, Height: 1, Channels: 3},
		"short.png": {Width: 2, Height: 2, Channels: 4, Pixels: []byte{1, 2, 3, 4}},
	}
	var requested []string
	decoder := ImageDecoderFunc(func(path string, flip bool) (*Image, error) {
		if !flip {
			t.Errorf("Decode(%q) without vertical flip", path)
		}
		requested = append(requested, path)
		img, ok := images[filepath.Base(path)]
		if !ok {
			return nil, os.ErrNotExist
		}
		return img, nil
	})

	input := `
newmtl rgb
map_Kd rgb.png
map_Ks textures\rgba.png
newmtl rgba
map_Kd rgba.png
newmtl ambient
map_Ka rgb.png
newmtl gray
map_Kd gray.png
newmtl missing
map_Kd missing.png
newmtl empty
map_Kd
newmtl blank
map_Kd blank.png
newmtl short
map_Ks short.png
`
	var warnings []error
	table, err := ParseMaterials(strings.NewReader(input), "assets", nil,
		WithDecoder(decoder),
		WithWarningHandler(func(err error) { warnings = append(warnings, err) }))
	if err != nil {
		t.Fatalf("ParseMaterials: %v", err)
	}

	get := func(name string) Material {
		id, _ := table.Lookup(name)
		return table.Get(id)
	}

	rgb := get("rgb")
	if !rgb.HasDiffuseMap() || rgb.DiffuseMap.Channels != 3 || rgb.UsesAlpha() {
		t.Errorf("rgb diffuse = %+v", rgb.DiffuseMap)
	}
	if !rgb.HasSpecularMap() || rgb.SpecularMap.Channels != 4 {
		t.Errorf("rgb specular = %+v", rgb.SpecularMap)
	}
	if rgba := get("rgba"); !rgba.UsesAlpha() {
		t.Error("rgba does not use alpha")
	}
	if amb := get("ambient"); !amb.HasDiffuseMap() {
		t.Error("map_Ka not used as diffuse map")
	}
	for _, name := range []string{"gray", "missing", "empty", "blank"} {
		if m := get(name); m.HasDiffuseMap() {
			t.Errorf("%s has a diffuse map", name)
		}
	}
	if m := get("short"); m.HasSpecularMap() {
		t.Error("short has a specular map")
	}

	wantPath := filepath.Join("assets", "textures", "rgba.png")
	if requested[1] != wantPath {
		t.Errorf("specular path = %q, want %q", requested[1], wantPath)
	}

	if len(warnings) != 5 {
		t.Fatalf("got %d warnings, want 5: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		var te *TextureError
		if !errors.As(w, &te) || !errors.Is(w, ErrTextureDecode) {
			t.Errorf("warning %v is not a texture error", w)
		}
	}
	if !errors.Is(warnings[1], os.ErrNotExist) {
		t.Errorf("decoder error not wrapped: %v", warnings[1])
	}
}

func TestParseMaterials_NoDecoder(t *testing.T) {
	var warnings []error
	table, err := ParseMaterials(strings.NewReader("newmtl m\nmap_Kd a.png\n"), "", nil,
		WithWarningHandler(func(err error) { warnings = append(warnings, err) }))
	if err != nil {
		t.Fatalf("ParseMaterials: %v", err)
	}
	if m := table.Get(1); m.HasDiffuseMap() {
		t.Error("diffuse map set without a decoder")
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestLoadMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.mtl")
	if err := os.WriteFile(path, []byte("newmtl stone\nKd 0.5 0.5 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table := NewMaterialTable()
	got, err := LoadMaterials(path, table)
	if err != nil {
		t.Fatalf("LoadMaterials: %v", err)
	}
	if got != table {
		t.Error("LoadMaterials did not fill the given table")
	}
	if _, ok := table.Lookup("stone"); !ok {
		t.Error("stone missing")
	}

	_, err = LoadMaterials(filepath.Join(dir, "nope.mtl"), nil)
	if !errors.Is(err, ErrMissingFile) {
		t.Errorf("err = %v, want ErrMissingFile", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
