package wavefront

import "github.com/UnkushB/toy-obj-viewer/pkg/math"

// DefaultMaterialName is the material every table starts with and the
// fallback for meshes that never select one.
const DefaultMaterialName = "default_mat"

// Image is a decoded texture. Pixels holds Height rows of Width*Channels
// bytes.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

// Material holds the subset of MTL properties the viewer renders.
type Material struct {
	Name        string
	Diffuse     math.Vec3 // Kd
	Specular    math.Vec3 // Ks
	Shininess   float32   // Ns
	Opacity     float32   // d
	DiffuseMap  *Image    // map_Kd / map_Ka, 3 or 4 channels
	SpecularMap *Image    // map_Ks, 3 or 4 channels
}

// DefaultMaterial returns a material with the MTL defaults used when a
// property is absent.
func DefaultMaterial(name string) Material {
	return Material{
		Name:      name,
		Diffuse:   math.Splat3(0.2),
		Specular:  math.Splat3(1),
		Shininess: 32,
		Opacity:   1,
	}
}

// HasDiffuseMap reports whether a diffuse texture was decoded.
func (m *Material) HasDiffuseMap() bool { return m.DiffuseMap != nil }

// HasSpecularMap reports whether a specular texture was decoded.
func (m *Material) HasSpecularMap() bool { return m.SpecularMap != nil }

// UsesAlpha reports whether the diffuse map carries an alpha channel.
func (m *Material) UsesAlpha() bool {
	return m.DiffuseMap != nil && m.DiffuseMap.Channels == 4
}

// MaterialID is a stable handle into a MaterialTable. Handles stay valid
// when materials are added or replaced.
type MaterialID int

// MaterialTable is a name-keyed material table owned by a single model.
// The zero value is ready to use and already contains DefaultMaterialName.
type MaterialTable struct {
	materials []Material
	index     map[string]MaterialID
}

// NewMaterialTable returns a table seeded with the default material.
func NewMaterialTable() *MaterialTable {
	t := &MaterialTable{}
	t.init()
	return t
}

func (t *MaterialTable) init() {
	if t.index != nil {
		return
	}
	t.index = make(map[string]MaterialID)
	t.materials = append(t.materials[:0], DefaultMaterial(DefaultMaterialName))
	t.index[DefaultMaterialName] = 0
}

// Put stores m under m.Name, replacing any material of the same name while
// keeping its handle.
func (t *MaterialTable) Put(m Material) MaterialID {
	t.init()
	if id, ok := t.index[m.Name]; ok {
		t.materials[id] = m
		return id
	}
	id := MaterialID(len(t.materials))
	t.materials = append(t.materials, m)
	t.index[m.Name] = id
	return id
}

// Lookup returns the handle for name.
func (t *MaterialTable) Lookup(name string) (MaterialID, bool) {
	t.init()
	id, ok := t.index[name]
	return id, ok
}

// Get returns the material for id. Unknown handles resolve to the default
// material.
func (t *MaterialTable) Get(id MaterialID) Material {
	t.init()
	if id < 0 || int(id) >= len(t.materials) {
		return t.materials[0]
	}
	return t.materials[id]
}

// Default returns the handle of DefaultMaterialName.
func (t *MaterialTable) Default() MaterialID {
	id, _ := t.Lookup(DefaultMaterialName)
	return id
}

// Len returns the number of materials, including the default.
func (t *MaterialTable) Len() int {
	t.init()
	return len(t.materials)
}

// Names returns material names in insertion order.
func (t *MaterialTable) Names() []string {
	t.init()
	names := make([]string, len(t.materials))
	for i, m := range t.materials {
		names[i] = m.Name
	}
	return names
}
