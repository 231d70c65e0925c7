package render

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"emitter-editor/core"
	"emitter-editor/math"
)

// RefModel is a wireframe extracted from a glTF file, drawn under the
// effect so emitters can be placed against the geometry they will attach
// to in game.
type RefModel struct {
	Path  string
	verts []float32 // line-list position triples, editor space
}

// LoadRefModel reads every triangle primitive in the glTF document and
// turns its edges into line segments. glTF is Y-up; vertices are swapped
// into the editor's Z-up space on the way in.
func LoadRefModel(path string) (*RefModel, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference model: %w", err)
	}

	m := &RefModel{Path: path}
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if err := m.appendPrimitive(doc, prim); err != nil {
				return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
			}
		}
	}
	if len(m.verts) == 0 {
		return nil, fmt.Errorf("no triangle geometry in %s", path)
	}
	return m, nil
}

func (m *RefModel) appendPrimitive(doc *gltf.Document, prim gltf.Primitive) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}

	verts := make([]math.Vec3, len(positions))
	for i, p := range positions {
		// Y-up to Z-up
		verts[i] = math.Vec3{X: p[0], Y: p[2], Z: p[1]}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := verts[indices[i]], verts[indices[i+1]], verts[indices[i+2]]
		m.appendEdge(a, b)
		m.appendEdge(b, c)
		m.appendEdge(c, a)
	}
	return nil
}

func (m *RefModel) appendEdge(a, b math.Vec3) {
	m.verts = append(m.verts, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
}

func (r *Renderer) drawRefModel(m *RefModel) {
	r.drawLines(m.verts, math.Mat4Identity(), core.Color{R: 0.35, G: 0.35, B: 0.45, A: 1})
}
