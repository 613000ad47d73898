package drops

import (
	"github.com/Faultbox/worlddrops/internal/engine/highlight"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// batchPart is one mesh leaf of an instanced asset.
type batchPart struct {
	name     string
	geometry *model.Geometry
	bake     math.Mat4
	styles   *highlight.Batch
}

// batch draws every leaf of a template once per instance. All instances
// share the leaf materials, so the whole batch is styled at once.
type batch struct {
	name  string
	parts []batchPart
}

func newBatch(name string, t *scenegraph.Template, p highlight.Palette) *batch {
	if t == nil {
		return nil
	}
	b := &batch{name: name, parts: make([]batchPart, len(t.Leaves))}
	for i := range t.Leaves {
		leaf := &t.Leaves[i]
		b.parts[i] = batchPart{
			name:     leaf.Name,
			geometry: leaf.Geometry,
			bake:     leaf.Matrix,
			// The batch owns its materials; the asset's stay untouched.
			styles: highlight.NewBatch(leaf.Material.Clone(), p),
		}
	}
	return b
}

// node returns the batch subtree for one frame, or nil with no instances.
func (b *batch) node(instances []scenegraph.Instance, s highlight.Style, culled bool) *scenegraph.Node {
	if b == nil || len(instances) == 0 {
		return nil
	}
	group := scenegraph.NewGroup(b.name)
	for i := range b.parts {
		part := &b.parts[i]
		bake := part.bake
		n := scenegraph.NewInstanced(part.name, part.geometry, part.styles.Material(s), instances)
		n.Bake = &bake
		n.FrustumCulled = culled
		group.Add(n)
	}
	return group
}
