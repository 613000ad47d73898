package drops

import (
	"errors"
	stdmath "math"
	"unsafe"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/worlddrops/internal/engine/highlight"
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/internal/items"
	"github.com/Faultbox/worlddrops/internal/logger"
	"github.com/Faultbox/worlddrops/pkg/math"
	"github.com/Faultbox/worlddrops/pkg/variation"
)

// Assets are the loaded scene graphs the dispatcher draws from. Any entry
// may be nil or hold no meshes; its branch is then left out of the fragment.
type Assets struct {
	// Models holds one scene per category. Generic drops never use a model.
	Models map[Category]*scenegraph.Node
	Paper  *scenegraph.Node
	Stick  *scenegraph.Node
}

type dropClone struct {
	category Category
	template *scenegraph.Template
	clone    *scenegraph.Clone
	root     *scenegraph.Node
}

// Dispatcher builds the item fragment of the render tree once per frame.
// It is not safe for concurrent use.
type Dispatcher struct {
	cfg        Config
	log        *zap.Logger
	registry   *items.Registry
	highlights *highlight.Controller

	templates [numCategories]*scenegraph.Template
	scanners  *batch
	papers    *batch
	sticks    *batch
	box       *model.Geometry

	// Classification is redone only when the drop slice changes identity.
	memoData     *WorldItemDrop
	memoLen      int
	memoValid    bool
	buckets      Buckets
	reclassified int

	clones map[string]*dropClone
}

// NewDispatcher indexes the assets and returns a dispatcher ready for Update.
func NewDispatcher(assets Assets, cfg Config) *Dispatcher {
	d := &Dispatcher{
		cfg:        cfg,
		log:        logger.Named("drops"),
		registry:   items.Default(),
		highlights: highlight.NewController(cfg.Palette),
		box:        model.Box("generic_box", cfg.GenericSize, cfg.GenericSize, cfg.GenericSize),
		clones:     make(map[string]*dropClone),
	}
	for c, root := range assets.Models {
		d.SetModel(c, root)
	}
	d.papers = newBatch(GroupPapers, d.index(GroupPapers, assets.Paper), cfg.Palette)
	d.sticks = newBatch(GroupSticks, d.index(GroupSticks, assets.Stick), cfg.Palette)
	return d
}

// SetRegistry replaces the pose registry consulted for generic drops.
func (d *Dispatcher) SetRegistry(r *items.Registry) {
	d.registry = r
}

func (d *Dispatcher) index(name string, root *scenegraph.Node) *scenegraph.Template {
	if root == nil {
		d.log.Debug("asset not loaded", zap.String("asset", name))
		return nil
	}
	t, err := scenegraph.Index(name, root)
	if err != nil {
		if errors.Is(err, scenegraph.ErrNoMeshLeaves) {
			d.log.Debug("asset skipped", zap.String("asset", name), zap.Error(err))
		}
		return nil
	}
	return t
}

// SetModel replaces the scene of a category. Clones built from the old
// scene are discarded on the next Update.
func (d *Dispatcher) SetModel(c Category, root *scenegraph.Node) {
	if c >= numCategories || c.Strategy() == Box {
		return
	}
	t := d.index(c.String(), root)
	d.templates[c] = t
	if c.Strategy() == Instanced {
		d.scanners = newBatch(c.String(), t, d.cfg.Palette)
	}
}

// Update classifies the frame's drops if the collection changed and returns
// a freshly assembled fragment. Inputs are never modified.
func (d *Dispatcher) Update(f Frame) *scenegraph.Node {
	d.classify(f.Drops)

	root := scenegraph.NewGroup("world_items")
	if n := d.paperNode(&f); n != nil {
		root.Add(n)
	}
	if n := d.stickNode(&f); n != nil {
		root.Add(n)
	}
	if n := d.scannerNode(&f); n != nil {
		root.Add(n)
	}
	d.addClones(root, &f)
	d.addGeneric(root, &f)
	return root
}

// Invalidate discards every cached clone and its snapshots. The next Update
// rebuilds clones from the templates and snapshots them afresh.
func (d *Dispatcher) Invalidate() {
	for id := range d.clones {
		d.highlights.Release(id)
	}
	d.log.Debug("clones invalidated", zap.Int("count", len(d.clones)))
	d.clones = make(map[string]*dropClone)
}

// Buckets returns the current classification.
func (d *Dispatcher) Buckets() Buckets {
	return d.buckets
}

// Reclassified returns how many times the drops have been classified.
func (d *Dispatcher) Reclassified() int {
	return d.reclassified
}

// Clones returns the number of cached per-drop clones.
func (d *Dispatcher) Clones() int {
	return len(d.clones)
}

// Highlights exposes the material snapshot table.
func (d *Dispatcher) Highlights() *highlight.Controller {
	return d.highlights
}

func (d *Dispatcher) classify(drops []WorldItemDrop) {
	data := unsafe.SliceData(drops)
	if d.memoValid && data == d.memoData && len(drops) == d.memoLen {
		return
	}
	d.buckets = Classify(drops)
	d.memoData, d.memoLen, d.memoValid = data, len(drops), true
	d.reclassified++

	if ce := d.log.Check(zap.DebugLevel, "drops classified"); ce != nil {
		fields := make([]zap.Field, 0, numCategories+1)
		fields = append(fields, zap.Int("total", len(drops)))
		for c := Category(0); c < numCategories; c++ {
			fields = append(fields, zap.Int(c.String(), len(d.buckets[c])))
		}
		ce.Write(fields...)
	}
}

func (d *Dispatcher) style(group string, f *Frame) highlight.Style {
	return highlight.Resolve(f.Scan, f.Reveal, d.cfg.Policy(group))
}

func (d *Dispatcher) paperNode(f *Frame) *scenegraph.Node {
	if d.papers == nil || len(f.Papers) == 0 {
		return nil
	}
	instances := make([]scenegraph.Instance, len(f.Papers))
	for i := range f.Papers {
		p := &f.Papers[i]
		s := d.cfg.PaperScale.At(p.ID)
		instances[i] = scenegraph.Instance{
			ID: p.ID,
			Transform: scenegraph.Transform{
				Position: p.Position.Add(math.V3(0, markerLift, 0)),
				Rotation: math.V3(0, float32(variation.Of(p.ID)*2*stdmath.Pi), 0),
				Scale:    math.V3(s, 1, s),
			},
		}
	}
	return d.papers.node(instances, d.style(GroupPapers, f), d.cfg.AmbientFrustumCulled)
}

func (d *Dispatcher) stickNode(f *Frame) *scenegraph.Node {
	if d.sticks == nil || len(f.Sticks) == 0 {
		return nil
	}
	instances := make([]scenegraph.Instance, len(f.Sticks))
	for i := range f.Sticks {
		s := &f.Sticks[i]
		tilt := float32(variation.Signed(s.ID, float64(d.cfg.StickTilt)))
		instances[i] = scenegraph.Instance{
			ID: s.ID,
			Transform: scenegraph.Transform{
				Position: s.Position,
				Rotation: math.V3(0, s.RotationY, tilt),
				Scale:    math.Splat(d.cfg.StickScale.At(s.ID)),
			},
		}
	}
	return d.sticks.node(instances, d.style(GroupSticks, f), d.cfg.AmbientFrustumCulled)
}

func (d *Dispatcher) scannerNode(f *Frame) *scenegraph.Node {
	drops := d.buckets[ScanTool]
	if d.scanners == nil || len(drops) == 0 {
		return nil
	}
	place := placements[ScanTool]
	instances := make([]scenegraph.Instance, len(drops))
	for i := range drops {
		drop := &drops[i]
		yaw := float32(variation.Signed(drop.ID, float64(d.cfg.ScannerYaw)))
		instances[i] = scenegraph.Instance{
			ID: drop.ID,
			Transform: scenegraph.Transform{
				Position: drop.Position.Add(math.V3(0, place.Lift, 0)),
				Rotation: drop.Rotation.Add(place.Rotation).Add(math.V3(0, yaw, 0)),
				Scale:    place.Scale,
			},
		}
	}
	return d.scanners.node(instances, d.style(ScanTool.String(), f), true)
}

// addClones draws every model drop from its own clone, styling each mesh
// through the highlight controller, and drops clones whose drop is gone.
func (d *Dispatcher) addClones(root *scenegraph.Node, f *Frame) {
	live := make(map[string]struct{})
	for c := Category(0); c < numCategories; c++ {
		if c.Strategy() != Cloned || len(d.buckets[c]) == 0 {
			continue
		}
		t := d.templates[c]
		if t == nil {
			continue
		}
		style := d.style(c.String(), f)
		place := placements[c]
		for i := range d.buckets[c] {
			drop := &d.buckets[c][i]
			if _, dup := live[drop.ID]; dup {
				d.log.Debug("duplicate drop id", zap.String("id", drop.ID))
				continue
			}
			live[drop.ID] = struct{}{}

			dc := d.cloneFor(c, t, drop.ID)
			for leaf, mesh := range dc.clone.Meshes {
				d.highlights.Apply(highlight.Key{DropID: drop.ID, Leaf: leaf}, mesh.Material, style)
			}
			dc.root.Transform = scenegraph.Transform{
				Position: drop.Position.Add(math.V3(0, place.Lift, 0)),
				Rotation: drop.Rotation,
				Scale:    math.Splat(1),
			}
			root.Add(dc.root)
		}
	}
	d.prune(live)
}

func (d *Dispatcher) cloneFor(c Category, t *scenegraph.Template, id string) *dropClone {
	if dc := d.clones[id]; dc != nil {
		if dc.template == t {
			return dc
		}
		// Category or asset changed: the old snapshots belong to old materials.
		d.highlights.Release(id)
	}

	place := placements[c]
	clone := t.Instantiate(c.String())
	clone.Root.Transform = scenegraph.Transform{Rotation: place.Rotation, Scale: place.Scale}
	root := scenegraph.NewGroup("drop:"+id, clone.Root)
	if place.Light != nil {
		root.Add(scenegraph.NewLight("drop:"+id+":light", *place.Light))
	}

	dc := &dropClone{category: c, template: t, clone: clone, root: root}
	d.clones[id] = dc
	return dc
}

func (d *Dispatcher) prune(live map[string]struct{}) {
	removed := 0
	for id := range d.clones {
		if _, ok := live[id]; !ok {
			delete(d.clones, id)
			removed++
		}
	}
	released := d.highlights.Retain(live)
	if removed > 0 || released > 0 {
		d.log.Debug("clones pruned", zap.Int("clones", removed), zap.Int("snapshots", released))
	}
}

// addGeneric draws unrecognized drops as plain boxes. The box material is
// built fresh every frame, so there is nothing to snapshot.
func (d *Dispatcher) addGeneric(root *scenegraph.Node, f *Frame) {
	drops := d.buckets[Generic]
	if len(drops) == 0 {
		return
	}
	on := f.Highlighted()
	for i := range drops {
		drop := &drops[i]
		pose := d.registry.Lookup(drop.TypeID)
		name := "generic"
		if d.registry.Has(drop.TypeID) {
			name = pose.Name
		}

		m := material.New("generic:"+pose.TypeID, d.cfg.GenericColor)
		if on {
			m.Color = d.cfg.GenericAlertColor
			m.SetEmissive(d.cfg.GenericAlertColor, d.cfg.GenericAlertIntensity)
		} else {
			m.SetEmissive(colorful.Color{}, 0)
		}

		n := scenegraph.NewMesh(name, d.box, m)
		n.Transform.Position = drop.Position.Add(math.V3(0, items.GroundLift, 0))
		n.Transform.Rotation = drop.Rotation
		root.Add(scenegraph.NewGroup("drop:"+drop.ID, n))
	}
}
