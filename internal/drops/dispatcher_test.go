package drops

import (
	"reflect"
	"testing"

	"github.com/Faultbox/worlddrops/internal/engine/highlight"
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/pkg/math"
)

const assetColor = "#336699"

func meshAsset(name string) *scenegraph.Node {
	m := material.New(name, material.MustHex(assetColor))
	m.SetEmissive(material.MustHex("#112233"), 0.25)
	return scenegraph.NewGroup(name, scenegraph.NewMesh(name+"_mesh", model.Box(name, 0.1, 0.1, 0.1), m))
}

func testAssets() Assets {
	models := make(map[Category]*scenegraph.Node)
	for _, c := range Categories() {
		if c != Generic {
			models[c] = meshAsset(c.String())
		}
	}
	return Assets{
		Models: models,
		Paper:  meshAsset("paper"),
		Stick:  meshAsset("stick"),
	}
}

func find(root *scenegraph.Node, name string) *scenegraph.Node {
	var found *scenegraph.Node
	scenegraph.Walk(root, func(n *scenegraph.Node, _ math.Mat4) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}

// batchMaterial returns the material of the first instanced mesh under group.
func batchMaterial(t *testing.T, root *scenegraph.Node, group string) (*scenegraph.Node, *material.Material) {
	t.Helper()
	g := find(root, group)
	if g == nil || len(g.Children) == 0 || g.Children[0].Kind != scenegraph.KindInstanced {
		t.Fatalf("no instanced batch under %q", group)
	}
	return g.Children[0], g.Children[0].Material
}

func TestGenericBoxScenarioB(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	drops := []WorldItemDrop{{ID: "c", TypeID: "unknown_x"}}

	tests := []struct {
		name      string
		scan      bool
		reveal    bool
		color     string
		intensity float32
	}{
		{"off", false, false, "#94a3b8", 0},
		{"scan", true, false, "#ff0000", 0.8},
		{"reveal", false, true, "#ff0000", 0.8},
		{"off again", false, false, "#94a3b8", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := d.Update(Frame{Drops: drops, Scan: tt.scan, Reveal: tt.reveal})
			box := find(root, "generic")
			if box == nil || box.Kind != scenegraph.KindMesh {
				t.Fatal("generic box not rendered")
			}
			if got := box.Material.Color.Hex(); got != tt.color {
				t.Errorf("color = %s, want %s", got, tt.color)
			}
			if box.Material.EmissiveIntensity != tt.intensity {
				t.Errorf("emissive intensity = %v, want %v", box.Material.EmissiveIntensity, tt.intensity)
			}
		})
	}
	if d.Highlights().Len() != 0 {
		t.Errorf("generic boxes should never be snapshotted, got %d", d.Highlights().Len())
	}
}

func TestGenericBoxUsesRegisteredName(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	root := d.Update(Frame{Drops: []WorldItemDrop{{ID: "p", TypeID: "weapon_pipe", Position: math.V3(1, 0, 1)}}})
	box := find(root, "Lead Pipe")
	if box == nil {
		t.Fatal("registered generic drop should be named after its pose entry")
	}
	if box.Transform.Position.Y <= 0 {
		t.Errorf("box should rest above the floor, y = %v", box.Transform.Position.Y)
	}
}

func TestClassificationMemoized(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	drops := []WorldItemDrop{
		{ID: "a", TypeID: "red_shard"},
		{ID: "b", TypeID: "pill_bottle"},
		{ID: "c", TypeID: "unknown_x"},
	}

	for i := 0; i < 5; i++ {
		d.Update(Frame{Drops: drops, Scan: i%2 == 0})
	}
	if d.Reclassified() != 1 {
		t.Errorf("same collection classified %d times, want 1", d.Reclassified())
	}

	d.Update(Frame{Drops: drops[:2]})
	if d.Reclassified() != 2 {
		t.Errorf("shorter view should reclassify, count = %d", d.Reclassified())
	}

	next := append([]WorldItemDrop(nil), drops...)
	d.Update(Frame{Drops: next})
	if d.Reclassified() != 3 {
		t.Errorf("new collection should reclassify, count = %d", d.Reclassified())
	}
	b := d.Buckets()
	if b.Total() != 3 {
		t.Errorf("buckets hold %d drops, want 3", b.Total())
	}
}

func TestClonedRoundTrip(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	drops := []WorldItemDrop{{ID: "a", TypeID: "red_shard"}}

	d.Update(Frame{Drops: drops})
	mat := d.clones["a"].clone.Meshes[0].Material
	orig := *mat

	for i := 0; i < 3; i++ {
		d.Update(Frame{Drops: drops, Scan: true})
		if mat.Color.Hex() != "#ff0000" || mat.DepthTest || mat.DepthWrite || mat.Fog {
			t.Fatalf("cycle %d: alert not applied: %+v", i, *mat)
		}
		d.Update(Frame{Drops: drops})
		if *mat != orig {
			t.Fatalf("cycle %d: restore = %+v, want %+v", i, *mat, orig)
		}
	}
}

func TestClonesAreIsolated(t *testing.T) {
	assets := testAssets()
	assetMat := assets.Models[PistolPrimary].Children[0].Material
	d := NewDispatcher(assets, DefaultConfig())
	drops := []WorldItemDrop{
		{ID: "p1", TypeID: "weapon_makarov"},
		{ID: "p2", TypeID: "weapon_makarov"},
	}

	d.Update(Frame{Drops: drops, Scan: true})
	m1 := d.clones["p1"].clone.Meshes[0].Material
	m2 := d.clones["p2"].clone.Meshes[0].Material
	if m1 == m2 || m1 == assetMat {
		t.Fatal("clones must not share materials")
	}
	if assetMat.Color.Hex() != assetColor || !assetMat.DepthTest {
		t.Errorf("asset material was mutated: %+v", *assetMat)
	}
	if d.clones["p1"].clone.Meshes[0].Geometry != assets.Models[PistolPrimary].Children[0].Geometry {
		t.Error("clones should share geometry with the asset")
	}
}

func TestDepartedDropsReleased(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	d.Update(Frame{Drops: []WorldItemDrop{
		{ID: "a", TypeID: "red_shard"},
		{ID: "b", TypeID: "health_solution"},
	}, Scan: true})
	if d.Clones() != 2 || d.Highlights().Len() != 2 {
		t.Fatalf("clones = %d, snapshots = %d, want 2/2", d.Clones(), d.Highlights().Len())
	}

	root := d.Update(Frame{Drops: []WorldItemDrop{{ID: "a", TypeID: "red_shard"}}, Scan: true})
	if d.Clones() != 1 || d.Highlights().Len() != 1 {
		t.Errorf("clones = %d, snapshots = %d, want 1/1", d.Clones(), d.Highlights().Len())
	}
	if find(root, "drop:b") != nil {
		t.Error("departed drop still rendered")
	}
}

func TestInvalidateTakesFreshSnapshots(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	drops := []WorldItemDrop{{ID: "a", TypeID: "pill_bottle"}}

	d.Update(Frame{Drops: drops, Scan: true})
	old := d.clones["a"].clone.Meshes[0].Material

	d.Invalidate()
	if d.Clones() != 0 || d.Highlights().Len() != 0 {
		t.Fatalf("after Invalidate clones = %d, snapshots = %d", d.Clones(), d.Highlights().Len())
	}

	// The rebuilt clone is highlighted from the start; turning the
	// highlight off must restore the asset values, not the old alert.
	d.Update(Frame{Drops: drops, Scan: true})
	fresh := d.clones["a"].clone.Meshes[0].Material
	if fresh == old {
		t.Fatal("Invalidate should rebuild the clone")
	}
	d.Update(Frame{Drops: drops})
	if fresh.Color.Hex() != assetColor || fresh.EmissiveIntensity != 0.25 || !fresh.DepthTest || fresh.Unlit {
		t.Errorf("rebuilt clone restored to %+v", *fresh)
	}
}

func TestCategoryChangeRebuildsClone(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	d.Update(Frame{Drops: []WorldItemDrop{{ID: "x", TypeID: "red_shard"}}, Scan: true})
	first := d.clones["x"]

	d.Update(Frame{Drops: []WorldItemDrop{{ID: "x", TypeID: "pill_bottle"}}})
	second := d.clones["x"]
	if second == first || second.category != PillBottle {
		t.Fatal("clone should follow the drop's new category")
	}
	if d.Highlights().Len() != 0 {
		t.Errorf("stale snapshots kept: %d", d.Highlights().Len())
	}
}

func TestMissingTemplateSkipsBranch(t *testing.T) {
	assets := testAssets()
	assets.Models[HazardShard] = scenegraph.NewGroup("empty")
	delete(assets.Models, PillBottle)
	assets.Paper = nil

	d := NewDispatcher(assets, DefaultConfig())
	f := Frame{
		Papers: []AmbientMarker{{ID: "paper-1"}},
		Drops: []WorldItemDrop{
			{ID: "a", TypeID: "red_shard"},
			{ID: "b", TypeID: "pill_bottle"},
			{ID: "c", TypeID: "unknown_x"},
		},
		Scan: true,
	}
	root := d.Update(f)

	if find(root, "drop:a") != nil || find(root, "drop:b") != nil {
		t.Error("drops without a usable asset should be skipped")
	}
	if find(root, "drop:c") == nil {
		t.Error("generic drop missing")
	}
	if find(root, GroupPapers) != nil {
		t.Error("paper batch rendered without an asset")
	}
	b := d.Buckets()
	if len(b.Of(HazardShard)) != 1 || len(b.Of(PillBottle)) != 1 {
		t.Error("skipped drops must still be classified")
	}

	d.SetModel(PillBottle, meshAsset("late"))
	root = d.Update(f)
	if find(root, "drop:b") == nil {
		t.Error("late loaded asset should render")
	}
}

func TestBatchStylesFollowPolicy(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	f := Frame{
		Papers: []AmbientMarker{{ID: "paper-1"}, {ID: "paper-2"}},
		Sticks: []StickMarker{{ID: "stick-42", RotationY: 1}},
		Drops:  []WorldItemDrop{{ID: "s1", TypeID: "tool_scanner"}, {ID: "s2", TypeID: "scanner"}},
	}

	root := d.Update(f)
	paper, paperMat := batchMaterial(t, root, GroupPapers)
	if paperMat.Unlit || paperMat.Transparent || paper.FrustumCulled {
		t.Errorf("idle paper batch: %+v culled=%v", *paperMat, paper.FrustumCulled)
	}
	if len(paper.Instances) != 2 {
		t.Errorf("paper instances = %d, want 2", len(paper.Instances))
	}

	f.Reveal = true
	root = d.Update(f)
	_, paperMat = batchMaterial(t, root, GroupPapers)
	if !paperMat.Transparent || paperMat.Blending != material.BlendAdditive || paperMat.Side != material.SideDouble {
		t.Errorf("reveal should give papers the aura, got %+v", *paperMat)
	}
	_, stickMat := batchMaterial(t, root, GroupSticks)
	if stickMat.Transparent || !stickMat.Unlit || stickMat.Color.Hex() != "#ff0000" {
		t.Errorf("reveal should give sticks the alert, got %+v", *stickMat)
	}
	scanner, scannerMat := batchMaterial(t, root, ScanTool.String())
	if scannerMat.Color.Hex() != "#ff0000" || len(scanner.Instances) != 2 {
		t.Errorf("scanner batch: %d instances, %+v", len(scanner.Instances), *scannerMat)
	}

	f.Scan = true
	root = d.Update(f)
	_, paperMat = batchMaterial(t, root, GroupPapers)
	if paperMat.Transparent || paperMat.Color.Hex() != "#ff0000" {
		t.Errorf("scan should give papers the alert, got %+v", *paperMat)
	}

	if d.Highlights().Len() != 0 {
		t.Error("batches must not use per-mesh snapshots")
	}
}

func TestPaperPolicyConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policies = map[string]highlight.Policy{GroupPapers: highlight.AlertAny}
	d := NewDispatcher(testAssets(), cfg)

	root := d.Update(Frame{Papers: []AmbientMarker{{ID: "p"}}, Reveal: true})
	_, m := batchMaterial(t, root, GroupPapers)
	if m.Transparent {
		t.Error("alert_any papers should not get the aura")
	}
}

func TestJitterIsFrameStable(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	f := Frame{
		Papers: []AmbientMarker{{ID: "paper-1", Position: math.V3(1, 0, 2)}, {ID: "paper-2"}},
		Sticks: []StickMarker{{ID: "stick-42", RotationY: 0.5}},
	}

	first, _ := batchMaterial(t, d.Update(f), GroupPapers)
	again, _ := batchMaterial(t, d.Update(f), GroupPapers)
	if !reflect.DeepEqual(first.Instances, again.Instances) {
		t.Error("paper transforms changed between frames")
	}
	if first.Instances[0].Transform == first.Instances[1].Transform {
		t.Error("distinct papers should get distinct jitter")
	}
	s := first.Instances[0].Transform.Scale.X
	if s < 0.85 || s >= 1.15 {
		t.Errorf("paper scale %v outside configured range", s)
	}

	stick, _ := batchMaterial(t, d.Update(f), GroupSticks)
	if stick.Instances[0].Transform.Rotation.Y != 0.5 {
		t.Errorf("stick yaw = %v, want marker rotation 0.5", stick.Instances[0].Transform.Rotation.Y)
	}
}

func TestHazardShardLight(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	root := d.Update(Frame{Drops: []WorldItemDrop{
		{ID: "a", TypeID: "red_shard", Position: math.V3(1, 0, 2)},
		{ID: "b", TypeID: "pill_bottle"},
	}})

	if s := scenegraph.Collect(root); s.Lights != 1 {
		t.Errorf("lights = %d, want 1", s.Lights)
	}
	light := find(root, "drop:a:light")
	if light == nil || light.Light.Range != 2.5 || light.Light.Intensity != 1.5 {
		t.Fatalf("hazard light = %+v", light)
	}

	group := find(root, "drop:a")
	want := math.V3(1, placements[HazardShard].Lift, 2)
	if group.Transform.Position != want {
		t.Errorf("shard position = %+v, want %+v", group.Transform.Position, want)
	}
}

func TestUpdateDoesNotMutateInputs(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	drops := []WorldItemDrop{
		{ID: "a", TypeID: "red_shard", Position: math.V3(1, 2, 3)},
		{ID: "s", TypeID: "scanner", Rotation: math.V3(0, 1, 0)},
		{ID: "c", TypeID: "mystery"},
	}
	papers := []AmbientMarker{{ID: "p", Position: math.V3(4, 0, 4)}}
	wantDrops := append([]WorldItemDrop(nil), drops...)
	wantPapers := append([]AmbientMarker(nil), papers...)

	d.Update(Frame{Drops: drops, Papers: papers, Scan: true})
	d.Update(Frame{Drops: drops, Papers: papers})

	if !reflect.DeepEqual(drops, wantDrops) || !reflect.DeepEqual(papers, wantPapers) {
		t.Error("Update modified its inputs")
	}
}

func TestDuplicateIDsRenderOnce(t *testing.T) {
	d := NewDispatcher(testAssets(), DefaultConfig())
	root := d.Update(Frame{Drops: []WorldItemDrop{
		{ID: "dup", TypeID: "red_shard"},
		{ID: "dup", TypeID: "red_shard"},
	}})
	if s := scenegraph.Collect(root); s.Meshes != 1 {
		t.Errorf("meshes = %d, want 1", s.Meshes)
	}
}
