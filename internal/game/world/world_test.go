package world

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/worlddrops/internal/drops"
	"github.com/Faultbox/worlddrops/pkg/math"
)

const fixture = `
name: cellar
papers:
  - id: note_1
    position: {x: 1, y: 0, z: 2}
sticks:
  - id: stick_1
    position: {x: -3, y: 0, z: 0}
    rotationY: 1.5
drops:
  - id: d1
    typeId: tool_scanner
    position: {x: 0, y: 0, z: 4}
    rotation: {x: 0, y: 0.5, z: 0}
  - id: d2
    type: makarov
    position: {x: 2, y: 1, z: -1}
`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if s.Name != "cellar" || len(s.Papers) != 1 || len(s.Sticks) != 1 || len(s.Drops) != 2 {
		t.Fatalf("Decode = %+v", s)
	}
	if s.Sticks[0].RotationY != 1.5 {
		t.Errorf("stick rotationY = %v, want 1.5", s.Sticks[0].RotationY)
	}
	if got := drops.CategoryOf(&s.Drops[1]); got != drops.PistolPrimary {
		t.Errorf("legacy type field classified as %s, want %s", got, drops.PistolPrimary)
	}
	if s.Drops[0].Rotation != math.V3(0, 0.5, 0) {
		t.Errorf("rotation = %+v", s.Drops[0].Rotation)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "name: x\nweather: rain\n"},
		{"missing drop id", "drops:\n  - typeId: red_shard\n"},
		{"bad type", "drops: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	s, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, _, ok := s.Bounds(); ok {
		t.Error("empty scene should have no bounds")
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.LoadScene(path); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if m.Current().Name != "cellar" {
		t.Errorf("Current().Name = %q", m.Current().Name)
	}

	if err := m.LoadScene(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if m.Current().Name != "cellar" {
		t.Error("failed load replaced the scene")
	}

	if err := m.LoadScene(""); err != nil {
		t.Fatalf("LoadScene demo: %v", err)
	}
	if m.Current().Name != "demo" {
		t.Errorf("empty path loaded %q, want demo", m.Current().Name)
	}
}

func TestBounds(t *testing.T) {
	s, err := Decode(strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}
	lo, hi, ok := s.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if lo != math.V3(-3, 0, -1) || hi != math.V3(2, 1, 4) {
		t.Errorf("Bounds = %+v, %+v", lo, hi)
	}
}

func TestDropAndPickup(t *testing.T) {
	m := NewManager()
	m.SetScene(&Scene{Drops: []drops.WorldItemDrop{{ID: "a", TypeID: "red_shard"}}})

	before := m.Frame(false, false).Drops
	id := m.Drop("pill_bottle", math.V3(1, 0, 1), math.Vec3{})
	after := m.Frame(false, false).Drops

	if len(before) != 1 || len(after) != 2 {
		t.Fatalf("lengths = %d, %d", len(before), len(after))
	}
	if &before[0] == &after[0] {
		t.Error("Drop reused the previous slice")
	}
	if m.Last() != id || after[1].TypeID != "pill_bottle" {
		t.Errorf("Last() = %q, new drop = %+v", m.Last(), after[1])
	}

	if !m.Pickup("a") {
		t.Fatal("Pickup(a) = false")
	}
	if m.Pickup("a") {
		t.Error("second Pickup(a) = true")
	}
	if got := m.Frame(false, false).Drops; len(got) != 1 || got[0].ID != id {
		t.Errorf("drops after pickup = %+v", got)
	}
	if before[0].ID != "a" {
		t.Error("Pickup mutated an earlier snapshot")
	}
}

func TestFrameFlags(t *testing.T) {
	m := NewManager()
	m.SetScene(Demo())
	f := m.Frame(true, false)
	if !f.Scan || f.Reveal || !f.Highlighted() {
		t.Errorf("Frame flags = scan %v reveal %v", f.Scan, f.Reveal)
	}
	if len(f.Papers) == 0 || len(f.Sticks) == 0 || len(f.Drops) == 0 {
		t.Error("demo scene is missing content")
	}
}

func TestDemoCoversEveryCategory(t *testing.T) {
	b := drops.Classify(Demo().Drops)
	for _, c := range drops.Categories() {
		if len(b.Of(c)) == 0 {
			t.Errorf("demo has no %s drops", c)
		}
	}
}

func TestDemoIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Demo().Drops {
		if seen[d.ID] {
			t.Errorf("duplicate id %q", d.ID)
		}
		seen[d.ID] = true
	}
}
