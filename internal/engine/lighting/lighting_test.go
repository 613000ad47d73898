package lighting

import (
	"testing"

	"github.com/Faultbox/worlddrops/pkg/math"
)

func TestPointLightBufferLimit(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		if !b.AddLight(PointLight{Range: 1, Intensity: 1}) {
			t.Fatalf("light %d rejected before buffer was full", i)
		}
	}
	if b.AddLight(PointLight{}) {
		t.Error("expected AddLight to fail when buffer is full")
	}
	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 {
		t.Errorf("Clear left %d lights", b.Count)
	}
}

func TestAddLightClamps(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{Color: [3]float32{2, -1, 0.5}})
	got := b.Lights[0]
	if got.Color != [3]float32{1, 0, 0.5} {
		t.Errorf("color = %v, want clamped (1,0,0.5)", got.Color)
	}
	if got.Range != 1 {
		t.Errorf("range = %v, want default 1", got.Range)
	}
}

func TestUploadSlices(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{Position: [3]float32{1, 2, 3}, Color: [3]float32{1, 0, 0}, Range: 2.5, Intensity: 1.5})
	pos := b.GetPositions()
	if len(pos) != MaxPointLights*3 || pos[0] != 1 || pos[2] != 3 {
		t.Errorf("positions = %v", pos[:3])
	}
	if r := b.GetRanges(); r[0] != 2.5 {
		t.Errorf("range = %v", r[0])
	}
	if k := b.GetIntensities(); k[0] != 1.5 {
		t.Errorf("intensity = %v", k[0])
	}
	if c := b.GetColors(); c[0] != 1 || c[1] != 0 {
		t.Errorf("colors = %v", c[:3])
	}
}

func TestTransformed(t *testing.T) {
	l := PointLight{Position: [3]float32{0, 0.5, 0}}
	got := l.Transformed(math.Compose(math.V3(10, 0, -4), math.Vec3{}, math.Splat(1)))
	if got.Position != [3]float32{10, 0.5, -4} {
		t.Errorf("position = %v, want (10,0.5,-4)", got.Position)
	}
}

func TestSunDirectionOverhead(t *testing.T) {
	d := SunDirection(0, 90)
	if d[1] < 0.999 {
		t.Errorf("overhead sun = %v, want +Y", d)
	}
}
