package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/worlddrops/pkg/math"
)

func down(x, z float32) Ray {
	return Ray{Origin: math.V3(x, 10, z), Direction: math.V3(0, -1, 0)}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.V3(1, 1, 1), math.V3(-1, 0, -1))

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"straight down", down(0, 0), true, 9},
		{"beside", down(2, 0), false, 0},
		{"pointing away", Ray{Origin: math.V3(0, 10, 0), Direction: math.V3(0, 1, 0)}, false, 0},
		{"from inside", Ray{Origin: math.V3(0, 0.5, 0), Direction: math.V3(1, 0, 0)}, true, 1},
		{"parallel outside slab", Ray{Origin: math.V3(0, 5, 0), Direction: math.V3(1, 0, 0)}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && gomath.Abs(float64(got-tt.wantT)) > 1e-5 {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestIntersectPlaneY(t *testing.T) {
	p, ok := Ray{Origin: math.V3(0, 2, 0), Direction: math.V3(1, -1, 0).Normalize()}.IntersectPlaneY(0)
	if !ok || gomath.Abs(float64(p.X-2)) > 1e-5 || p.Y != 0 {
		t.Errorf("IntersectPlaneY = %+v, %v", p, ok)
	}
	if _, ok := down(0, 0).IntersectPlaneY(20); ok {
		t.Error("plane behind the ray should miss")
	}
	if _, ok := (Ray{Direction: math.V3(1, 0, 0)}).IntersectPlaneY(0); ok {
		t.Error("parallel ray should miss")
	}
}

func TestScreenToRay(t *testing.T) {
	proj := math.Perspective(float32(gomath.Pi/2), 1, 0.1, 100)
	view := math.LookAt(math.V3(0, 0, 5), math.V3(0, 0, 0), math.V3(0, 1, 0))
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(50, 50, 100, 100, inv)
	if gomath.Abs(float64(r.Direction.Z+1)) > 1e-3 {
		t.Errorf("center ray direction = %+v, want -Z", r.Direction)
	}
	if gomath.Abs(float64(r.Origin.X)) > 1e-3 || gomath.Abs(float64(r.Origin.Y)) > 1e-3 {
		t.Errorf("center ray origin = %+v", r.Origin)
	}

	right := ScreenToRay(100, 50, 100, 100, inv)
	if right.Direction.X <= 0 {
		t.Errorf("right edge ray should lean +X, got %+v", right.Direction)
	}
}

func TestNearest(t *testing.T) {
	targets := []Target{
		{ID: "low", Box: NewAABB(math.V3(-1, 0, -1), math.V3(1, 1, 1))},
		{ID: "high", Box: NewAABB(math.V3(-1, 3, -1), math.V3(1, 4, 1))},
		{ID: "aside", Box: NewAABB(math.V3(5, 0, 5), math.V3(6, 1, 6))},
	}

	id, d, ok := Nearest(down(0, 0), targets)
	if !ok || id != "high" || d != 6 {
		t.Errorf("Nearest = %q, %v, %v; want high, 6", id, d, ok)
	}
	if _, _, ok := Nearest(down(20, 20), targets); ok {
		t.Error("expected a miss")
	}
	if _, _, ok := Nearest(down(0, 0), nil); ok {
		t.Error("no targets should miss")
	}
}
