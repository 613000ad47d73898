package camera

import (
	"testing"

	"github.com/Faultbox/worlddrops/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestPositionKeepsDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.V3(1, 2, 3)
	for _, yaw := range []float32{0, 0.7, 2, -1.3} {
		c.RotationY = yaw
		if d := c.Position().Sub(c.Center).Length(); !near(d, c.Distance) {
			t.Errorf("yaw %v: distance %v, want %v", yaw, d, c.Distance)
		}
	}
}

func TestPositionAtZeroYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationX = 0
	c.RotationY = 0
	c.Distance = 5
	p := c.Position()
	if !near(p.X, 0) || !near(p.Y, 0) || !near(p.Z, 5) {
		t.Errorf("position = %+v, want (0, 0, 5)", p)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 100000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want max %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -100000)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %v, want min %v", c.RotationX, c.MinPitch)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %v, want max %v", c.Distance, c.MaxDistance)
	}
}

func TestPanStaysOnGround(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationY = 0.8
	c.HandlePan(120, -40)
	if c.Center.Y != 0 {
		t.Errorf("pan moved the center vertically: %+v", c.Center)
	}
	if c.Center.X == 0 && c.Center.Z == 0 {
		t.Error("pan did not move the center")
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.V3(-4, 0, -2), math.V3(4, 1, 2))
	if c.Center != math.V3(0, 0.5, 0) {
		t.Errorf("center = %+v", c.Center)
	}
	if !near(c.Distance, 9.6) {
		t.Errorf("distance = %v, want 9.6", c.Distance)
	}
}
