package drawlist

import (
	stdmath "math"

	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// Plane is n·p + d = 0 with n pointing into the frustum.
type Plane struct {
	N math.Vec3
	D float32
}

// Frustum is the six clip planes of a view-projection matrix.
type Frustum [6]Plane

// FrustumFrom extracts the planes of a column-major view-projection matrix.
func FrustumFrom(vp math.Mat4) Frustum {
	row := func(i int) [4]float32 {
		return [4]float32{vp[i], vp[4+i], vp[8+i], vp[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	plane := func(sign float32, r [4]float32) Plane {
		return Plane{
			N: math.V3(r3[0]+sign*r[0], r3[1]+sign*r[1], r3[2]+sign*r[2]),
			D: r3[3] + sign*r[3],
		}
	}
	return Frustum{
		plane(1, r0), plane(-1, r0), // left, right
		plane(1, r1), plane(-1, r1), // bottom, top
		plane(1, r2), plane(-1, r2), // near, far
	}
}

// SphereVisible reports whether a sphere touches the frustum.
func (f *Frustum) SphereVisible(center math.Vec3, radius float32) bool {
	for _, p := range f {
		if p.N.Dot(center)+p.D < -radius*p.N.Length() {
			return false
		}
	}
	return true
}

// boundingSphere returns the world-space sphere enclosing geo under m.
func boundingSphere(geo *model.Geometry, m math.Mat4) (math.Vec3, float32) {
	b := geo.Bounds
	local := math.V3(
		(b.Min[0]+b.Max[0])/2,
		(b.Min[1]+b.Max[1])/2,
		(b.Min[2]+b.Max[2])/2,
	)
	size := b.Size()
	r := math.V3(size[0], size[1], size[2]).Length() / 2
	return m.TransformPoint(local), float32(stdmath.Max(float64(r*m.MaxScale()), 1e-4))
}
