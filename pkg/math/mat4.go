package math

import "math"

// Mat4 is a column-major 4x4 matrix, laid out the way OpenGL uploads it:
// m[0:4] is the first column and m[12:15] holds the translation.
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed projection mapping depth to [-1, 1].
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	cot := float32(1 / math.Tan(float64(fovY)/2))
	depth := far - near

	var m Mat4
	m[0] = cot / aspect
	m[5] = cot
	m[10] = -(far + near) / depth
	m[11] = -1
	m[14] = -2 * far * near / depth
	return m
}

// LookAt returns the view matrix of an eye at eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	forward := center.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	// Rows are the camera basis; the last column moves eye to the origin.
	return Mat4{
		right.X, camUp.X, -forward.X, 0,
		right.Y, camUp.Y, -forward.Y, 0,
		right.Z, camUp.Z, -forward.Z, 0,
		-right.Dot(eye), -camUp.Dot(eye), forward.Dot(eye), 1,
	}
}

// EulerXYZ returns the rotation Rx * Ry * Rz for angles in radians. This is
// the order item catalogs and drop records store rotations in.
func EulerXYZ(r Vec3) Mat4 {
	sx, cx := sincos(r.X)
	sy, cy := sincos(r.Y)
	sz, cz := sincos(r.Z)

	return Mat4{
		cy * cz, cx*sz + sx*sy*cz, sx*sz - cx*sy*cz, 0,
		-cy * sz, cx*cz - sx*sy*sz, sx*cz + cx*sy*sz, 0,
		sy, -sx * cy, cx * cy, 0,
		0, 0, 0, 1,
	}
}

// Compose builds the TRS matrix translate * EulerXYZ(rotation) * scale that
// scene graph transforms and instance placements use.
func Compose(position, rotation, scale Vec3) Mat4 {
	m := EulerXYZ(rotation)
	for i := 0; i < 3; i++ {
		m[i] *= scale.X
		m[4+i] *= scale.Y
		m[8+i] *= scale.Z
	}
	m[12], m[13], m[14] = position.X, position.Y, position.Z
	return m
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// TransformPoint applies m to p as a point (w = 1), ignoring projection.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// Project applies m to p and performs the perspective divide. Used to
// unproject NDC points through an inverse view-projection.
func (m Mat4) Project(p Vec3) Vec3 {
	v := m.TransformPoint(p)
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w == 0 || w == 1 {
		return v
	}
	return v.Scale(1 / w)
}

// MaxScale returns the largest axis scale encoded in the upper 3x3.
func (m Mat4) MaxScale() float32 {
	var s float32
	for col := 0; col < 3; col++ {
		s = max(s, V3(m[col*4], m[col*4+1], m[col*4+2]).Length())
	}
	return s
}

// Ptr returns a pointer to the first element for GL uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Inverse returns the inverse of m, or the identity when m is singular.
func (m Mat4) Inverse() Mat4 {
	// 2x2 minors of the first two and last two columns.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	return Mat4{
		(m[5]*c5 - m[6]*c4 + m[7]*c3) * inv,
		(-m[1]*c5 + m[2]*c4 - m[3]*c3) * inv,
		(m[13]*s5 - m[14]*s4 + m[15]*s3) * inv,
		(-m[9]*s5 + m[10]*s4 - m[11]*s3) * inv,

		(-m[4]*c5 + m[6]*c2 - m[7]*c1) * inv,
		(m[0]*c5 - m[2]*c2 + m[3]*c1) * inv,
		(-m[12]*s5 + m[14]*s2 - m[15]*s1) * inv,
		(m[8]*s5 - m[10]*s2 + m[11]*s1) * inv,

		(m[4]*c4 - m[5]*c2 + m[7]*c0) * inv,
		(-m[0]*c4 + m[1]*c2 - m[3]*c0) * inv,
		(m[12]*s4 - m[13]*s2 + m[15]*s0) * inv,
		(-m[8]*s4 + m[9]*s2 - m[11]*s0) * inv,

		(-m[4]*c3 + m[5]*c1 - m[6]*c0) * inv,
		(m[0]*c3 - m[1]*c1 + m[2]*c0) * inv,
		(-m[12]*s3 + m[13]*s1 - m[14]*s0) * inv,
		(m[8]*s3 - m[9]*s1 + m[10]*s0) * inv,
	}
}
