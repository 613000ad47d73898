package model

import (
	gomath "math"
)

// builder accumulates flat-shaded triangles.
type builder struct {
	vertices []Vertex
	indices  []uint32
}

// tri appends a triangle wound counter-clockwise when seen from outside.
func (b *builder) tri(p0, p1, p2 [3]float32) {
	e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := Normalize(Cross(e1, e2))

	base := uint32(len(b.vertices))
	b.vertices = append(b.vertices,
		Vertex{Position: p0, Normal: n, TexCoord: [2]float32{0, 0}},
		Vertex{Position: p1, Normal: n, TexCoord: [2]float32{1, 0}},
		Vertex{Position: p2, Normal: n, TexCoord: [2]float32{1, 1}},
	)
	b.indices = append(b.indices, base, base+1, base+2)
}

// quad appends p0..p3 (counter-clockwise) as two triangles sharing vertices.
func (b *builder) quad(p0, p1, p2, p3 [3]float32) {
	e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := Normalize(Cross(e1, e2))

	base := uint32(len(b.vertices))
	b.vertices = append(b.vertices,
		Vertex{Position: p0, Normal: n, TexCoord: [2]float32{0, 0}},
		Vertex{Position: p1, Normal: n, TexCoord: [2]float32{1, 0}},
		Vertex{Position: p2, Normal: n, TexCoord: [2]float32{1, 1}},
		Vertex{Position: p3, Normal: n, TexCoord: [2]float32{0, 1}},
	)
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
}

func (b *builder) geometry(name string) *Geometry {
	return &Geometry{
		Name:     name,
		Vertices: b.vertices,
		Indices:  b.indices,
		Bounds:   ComputeBounds(b.vertices),
	}
}

// boxFaces lists outward normal n and in-plane axes u, v with u x v = n.
var boxFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// Box returns an axis-aligned box of the given size centered on the origin.
func Box(name string, width, height, depth float32) *Geometry {
	half := [3]float32{width / 2, height / 2, depth / 2}
	at := func(n, u, v [3]float32, su, sv float32) [3]float32 {
		var p [3]float32
		for k := 0; k < 3; k++ {
			p[k] = (n[k] + u[k]*su + v[k]*sv) * half[k]
		}
		return p
	}

	var b builder
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		b.quad(at(n, u, v, -1, -1), at(n, u, v, 1, -1), at(n, u, v, 1, 1), at(n, u, v, -1, 1))
	}
	return b.geometry(name)
}

// Quad returns a flat sheet on the XZ plane facing +Y, used for paper notes.
func Quad(name string, width, depth float32) *Geometry {
	w, d := width/2, depth/2
	var b builder
	b.quad(
		[3]float32{-w, 0, -d},
		[3]float32{-w, 0, d},
		[3]float32{w, 0, d},
		[3]float32{w, 0, -d},
	)
	return b.geometry(name)
}

// Prism returns an n-sided prism along the X axis centered on the origin.
// With smooth set the side walls share averaged normals and read as round
// (sticks, bottles); caps stay flat.
func Prism(name string, radius, length float32, sides int, smooth bool) *Geometry {
	if sides < 3 {
		sides = 3
	}
	h := length / 2
	ring := func(x float32, i int) [3]float32 {
		a := 2 * gomath.Pi * float64(i%sides) / float64(sides)
		return [3]float32{x, radius * float32(gomath.Cos(a)), radius * float32(gomath.Sin(a))}
	}

	var walls builder
	for i := 0; i < sides; i++ {
		walls.quad(ring(-h, i), ring(-h, i+1), ring(h, i+1), ring(h, i))
	}
	if smooth {
		SmoothNormals(walls.vertices)
	}

	caps := walls
	for i := 0; i < sides; i++ {
		caps.tri([3]float32{h, 0, 0}, ring(h, i), ring(h, i+1))
		caps.tri([3]float32{-h, 0, 0}, ring(-h, i+1), ring(-h, i))
	}
	return caps.geometry(name)
}

// Octahedron returns a double pyramid with the given equator radius and
// total height, resting on y=0. Used for crystal shards.
func Octahedron(name string, radius, height float32) *Geometry {
	top := [3]float32{0, height, 0}
	bottom := [3]float32{0, 0, 0}
	mid := height / 2
	eq := [4][3]float32{
		{radius, mid, 0},
		{0, mid, -radius},
		{-radius, mid, 0},
		{0, mid, radius},
	}

	var b builder
	for i := 0; i < 4; i++ {
		a, c := eq[i], eq[(i+1)%4]
		b.tri(a, c, top)
		b.tri(c, a, bottom)
	}
	return b.geometry(name)
}
