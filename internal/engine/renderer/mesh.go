package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/worlddrops/internal/engine/model"
)

// gpuMesh is an uploaded geometry.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

const (
	vertexSize = int32(unsafe.Sizeof(model.Vertex{}))
	matrixSize = 16 * 4
)

// mesh returns the GPU copy of geo, uploading it on first use.
func (r *Renderer) mesh(geo *model.Geometry) *gpuMesh {
	if m, ok := r.meshes[geo]; ok {
		return m
	}
	m := r.upload(geo)
	r.meshes[geo] = m
	return m
}

func (r *Renderer) upload(geo *model.Geometry) *gpuMesh {
	m := &gpuMesh{indexCount: int32(len(geo.Indices))}
	if len(geo.Vertices) == 0 || len(geo.Indices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(geo.Vertices)*int(vertexSize), unsafe.Pointer(&geo.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)

	// Instance matrix, one vec4 column per location
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	for col := uint32(0); col < 4; col++ {
		loc := 3 + col
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, matrixSize, uintptr(col*16))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Indices)*4, unsafe.Pointer(&geo.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (m *gpuMesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
