// Package renderer draws item render trees with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/worlddrops/internal/engine/drawlist"
	"github.com/Faultbox/worlddrops/internal/engine/lighting"
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/renderer/shaders"
	"github.com/Faultbox/worlddrops/internal/engine/shader"
	"github.com/Faultbox/worlddrops/internal/logger"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// FogConfig holds linear distance fog settings.
type FogConfig struct {
	Near  float32
	Far   float32
	Color [3]float32
}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
	Fog        FogConfig
	// Sun azimuth and elevation, radians.
	SunAzimuth   float32
	SunElevation float32
}

// Stats describes the last rendered frame.
type Stats struct {
	Draws     int
	Instances int
	Triangles int
	Lights    int
	Culled    int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	// Uniform locations
	locViewProj  int32
	locColor     int32
	locEmissive  int32
	locOpacity   int32
	locUnlit     int32
	locLightDir  int32
	locAmbient   int32
	locDiffuse   int32
	locFogUse    int32
	locFogNear   int32
	locFogFar    int32
	locFogColor  int32
	locCameraPos int32

	// Point light uniforms
	locPointLightPositions   int32
	locPointLightColors      int32
	locPointLightRanges      int32
	locPointLightIntensities int32
	locPointLightCount       int32

	meshes      map[*model.Geometry]*gpuMesh
	instanceVBO uint32
	instanceCap int
	lights      *lighting.PointLightBuffer
	sunDir      [3]float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[*model.Geometry]*gpuMesh),
		lights: lighting.NewPointLightBuffer(),
		sunDir: lighting.SunDirection(cfg.SunAzimuth, cfg.SunElevation),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.Link(shader.Vertex(shaders.ItemVertexShader), shader.Fragment(shaders.ItemFragmentShader))
	if err != nil {
		return nil, fmt.Errorf("item shader: %w", err)
	}
	r.program = program

	r.locViewProj = program.Uniform("uViewProj")
	r.locColor = program.Uniform("uColor")
	r.locEmissive = program.Uniform("uEmissive")
	r.locOpacity = program.Uniform("uOpacity")
	r.locUnlit = program.Uniform("uUnlit")
	r.locLightDir = program.Uniform("uLightDir")
	r.locAmbient = program.Uniform("uAmbient")
	r.locDiffuse = program.Uniform("uDiffuse")
	r.locFogUse = program.Uniform("uFogUse")
	r.locFogNear = program.Uniform("uFogNear")
	r.locFogFar = program.Uniform("uFogFar")
	r.locFogColor = program.Uniform("uFogColor")
	r.locCameraPos = program.Uniform("uCameraPos")

	r.locPointLightPositions = program.Uniform("uPointLightPositions")
	r.locPointLightColors = program.Uniform("uPointLightColors")
	r.locPointLightRanges = program.Uniform("uPointLightRanges")
	r.locPointLightIntensities = program.Uniform("uPointLightIntensities")
	r.locPointLightCount = program.Uniform("uPointLightCount")

	gl.GenBuffers(1, &r.instanceVBO)

	gl.DepthFunc(gl.LEQUAL)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.log.Debug("shader program created",
		zap.Uint32("program", program.ID),
		zap.Strings("inactive_uniforms", program.Missing()),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for _, m := range r.meshes {
		m.delete()
	}
	r.meshes = nil
	if r.instanceVBO != 0 {
		gl.DeleteBuffers(1, &r.instanceVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Render draws a flattened frame seen from eye.
func (r *Renderer) Render(list *drawlist.List, viewProj math.Mat4, eye math.Vec3) Stats {
	stats := Stats{Lights: len(list.Lights), Culled: list.Culled}

	r.program.Use()
	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(r.locCameraPos, eye.X, eye.Y, eye.Z)
	gl.Uniform3f(r.locLightDir, r.sunDir[0], r.sunDir[1], r.sunDir[2])
	gl.Uniform3f(r.locAmbient, 0.35, 0.35, 0.4)
	gl.Uniform3f(r.locDiffuse, 0.8, 0.78, 0.72)
	gl.Uniform1f(r.locFogNear, r.config.Fog.Near)
	gl.Uniform1f(r.locFogFar, r.config.Fog.Far)
	gl.Uniform3f(r.locFogColor, r.config.Fog.Color[0], r.config.Fog.Color[1], r.config.Fog.Color[2])
	r.uploadLights(list.Lights)

	for p := drawlist.PassOpaque; p <= drawlist.PassTransparent; p++ {
		for i := range list.Passes[p] {
			d := &list.Passes[p][i]
			r.applyMaterial(d.Material)
			r.draw(d)
			stats.Draws++
			stats.Instances += len(d.Matrices)
			stats.Triangles += d.Geometry.TriangleCount() * len(d.Matrices)
		}
	}

	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	return stats
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Nothing to flush: every draw is issued in Render
}

func (r *Renderer) uploadLights(lights []lighting.PointLight) {
	r.lights.Clear()
	for _, l := range lights {
		r.lights.AddLight(l)
	}
	count := r.lights.Count
	gl.Uniform1i(r.locPointLightCount, int32(count))
	if count == 0 {
		return
	}
	gl.Uniform3fv(r.locPointLightPositions, int32(count), &r.lights.GetPositions()[0])
	gl.Uniform3fv(r.locPointLightColors, int32(count), &r.lights.GetColors()[0])
	gl.Uniform1fv(r.locPointLightRanges, int32(count), &r.lights.GetRanges()[0])
	gl.Uniform1fv(r.locPointLightIntensities, int32(count), &r.lights.GetIntensities()[0])
}

// applyMaterial sets the GL state and uniforms of one material.
func (r *Renderer) applyMaterial(m *material.Material) {
	if m.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(m.DepthWrite)

	switch {
	case m.Blending == material.BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case m.Transparent:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.Disable(gl.BLEND)
	}

	if m.Side == material.SideDouble {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	color := m.ColorRGB()
	emissive := m.EmissiveRGB()
	opacity := float32(1)
	if m.Transparent {
		opacity = m.Opacity
	}
	gl.Uniform3f(r.locColor, color[0], color[1], color[2])
	gl.Uniform3f(r.locEmissive, emissive[0], emissive[1], emissive[2])
	gl.Uniform1f(r.locOpacity, opacity)
	gl.Uniform1i(r.locUnlit, boolInt(m.Unlit))
	gl.Uniform1i(r.locFogUse, boolInt(m.Fog && r.config.Fog.Far > r.config.Fog.Near))
}

// draw uploads the instance matrices and issues one instanced draw.
func (r *Renderer) draw(d *drawlist.Draw) {
	mesh := r.mesh(d.Geometry)
	if mesh.vao == 0 || len(d.Matrices) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	size := len(d.Matrices) * matrixSize
	if len(d.Matrices) > r.instanceCap {
		r.instanceCap = len(d.Matrices) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.instanceCap*matrixSize, nil, gl.DYNAMIC_DRAW)
		r.log.Debug("instance buffer grown", zap.Int("capacity", r.instanceCap))
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&d.Matrices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindVertexArray(mesh.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, mesh.indexCount, gl.UNSIGNED_INT, nil, int32(len(d.Matrices)))
}

// ReadPixels reads back the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
