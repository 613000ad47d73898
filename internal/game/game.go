// Package game runs the drop viewer: the world scene, the drop dispatcher and
// the frame loop that draws their output.
package game

import (
	"fmt"
	gomath "math"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/worlddrops/internal/assets"
	"github.com/Faultbox/worlddrops/internal/config"
	"github.com/Faultbox/worlddrops/internal/drops"
	"github.com/Faultbox/worlddrops/internal/engine/camera"
	"github.com/Faultbox/worlddrops/internal/engine/debug"
	"github.com/Faultbox/worlddrops/internal/engine/drawlist"
	"github.com/Faultbox/worlddrops/internal/engine/input"
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/picking"
	"github.com/Faultbox/worlddrops/internal/engine/renderer"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/internal/engine/window"
	"github.com/Faultbox/worlddrops/internal/game/world"
	"github.com/Faultbox/worlddrops/internal/items"
	"github.com/Faultbox/worlddrops/internal/logger"
	"github.com/Faultbox/worlddrops/pkg/math"
)

const (
	title         = "World Drops"
	nearPlane     = 0.05
	farPlane      = 200
	screenshotDir = "screenshots"
)

// Game is the viewer instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	assets     *assets.Manager
	world      *world.Manager
	dispatcher *drops.Dispatcher

	grid       *scenegraph.Node
	screenshot *debug.ScreenshotCapture

	scan      bool
	reveal    bool
	showGrid  bool
	showBoxes bool
	capture   bool
	spawn     int
}

// New creates the window, renderer and dispatcher for cfg.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		log:    logger.Named("game"),
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		assets: assets.NewManager(),
		world:  world.NewManager(),

		screenshot: debug.NewScreenshotCapture(screenshotDir, "worlddrops"),
		showGrid:   true,
	}

	g.log.Info("initializing viewer",
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height),
		zap.String("scene", cfg.World.Scene),
	)

	if err := g.world.LoadScene(cfg.World.Scene); err != nil {
		return nil, err
	}

	dcfg, err := cfg.DispatcherConfig()
	if err != nil {
		return nil, fmt.Errorf("dispatcher config: %w", err)
	}
	g.dispatcher = drops.NewDispatcher(g.assets.DropAssets(), dcfg)
	if cfg.World.Catalog != "" {
		reg, err := loadCatalog(cfg.World.Catalog)
		if err != nil {
			return nil, err
		}
		g.dispatcher.SetRegistry(reg)
	}

	rcfg, err := rendererConfig(&cfg.Render)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Fullscreen: cfg.Render.Fullscreen,
		VSync:      cfg.Render.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	rcfg.Width, rcfg.Height = g.window.GetSize()
	g.renderer, err = renderer.New(rcfg)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.frameScene()
	g.log.Info("viewer initialized", zap.String("scene", g.world.Current().Name))
	return g, nil
}

func loadCatalog(path string) (*items.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	reg, err := items.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

func rendererConfig(rc *config.RenderConfig) (renderer.Config, error) {
	bg, err := material.ParseHex(rc.Background)
	if err != nil {
		return renderer.Config{}, fmt.Errorf("render.background: %w", err)
	}
	fog, err := material.ParseHex(rc.Fog.Color)
	if err != nil {
		return renderer.Config{}, fmt.Errorf("render.fog.color: %w", err)
	}
	return renderer.Config{
		Background: rgb(bg),
		Fog: renderer.FogConfig{
			Near:  rc.Fog.Near,
			Far:   rc.Fog.Far,
			Color: linearRGB(fog),
		},
		SunAzimuth:   0.8,
		SunElevation: 0.9,
	}, nil
}

func rgb(c colorful.Color) [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func linearRGB(c colorful.Color) [3]float32 {
	r, g, b := c.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}

// frameScene points the camera at the whole scene and lays the ground grid
// under it.
func (g *Game) frameScene() {
	lo, hi, ok := g.world.Current().Bounds()
	if ok {
		g.camera.FitToBounds(lo, hi)
	}
	g.grid = debug.Grid(lo, hi, 1)
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var (
		stats renderer.Stats
		tree  scenegraph.Stats
	)

	g.log.Info("starting viewer loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Render
		stats, tree = g.render()

		if g.capture {
			g.capture = false
			g.saveScreenshot()
		}

		// 3. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("dt_ms", dt*1000),
				zap.Int("draws", stats.Draws),
				zap.Int("instances", stats.Instances),
				zap.Int("nodes_meshes", tree.Meshes),
				zap.Int("nodes_batches", tree.Batches),
				zap.Int("clones", g.dispatcher.Clones()),
				zap.Int("highlighted", g.dispatcher.Highlights().Len()),
				zap.Int("reclassified", g.dispatcher.Reclassified()),
			)
			if g.cfg.Render.ShowStats {
				g.window.SetTitle(statsTitle(frameCount, stats, g.scan, g.reveal))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func statsTitle(fps int, s renderer.Stats, scan, reveal bool) string {
	return fmt.Sprintf("%s | %d fps | %d draws | %d instances | %d tris | %d lights | %d culled | scan %v reveal %v",
		title, fps, s.Draws, s.Instances, s.Triangles, s.Lights, s.Culled, scan, reveal)
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := g.window.GetSize()
			g.renderer.Resize(w, h)
		case input.EventKeyDown:
			g.handleKey(event.Key)
		case input.EventClick:
			g.pickAt(event.X, event.Y)
		}
	}

	g.camera.HandleDrag(g.input.DragX, g.input.DragY)
	g.camera.HandleDrag(heldAxis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT)*keyOrbit, heldAxis(sdl.SCANCODE_UP, sdl.SCANCODE_DOWN)*keyOrbit)
	g.camera.HandlePan(g.input.PanX, g.input.PanY)
	g.camera.HandleZoom(g.input.Wheel)
}

// keyOrbit is the per-frame orbit, in drag pixels, while an arrow key is held.
const keyOrbit = 6

func heldAxis(neg, pos sdl.Scancode) float32 {
	var v float32
	if input.Held(neg) {
		v--
	}
	if input.Held(pos) {
		v++
	}
	return v
}

// spawnTypes is cycled through by the drop key.
var spawnTypes = []string{"red_shard", "pill_bottle", "weapon_makarov", "tool_scanner", "weapon_tt", "health_solution", "weapon_pipe"}

func (g *Game) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		g.running = false
	case sdl.K_s:
		g.scan = !g.scan
		g.log.Info("scan toggled", zap.Bool("scan", g.scan))
	case sdl.K_r:
		g.reveal = !g.reveal
		g.log.Info("reveal toggled", zap.Bool("reveal", g.reveal))
	case sdl.K_i:
		g.dispatcher.Invalidate()
		g.log.Info("clone cache invalidated")
	case sdl.K_d:
		g.dropAtCursor()
	case sdl.K_p:
		if id := g.world.Last(); id != "" && g.world.Pickup(id) {
			g.log.Info("picked up", zap.String("id", id))
		}
	case sdl.K_f:
		g.frameScene()
	case sdl.K_g:
		g.showGrid = !g.showGrid
	case sdl.K_b:
		g.showBoxes = !g.showBoxes
	case sdl.K_F12:
		g.capture = true
	case sdl.K_F3:
		if logger.Level() == "debug" {
			logger.SetLevel("info")
		} else {
			logger.SetLevel("debug")
		}
	}
}

// dropAtCursor releases the next spawn type on the ground under the mouse,
// or where the camera is looking when the cursor points above the horizon.
func (g *Game) dropAtCursor() {
	typeID := spawnTypes[g.spawn%len(spawnTypes)]
	g.spawn++

	pos := g.camera.Center
	pos.Y = 0
	if w, h := g.window.LogicalSize(); w > 0 && h > 0 {
		x, y, _ := sdl.GetMouseState()
		ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), g.viewProj().Inverse())
		if p, ok := ray.IntersectPlaneY(0); ok {
			pos = p
		}
	}
	yaw := float32(float64(g.spawn) * 0.9)
	id := g.world.Drop(typeID, pos, math.V3(0, yaw, 0))
	g.log.Info("dropped", zap.String("id", id), zap.String("type", typeID))
}

// pickHalf is the half extent of the box a drop is clicked through.
const pickHalf = 0.2

// pickTargets returns one click box per drop, resting on its position.
func pickTargets(items []drops.WorldItemDrop) []picking.Target {
	out := make([]picking.Target, len(items))
	for i := range items {
		p := items[i].Position
		out[i] = picking.Target{
			ID: items[i].ID,
			Box: picking.NewAABB(
				p.Sub(math.V3(pickHalf, 0, pickHalf)),
				p.Add(math.V3(pickHalf, 2*pickHalf, pickHalf)),
			),
		}
	}
	return out
}

// pickAt picks up the drop under the cursor.
func (g *Game) pickAt(x, y int) {
	w, h := g.window.LogicalSize()
	if w == 0 || h == 0 {
		return
	}
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), g.viewProj().Inverse())
	id, _, ok := picking.Nearest(ray, pickTargets(g.world.Current().Drops))
	if !ok {
		return
	}
	if g.world.Pickup(id) {
		g.log.Info("picked up", zap.String("id", id))
	}
}

func (g *Game) viewProj() math.Mat4 {
	fov := float32(float64(g.cfg.Render.FOV) * gomath.Pi / 180)
	proj := math.Perspective(fov, g.renderer.Aspect(), nearPlane, farPlane)
	return proj.Mul(g.camera.ViewMatrix())
}

func (g *Game) render() (renderer.Stats, scenegraph.Stats) {
	root := g.dispatcher.Update(g.world.Frame(g.scan, g.reveal))

	viewProj := g.viewProj()
	frustum := drawlist.FrustumFrom(viewProj)

	scene := scenegraph.NewGroup("scene", root)
	if g.showGrid && g.grid != nil {
		scene.Add(g.grid)
	}
	if g.showBoxes {
		scene.Add(debug.Boxes(pickTargets(g.world.Current().Drops), material.MustHex("#facc15"), 0.02))
	}

	list := drawlist.Build(scene, &frustum)
	if list.DroppedLights > 0 {
		g.log.Debug("point lights over budget", zap.Int("dropped", list.DroppedLights))
	}

	g.renderer.Begin()
	stats := g.renderer.Render(list, viewProj, g.camera.Position())
	g.renderer.End()
	return stats, scenegraph.Collect(scene)
}

func (g *Game) saveScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and window.
func (g *Game) Close() {
	g.log.Info("shutting down viewer")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
