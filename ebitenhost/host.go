// Package ebitenhost runs a thicket scene inside an Ebitengine window.
//
// Ebitengine calls Update at its own tick rate; the host measures the wall
// time between calls and feeds it to the scene's fixed-timestep clock, so the
// physics cadence is independent of both TPS and the display refresh rate.
// Colliders are drawn through a panning, zooming Camera with the clock's
// interpolation alpha.
package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/thicket"
)

// RunConfig configures the window and the host loop.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// ClearColor fills the screen before each draw. The zero value leaves the
	// screen as Ebitengine cleared it.
	ClearColor thicket.Color

	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool

	// ShowColliders draws every active collider as an outline.
	ShowColliders bool

	// Camera maps the world onto the screen. Nil uses NewCamera(Width, Height).
	Camera *Camera

	// Update runs once per Ebitengine tick, before the scene is advanced.
	// Returning an error stops the game.
	Update func() error

	// Draw runs after the colliders are drawn. alpha is the clock's
	// interpolation factor.
	Draw func(screen *ebiten.Image, alpha float64)
}

// Run opens a window and runs scene until the window closes or an update
// callback fails.
func Run(scene *thicket.Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("ebitenhost: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(NewGame(scene, cfg))
}

// Game adapts a Scene to ebiten.Game. Use it directly to embed a scene in a
// larger Ebitengine application; Run covers the common case.
type Game struct {
	scene *thicket.Scene
	cfg   RunConfig
	last  time.Time
	now   func() time.Time
	cam   *Camera

	bodies []thicket.NodeID
	fps    fpsOverlay
}

// NewGame returns a Game hosting scene.
func NewGame(scene *thicket.Scene, cfg RunConfig) *Game {
	cam := cfg.Camera
	if cam == nil {
		cam = NewCamera(cfg.Width, cfg.Height)
	}
	return &Game{scene: scene, cfg: cfg, now: time.Now, cam: cam}
}

// Camera returns the camera used for drawing.
func (g *Game) Camera() *Camera {
	return g.cam
}

// Update advances the scene by the wall time since the previous call.
func (g *Game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	now := g.now()
	var elapsed float64
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last).Seconds()
	}
	g.last = now
	g.scene.Update(elapsed)
	g.cam.update(g.scene, elapsed)
	if g.cfg.ShowFPS {
		g.fps.update(elapsed)
	}
	return nil
}

// Draw renders the debug view, then drains the scene's destroy queue. The
// flush happens here because the frame's ticks and rendering are both done.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.RGBA())
	}
	alpha := g.scene.Clock().Alpha()
	if g.cfg.ShowColliders {
		g.bodies = g.scene.ActiveBodies(g.bodies[:0])
		DrawColliders(screen, g.scene, g.cam, g.bodies, alpha)
	}
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen, alpha)
	}
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
	g.scene.FlushDestroyed()
}

// Layout returns the configured logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// fpsOverlay redraws the FPS/TPS text every ~0.5 seconds.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

func (o *fpsOverlay) update(dt float64) {
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
		o.lastUpdate = 0.5
	}
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}
