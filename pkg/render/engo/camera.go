// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// CameraSystem maps the play area onto the window. When it follows the
// window, every window resize is queued as a game resize so one world unit
// stays one pixel; otherwise the fixed world is letterboxed into the window.
type CameraSystem struct {
	queue        *input.Queue
	followWindow bool

	world  physics.Bounds
	window physics.Bounds

	zoom    float64
	minZoom float64
	maxZoom float64
	offset  physics.Vector2D
}

// NewCameraSystem creates a camera showing world. Resizes are queued on queue
// when followWindow is set.
func NewCameraSystem(queue *input.Queue, world physics.Bounds, followWindow bool) *CameraSystem {
	return &CameraSystem{
		queue:        queue,
		followWindow: followWindow,
		world:        world,
		window:       world,
		zoom:         1.0,
		minZoom:      0.1,
		maxZoom:      4.0,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update picks up window size changes
func (cs *CameraSystem) Update(dt float32) {
	cs.SetWindow(physics.Bounds{
		Width:  float64(engo.GameWidth()),
		Height: float64(engo.GameHeight()),
	})
}

// SetWindow records the window size and refits the world. It reports whether
// the size changed.
func (cs *CameraSystem) SetWindow(window physics.Bounds) bool {
	if window.Width <= 0 || window.Height <= 0 || window == cs.window {
		return false
	}
	cs.window = window

	if cs.followWindow && cs.world != window {
		cs.queue.Push(input.Resize{Width: window.Width, Height: window.Height})
		cs.world = window
	}
	cs.fit()
	return true
}

// SetWorld records the current play area
func (cs *CameraSystem) SetWorld(world physics.Bounds) {
	if world.Width <= 0 || world.Height <= 0 || world == cs.world {
		return
	}
	cs.world = world
	cs.fit()
}

// fit scales the world to the largest size that fits the window and centers it
func (cs *CameraSystem) fit() {
	if cs.world.Width <= 0 || cs.world.Height <= 0 {
		cs.zoom = 1
		cs.offset = physics.Vector2D{}
		return
	}
	zoom := min(cs.window.Width/cs.world.Width, cs.window.Height/cs.world.Height)
	cs.zoom = cs.clampZoom(zoom)
	cs.offset = physics.Vector2D{
		X: (cs.window.Width - cs.world.Width*cs.zoom) / 2,
		Y: (cs.window.Height - cs.world.Height*cs.zoom) / 2,
	}
}

func (cs *CameraSystem) clampZoom(zoom float64) float64 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// Zoom returns screen pixels per world unit
func (cs *CameraSystem) Zoom() float64 {
	return cs.zoom
}

// World returns the play area being shown
func (cs *CameraSystem) World() physics.Bounds {
	return cs.world
}

// WorldToScreen converts world coordinates to screen coordinates
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) physics.Vector2D {
	return worldPos.Scale(cs.zoom).Add(cs.offset)
}

// ScreenToWorld converts screen coordinates to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos physics.Vector2D) physics.Vector2D {
	return screenPos.Sub(cs.offset).Scale(1 / cs.zoom)
}
