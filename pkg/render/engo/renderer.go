// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

// Draw layers, back to front
const (
	layerTrail float32 = iota
	layerPath
	layerPlanet
	layerOrb
	layerCraft
	layerAim
	layerHUD
)

var (
	colorOrb        = color.RGBA{255, 215, 0, 255}
	colorOrbPreview = color.RGBA{255, 215, 0, 160}
	colorCraft      = color.RGBA{255, 255, 255, 255}
	colorProjectile = color.RGBA{0, 255, 255, 255}
	colorTrail      = color.RGBA{160, 160, 160, 255}
	colorAim        = color.RGBA{255, 64, 64, 255}
	colorPowerBar   = color.RGBA{255, 128, 0, 255}
)

type planetLook struct {
	sprite string
	tint   color.RGBA
}

var planetLooks = map[entity.PlanetMode]planetLook{
	entity.PlanetFixed:   {SpriteDisc, color.RGBA{70, 110, 255, 255}},
	entity.PlanetMovable: {SpriteDisc, color.RGBA{60, 200, 90, 255}},
	entity.PlanetPending: {SpriteRing, color.RGBA{60, 200, 90, 255}},
	entity.PlanetInvalid: {SpriteRing, color.RGBA{255, 60, 60, 255}},
}

// spriteSink is where sprites are registered for drawing. common.RenderSystem
// satisfies it.
type spriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements entity.Renderer by keeping one sprite per game
// entity. Trails, the predicted path and the aim line are drawn with a pool
// of thin rectangles reused every frame.
type EngoRenderer struct {
	sink   spriteSink
	camera *CameraSystem
	assets *AssetManager
	hud    *HUDSystem
	style  render.TrajectoryStyle

	bodies   map[entity.ID]*sprite
	seen     map[entity.ID]bool
	segments []*sprite
	used     int
	frames   uint64
}

// NewEngoRenderer creates a renderer drawing into sink. hud may be nil.
func NewEngoRenderer(sink spriteSink, camera *CameraSystem, assets *AssetManager, hud *HUDSystem, style render.TrajectoryStyle) *EngoRenderer {
	return &EngoRenderer{
		sink:   sink,
		camera: camera,
		assets: assets,
		hud:    hud,
		style:  style,
		bodies: make(map[entity.ID]*sprite),
		seen:   make(map[entity.ID]bool),
	}
}

// Frames returns how many frames were presented
func (r *EngoRenderer) Frames() uint64 {
	return r.frames
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	clear(r.seen)
	r.used = 0
}

// Present implements entity.Renderer. Sprites of entities not drawn this
// frame are dropped and unused segments hidden.
func (r *EngoRenderer) Present() {
	for id, s := range r.bodies {
		if !r.seen[id] {
			r.sink.Remove(s.BasicEntity)
			delete(r.bodies, id)
		}
	}
	for _, s := range r.segments[r.used:] {
		s.Hidden = true
	}
	r.frames++
}

// RenderPlanet implements entity.Renderer
func (r *EngoRenderer) RenderPlanet(planet *entity.Planet) {
	look, ok := planetLooks[planet.Mode]
	if !ok {
		look = planetLooks[entity.PlanetFixed]
	}
	r.placeCircle(r.body(planet.ID), planet.Circle(), look.sprite, look.tint, layerPlanet)
}

// RenderOrb implements entity.Renderer
func (r *EngoRenderer) RenderOrb(orb *entity.Orb) {
	if orb.Preview {
		r.placeCircle(r.body(orb.ID), orb.Circle(), SpriteRing, colorOrbPreview, layerOrb)
		return
	}
	r.placeCircle(r.body(orb.ID), orb.Circle(), SpriteDisc, colorOrb, layerOrb)
}

// RenderCraft implements entity.Renderer
func (r *EngoRenderer) RenderCraft(craft *entity.Craft) {
	points := craft.Trail.Points()
	for i := 1; i < len(points); i++ {
		// older points fade out
		alpha := float64(i) / float64(len(points))
		r.segment(points[i-1], points[i], 2, fade(colorTrail, alpha), layerTrail)
	}

	tint := colorCraft
	if !craft.Main {
		tint = colorProjectile
	}
	r.placeCircle(r.body(craft.ID), craft.Circle(), SpriteDisc, tint, layerCraft)
}

// RenderAim implements entity.Renderer
func (r *EngoRenderer) RenderAim(aim entity.Aim) {
	for _, d := range r.style.Stroke(aim.Trajectory) {
		r.segment(d.From, d.To, 2, fade(colorCraft, d.Alpha), layerPath)
	}
	r.segment(aim.Start, aim.End, 3, colorAim, layerAim)

	// power bar above the drag start, 100 pixels at full power
	start := r.camera.WorldToScreen(aim.Start).Add(physics.Vector2D{X: -50, Y: -40})
	r.screenSegment(start, start.Add(physics.Vector2D{X: 100 * aim.Power}), 6, colorPowerBar, layerAim)
}

// RenderHUD implements entity.Renderer
func (r *EngoRenderer) RenderHUD(hud entity.HUD) {
	if r.hud != nil {
		r.hud.SetHUD(hud)
	}
}

// body returns the sprite for id, registering a new one on first use
func (r *EngoRenderer) body(id entity.ID) *sprite {
	r.seen[id] = true
	if s, ok := r.bodies[id]; ok {
		return s
	}
	s := &sprite{BasicEntity: ecs.NewBasic()}
	r.bodies[id] = s
	r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// placeCircle sizes and positions s to cover c on screen
func (r *EngoRenderer) placeCircle(s *sprite, c physics.Circle, name string, tint color.Color, z float32) {
	center := r.camera.WorldToScreen(c.Center)
	size := 2 * c.Radius * r.camera.Zoom()

	drawable := r.assets.Sprite(name)
	s.Drawable = drawable
	s.Color = tint
	s.Hidden = false
	s.Scale = fitScale(drawable, size)
	s.SetZIndex(z)
	s.Position = engo.Point{X: float32(center.X - size/2), Y: float32(center.Y - size/2)}
	s.Width = float32(size)
	s.Height = float32(size)
	s.Rotation = 0
}

// fitScale scales a texture to size pixels. Shapes are sized by their space
// component instead.
func fitScale(drawable common.Drawable, size float64) engo.Point {
	if w := drawable.Width(); w > 0 {
		k := float32(size) / w
		return engo.Point{X: k, Y: k}
	}
	return engo.Point{X: 1, Y: 1}
}

// segment draws a world-space line width pixels thick
func (r *EngoRenderer) segment(from, to physics.Vector2D, width float64, tint color.Color, z float32) {
	r.screenSegment(r.camera.WorldToScreen(from), r.camera.WorldToScreen(to), width, tint, z)
}

// screenSegment draws a rectangle from a to b, rotated about its top-left
// corner and offset so the line runs down its middle
func (r *EngoRenderer) screenSegment(a, b physics.Vector2D, width float64, tint color.Color, z float32) {
	s := r.nextSegment()
	d := b.Sub(a)
	normal := physics.Vector2D{X: -d.Y, Y: d.X}.Normalize().Scale(width / 2)
	corner := a.Sub(normal)

	s.Drawable = common.Rectangle{}
	s.Color = tint
	s.Hidden = false
	s.Scale = engo.Point{X: 1, Y: 1}
	s.SetZIndex(z)
	s.Position = engo.Point{X: float32(corner.X), Y: float32(corner.Y)}
	s.Width = float32(d.Length())
	s.Height = float32(width)
	s.Rotation = float32(math.Atan2(d.Y, d.X) * 180 / math.Pi)
}

func (r *EngoRenderer) nextSegment() *sprite {
	if r.used < len(r.segments) {
		s := r.segments[r.used]
		r.used++
		return s
	}
	s := &sprite{BasicEntity: ecs.NewBasic()}
	r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	r.segments = append(r.segments, s)
	r.used++
	return s
}

// fade scales the alpha of c by alpha in [0, 1]
func fade(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * max(0, min(1, alpha))))}
}
