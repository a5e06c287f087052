// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// NullRenderer draws nothing and logs each call at debug level. Headless
// runs and tests use it.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a NullRenderer. A nil logger logs to stdout at the
// level set by SLINGSHOT_LOG_LEVEL.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns how many frames were presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "frame presented", "frame", d.frames)
}

// RenderPlanet implements entity.Renderer.
func (d *NullRenderer) RenderPlanet(planet *entity.Planet) {
	ctx := context.Background()
	if planet == nil {
		d.logger.Debug(ctx, "RenderPlanet called with nil planet")
		return
	}
	d.logger.Debug(ctx, "RenderPlanet called",
		"planet_id", uint64(planet.ID),
		"x", planet.Position.X,
		"y", planet.Position.Y,
		"mode", planet.Mode.String(),
	)
}

// RenderOrb implements entity.Renderer.
func (d *NullRenderer) RenderOrb(orb *entity.Orb) {
	ctx := context.Background()
	if orb == nil {
		d.logger.Debug(ctx, "RenderOrb called with nil orb")
		return
	}
	d.logger.Debug(ctx, "RenderOrb called",
		"orb_id", uint64(orb.ID),
		"x", orb.Position.X,
		"y", orb.Position.Y,
	)
}

// RenderCraft implements entity.Renderer.
func (d *NullRenderer) RenderCraft(craft *entity.Craft) {
	ctx := context.Background()
	if craft == nil {
		d.logger.Debug(ctx, "RenderCraft called with nil craft")
		return
	}
	d.logger.Debug(ctx, "RenderCraft called",
		"craft_id", uint64(craft.ID),
		"main", craft.Main,
		"x", craft.Position.X,
		"y", craft.Position.Y,
		"speed", craft.Speed(),
	)
}

// RenderAim implements entity.Renderer.
func (d *NullRenderer) RenderAim(aim entity.Aim) {
	d.logger.Debug(context.Background(), "RenderAim called",
		"power", aim.Power,
		"trajectory_points", len(aim.Trajectory),
	)
}

// RenderHUD implements entity.Renderer.
func (d *NullRenderer) RenderHUD(hud entity.HUD) {
	d.logger.Debug(context.Background(), "RenderHUD called",
		"level", hud.Level,
		"state", hud.State,
		"bounces_left", hud.BouncesLeft,
		"orbs_left", hud.OrbsLeft,
	)
}
