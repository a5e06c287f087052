// pkg/engine/render.go
package engine

import (
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// GameState is a snapshot of the level for frontends and tools
type GameState struct {
	Tick          uint64
	State         State
	Level         int
	Seed          int64
	BouncesLeft   int
	Launched      bool
	CraftPosition physics.Vector2D
	CraftVelocity physics.Vector2D
	Planet        *physics.Planet
	Orbs          []physics.Orb
	Projectiles   []physics.Vector2D
}

// GetGameState returns a snapshot of the current level
func (g *Game) GetGameState() GameState {
	state := GameState{
		Tick:          g.CurrentTick,
		State:         g.State,
		Level:         g.Level,
		Seed:          g.Seed,
		BouncesLeft:   g.BouncesLeft,
		Launched:      g.Launched,
		CraftPosition: g.Craft.Position,
		CraftVelocity: g.Craft.Velocity,
		Orbs:          g.orbBodies(),
	}
	if g.Planet != nil {
		planet := g.Planet.Planet
		state.Planet = &planet
	}
	for _, p := range g.Projectiles {
		state.Projectiles = append(state.Projectiles, p.Position)
	}
	return state
}

// Aim returns the drag in progress with its power and predicted path
func (g *Game) Aim() (entity.Aim, bool) {
	if !g.aiming || g.Launched {
		return entity.Aim{}, false
	}

	aim := entity.Aim{
		Start: g.aimStart,
		End:   g.aimEnd,
		Power: g.launch.PowerFraction(g.aimEnd.Distance(g.aimStart)),
	}
	if velocity, ok := g.launch.Velocity(g.aimStart, g.aimEnd); ok && g.Config.TrajectoryConfig.Enabled && g.Planet != nil {
		aim.Trajectory = g.Params.Trajectory(g.aimStart, velocity, g.Planet.Planet, g.Bounds)
	}
	return aim, true
}

// HUD returns the status line for the current state
func (g *Game) HUD() entity.HUD {
	hud := entity.HUD{
		Level:         g.Level,
		MaxLevel:      g.Config.GameRules.MaxLevel,
		BouncesLeft:   g.BouncesLeft,
		OrbsLeft:      len(g.Orbs),
		State:         g.State.String(),
		ActivePowerup: string(g.Powerups.Active()),
		Selected:      string(g.Powerups.Selected()),
		Inventory:     g.Powerups.Inventory.Snapshot(),
	}

	switch g.State {
	case StatePlacing:
		hud.Message = "Click to place the planet"
		if g.Pending != nil && g.Pending.Mode == entity.PlanetInvalid {
			hud.Message = "Cannot place planet too close to orbs"
		}
	case StatePlaying:
		if !g.Launched {
			hud.Message = "Click planet to reposition, drag elsewhere to aim"
		}
	case StateLevelComplete:
		hud.Message = "Level complete"
		if g.Won() {
			hud.Message = "All levels cleared"
		}
	case StateGameOver:
		hud.Message = "Out of bounces"
	}
	return hud
}

// Render draws one frame through r
func (g *Game) Render(r entity.Renderer) {
	r.Clear()

	placing := g.State == StatePlacing
	if placing {
		if g.Pending != nil {
			g.Pending.Render(r)
		}
	} else if g.Planet != nil {
		g.Planet.Render(r)
	}

	for _, o := range g.Orbs {
		o.Preview = placing
		o.Render(r)
	}

	if g.Craft.Visible {
		g.Craft.Render(r)
	}
	for _, p := range g.Projectiles {
		if p.Active {
			p.Render(r)
		}
	}

	if aim, ok := g.Aim(); ok {
		r.RenderAim(aim)
	}
	r.RenderHUD(g.HUD())
	r.Present()
}
