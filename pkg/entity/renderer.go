package entity

import "github.com/opd-ai/go-slingshot/pkg/physics"

// Aim is the slingshot drag being drawn. Trajectory is empty for drags too
// short to launch.
type Aim struct {
	Start      physics.Vector2D
	End        physics.Vector2D
	Power      float64
	Trajectory []physics.Vector2D
}

// HUD is the status line shown over the play area
type HUD struct {
	Level         int
	MaxLevel      int
	BouncesLeft   int
	OrbsLeft      int
	State         string
	ActivePowerup string
	Selected      string
	Inventory     map[string]int
	Message       string
}

// Renderer handles rendering game entities
type Renderer interface {
	Clear()
	RenderPlanet(planet *Planet)
	RenderOrb(orb *Orb)
	RenderCraft(craft *Craft)
	RenderAim(aim Aim)
	RenderHUD(hud HUD)
	Present()
}
