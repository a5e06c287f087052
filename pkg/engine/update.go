// pkg/engine/update.go
package engine

import (
	"time"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/powerup"
)

// Update advances a launched level by dt seconds: gravity, movement, wall and
// planet bounces, orb pickup, trails and finally the win and loss checks
func (g *Game) Update(dt float64) {
	if g.State != StatePlaying || !g.Launched || g.Planet == nil {
		return
	}
	now := g.clock.Now()

	g.updateCraft(g.Craft, dt, now)
	g.updateProjectiles(dt, now)
	g.updateMagnet(dt, now)
	g.collectOrbs()
	g.updateTrails()
	g.checkLevelEnd()

	g.CurrentTick++
}

// updateCraft moves one body. Only the player's craft is subject to the bounce
// cooldown and spends bounces.
func (g *Game) updateCraft(c *entity.Craft, dt float64, now time.Time) {
	planet := g.Planet.Planet

	g.Params.ApplyGravity(&c.Body, planet, dt)
	g.Params.Integrate(&c.Body, dt)

	if g.Params.HandleWallBounces(&c.Body, g.Bounds) {
		g.EventBus.Publish(event.NewBounceEvent(event.WallBounce, g, uint64(c.ID), c.Main, c.Position, c.Speed(), false, g.BouncesLeft))
	}

	if !c.Main {
		if g.Params.HandlePlanetBounce(&c.Body, planet) {
			g.EventBus.Publish(event.NewBounceEvent(event.PlanetBounce, g, uint64(c.ID), false, c.Position, c.Speed(), false, g.BouncesLeft))
		}
		return
	}

	if now.Sub(g.lastBounce) <= g.Config.BounceCooldown() {
		return
	}
	if g.Params.HandlePlanetBounce(&c.Body, planet) {
		g.lastBounce = now
		g.BouncesLeft--
		g.logger.Debug(g.ctx, "planet bounce", "bounces_left", g.BouncesLeft, "speed", c.Speed())
		g.EventBus.Publish(event.NewBounceEvent(event.PlanetBounce, g, uint64(c.ID), true, c.Position, c.Speed(), true, g.BouncesLeft))
	}
}

// updateProjectiles moves split-shot projectiles and drops expired ones
func (g *Game) updateProjectiles(dt float64, now time.Time) {
	if len(g.Projectiles) == 0 {
		return
	}

	live := g.Projectiles[:0]
	for _, p := range g.Projectiles {
		if !p.Active || p.Expired(now) {
			continue
		}
		g.updateCraft(p, dt, now)
		live = append(live, p)
	}
	clear(g.Projectiles[len(live):])
	g.Projectiles = live

	if len(g.Projectiles) == 0 && g.Powerups.IsActive(powerup.SplitShot) {
		g.Powerups.ClearActive()
	}
}

// updateMagnet pulls nearby orbs toward the craft while the magnet lasts
func (g *Game) updateMagnet(dt float64, now time.Time) {
	if !g.Powerups.IsActive(powerup.Magnet) {
		return
	}
	if !now.Before(g.magnetUntil) {
		g.Powerups.ClearActive()
		g.logger.Debug(g.ctx, "magnet expired")
		return
	}
	for _, o := range g.Orbs {
		g.magnet.Pull(&o.Orb, g.Craft.Position, dt, g.Params.FrameScale)
	}
}

// collectOrbs removes every orb touched by the craft or a projectile
func (g *Game) collectOrbs() {
	if len(g.Orbs) == 0 {
		return
	}

	g.spatialIndex.Clear()
	var outside []*entity.Orb
	maxRadius := 0.0
	for _, o := range g.Orbs {
		if !g.spatialIndex.Insert(o.Position, o) {
			outside = append(outside, o)
		}
		maxRadius = max(maxRadius, o.Radius)
	}

	collectedBy := make(map[entity.ID]entity.ID)
	for _, c := range g.crafts() {
		if !c.Active {
			continue
		}
		area := physics.Around(physics.Circle{Center: c.Position, Radius: c.Radius + maxRadius})
		candidates := append(g.spatialIndex.Query(area), outside...)
		for _, o := range candidates {
			if _, taken := collectedBy[o.ID]; taken {
				continue
			}
			if physics.CheckCollision(c, o) {
				collectedBy[o.ID] = c.ID
			}
		}
	}
	if len(collectedBy) == 0 {
		return
	}

	remaining := g.Orbs[:0]
	left := len(g.Orbs)
	for _, o := range g.Orbs {
		craftID, ok := collectedBy[o.ID]
		if !ok {
			remaining = append(remaining, o)
			continue
		}
		left--
		g.EventBus.Publish(event.NewOrbEvent(g, uint64(o.ID), uint64(craftID), left))
	}
	clear(g.Orbs[len(remaining):])
	g.Orbs = remaining

	g.logger.Debug(g.ctx, "orbs collected", "count", len(collectedBy), "orbs_left", len(g.Orbs))
}

func (g *Game) updateTrails() {
	for _, c := range g.crafts() {
		if c.Active {
			c.Trail.Push(c.Position)
		}
	}
}

// checkLevelEnd completes the level when no orbs are left and ends the game
// when the bounces run out
func (g *Game) checkLevelEnd() {
	switch {
	case len(g.Orbs) == 0:
		g.endLevel(StateLevelComplete, event.LevelComplete, "level complete")
	case g.BouncesLeft <= 0 && g.Launched:
		g.endLevel(StateGameOver, event.GameOver, "game over")
	}
}

func (g *Game) endLevel(state State, eventType event.Type, msg string) {
	g.State = state
	g.Powerups.ClearActive()
	g.Projectiles = nil

	g.logger.Info(g.ctx, msg, "level", g.Level, "bounces_left", g.BouncesLeft, "orbs_left", len(g.Orbs), "ticks", g.CurrentTick)
	g.EventBus.Publish(event.NewLevelEvent(eventType, g, g.Level, g.Seed, len(g.Orbs), g.BouncesLeft))
}
