// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/level"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/powerup"
)

// State is the level state machine
type State int

const (
	StatePlacing State = iota
	StatePlaying
	StateLevelComplete
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlacing:
		return "placing"
	case StatePlaying:
		return "playing"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

var (
	// ErrWrongState is returned for commands the current state does not accept
	ErrWrongState = errors.New("command not allowed in current state")
	// ErrInvalidPlacement is returned when a planet would sit too close to an orb
	ErrInvalidPlacement = errors.New("planet too close to an orb")
	// ErrFinalLevel is returned by NextLevel after the last level
	ErrFinalLevel = errors.New("no level after the final level")
)

// Game owns one player's level state and drives the physics once per frame.
// It is not safe for concurrent use; frontends hand input over through Input.
type Game struct {
	Config   *config.GameConfig
	Params   physics.Params
	EventBus *event.Bus
	Powerups *powerup.System
	Input    *input.Queue
	Bounds   physics.Bounds

	State             State
	Level             int
	Seed              int64
	BouncesLeft       int
	Launched          bool
	RepositionAllowed bool
	CurrentTick       uint64

	Craft       *entity.Craft
	Projectiles []*entity.Craft
	Planet      *entity.Planet
	Pending     *entity.Planet
	Orbs        []*entity.Orb

	aiming      bool
	aimStart    physics.Vector2D
	aimEnd      physics.Vector2D
	lastBounce  time.Time
	magnetUntil time.Time

	firstLevel   int
	newSeed      func() int64
	launch       input.LaunchModel
	placer       level.Placer
	magnet       powerup.MagnetEffect
	split        powerup.SplitShotEffect
	clock        Clock
	logger       *logging.Logger
	ctx          context.Context
	spatialIndex *physics.QuadTree[*entity.Orb]
}

// Option customizes a new Game
type Option func(*Game)

// WithClock replaces the wall clock used for bounce cooldowns and power-up timers
func WithClock(clock Clock) Option {
	return func(g *Game) { g.clock = clock }
}

// WithLogger sets the logger; games log nothing by default
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithSeed fixes the first level's orb layout
func WithSeed(seed int64) Option {
	return func(g *Game) { g.Seed = seed }
}

// WithSeedSource sets how seeds for later levels are drawn
func WithSeedSource(next func() int64) Option {
	return func(g *Game) { g.newSeed = next }
}

// WithInventory starts the game with a saved inventory
func WithInventory(inv *powerup.Inventory) Option {
	return func(g *Game) { g.Powerups = powerup.NewSystem(inv) }
}

// WithStartLevel starts at level n instead of level one
func WithStartLevel(n int) Option {
	return func(g *Game) { g.firstLevel = n }
}

// WithBounds sets the initial play area instead of the configured window size
func WithBounds(bounds physics.Bounds) Option {
	return func(g *Game) { g.Bounds = bounds }
}

// NewGame creates a game on its first level, waiting for the planet to be placed
func NewGame(cfg *config.GameConfig, opts ...Option) *Game {
	game := &Game{
		Config:     cfg,
		Params:     cfg.Params(),
		EventBus:   event.NewEventBus(),
		Input:      input.NewQueue(),
		Bounds:     physics.Bounds{Width: cfg.WindowConfig.Width, Height: cfg.WindowConfig.Height},
		Seed:       -1,
		firstLevel: 1,
		newSeed:    level.NewSeed,
		launch:     input.NewLaunchModel(cfg),
		placer:     level.NewPlacer(cfg),
		magnet:     powerup.NewMagnetEffect(cfg),
		split:      powerup.NewSplitShotEffect(cfg),
		clock:      SystemClock{},
		logger:     logging.NewNopLogger(),
		ctx:        context.Background(),
	}
	for _, opt := range opts {
		opt(game)
	}

	if game.Powerups == nil {
		game.Powerups = powerup.NewSystem(powerup.NewInventory(cfg.PowerupConfig.StartingInventory))
	}
	if game.Seed < 0 {
		game.Seed = game.newSeed()
	}
	game.Level = max(game.firstLevel, 1)
	game.Craft = entity.NewCraft(entity.GenerateID(), game.craftStart(), cfg.CraftConfig.Radius, cfg.CraftConfig.TrailLength)
	game.initSpatialIndex()
	game.registerEventHandlers()
	game.startLevel()

	return game
}

// initSpatialIndex creates the orb broadphase over the play area
func (g *Game) initSpatialIndex() {
	g.spatialIndex = physics.NewQuadTree[*entity.Orb](g.Bounds.Rect(), 4)
}

func (g *Game) craftStart() physics.Vector2D {
	return physics.Vector2D{X: g.Config.CraftConfig.StartX, Y: g.Config.CraftConfig.StartY}
}

// startLevel lays out the current level and seed and waits for planet placement
func (g *Game) startLevel() {
	g.ctx = logging.WithCorrelationID(context.Background(), "")
	g.State = StatePlacing
	g.BouncesLeft = g.Config.MaxBounces()
	g.Launched = false
	g.RepositionAllowed = true
	g.lastBounce = time.Time{}
	g.magnetUntil = time.Time{}
	g.aiming = false
	g.Planet = nil
	g.Pending = nil
	g.Projectiles = nil
	g.Craft.Reset(g.craftStart())

	generated := level.GenerateOrbs(g.Level, g.Seed, g.Bounds, g.Config.OrbConfig)
	g.Orbs = make([]*entity.Orb, len(generated))
	for i, orb := range generated {
		g.Orbs[i] = entity.NewOrb(entity.GenerateID(), orb)
	}

	g.logger.Info(g.ctx, "level started",
		"level", g.Level,
		"seed", g.Seed,
		"orbs", len(g.Orbs),
		"bounces", g.BouncesLeft,
		"difficulty", g.Config.GameRules.Difficulty,
	)
	g.EventBus.Publish(event.NewLevelEvent(event.LevelStarted, g, g.Level, g.Seed, len(g.Orbs), g.BouncesLeft))
}

// Frame handles the input queued since the last frame and advances the
// simulation by dt seconds, capped at the configured maximum frame time
func (g *Game) Frame(dt float64) {
	for _, e := range g.Input.Drain() {
		if err := g.HandleInput(e); err != nil {
			g.logger.Debug(g.ctx, "input rejected", "input", fmt.Sprintf("%T", e), "state", g.State.String(), "reason", err.Error())
		}
	}
	g.Update(clampFrame(dt, g.Config.GameRules.MaxFrameTime))
}

// HandleInput applies one input event
func (g *Game) HandleInput(e input.Event) error {
	switch e := e.(type) {
	case input.DragStart:
		return g.press(e.Position)
	case input.DragMove:
		return g.move(e.Position)
	case input.DragEnd:
		if !g.aiming {
			return nil
		}
		return g.ReleaseAim(e.Position)
	case input.Cancel:
		g.CancelAim()
		return nil
	case input.Restart:
		g.RestartGame()
		return nil
	case input.RestartLevel:
		g.RestartLevel()
		return nil
	case input.NextLevel:
		return g.NextLevel()
	case input.Resize:
		return g.Resize(e.Width, e.Height)
	case input.SelectPowerup:
		return g.SelectPowerup(e.Powerup)
	default:
		return fmt.Errorf("unknown input event %T", e)
	}
}

// press is a primary button press: it places the planet, picks it up again,
// or starts aiming depending on state and position
func (g *Game) press(position physics.Vector2D) error {
	switch g.State {
	case StatePlacing:
		return g.PlacePlanet(position)
	case StatePlaying:
		if g.Launched {
			return nil
		}
		if g.nearPlanet(position) {
			return g.StartRepositioning()
		}
		return g.BeginAim(position)
	default:
		return fmt.Errorf("press in %s: %w", g.State, ErrWrongState)
	}
}

func (g *Game) move(position physics.Vector2D) error {
	switch {
	case g.State == StatePlacing:
		return g.PreviewPlanet(position)
	case g.aiming:
		g.aimEnd = position
	}
	return nil
}

func (g *Game) nearPlanet(position physics.Vector2D) bool {
	if !g.RepositionAllowed || g.Planet == nil {
		return false
	}
	return position.Distance(g.Planet.Position) <= g.Planet.Radius+g.Config.PlanetConfig.RepositionTolerance
}

func (g *Game) orbBodies() []physics.Orb {
	orbs := make([]physics.Orb, len(g.Orbs))
	for i, o := range g.Orbs {
		orbs[i] = o.Orb
	}
	return orbs
}

// PreviewPlanet shows where a planet placed at candidate would sit and whether it is allowed there
func (g *Game) PreviewPlanet(candidate physics.Vector2D) error {
	if g.State != StatePlacing {
		return fmt.Errorf("preview planet in %s: %w", g.State, ErrWrongState)
	}
	planet, ok := g.placer.Place(candidate, g.Bounds, g.orbBodies())
	mode := entity.PlanetPending
	if !ok {
		mode = entity.PlanetInvalid
	}
	g.setPending(planet, mode)
	return nil
}

func (g *Game) setPending(planet physics.Planet, mode entity.PlanetMode) {
	if g.Pending == nil {
		g.Pending = entity.NewPlanet(entity.GenerateID(), planet.Position, planet.Radius, mode)
		return
	}
	g.Pending.Planet = planet
	g.Pending.Mode = mode
}

// PlacePlanet places the planet at candidate, clamped away from the edges, and starts play
func (g *Game) PlacePlanet(candidate physics.Vector2D) error {
	if g.State != StatePlacing {
		return fmt.Errorf("place planet in %s: %w", g.State, ErrWrongState)
	}

	planet, ok := g.placer.Place(candidate, g.Bounds, g.orbBodies())
	if !ok {
		g.setPending(planet, entity.PlanetInvalid)
		return fmt.Errorf("place planet at (%.0f, %.0f): %w", planet.Position.X, planet.Position.Y, ErrInvalidPlacement)
	}

	id := entity.GenerateID()
	if g.Pending != nil {
		id = g.Pending.ID
	}
	g.Planet = entity.NewPlanet(id, planet.Position, planet.Radius, entity.PlanetMovable)
	g.Pending = nil
	g.State = StatePlaying

	g.logger.Info(g.ctx, "planet placed", "x", planet.Position.X, "y", planet.Position.Y)
	g.EventBus.Publish(event.NewPlanetEvent(event.PlanetPlaced, g, uint64(g.Planet.ID), planet.Position))
	return nil
}

// StartRepositioning picks the placed planet up again. Only allowed before the first launch.
func (g *Game) StartRepositioning() error {
	if g.State != StatePlaying || g.Launched || !g.RepositionAllowed || g.Planet == nil {
		return fmt.Errorf("reposition planet in %s: %w", g.State, ErrWrongState)
	}

	g.Pending = g.Planet
	g.Pending.Mode = entity.PlanetPending
	g.Planet = nil
	g.State = StatePlacing
	g.aiming = false
	g.Craft.Visible = false

	g.EventBus.Publish(event.NewPlanetEvent(event.PlanetRepositioning, g, uint64(g.Pending.ID), g.Pending.Position))
	return nil
}

// BeginAim puts the craft at position and starts a slingshot drag from there
func (g *Game) BeginAim(position physics.Vector2D) error {
	if g.State != StatePlaying || g.Launched {
		return fmt.Errorf("aim in %s: %w", g.State, ErrWrongState)
	}
	g.Craft.Position = position
	g.Craft.Velocity = physics.Vector2D{}
	g.Craft.Visible = true
	g.aiming = true
	g.aimStart = position
	g.aimEnd = position
	return nil
}

// ReleaseAim ends the drag at position and launches if the drag was long enough
func (g *Game) ReleaseAim(position physics.Vector2D) error {
	if !g.aiming {
		return fmt.Errorf("release aim in %s: %w", g.State, ErrWrongState)
	}
	g.aimEnd = position
	g.aiming = false

	velocity, ok := g.launch.Velocity(g.aimStart, g.aimEnd)
	if !ok {
		return nil
	}
	return g.Launch(g.aimStart, velocity)
}

// CancelAim abandons a drag in progress and hides the craft
func (g *Game) CancelAim() {
	if !g.aiming || g.Launched {
		return
	}
	g.aiming = false
	g.Craft.Visible = false
}

// Aiming reports whether a drag is in progress
func (g *Game) Aiming() bool {
	return g.aiming
}

// Launch fires the craft from position with velocity and activates the
// selected power-up. Repositioning is no longer allowed afterwards.
func (g *Game) Launch(position, velocity physics.Vector2D) error {
	if g.State != StatePlaying || g.Launched {
		return fmt.Errorf("launch in %s: %w", g.State, ErrWrongState)
	}
	if !position.IsFinite() || !velocity.IsFinite() {
		return fmt.Errorf("launch from %v with %v: non-finite vector", position, velocity)
	}

	now := g.clock.Now()
	g.Craft.Position = position
	g.Craft.Velocity = velocity
	g.Craft.Visible = true
	g.Craft.Active = true
	g.Launched = true
	g.RepositionAllowed = false
	g.aiming = false
	if g.Planet != nil {
		g.Planet.Mode = entity.PlanetFixed
	}

	split := g.activatePowerup(now, position, velocity)

	g.logger.Info(g.ctx, "craft launched",
		"x", position.X, "y", position.Y,
		"vx", velocity.X, "vy", velocity.Y,
		"split", split,
	)
	g.EventBus.Publish(event.NewLaunchEvent(g, uint64(g.Craft.ID), position, velocity, split))
	return nil
}

// activatePowerup consumes the selected power-up for this launch and reports
// whether split-shot projectiles were fired
func (g *Game) activatePowerup(now time.Time, position, velocity physics.Vector2D) bool {
	t, err := g.Powerups.Activate()
	if err != nil {
		g.logger.Warn(g.ctx, "power-up activation failed", "error", err.Error())
		return false
	}
	if t == "" {
		return false
	}

	split := false
	switch t {
	case powerup.Magnet:
		g.magnetUntil = now.Add(g.magnet.Duration)
	case powerup.SplitShot:
		expires := now.Add(g.split.Lifetime)
		for _, v := range g.split.Velocities(velocity) {
			g.Projectiles = append(g.Projectiles, entity.NewProjectile(
				entity.GenerateID(), position, v,
				g.Config.CraftConfig.Radius, g.Config.CraftConfig.TrailLength, expires,
			))
		}
		split = true
	}

	g.EventBus.Publish(event.NewPowerupEvent(g, string(t), g.Powerups.Inventory.Count(t)))
	return split
}

// SelectPowerup arms a power-up for the next launch. An empty name clears the selection.
func (g *Game) SelectPowerup(name string) error {
	if g.Launched || (g.State != StatePlacing && g.State != StatePlaying) {
		return fmt.Errorf("select power-up in %s: %w", g.State, ErrWrongState)
	}
	if name == "" {
		return g.Powerups.Select("")
	}
	t, err := powerup.Parse(name)
	if err != nil {
		return err
	}
	return g.Powerups.Select(t)
}

// RestartLevel replays the current level with the same orb layout, refunding
// the power-up used on it once
func (g *Game) RestartLevel() {
	refunded := g.Powerups.RestoreLevelPowerup()
	g.logger.Info(g.ctx, "level restarted", "level", g.Level, "refunded_powerup", refunded)
	g.startLevel()
}

// NextLevel advances from a completed level to a new layout
func (g *Game) NextLevel() error {
	if g.State != StateLevelComplete {
		return fmt.Errorf("next level in %s: %w", g.State, ErrWrongState)
	}
	if g.Level >= g.Config.GameRules.MaxLevel {
		return ErrFinalLevel
	}
	g.Level++
	g.Seed = g.newSeed()
	g.Powerups.ClearLevelPowerup()
	g.startLevel()
	return nil
}

// RestartGame starts over from level one with a new layout. The inventory
// carries over.
func (g *Game) RestartGame() {
	g.Level = 1
	g.Seed = g.newSeed()
	g.Powerups.ClearLevelPowerup()
	g.logger.Info(g.ctx, "game restarted", "level", g.Level)
	g.startLevel()
}

// Won reports whether the final level has been completed
func (g *Game) Won() bool {
	return g.State == StateLevelComplete && g.Level >= g.Config.GameRules.MaxLevel
}

// Resize relays the level out proportionally for a new play area
func (g *Game) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %gx%g: dimensions must be positive", width, height)
	}
	from := g.Bounds
	to := physics.Bounds{Width: width, Height: height}
	if from == to {
		return nil
	}

	for _, o := range g.Orbs {
		o.Position = clampToBounds(level.Rescale(o.Position, from, to), to, o.Radius)
	}
	if g.Planet != nil {
		g.Planet.Planet = g.placer.RescalePlanet(g.Planet.Planet, from, to)
		for _, o := range g.Orbs {
			o.Orb = g.placer.Separate(g.Planet.Position, o.Orb, to)
		}
	}
	if g.Pending != nil {
		g.Pending.Planet = g.placer.RescalePlanet(g.Pending.Planet, from, to)
	}
	for _, c := range g.crafts() {
		c.Position = clampToBounds(level.Rescale(c.Position, from, to), to, c.Radius)
		c.Trail.Reset()
	}
	g.aimStart = level.Rescale(g.aimStart, from, to)
	g.aimEnd = level.Rescale(g.aimEnd, from, to)

	g.Bounds = to
	g.initSpatialIndex()

	g.logger.Debug(g.ctx, "play area resized", "width", width, "height", height)
	return nil
}

func clampToBounds(p physics.Vector2D, bounds physics.Bounds, margin float64) physics.Vector2D {
	return physics.Vector2D{
		X: max(margin, min(bounds.Width-margin, p.X)),
		Y: max(margin, min(bounds.Height-margin, p.Y)),
	}
}

// crafts returns the player's craft followed by the live projectiles
func (g *Game) crafts() []*entity.Craft {
	all := make([]*entity.Craft, 0, 1+len(g.Projectiles))
	all = append(all, g.Craft)
	return append(all, g.Projectiles...)
}

// registerEventHandlers logs every published event at debug level
func (g *Game) registerEventHandlers() {
	types := []event.Type{
		event.LevelStarted, event.PlanetPlaced, event.PlanetRepositioning,
		event.CraftLaunched, event.PlanetBounce, event.WallBounce,
		event.OrbCollected, event.LevelComplete, event.GameOver,
		event.PowerupActivated,
	}
	for _, t := range types {
		g.EventBus.Subscribe(t, g.logEvent)
	}
}

func (g *Game) logEvent(e event.Event) {
	g.logger.Debug(g.ctx, "event", "type", string(e.GetType()), "tick", g.CurrentTick)
}
