// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/validation"
)

// GameConfig contains every tunable of a slingshot game
type GameConfig struct {
	PhysicsConfig    PhysicsConfig              `json:"physics"`
	TrajectoryConfig TrajectoryConfig           `json:"trajectory"`
	PlanetConfig     PlanetConfig               `json:"planet"`
	CraftConfig      CraftConfig                `json:"craft"`
	OrbConfig        OrbConfig                  `json:"orbs"`
	LaunchConfig     LaunchConfig               `json:"launch"`
	GameRules        GameRules                  `json:"gameRules"`
	Difficulties     map[string]DifficultyLevel `json:"difficulties"`
	PowerupConfig    PowerupConfig              `json:"powerups"`
	WindowConfig     WindowConfig               `json:"window"`
}

// PhysicsConfig contains the force and collision constants
type PhysicsConfig struct {
	GravityStrength   float64 `json:"gravityStrength"`
	MaxVelocity       float64 `json:"maxVelocity"`
	BounceDamping     float64 `json:"bounceDamping"`
	WallBounceDamping float64 `json:"wallBounceDamping"`
	MinEscapeSpeed    float64 `json:"minEscapeSpeed"`
	BounceClearance   float64 `json:"bounceClearance"`
	BoostRadius       float64 `json:"boostRadius"`
	BoostFactor       float64 `json:"boostFactor"`
	GravityEpsilon    float64 `json:"gravityEpsilon"`
}

// TrajectoryConfig controls the aim preview
type TrajectoryConfig struct {
	Enabled           bool    `json:"enabled"`
	Steps             int     `json:"steps"`
	StepSize          float64 `json:"stepSize"`
	OutOfBoundsMargin float64 `json:"outOfBoundsMargin"`
	DashLength        float64 `json:"dashLength"`
	GapLength         float64 `json:"gapLength"`
	MinAlpha          float64 `json:"minAlpha"`
}

// PlanetConfig contains planet size and placement rules
type PlanetConfig struct {
	Radius              float64 `json:"radius"`
	EdgeMargin          float64 `json:"edgeMargin"`
	RepositionTolerance float64 `json:"repositionTolerance"`
}

// CraftConfig contains the player's craft settings
type CraftConfig struct {
	Radius      float64 `json:"radius"`
	StartX      float64 `json:"startX"`
	StartY      float64 `json:"startY"`
	TrailLength int     `json:"trailLength"`
}

// OrbConfig contains orb size and layout settings
type OrbConfig struct {
	Radius                float64 `json:"radius"`
	MinDistanceFromPlanet float64 `json:"minDistanceFromPlanet"`
	PerLevelMultiplier    int     `json:"perLevelMultiplier"`
	MaxClusters           int     `json:"maxClusters"`
	ClusterMargin         float64 `json:"clusterMargin"`
	ClusterMinSpread      float64 `json:"clusterMinSpread"`
	ClusterMaxSpread      float64 `json:"clusterMaxSpread"`
}

// LaunchConfig maps a drag to a launch velocity
type LaunchConfig struct {
	PowerDivisor       float64 `json:"powerDivisor"`
	MaxPowerMultiplier float64 `json:"maxPowerMultiplier"`
	MinDragDistance    float64 `json:"minDragDistance"`
}

// GameRules contains game rules configuration
type GameRules struct {
	Difficulty       string  `json:"difficulty"`
	MaxBounces       int     `json:"maxBounces"`
	BounceCooldownMS int     `json:"bounceCooldownMs"`
	MaxLevel         int     `json:"maxLevel"`
	MaxFrameTime     float64 `json:"maxFrameTime"`
}

// DifficultyLevel is one entry of the difficulty table
type DifficultyLevel struct {
	Bounces int `json:"bounces"`
}

// PowerupConfig contains power-up tuning and the starting inventory
type PowerupConfig struct {
	MagnetRadius      float64        `json:"magnetRadius"`
	MagnetSpeed       float64        `json:"magnetSpeed"`
	MagnetDurationMS  int            `json:"magnetDurationMs"`
	SplitAngle        float64        `json:"splitAngle"`
	SplitLifetimeMS   int            `json:"splitLifetimeMs"`
	StartingInventory map[string]int `json:"startingInventory"`
}

// WindowConfig contains the play area size and frame rate of the frontends
type WindowConfig struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	TargetFPS int     `json:"targetFps"`
}

// LoadConfig loads a configuration from a file. Sections missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the shipped tuning
func DefaultConfig() *GameConfig {
	params := physics.DefaultParams()
	return &GameConfig{
		PhysicsConfig: PhysicsConfig{
			GravityStrength:   params.GravityStrength,
			MaxVelocity:       params.MaxVelocity,
			BounceDamping:     params.BounceDamping,
			WallBounceDamping: params.WallBounceDamping,
			MinEscapeSpeed:    params.MinEscapeSpeed,
			BounceClearance:   params.BounceClearance,
			BoostRadius:       params.BoostRadius,
			BoostFactor:       params.BoostFactor,
			GravityEpsilon:    params.GravityEpsilon,
		},
		TrajectoryConfig: TrajectoryConfig{
			Enabled:           true,
			Steps:             params.TrajectorySteps,
			StepSize:          params.TrajectoryStep,
			OutOfBoundsMargin: params.OutOfBoundsMargin,
			DashLength:        8,
			GapLength:         4,
			MinAlpha:          0.3,
		},
		PlanetConfig: PlanetConfig{
			Radius:              70,
			EdgeMargin:          100,
			RepositionTolerance: 10,
		},
		CraftConfig: CraftConfig{
			Radius:      15,
			StartX:      150,
			StartY:      150,
			TrailLength: 100,
		},
		OrbConfig: OrbConfig{
			Radius:                15,
			MinDistanceFromPlanet: 80,
			PerLevelMultiplier:    1,
			MaxClusters:           2,
			ClusterMargin:         100,
			ClusterMinSpread:      20,
			ClusterMaxSpread:      100,
		},
		LaunchConfig: LaunchConfig{
			PowerDivisor:       15,
			MaxPowerMultiplier: 1.2,
			MinDragDistance:    10,
		},
		GameRules: GameRules{
			Difficulty:       "normal",
			MaxBounces:       5,
			BounceCooldownMS: 200,
			MaxLevel:         15,
			MaxFrameTime:     1.0 / 30,
		},
		Difficulties: map[string]DifficultyLevel{
			"easy":   {Bounces: 6},
			"normal": {Bounces: 4},
			"hard":   {Bounces: 2},
		},
		PowerupConfig: PowerupConfig{
			MagnetRadius:     150,
			MagnetSpeed:      3,
			MagnetDurationMS: 10000,
			SplitAngle:       0.26,
			SplitLifetimeMS:  5000,
			StartingInventory: map[string]int{
				"magnet":     2,
				"split_shot": 3,
			},
		},
		WindowConfig: WindowConfig{
			Width:     1200,
			Height:    800,
			TargetFPS: 60,
		},
	}
}

// Params returns the physics constants for the engine and the predictor
func (c *GameConfig) Params() physics.Params {
	return physics.Params{
		GravityStrength:   c.PhysicsConfig.GravityStrength,
		MaxVelocity:       c.PhysicsConfig.MaxVelocity,
		BounceDamping:     c.PhysicsConfig.BounceDamping,
		WallBounceDamping: c.PhysicsConfig.WallBounceDamping,
		MinEscapeSpeed:    c.PhysicsConfig.MinEscapeSpeed,
		BounceClearance:   c.PhysicsConfig.BounceClearance,
		BoostRadius:       c.PhysicsConfig.BoostRadius,
		BoostFactor:       c.PhysicsConfig.BoostFactor,
		GravityEpsilon:    c.PhysicsConfig.GravityEpsilon,
		FrameScale:        60,
		ProbeRadius:       c.CraftConfig.Radius,
		TrajectorySteps:   c.TrajectoryConfig.Steps,
		TrajectoryStep:    c.TrajectoryConfig.StepSize,
		OutOfBoundsMargin: c.TrajectoryConfig.OutOfBoundsMargin,
	}
}

// MaxBounces returns the bounce budget of the selected difficulty, falling
// back to GameRules.MaxBounces for names missing from the table.
func (c *GameConfig) MaxBounces() int {
	if level, ok := c.Difficulties[c.GameRules.Difficulty]; ok {
		return level.Bounces
	}
	return c.GameRules.MaxBounces
}

// DifficultyNames returns the difficulty table's names in sorted order
func (c *GameConfig) DifficultyNames() []string {
	names := make([]string, 0, len(c.Difficulties))
	for name := range c.Difficulties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BounceCooldown is the minimum clock time between two counted planet bounces
func (c *GameConfig) BounceCooldown() time.Duration {
	return time.Duration(c.GameRules.BounceCooldownMS) * time.Millisecond
}

// MagnetDuration is how long an activated magnet keeps pulling orbs
func (c *GameConfig) MagnetDuration() time.Duration {
	return time.Duration(c.PowerupConfig.MagnetDurationMS) * time.Millisecond
}

// SplitLifetime is how long split-shot projectiles live after launch
func (c *GameConfig) SplitLifetime() time.Duration {
	return time.Duration(c.PowerupConfig.SplitLifetimeMS) * time.Millisecond
}

// MaxLaunchPower is the velocity magnitude of a full-strength drag
func (c *GameConfig) MaxLaunchPower() float64 {
	return c.PhysicsConfig.MaxVelocity * c.LaunchConfig.MaxPowerMultiplier
}

// Validate checks every value a game depends on and returns all problems joined
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	p := c.PhysicsConfig
	check(validation.ValidatePositive("physics.gravityStrength", p.GravityStrength))
	check(validation.ValidatePositive("physics.maxVelocity", p.MaxVelocity))
	check(validation.ValidateFraction("physics.bounceDamping", p.BounceDamping))
	check(validation.ValidateFraction("physics.wallBounceDamping", p.WallBounceDamping))
	check(validation.ValidateNonNegative("physics.minEscapeSpeed", p.MinEscapeSpeed))
	check(validation.ValidateNonNegative("physics.bounceClearance", p.BounceClearance))
	check(validation.ValidateNonNegative("physics.boostRadius", p.BoostRadius))
	check(validation.ValidateNonNegative("physics.boostFactor", p.BoostFactor))
	check(validation.ValidatePositive("physics.gravityEpsilon", p.GravityEpsilon))
	if p.MinEscapeSpeed > p.MaxVelocity {
		check(fmt.Errorf("physics.minEscapeSpeed %g exceeds maxVelocity %g", p.MinEscapeSpeed, p.MaxVelocity))
	}

	tr := c.TrajectoryConfig
	check(validation.ValidateCount("trajectory.steps", tr.Steps, 1, 10000))
	check(validation.ValidatePositive("trajectory.stepSize", tr.StepSize))
	check(validation.ValidateNonNegative("trajectory.outOfBoundsMargin", tr.OutOfBoundsMargin))
	check(validation.ValidatePositive("trajectory.dashLength", tr.DashLength))
	check(validation.ValidateNonNegative("trajectory.gapLength", tr.GapLength))
	check(validation.ValidateFraction("trajectory.minAlpha", tr.MinAlpha))

	check(validation.ValidatePositive("planet.radius", c.PlanetConfig.Radius))
	check(validation.ValidateNonNegative("planet.edgeMargin", c.PlanetConfig.EdgeMargin))
	check(validation.ValidateNonNegative("planet.repositionTolerance", c.PlanetConfig.RepositionTolerance))

	check(validation.ValidatePositive("craft.radius", c.CraftConfig.Radius))
	check(validation.ValidateFinite("craft.startX", c.CraftConfig.StartX))
	check(validation.ValidateFinite("craft.startY", c.CraftConfig.StartY))
	check(validation.ValidateCount("craft.trailLength", c.CraftConfig.TrailLength, 0, 10000))

	o := c.OrbConfig
	check(validation.ValidatePositive("orbs.radius", o.Radius))
	check(validation.ValidateNonNegative("orbs.minDistanceFromPlanet", o.MinDistanceFromPlanet))
	check(validation.ValidateCount("orbs.perLevelMultiplier", o.PerLevelMultiplier, 1, 100))
	check(validation.ValidateCount("orbs.maxClusters", o.MaxClusters, 1, 100))
	check(validation.ValidateNonNegative("orbs.clusterMargin", o.ClusterMargin))
	check(validation.ValidateNonNegative("orbs.clusterMinSpread", o.ClusterMinSpread))
	if o.ClusterMaxSpread < o.ClusterMinSpread {
		check(fmt.Errorf("orbs.clusterMaxSpread %g is below clusterMinSpread %g", o.ClusterMaxSpread, o.ClusterMinSpread))
	}

	check(validation.ValidatePositive("launch.powerDivisor", c.LaunchConfig.PowerDivisor))
	check(validation.ValidatePositive("launch.maxPowerMultiplier", c.LaunchConfig.MaxPowerMultiplier))
	check(validation.ValidateNonNegative("launch.minDragDistance", c.LaunchConfig.MinDragDistance))

	r := c.GameRules
	check(validation.ValidateCount("gameRules.maxBounces", r.MaxBounces, 1, 1000))
	check(validation.ValidateCount("gameRules.bounceCooldownMs", r.BounceCooldownMS, 0, 60000))
	check(validation.ValidateCount("gameRules.maxLevel", r.MaxLevel, 1, 1000))
	check(validation.ValidateRange("gameRules.maxFrameTime", r.MaxFrameTime, 1e-4, 1))

	if len(c.Difficulties) == 0 {
		check(errors.New("difficulties: table is empty"))
	}
	for _, name := range c.DifficultyNames() {
		if _, err := validation.ValidateIdentifier("difficulty", name); err != nil {
			check(err)
			continue
		}
		check(validation.ValidateCount("difficulties."+name+".bounces", c.Difficulties[name].Bounces, 1, 1000))
	}
	if _, err := validation.ValidateOneOf("gameRules.difficulty", r.Difficulty, c.DifficultyNames()); err != nil {
		check(err)
	}

	pu := c.PowerupConfig
	check(validation.ValidateNonNegative("powerups.magnetRadius", pu.MagnetRadius))
	check(validation.ValidateNonNegative("powerups.magnetSpeed", pu.MagnetSpeed))
	check(validation.ValidateCount("powerups.magnetDurationMs", pu.MagnetDurationMS, 0, 600000))
	check(validation.ValidateRange("powerups.splitAngle", pu.SplitAngle, 0, 3.14159))
	check(validation.ValidateCount("powerups.splitLifetimeMs", pu.SplitLifetimeMS, 0, 600000))
	for id, count := range pu.StartingInventory {
		if _, err := validation.ValidateIdentifier("power-up", id); err != nil {
			check(err)
		}
		check(validation.ValidateCount("powerups.startingInventory."+id, count, 0, 1000))
	}

	check(validation.ValidateRange("window.width", c.WindowConfig.Width, 100, 20000))
	check(validation.ValidateRange("window.height", c.WindowConfig.Height, 100, 20000))
	check(validation.ValidateCount("window.targetFps", c.WindowConfig.TargetFPS, 1, 1000))

	return errors.Join(errs...)
}
