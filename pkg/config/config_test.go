package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}

	if config.PlanetConfig.Radius != 70 {
		t.Errorf("Expected planet radius 70, got %f", config.PlanetConfig.Radius)
	}
	if config.CraftConfig.TrailLength != 100 {
		t.Errorf("Expected trail length 100, got %d", config.CraftConfig.TrailLength)
	}
	if config.OrbConfig.MinDistanceFromPlanet != 80 {
		t.Errorf("Expected orb clearance 80, got %f", config.OrbConfig.MinDistanceFromPlanet)
	}
	if config.GameRules.MaxLevel != 15 {
		t.Errorf("Expected max level 15, got %d", config.GameRules.MaxLevel)
	}
	if config.BounceCooldown() != 200*time.Millisecond {
		t.Errorf("Expected bounce cooldown 200ms, got %v", config.BounceCooldown())
	}
	if got := config.MaxLaunchPower(); got != 36 {
		t.Errorf("Expected max launch power 36, got %f", got)
	}
	if config.PowerupConfig.StartingInventory["magnet"] != 2 || config.PowerupConfig.StartingInventory["split_shot"] != 3 {
		t.Errorf("unexpected starting inventory %v", config.PowerupConfig.StartingInventory)
	}
}

func TestGameConfig_Params(t *testing.T) {
	params := DefaultConfig().Params()

	if params != physics.DefaultParams() {
		t.Errorf("Params() = %+v, expected the physics defaults %+v", params, physics.DefaultParams())
	}
}

func TestGameConfig_MaxBounces(t *testing.T) {
	tests := []struct {
		difficulty string
		expected   int
	}{
		{"easy", 6},
		{"normal", 4},
		{"hard", 2},
		{"unknown", 5},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			config := DefaultConfig()
			config.GameRules.Difficulty = tt.difficulty
			if got := config.MaxBounces(); got != tt.expected {
				t.Errorf("MaxBounces() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *GameConfig)
		errContains string
	}{
		{"negative gravity", func(c *GameConfig) { c.PhysicsConfig.GravityStrength = -1 }, "physics.gravityStrength"},
		{"damping above one", func(c *GameConfig) { c.PhysicsConfig.BounceDamping = 1.5 }, "physics.bounceDamping"},
		{"escape above max", func(c *GameConfig) { c.PhysicsConfig.MinEscapeSpeed = 40 }, "minEscapeSpeed"},
		{"zero steps", func(c *GameConfig) { c.TrajectoryConfig.Steps = 0 }, "trajectory.steps"},
		{"zero craft radius", func(c *GameConfig) { c.CraftConfig.Radius = 0 }, "craft.radius"},
		{"inverted spread", func(c *GameConfig) { c.OrbConfig.ClusterMaxSpread = 10 }, "clusterMaxSpread"},
		{"unknown difficulty", func(c *GameConfig) { c.GameRules.Difficulty = "insane" }, "gameRules.difficulty"},
		{"empty difficulty table", func(c *GameConfig) { c.Difficulties = nil }, "difficulties"},
		{"bad power-up id", func(c *GameConfig) { c.PowerupConfig.StartingInventory["Split Shot"] = 1 }, "power-up"},
		{"tiny window", func(c *GameConfig) { c.WindowConfig.Width = 10 }, "window.width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if err == nil {
				t.Fatal("Expected a validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error to mention %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestGameConfig_ValidateReportsEveryProblem(t *testing.T) {
	config := DefaultConfig()
	config.PlanetConfig.Radius = 0
	config.LaunchConfig.PowerDivisor = 0

	err := config.Validate()
	if err == nil {
		t.Fatal("Expected a validation error, got nil")
	}
	for _, field := range []string{"planet.radius", "launch.powerDivisor"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected error to mention %s, got %q", field, err.Error())
		}
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "slingshot.json")

	original := DefaultConfig()
	original.GameRules.Difficulty = "hard"
	original.PhysicsConfig.GravityStrength = 180000
	original.PowerupConfig.StartingInventory["magnet"] = 7

	if err := SaveConfig(original, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.GameRules.Difficulty != "hard" {
		t.Errorf("Expected difficulty 'hard', got '%s'", loaded.GameRules.Difficulty)
	}
	if loaded.PhysicsConfig.GravityStrength != 180000 {
		t.Errorf("Expected gravity 180000, got %f", loaded.PhysicsConfig.GravityStrength)
	}
	if loaded.PowerupConfig.StartingInventory["magnet"] != 7 {
		t.Errorf("Expected 7 magnets, got %d", loaded.PowerupConfig.StartingInventory["magnet"])
	}
	if loaded.MaxBounces() != 2 {
		t.Errorf("Expected 2 bounces on hard, got %d", loaded.MaxBounces())
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.json")
	partial := `{"gameRules": {"difficulty": "easy", "maxBounces": 5, "bounceCooldownMs": 200, "maxLevel": 10, "maxFrameTime": 0.0333}}`
	if err := os.WriteFile(configPath, []byte(partial), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.GameRules.MaxLevel != 10 {
		t.Errorf("Expected max level 10, got %d", config.GameRules.MaxLevel)
	}
	if config.PlanetConfig.Radius != 70 {
		t.Errorf("Expected default planet radius 70, got %f", config.PlanetConfig.Radius)
	}
	if config.MaxBounces() != 6 {
		t.Errorf("Expected 6 bounces on easy, got %d", config.MaxBounces())
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	config, err := LoadConfig("/path/that/does/not/exist/config.json")

	if err == nil {
		t.Fatal("Expected error when loading non-existent file, got nil")
	}
	if config != nil {
		t.Error("Expected nil config when file not found, got non-nil")
	}
	if !strings.Contains(err.Error(), "failed to open config file") {
		t.Errorf("Expected error to contain 'failed to open config file', got '%s'", err.Error())
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid_config.json")
	if err := os.WriteFile(configPath, []byte(`{"physics": {"gravityStrength": 5, invalid json}`), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(configPath)

	if err == nil {
		t.Fatal("Expected error when loading invalid JSON, got nil")
	}
	if config != nil {
		t.Error("Expected nil config for invalid JSON")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Expected parse error, got '%s'", err.Error())
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad_values.json")
	if err := os.WriteFile(configPath, []byte(`{"physics": {"maxVelocity": -3}}`), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil || !strings.Contains(err.Error(), "physics.maxVelocity") {
		t.Errorf("Expected a maxVelocity validation error, got %v", err)
	}
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "config.json"))
	if err == nil {
		t.Fatal("Expected error when saving to a missing directory")
	}
	if !strings.Contains(err.Error(), "failed to write config file") {
		t.Errorf("Expected write error, got '%s'", err.Error())
	}
}
