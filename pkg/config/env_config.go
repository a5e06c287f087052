// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/opd-ai/go-slingshot/pkg/validation"
)

// EnvironmentConfig holds settings read from SLINGSHOT_* environment variables
type EnvironmentConfig struct {
	ConfigPath string
	SavePath   string
	Difficulty string
	// Seed fixes the first level's orb layout; zero draws a random seed
	Seed int64
	// Zero window and frame rate values leave the config file's settings alone
	WindowWidth    float64
	WindowHeight   float64
	TargetFPS      int
	HideTrajectory bool

	// Circuit Breaker Configuration for the save store
	CircuitBreakerMaxRequests         uint32
	CircuitBreakerInterval            time.Duration
	CircuitBreakerTimeout             time.Duration
	CircuitBreakerMaxConsecutiveFails uint32
}

// ValidationError reports the environment setting that failed validation
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// LoadConfigFromEnv reads the environment, applying defaults for unset variables
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		ConfigPath:   getEnvOrDefault("SLINGSHOT_CONFIG", ""),
		SavePath:     getEnvOrDefault("SLINGSHOT_SAVE_PATH", defaultSavePath()),
		Difficulty:   getEnvOrDefault("SLINGSHOT_DIFFICULTY", ""),
		Seed:         getEnvAsInt64OrDefault("SLINGSHOT_SEED", 0),
		WindowWidth:  getEnvAsFloatOrDefault("SLINGSHOT_WINDOW_WIDTH", 0),
		WindowHeight: getEnvAsFloatOrDefault("SLINGSHOT_WINDOW_HEIGHT", 0),
		TargetFPS:    getEnvAsIntOrDefault("SLINGSHOT_TARGET_FPS", 0),

		HideTrajectory: getEnvAsBoolOrDefault("SLINGSHOT_HIDE_TRAJECTORY", false),

		CircuitBreakerMaxRequests:         uint32(getEnvAsIntOrDefault("SLINGSHOT_CB_MAX_REQUESTS", 1)),
		CircuitBreakerInterval:            getEnvAsDurationOrDefault("SLINGSHOT_CB_INTERVAL", 60*time.Second),
		CircuitBreakerTimeout:             getEnvAsDurationOrDefault("SLINGSHOT_CB_TIMEOUT", 30*time.Second),
		CircuitBreakerMaxConsecutiveFails: uint32(getEnvAsIntOrDefault("SLINGSHOT_CB_MAX_FAILS", 3)),
	}

	if err := validateEnvironmentConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnvironmentOverrides applies difficulty and window settings from the
// environment to gameConfig
func ApplyEnvironmentOverrides(gameConfig *GameConfig) error {
	envConfig, err := LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return envConfig.Apply(gameConfig)
}

// Apply copies the settings present in c onto gameConfig
func (c *EnvironmentConfig) Apply(gameConfig *GameConfig) error {
	if c.Difficulty != "" {
		name, err := validation.ValidateOneOf("difficulty", c.Difficulty, gameConfig.DifficultyNames())
		if err != nil {
			return &ValidationError{Field: "Difficulty", Value: c.Difficulty, Message: err.Error()}
		}
		gameConfig.GameRules.Difficulty = name
	}
	if c.WindowWidth > 0 {
		gameConfig.WindowConfig.Width = c.WindowWidth
	}
	if c.WindowHeight > 0 {
		gameConfig.WindowConfig.Height = c.WindowHeight
	}
	if c.TargetFPS > 0 {
		gameConfig.WindowConfig.TargetFPS = c.TargetFPS
	}
	if c.HideTrajectory {
		gameConfig.TrajectoryConfig.Enabled = false
	}
	return nil
}

func validateEnvironmentConfig(config *EnvironmentConfig) error {
	if config.SavePath == "" {
		return &ValidationError{Field: "SavePath", Value: config.SavePath, Message: "must not be empty"}
	}
	if config.WindowWidth != 0 && (config.WindowWidth < 100 || config.WindowWidth > 20000) {
		return &ValidationError{Field: "WindowWidth", Value: config.WindowWidth, Message: "must be between 100 and 20000"}
	}
	if config.WindowHeight != 0 && (config.WindowHeight < 100 || config.WindowHeight > 20000) {
		return &ValidationError{Field: "WindowHeight", Value: config.WindowHeight, Message: "must be between 100 and 20000"}
	}
	if config.TargetFPS < 0 || config.TargetFPS > 1000 {
		return &ValidationError{Field: "TargetFPS", Value: config.TargetFPS, Message: "must be between 0 and 1000"}
	}
	if config.Seed < 0 {
		return &ValidationError{Field: "Seed", Value: config.Seed, Message: "must not be negative"}
	}
	if config.CircuitBreakerMaxRequests < 1 {
		return &ValidationError{Field: "CircuitBreakerMaxRequests", Value: config.CircuitBreakerMaxRequests, Message: "must be at least 1"}
	}
	if config.CircuitBreakerInterval < time.Second {
		return &ValidationError{Field: "CircuitBreakerInterval", Value: config.CircuitBreakerInterval, Message: "must be at least 1s"}
	}
	if config.CircuitBreakerTimeout < time.Second || config.CircuitBreakerTimeout > 10*time.Minute {
		return &ValidationError{Field: "CircuitBreakerTimeout", Value: config.CircuitBreakerTimeout, Message: "must be between 1s and 10m"}
	}
	if config.CircuitBreakerMaxConsecutiveFails < 1 {
		return &ValidationError{Field: "CircuitBreakerMaxConsecutiveFails", Value: config.CircuitBreakerMaxConsecutiveFails, Message: "must be at least 1"}
	}
	return nil
}

func defaultSavePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "slingshot.save"
	}
	return dir + string(os.PathSeparator) + "slingshot" + string(os.PathSeparator) + "save.msgpack"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
