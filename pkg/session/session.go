// Package session wires configuration, the save file and a game together for
// the frontends.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/powerup"
	"github.com/opd-ai/go-slingshot/pkg/store"
	"github.com/opd-ai/go-slingshot/pkg/validation"
)

// Options are the command-line settings a frontend passes in. Zero values
// defer to the environment and then the config file.
type Options struct {
	ConfigPath string
	SavePath   string
	Difficulty string
	Seed       int64
	// Level starts at a given level instead of the saved one
	Level int
	// NoSave neither reads nor writes the save file
	NoSave bool
	// Bounds overrides the configured window size as the play area
	Bounds physics.Bounds
}

// Session is a game with its configuration and save file
type Session struct {
	Config *config.GameConfig
	Env    *config.EnvironmentConfig
	Game   *engine.Game
	Store  *store.FileStore

	save   *store.SaveData
	noSave bool
	subs   []*event.Subscription
	logger *logging.Logger
}

// LoadGameConfig loads the config file at path, or the defaults when path is
// empty or missing
func LoadGameConfig(ctx context.Context, path string, logger *logging.Logger) (*config.GameConfig, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, logging.WrapError(err, "load configuration %s", path)
	}
	return cfg, nil
}

// Open loads configuration and progress and starts a game. Unless NoSave is
// set, progress is saved automatically as levels start and end.
func Open(ctx context.Context, opts Options, logger *logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	env, err := config.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}
	if opts.ConfigPath != "" {
		env.ConfigPath = opts.ConfigPath
	}
	if opts.SavePath != "" {
		env.SavePath = opts.SavePath
	}
	if opts.Difficulty != "" {
		env.Difficulty = opts.Difficulty
	}
	if opts.Seed != 0 {
		env.Seed = opts.Seed
	}

	cfg, err := LoadGameConfig(ctx, env.ConfigPath, logger)
	if err != nil {
		return nil, err
	}
	if err := env.Apply(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment configuration: %w", err)
	}

	s := &Session{
		Config: cfg,
		Env:    env,
		Store:  store.NewFileStore(env.SavePath, cfg, env, logger),
		noSave: opts.NoSave,
		logger: logger,
	}
	s.save = s.loadProgress(ctx)

	// a saved level past the configured last level resumes at the last level
	level := min(max(s.save.Progress.Level, 1), cfg.GameRules.MaxLevel)
	if opts.Level != 0 {
		if err := validation.ValidateLevel(opts.Level, cfg.GameRules.MaxLevel); err != nil {
			return nil, err
		}
		level = opts.Level
	}

	gameOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithInventory(powerup.NewInventory(s.save.Inventory)),
		engine.WithStartLevel(level),
	}
	if env.Seed != 0 {
		gameOpts = append(gameOpts, engine.WithSeed(env.Seed))
	}
	if opts.Bounds.Width > 0 && opts.Bounds.Height > 0 {
		gameOpts = append(gameOpts, engine.WithBounds(opts.Bounds))
	}
	s.Game = engine.NewGame(cfg, gameOpts...)

	if !s.noSave {
		s.subs = s.Store.AutoSave(ctx, s.Game.EventBus, s.Snapshot)
	}

	logger.Info(ctx, "session opened",
		"level", s.Game.Level,
		"difficulty", cfg.GameRules.Difficulty,
		"save_path", env.SavePath,
		"autosave", !s.noSave,
	)
	return s, nil
}

// loadProgress reads the save file. An unreadable save is logged and
// replaced by a fresh one rather than keeping the player out of the game.
func (s *Session) loadProgress(ctx context.Context) *store.SaveData {
	if s.noSave {
		return store.NewSaveData(s.Config)
	}
	data, err := s.Store.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "ignoring unreadable save", "path", s.Store.Path(), "error", err.Error())
		return store.NewSaveData(s.Config)
	}
	return data
}

// Snapshot returns the progress to save for the game as it is now
func (s *Session) Snapshot() *store.SaveData {
	data := *s.save
	data.Progress.Difficulty = s.Config.GameRules.Difficulty
	data.RecordLevel(s.Game.Level)
	data.Inventory = s.Game.Powerups.Inventory.Snapshot()
	s.save = &data
	return &data
}

// Close stops autosaving and writes a final save
func (s *Session) Close(ctx context.Context) error {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
	if s.noSave {
		return nil
	}
	if err := s.Store.Save(ctx, s.Snapshot()); err != nil {
		return logging.WrapError(err, "final save")
	}
	s.logger.Info(ctx, "progress saved", "level", s.Game.Level, "path", s.Store.Path())
	return nil
}
