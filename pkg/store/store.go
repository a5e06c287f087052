// pkg/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// saveVersion is bumped when SaveData changes incompatibly
const saveVersion = 1

// Progress is how far the player got
type Progress struct {
	Level        int    `msgpack:"level"`
	HighestLevel int    `msgpack:"highest_level"`
	Difficulty   string `msgpack:"difficulty"`
}

// SaveData is everything kept between sessions
type SaveData struct {
	Version   int            `msgpack:"version"`
	Progress  Progress       `msgpack:"progress"`
	Inventory map[string]int `msgpack:"inventory"`
	SavedAt   time.Time      `msgpack:"saved_at"`
}

// NewSaveData returns the save of a fresh player
func NewSaveData(cfg *config.GameConfig) *SaveData {
	inventory := make(map[string]int, len(cfg.PowerupConfig.StartingInventory))
	for id, n := range cfg.PowerupConfig.StartingInventory {
		inventory[id] = n
	}
	return &SaveData{
		Version: saveVersion,
		Progress: Progress{
			Level:        1,
			HighestLevel: 1,
			Difficulty:   cfg.GameRules.Difficulty,
		},
		Inventory: inventory,
	}
}

// RecordLevel notes that the player has reached level
func (d *SaveData) RecordLevel(level int) {
	d.Progress.Level = level
	d.Progress.HighestLevel = max(d.Progress.HighestLevel, level)
}

// FileStore keeps one msgpack save file
type FileStore struct {
	path    string
	cfg     *config.GameConfig
	breaker *Breaker
	logger  *logging.Logger
}

// NewFileStore creates a store for the save file at path
func NewFileStore(path string, cfg *config.GameConfig, envConfig *config.EnvironmentConfig, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &FileStore{
		path:    path,
		cfg:     cfg,
		breaker: NewBreaker("slingshot-store", envConfig, logger),
		logger:  logger,
	}
}

// Path returns the save file location
func (s *FileStore) Path() string {
	return s.path
}

// Breaker exposes the store's circuit breaker
func (s *FileStore) Breaker() *Breaker {
	return s.breaker
}

// Load reads the save file. A missing file is a fresh player, not an error.
func (s *FileStore) Load(ctx context.Context) (*SaveData, error) {
	var data *SaveData
	missing := false

	err := s.breaker.Execute(ctx, func() error {
		raw, err := os.ReadFile(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			missing = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("read save file: %w", err)
		}

		data = &SaveData{}
		if err := msgpack.Unmarshal(raw, data); err != nil {
			return fmt.Errorf("decode save file %s: %w", s.path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if missing {
		s.logger.Info(ctx, "no save file, starting fresh", "path", s.path)
		return NewSaveData(s.cfg), nil
	}
	if data.Version != saveVersion {
		return nil, fmt.Errorf("save file %s has version %d, want %d", s.path, data.Version, saveVersion)
	}
	if data.Inventory == nil {
		data.Inventory = map[string]int{}
	}
	data.Progress.Level = max(data.Progress.Level, 1)
	data.Progress.HighestLevel = max(data.Progress.HighestLevel, data.Progress.Level)
	return data, nil
}

// Save writes data atomically through a temporary file, retrying failed
// writes with the breaker's backoff
func (s *FileStore) Save(ctx context.Context, data *SaveData) error {
	return s.save(ctx, data, s.breaker.ExecuteWithRetry)
}

// TrySave writes data once without retrying. The game loop saves this way so a
// failing disk never holds up a frame.
func (s *FileStore) TrySave(ctx context.Context, data *SaveData) error {
	return s.save(ctx, data, s.breaker.Execute)
}

func (s *FileStore) save(ctx context.Context, data *SaveData, run func(context.Context, Operation) error) error {
	data.Version = saveVersion
	data.SavedAt = time.Now().UTC()

	raw, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode save data: %w", err)
	}

	err = run(ctx, func() error {
		return writeFileAtomic(s.path, raw)
	})
	if err != nil {
		return logging.WrapError(err, "save progress to %s", s.path)
	}

	s.logger.Debug(ctx, "progress saved", "path", s.path, "level", data.Progress.Level)
	return nil
}

func writeFileAtomic(path string, raw []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("create temp save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}
