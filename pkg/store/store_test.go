package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/event"
)

func testEnv(maxFails uint32) *config.EnvironmentConfig {
	return &config.EnvironmentConfig{
		CircuitBreakerMaxRequests:         1,
		CircuitBreakerInterval:            60 * time.Second,
		CircuitBreakerTimeout:             30 * time.Second,
		CircuitBreakerMaxConsecutiveFails: maxFails,
	}
}

func newTestStore(t *testing.T, path string, maxFails uint32) *FileStore {
	t.Helper()
	s := NewFileStore(path, config.DefaultConfig(), testEnv(maxFails), nil)
	s.Breaker().RetryDelay = time.Millisecond
	return s
}

func TestFileStore_LoadMissingFileStartsFresh(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "save.msgpack"), 3)

	data, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if data.Progress.Level != 1 || data.Progress.HighestLevel != 1 || data.Progress.Difficulty != "normal" {
		t.Errorf("unexpected fresh progress %+v", data.Progress)
	}
	if data.Inventory["magnet"] != 2 || data.Inventory["split_shot"] != 3 {
		t.Errorf("unexpected fresh inventory %v", data.Inventory)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Error("Load should not create the save file")
	}
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.msgpack")
	s := newTestStore(t, path, 3)
	ctx := context.Background()

	data := NewSaveData(config.DefaultConfig())
	data.RecordLevel(7)
	data.RecordLevel(3)
	data.Inventory["magnet"] = 0

	if err := s.Save(ctx, data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Progress.Level != 3 || loaded.Progress.HighestLevel != 7 {
		t.Errorf("progress = %+v, want level 3 highest 7", loaded.Progress)
	}
	if loaded.Inventory["magnet"] != 0 || loaded.Inventory["split_shot"] != 3 {
		t.Errorf("inventory = %v", loaded.Inventory)
	}
	if loaded.SavedAt.IsZero() {
		t.Error("SavedAt not recorded")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("save directory has %d entries, want only the save file", len(entries))
	}
}

func TestFileStore_LoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not msgpack", []byte("this is not a save file")},
		{"wrong version", mustMarshal(t, &SaveData{Version: 99})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.msgpack")
			if err := os.WriteFile(path, tt.data, 0o644); err != nil {
				t.Fatal(err)
			}
			s := newTestStore(t, path, 3)

			if _, err := s.Load(context.Background()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFileStore_BreakerOpensAfterFailures(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the save directory should be makes every write fail
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestStore(t, filepath.Join(blocker, "save.msgpack"), 2)
	s.Breaker().Retries = 0
	ctx := context.Background()
	data := NewSaveData(config.DefaultConfig())

	for i := 0; i < 2; i++ {
		err := s.Save(ctx, data)
		if err == nil || errors.Is(err, ErrUnavailable) {
			t.Fatalf("attempt %d: error = %v, want a write failure", i+1, err)
		}
	}

	if s.Breaker().State() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", s.Breaker().State())
	}
	if err := s.Save(ctx, data); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Save with open breaker = %v, want ErrUnavailable", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load with open breaker = %v, want ErrUnavailable", err)
	}
}

func TestBreaker_ExecuteWithRetry(t *testing.T) {
	b := NewBreaker("test", testEnv(5), nil)
	b.RetryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	err := b.ExecuteWithRetry(ctx, func() error {
		calls++
		if calls < 3 {
			return errors.New("disk busy")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("ExecuteWithRetry = %v after %d calls, want success on the third", err, calls)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	b.RetryDelay = time.Hour
	if err := b.ExecuteWithRetry(cancelled, func() error { return errors.New("fail") }); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled retry = %v, want context.Canceled", err)
	}
}

func TestFileStore_AutoSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.msgpack")
	s := newTestStore(t, path, 3)
	bus := event.NewEventBus()
	data := NewSaveData(config.DefaultConfig())
	snapshots := 0

	subs := s.AutoSave(context.Background(), bus, func() *SaveData {
		snapshots++
		data.RecordLevel(4)
		return data
	})

	bus.Publish(event.NewOrbEvent(nil, 1, 2, 0))
	if snapshots != 0 {
		t.Fatal("orb events should not trigger a save")
	}

	bus.Publish(event.NewLevelEvent(event.LevelComplete, nil, 4, 1, 0, 2))
	if snapshots != 1 {
		t.Fatalf("snapshots = %d, want 1", snapshots)
	}
	loaded, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Progress.Level != 4 {
		t.Errorf("saved level = %d, want 4", loaded.Progress.Level)
	}

	for _, sub := range subs {
		sub.Cancel()
	}
	bus.Publish(event.NewPowerupEvent(nil, "magnet", 1))
	if snapshots != 1 {
		t.Error("cancelled autosave still saved")
	}
}

func TestFileStore_AutoSaveDoesNotRetry(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestStore(t, filepath.Join(blocker, "save.msgpack"), 10)
	s.Breaker().RetryDelay = time.Hour
	bus := event.NewEventBus()
	s.AutoSave(context.Background(), bus, func() *SaveData { return NewSaveData(config.DefaultConfig()) })

	start := time.Now()
	bus.Publish(event.NewLevelEvent(event.LevelStarted, nil, 2, 1, 2, 4))

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("autosave held the publisher for %v", elapsed)
	}
	if got := s.Breaker().Counts().TotalFailures; got != 1 {
		t.Errorf("autosave made %d failed attempts, want 1", got)
	}

	// the explicit save still retries
	s.Breaker().RetryDelay = time.Millisecond
	if err := s.Save(context.Background(), NewSaveData(config.DefaultConfig())); err == nil {
		t.Fatal("Save into a blocked directory succeeded")
	}
	if got := s.Breaker().Counts().TotalFailures; got != 4 {
		t.Errorf("TotalFailures = %d after a retried save, want 4", got)
	}
}

func mustMarshal(t *testing.T, data *SaveData) []byte {
	t.Helper()
	raw, err := msgpack.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}
