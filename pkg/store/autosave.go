// pkg/store/autosave.go
package store

import (
	"context"
	"errors"

	"github.com/opd-ai/go-slingshot/pkg/event"
)

// autosaveEvents are the moments progress or inventory change
var autosaveEvents = []event.Type{
	event.LevelStarted,
	event.LevelComplete,
	event.PowerupActivated,
}

// AutoSave saves snapshot() whenever the bus reports a level starting, a level
// being completed or a power-up being spent. Each save is a single attempt;
// failures are logged and the game goes on. Cancel the returned subscriptions to stop saving.
func (s *FileStore) AutoSave(ctx context.Context, bus *event.Bus, snapshot func() *SaveData) []*event.Subscription {
	subs := make([]*event.Subscription, 0, len(autosaveEvents))
	for _, t := range autosaveEvents {
		subs = append(subs, bus.Subscribe(t, func(e event.Event) {
			err := s.TrySave(ctx, snapshot())
			switch {
			case err == nil:
			case errors.Is(err, ErrUnavailable):
				s.logger.Debug(ctx, "autosave skipped", "event", string(e.GetType()))
			default:
				s.logger.Warn(ctx, "autosave failed", "event", string(e.GetType()), "error", err.Error())
			}
		}))
	}
	return subs
}
