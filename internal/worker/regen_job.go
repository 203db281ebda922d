package worker

import (
	"context"
	"time"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
)

// Sessions is the narrow view of the session coordinator the regeneration
// job needs
type Sessions interface {
	ActivePlayerIDs() []string
	Tick(ctx context.Context, playerID string, now time.Time) (*domain.Player, error)
}

// RegenJob advances passive resource regeneration for every player with a
// warm session. Cold players catch up lazily on their next request, so the
// job never scans the store.
type RegenJob struct {
	sessions Sessions
	now      func() time.Time
}

// NewRegenJob creates a regeneration job over the given session coordinator
func NewRegenJob(sessions Sessions) *RegenJob {
	return &RegenJob{
		sessions: sessions,
		now:      time.Now,
	}
}

// Process ticks each active player once. Per-player failures are logged and
// skipped so one broken record cannot stall the rest.
func (j *RegenJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ids := j.sessions.ActivePlayerIDs()
	if len(ids) == 0 {
		return nil
	}

	log.Debug(LogMsgRegenTickStarting, "active_players", len(ids))

	now := j.now().UTC()
	for _, id := range ids {
		if _, err := j.sessions.Tick(ctx, id, now); err != nil {
			log.Warn(LogMsgRegenTickFailed, "playerID", id, "error", err)
		}
	}
	return nil
}
