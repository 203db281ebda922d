package repository

import (
	"context"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// Profile is the player record store. It is a last-write-wins key-value
// store: Get returns domain.ErrPlayerNotFound for unknown IDs, Put replaces
// the whole record.
type Profile interface {
	Get(ctx context.Context, playerID string) (*domain.Player, error)
	Put(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, playerID string) error
}
