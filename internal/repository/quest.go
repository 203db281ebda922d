package repository

import (
	"context"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// QuestLog is the per-player quest state store, keyed by player ID. A
// missing log is not an error: Get returns a zero log so a first check
// generates all quest sets.
type QuestLog interface {
	Get(ctx context.Context, playerID string) (*domain.QuestLog, error)
	Put(ctx context.Context, questLog *domain.QuestLog) error
	Delete(ctx context.Context, playerID string) error
}
