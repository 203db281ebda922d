package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// ProfileStore is an in-memory player record store for development and
// tests. Records are deep-copied on the way in and out so callers never
// share state with the store.
type ProfileStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{records: make(map[string][]byte)}
}

func (s *ProfileStore) Get(_ context.Context, playerID string) (*domain.Player, error) {
	s.mu.RLock()
	data, ok := s.records[playerID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrPlayerNotFound
	}

	var player domain.Player
	if err := json.Unmarshal(data, &player); err != nil {
		// malformed data is treated as record not found
		return nil, domain.ErrPlayerNotFound
	}
	return &player, nil
}

func (s *ProfileStore) Put(_ context.Context, player *domain.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to encode player record: %w", err)
	}

	s.mu.Lock()
	s.records[player.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *ProfileStore) Delete(_ context.Context, playerID string) error {
	s.mu.Lock()
	delete(s.records, playerID)
	s.mu.Unlock()
	return nil
}

// QuestLogStore is an in-memory quest log store. A missing log comes back
// as a zero log keyed to the player.
type QuestLogStore struct {
	mu   sync.RWMutex
	logs map[string][]byte
}

func NewQuestLogStore() *QuestLogStore {
	return &QuestLogStore{logs: make(map[string][]byte)}
}

func (s *QuestLogStore) Get(_ context.Context, playerID string) (*domain.QuestLog, error) {
	s.mu.RLock()
	data, ok := s.logs[playerID]
	s.mu.RUnlock()

	if !ok {
		return &domain.QuestLog{PlayerID: playerID}, nil
	}

	var questLog domain.QuestLog
	if err := json.Unmarshal(data, &questLog); err != nil {
		return &domain.QuestLog{PlayerID: playerID}, nil
	}
	return &questLog, nil
}

func (s *QuestLogStore) Put(_ context.Context, questLog *domain.QuestLog) error {
	data, err := json.Marshal(questLog)
	if err != nil {
		return fmt.Errorf("failed to encode quest log: %w", err)
	}

	s.mu.Lock()
	s.logs[questLog.PlayerID] = data
	s.mu.Unlock()
	return nil
}

func (s *QuestLogStore) Delete(_ context.Context, playerID string) error {
	s.mu.Lock()
	delete(s.logs, playerID)
	s.mu.Unlock()
	return nil
}
