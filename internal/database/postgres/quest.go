package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// QuestLogStore persists per-player quest state as JSONB blobs. A missing
// row reads back as a zero log so a fresh player generates all quest sets
// on first check.
type QuestLogStore struct {
	db *pgxpool.Pool
}

func NewQuestLogStore(db *pgxpool.Pool) *QuestLogStore {
	return &QuestLogStore{db: db}
}

func (s *QuestLogStore) Get(ctx context.Context, playerID string) (*domain.QuestLog, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT log_data FROM quest_logs WHERE player_id = $1`,
		playerID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.QuestLog{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetQuestLog, err)
	}

	var questLog domain.QuestLog
	if err := json.Unmarshal(data, &questLog); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalQuestLog, err)
	}
	return &questLog, nil
}

func (s *QuestLogStore) Put(ctx context.Context, questLog *domain.QuestLog) error {
	data, err := json.Marshal(questLog)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalQuestLog, err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO quest_logs (player_id, log_data, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (player_id)
		 DO UPDATE SET log_data = EXCLUDED.log_data, updated_at = NOW()`,
		questLog.PlayerID, data,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertQuestLog, err)
	}
	return nil
}

func (s *QuestLogStore) Delete(ctx context.Context, playerID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM quest_logs WHERE player_id = $1`,
		playerID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteQuestLog, err)
	}
	return nil
}
