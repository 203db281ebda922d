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

// ProfileStore persists player records as JSONB blobs keyed by player ID.
type ProfileStore struct {
	db *pgxpool.Pool
}

func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{db: db}
}

// Get returns the player record, or domain.ErrPlayerNotFound
func (s *ProfileStore) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT profile_data FROM players WHERE player_id = $1`,
		playerID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}

	var player domain.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalProfile, err)
	}
	return &player, nil
}

// Put replaces the whole record, inserting on first save
func (s *ProfileStore) Put(ctx context.Context, player *domain.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalProfile, err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO players (player_id, profile_data, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (player_id)
		 DO UPDATE SET profile_data = EXCLUDED.profile_data, updated_at = NOW()`,
		player.ID, data,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProfile, err)
	}
	return nil
}

// Delete removes the record; the quest log row goes with it via cascade
func (s *ProfileStore) Delete(ctx context.Context, playerID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM players WHERE player_id = $1`,
		playerID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteProfile, err)
	}
	return nil
}
