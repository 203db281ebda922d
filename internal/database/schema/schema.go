package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Player Profiles
CREATE TABLE IF NOT EXISTS players (
    player_id VARCHAR(64) PRIMARY KEY,
    profile_data JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Index for profile field lookups
CREATE INDEX IF NOT EXISTS idx_players_profile ON players USING GIN (profile_data);

-- Quest Logs
CREATE TABLE IF NOT EXISTS quest_logs (
    player_id VARCHAR(64) PRIMARY KEY REFERENCES players(player_id) ON DELETE CASCADE,
    log_data JSONB NOT NULL DEFAULT '{}',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
