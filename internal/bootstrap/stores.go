package bootstrap

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/striderquest/StriderQuest_Go/internal/database/postgres"
	"github.com/striderquest/StriderQuest_Go/internal/repository"
	"github.com/striderquest/StriderQuest_Go/internal/repository/memory"
)

// Stores holds the repository implementations used by the application
type Stores struct {
	Profiles  repository.Profile
	QuestLogs repository.QuestLog
}

// InitializeStores creates the repository implementations. With a database
// pool it returns the PostgreSQL blob stores; with a nil pool it falls back
// to in-memory stores so the server can run without a database.
func InitializeStores(dbPool *pgxpool.Pool) *Stores {
	if dbPool != nil {
		slog.Info(LogMsgUsingPostgresStores)
		return &Stores{
			Profiles:  postgres.NewProfileStore(dbPool),
			QuestLogs: postgres.NewQuestLogStore(dbPool),
		}
	}

	slog.Warn(LogMsgUsingMemoryStores)
	return &Stores{
		Profiles:  memory.NewProfileStore(),
		QuestLogs: memory.NewQuestLogStore(),
	}
}
