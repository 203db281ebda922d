package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/striderquest/StriderQuest_Go/internal/combat"
	"github.com/striderquest/StriderQuest_Go/internal/scheduler"
	"github.com/striderquest/StriderQuest_Go/internal/server"
	"github.com/striderquest/StriderQuest_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server        *server.Server
	Scheduler     *scheduler.Scheduler
	WorkerPool    *worker.Pool
	CombatService combat.Service
	DBPool        *pgxpool.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and worker pool (stop background jobs)
// 3. Combat service (cancel pending enemy-turn timers)
// 4. Database pool (close once nothing can write)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.CombatService != nil {
		components.CombatService.Shutdown()
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
