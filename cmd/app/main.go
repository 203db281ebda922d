package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/striderquest/StriderQuest_Go/internal/achievement"
	"github.com/striderquest/StriderQuest_Go/internal/bootstrap"
	"github.com/striderquest/StriderQuest_Go/internal/combat"
	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/database"
	"github.com/striderquest/StriderQuest_Go/internal/handler"
	"github.com/striderquest/StriderQuest_Go/internal/inventory"
	"github.com/striderquest/StriderQuest_Go/internal/item"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
	"github.com/striderquest/StriderQuest_Go/internal/player"
	"github.com/striderquest/StriderQuest_Go/internal/progression"
	"github.com/striderquest/StriderQuest_Go/internal/quest"
	"github.com/striderquest/StriderQuest_Go/internal/resource"
	"github.com/striderquest/StriderQuest_Go/internal/scheduler"
	"github.com/striderquest/StriderQuest_Go/internal/server"
	"github.com/striderquest/StriderQuest_Go/internal/worker"
)

// Database pool tuning
const (
	dbMaxConns       = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute
	shutdownTimeout  = 10 * time.Second
	regenJobWorkers  = 1
	regenJobQueueLen = 4
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Database is optional: without it the server runs on in-memory stores
	var dbPool *pgxpool.Pool
	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Warn("Database unavailable, continuing with in-memory stores", "error", err)
	} else {
		dbPool = pool
	}

	stores := bootstrap.InitializeStores(dbPool)
	eventBus := bootstrap.InitializeEventSystem()

	// Static content
	catalog, err := item.LoadCatalog(config.ConfigPathItems)
	if err != nil {
		slog.Error("Failed to load item catalog", "error", err)
		os.Exit(1)
	}

	atlas, err := achievement.LoadAtlas(config.ConfigPathWorldAtlas)
	if err != nil {
		slog.Error("Failed to load world atlas", "error", err)
		os.Exit(1)
	}

	// Core services, in dependency order
	notifier := notify.NewSlogNotifier()
	resources := resource.NewService()
	inv := inventory.NewService(resources, notifier)
	prog := progression.NewService(inv, notifier, eventBus)

	quests, err := quest.NewService(prog, inv, catalog, notifier, eventBus)
	if err != nil {
		slog.Error("Failed to create quest service", "error", err)
		os.Exit(1)
	}

	achievements := achievement.NewService(atlas, prog, notifier, eventBus)

	playerService := player.NewService(stores.Profiles, stores.QuestLogs, resources, inv, achievements, quests, catalog, eventBus)
	combatService := combat.NewService(prog, inv, notifier, eventBus, config.EnemyTurnDelay, playerService.RunCombatTurn)
	playerService.SetCombat(combatService)

	// Background regeneration for warm sessions
	workerPool := worker.NewPool(regenJobWorkers, regenJobQueueLen)
	workerPool.Start()
	sched := scheduler.New(workerPool)
	sched.Schedule(config.RegenInterval, worker.NewRegenJob(playerService))

	handler.InitValidator()

	var poolForServer database.Pool
	if dbPool != nil {
		poolForServer = dbPool
	}
	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, poolForServer, playerService)

	// Run the server until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	case sig := <-stop:
		slog.Info("Received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:        srv,
		Scheduler:     sched,
		WorkerPool:    workerPool,
		CombatService: combatService,
		DBPool:        dbPool,
	})
}
