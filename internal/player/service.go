package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/striderquest/StriderQuest_Go/internal/achievement"
	"github.com/striderquest/StriderQuest_Go/internal/combat"
	"github.com/striderquest/StriderQuest_Go/internal/concurrency"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/event"
	"github.com/striderquest/StriderQuest_Go/internal/inventory"
	"github.com/striderquest/StriderQuest_Go/internal/item"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/quest"
	"github.com/striderquest/StriderQuest_Go/internal/repository"
	"github.com/striderquest/StriderQuest_Go/internal/resource"
)

// Cache sizing for loaded sessions
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
)

// Service is the session coordinator. It owns loading player records and
// quest logs from the stores, serializing operations per player, dispatching
// into the core services and writing back after every mutation. All HTTP
// handlers go through it.
type Service interface {
	GetOrCreate(ctx context.Context, playerID, username string) (*domain.Player, error)
	Get(ctx context.Context, playerID string) (*domain.Player, error)
	ChooseClass(ctx context.Context, playerID string, class domain.PlayerClass) (*domain.Player, error)
	Delete(ctx context.Context, playerID string) error

	GrantItem(ctx context.Context, playerID, itemName string, quantity int) (*domain.Player, error)
	UseItem(ctx context.Context, playerID, itemID string) (*domain.Player, error)
	EquipItem(ctx context.Context, playerID, itemID string) (*domain.Player, error)
	UnequipItem(ctx context.Context, playerID string, slot domain.EquipmentSlot) (*domain.Player, error)

	StartCombat(ctx context.Context, playerID string, enemy domain.Enemy) (*domain.Encounter, error)
	CombatAction(ctx context.Context, playerID string, action domain.CombatAction, itemID string) (*domain.Encounter, error)
	Encounter(playerID string) (*domain.Encounter, bool)

	DiscoverLocation(ctx context.Context, playerID, locationID string) (*domain.Player, error)
	TrackAchievement(ctx context.Context, playerID, achievementID string) error
	UntrackAchievement(ctx context.Context, playerID, achievementID string) error
	Achievements(ctx context.Context, playerID string) ([]domain.AchievementProgress, error)

	Quests(ctx context.Context, playerID string) ([]domain.Quest, error)

	Tick(ctx context.Context, playerID string, now time.Time) (*domain.Player, error)
	ActivePlayerIDs() []string

	// RunCombatTurn executes a deferred combat mutation against the player's
	// live record under the session lock and writes it back. Wire it as the
	// combat service's TurnRunner.
	RunCombatTurn(ctx context.Context, playerID string, fn func(player *domain.Player))
}

type service struct {
	profiles  repository.Profile
	questLogs repository.QuestLog

	resources    resource.Service
	inventory    inventory.Service
	combat       combat.Service
	achievements achievement.Service
	quests       quest.Service
	catalog      item.Catalog
	bus          event.Bus

	locks *concurrency.LockManager
	cache *sessionCache
	now   func() time.Time
}

// NewService creates the session coordinator. The combat service is attached
// afterwards with SetCombat because combat's persist hook points back here.
func NewService(profiles repository.Profile, questLogs repository.QuestLog, resources resource.Service, inv inventory.Service, achievements achievement.Service, quests quest.Service, catalog item.Catalog, bus event.Bus) *service {
	return &service{
		profiles:     profiles,
		questLogs:    questLogs,
		resources:    resources,
		inventory:    inv,
		achievements: achievements,
		quests:       quests,
		catalog:      catalog,
		bus:          bus,
		locks:        concurrency.NewLockManager(),
		cache:        newSessionCache(DefaultCacheSize, DefaultCacheTTL),
		now:          time.Now,
	}
}

// SetCombat attaches the combat service after construction
func (s *service) SetCombat(c combat.Service) {
	s.combat = c
}

// withSession loads the player and quest log, runs fn under the per-player
// lock and writes both back when fn succeeds. Quest freshness is checked on
// every load so stale sets never reach an operation.
func (s *service) withSession(ctx context.Context, playerID string, fn func(player *domain.Player, questLog *domain.QuestLog) error) error {
	var err error
	s.locks.WithLock(playerID, func() {
		var player *domain.Player
		var questLog *domain.QuestLog

		player, questLog, err = s.load(ctx, playerID)
		if err != nil {
			return
		}

		s.quests.EnsureFresh(ctx, player, questLog, s.now().UTC())

		if err = fn(player, questLog); err != nil {
			return
		}

		err = s.save(ctx, player, questLog)
	})
	return err
}

func (s *service) load(ctx context.Context, playerID string) (*domain.Player, *domain.QuestLog, error) {
	if entry, ok := s.cache.Get(playerID); ok {
		return entry.Player, entry.QuestLog, nil
	}

	player, err := s.profiles.Get(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	questLog, err := s.questLogs.Get(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	s.cache.Set(playerID, player, questLog)
	return player, questLog, nil
}

func (s *service) save(ctx context.Context, player *domain.Player, questLog *domain.QuestLog) error {
	player.UpdatedAt = s.now().UTC()
	if err := s.profiles.Put(ctx, player); err != nil {
		return err
	}
	if err := s.questLogs.Put(ctx, questLog); err != nil {
		return err
	}
	s.cache.Set(player.ID, player, questLog)
	return nil
}

// GetOrCreate loads the player record, initializing a fresh one on first
// contact
func (s *service) GetOrCreate(ctx context.Context, playerID, username string) (*domain.Player, error) {
	var result *domain.Player
	var err error
	s.locks.WithLock(playerID, func() {
		var player *domain.Player
		var questLog *domain.QuestLog

		player, questLog, err = s.load(ctx, playerID)
		if errors.Is(err, domain.ErrPlayerNotFound) {
			now := s.now().UTC()
			player = domain.NewPlayer(playerID, username, now)
			questLog = &domain.QuestLog{PlayerID: playerID}
			logger.FromContext(ctx).Info("new player created", "playerID", playerID, "username", username)
			err = nil
		}
		if err != nil {
			return
		}

		s.quests.EnsureFresh(ctx, player, questLog, s.now().UTC())

		if err = s.save(ctx, player, questLog); err != nil {
			return
		}
		result = player
	})
	return result, err
}

func (s *service) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		result = player
		return nil
	})
	return result, err
}

// ChooseClass binds a class to a classless player. The choice is permanent;
// rebinding returns ErrInvalidInput.
func (s *service) ChooseClass(ctx context.Context, playerID string, class domain.PlayerClass) (*domain.Player, error) {
	switch class {
	case domain.ClassKnight, domain.ClassMage, domain.ClassRanger:
	default:
		return nil, fmt.Errorf("%w: unknown class %q", domain.ErrInvalidInput, class)
	}

	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		if player.Class != domain.ClassNone {
			return fmt.Errorf("%w: class already chosen", domain.ErrInvalidInput)
		}
		player.Class = class
		logger.FromContext(ctx).Info("class chosen", "playerID", playerID, "class", class)
		result = player
		return nil
	})
	return result, err
}

// Delete removes the player's record, quest log and any cached session
func (s *service) Delete(ctx context.Context, playerID string) error {
	var err error
	s.locks.WithLock(playerID, func() {
		s.combat.Abandon(ctx, playerID)
		s.cache.Invalidate(playerID)
		if err = s.questLogs.Delete(ctx, playerID); err != nil {
			return
		}
		err = s.profiles.Delete(ctx, playerID)
	})
	return err
}

// GrantItem resolves a catalog item by name and adds it to the inventory
func (s *service) GrantItem(ctx context.Context, playerID, itemName string, quantity int) (*domain.Player, error) {
	spec, ok := s.catalog.Spec(itemName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
	}

	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		s.inventory.AddItem(ctx, player, spec, quantity)
		result = player
		return nil
	})
	return result, err
}

func (s *service) UseItem(ctx context.Context, playerID, itemID string) (*domain.Player, error) {
	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, questLog *domain.QuestLog) error {
		entry, ok := s.inventory.FindItem(player, itemID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
		}
		itemName := entry.Name

		if err := s.inventory.UseItem(ctx, player, itemID); err != nil {
			return err
		}

		s.quests.OnItemUsed(ctx, player, questLog)
		if s.bus != nil {
			_ = s.bus.Publish(ctx, event.NewItemUsedEvent(playerID, itemName))
		}
		result = player
		return nil
	})
	return result, err
}

func (s *service) EquipItem(ctx context.Context, playerID, itemID string) (*domain.Player, error) {
	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		if err := s.inventory.Equip(ctx, player, itemID); err != nil {
			return err
		}
		result = player
		return nil
	})
	return result, err
}

func (s *service) UnequipItem(ctx context.Context, playerID string, slot domain.EquipmentSlot) (*domain.Player, error) {
	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		if err := s.inventory.Unequip(ctx, player, slot); err != nil {
			return err
		}
		result = player
		return nil
	})
	return result, err
}

func (s *service) StartCombat(ctx context.Context, playerID string, enemy domain.Enemy) (*domain.Encounter, error) {
	var result *domain.Encounter
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		enc, err := s.combat.StartCombat(ctx, player, enemy)
		if err != nil {
			return err
		}
		result = enc
		return nil
	})
	return result, err
}

func (s *service) CombatAction(ctx context.Context, playerID string, action domain.CombatAction, itemID string) (*domain.Encounter, error) {
	var result *domain.Encounter
	err := s.withSession(ctx, playerID, func(player *domain.Player, questLog *domain.QuestLog) error {
		enc, err := s.combat.PerformAction(ctx, player, action, itemID)
		if err != nil {
			return err
		}
		if enc.State == domain.CombatStateVictory {
			s.quests.OnEnemyDefeated(ctx, player, questLog)
		}
		result = enc
		return nil
	})
	return result, err
}

func (s *service) Encounter(playerID string) (*domain.Encounter, bool) {
	return s.combat.ActiveEncounter(playerID)
}

func (s *service) DiscoverLocation(ctx context.Context, playerID, locationID string) (*domain.Player, error) {
	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, questLog *domain.QuestLog) error {
		if err := s.achievements.OnLocationDiscovered(ctx, player, locationID); err != nil {
			return err
		}
		s.quests.OnLocationDiscovered(ctx, player, questLog)
		result = player
		return nil
	})
	return result, err
}

func (s *service) TrackAchievement(ctx context.Context, playerID, achievementID string) error {
	return s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		return s.achievements.Track(ctx, player, achievementID)
	})
}

func (s *service) UntrackAchievement(ctx context.Context, playerID, achievementID string) error {
	return s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		return s.achievements.Untrack(ctx, player, achievementID)
	})
}

func (s *service) Achievements(ctx context.Context, playerID string) ([]domain.AchievementProgress, error) {
	var result []domain.AchievementProgress
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		result = s.achievements.List(player)
		return nil
	})
	return result, err
}

func (s *service) Quests(ctx context.Context, playerID string) ([]domain.Quest, error) {
	var result []domain.Quest
	err := s.withSession(ctx, playerID, func(_ *domain.Player, questLog *domain.QuestLog) error {
		result = s.quests.ActiveQuests(questLog, s.now().UTC())
		return nil
	})
	return result, err
}

// Tick advances elapsed-time effects: passive regeneration and quest set
// freshness. Called on player activity and by the background scheduler.
func (s *service) Tick(ctx context.Context, playerID string, now time.Time) (*domain.Player, error) {
	var result *domain.Player
	err := s.withSession(ctx, playerID, func(player *domain.Player, _ *domain.QuestLog) error {
		s.resources.Regenerate(ctx, player, now)
		result = player
		return nil
	})
	return result, err
}

// ActivePlayerIDs lists players with a warm cached session. The background
// regeneration job uses it to tick hot sessions without scanning the store.
func (s *service) ActivePlayerIDs() []string {
	return s.cache.Keys()
}

// RunCombatTurn reloads the player's record under the session lock, applies
// the deferred combat mutation to it and writes it back. The combat service
// calls it from the timer goroutine, outside any request, so the strike lands
// on the same record the next request will load.
func (s *service) RunCombatTurn(ctx context.Context, playerID string, fn func(player *domain.Player)) {
	s.locks.WithLock(playerID, func() {
		player, questLog, err := s.load(ctx, playerID)
		if err != nil {
			logger.FromContext(ctx).Error("failed to load player for deferred combat turn", "playerID", playerID, "error", err)
			return
		}
		fn(player)
		if err := s.save(ctx, player, questLog); err != nil {
			logger.FromContext(ctx).Error("failed to persist combat result", "playerID", playerID, "error", err)
		}
	})
}
