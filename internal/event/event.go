package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	PlayerLevelUp        Type = domain.EventTypePlayerLevelUp
	ExperienceGained     Type = domain.EventTypeExperienceGained
	LocationDiscovered   Type = domain.EventTypeLocationDiscovered
	AchievementCompleted Type = domain.EventTypeAchievementCompleted
	CombatStarted        Type = domain.EventTypeCombatStarted
	CombatResolved       Type = domain.EventTypeCombatResolved
	QuestCompleted       Type = domain.EventTypeQuestCompleted
	QuestSetRegenerated  Type = domain.EventTypeQuestSetRegenerated
	ItemUsed             Type = domain.EventTypeItemUsed
)

// Typed event payloads for type safety

// LevelUpPayloadV1 is the typed payload for level-up events
type LevelUpPayloadV1 struct {
	PlayerID    string `json:"player_id"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	GoldGranted int    `json:"gold_granted"`
}

// ExperienceGainedPayloadV1 is the typed payload for XP gain events
type ExperienceGainedPayloadV1 struct {
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
	Reason   string `json:"reason,omitempty"`
}

// LocationDiscoveredPayloadV1 is the typed payload for discovery events
type LocationDiscoveredPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	LocationID string `json:"location_id"`
	RealmKey   string `json:"realm_key"`
	Timestamp  int64  `json:"timestamp"`
}

// AchievementCompletedPayloadV1 is the typed payload for achievement completion events
type AchievementCompletedPayloadV1 struct {
	PlayerID      string `json:"player_id"`
	AchievementID string `json:"achievement_id"`
	Kind          string `json:"kind"`
	XPReward      int    `json:"xp_reward"`
	GoldReward    int    `json:"gold_reward"`
}

// CombatStartedPayloadV1 is the typed payload for combat start events
type CombatStartedPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	EnemyName  string `json:"enemy_name"`
	EnemyLevel int    `json:"enemy_level"`
}

// CombatResolvedPayloadV1 is the typed payload for combat resolution events
type CombatResolvedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	EnemyName string `json:"enemy_name"`
	Outcome   string `json:"outcome"` // "victory", "defeat", "fled"
	Turns     int    `json:"turns"`
}

// QuestCompletedPayloadV1 is the typed payload for quest completion events
type QuestCompletedPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	QuestID    string `json:"quest_id"`
	QuestKey   string `json:"quest_key"`
	Scope      string `json:"scope"`
	XPReward   int    `json:"xp_reward"`
	GoldReward int    `json:"gold_reward"`
}

// ItemUsedPayloadV1 is the typed payload for item use events
type ItemUsedPayloadV1 struct {
	PlayerID string `json:"player_id"`
	ItemName string `json:"item_name"`
}

// QuestSetRegeneratedPayloadV1 is the typed payload for quest regeneration events
type QuestSetRegeneratedPayloadV1 struct {
	PlayerID  string    `json:"player_id"`
	Scope     string    `json:"scope"`
	QuestIDs  []string  `json:"quest_ids"`
	ResetTime time.Time `json:"reset_time"`
}

// Type-safe event constructors

// NewLevelUpEvent creates a new level-up event with type-safe payload
func NewLevelUpEvent(playerID string, oldLevel, newLevel, goldGranted int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerLevelUp,
		Payload: LevelUpPayloadV1{
			PlayerID:    playerID,
			OldLevel:    oldLevel,
			NewLevel:    newLevel,
			GoldGranted: goldGranted,
		},
	}
}

// NewLocationDiscoveredEvent creates a new discovery event
func NewLocationDiscoveredEvent(playerID, locationID, realmKey string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LocationDiscovered,
		Payload: LocationDiscoveredPayloadV1{
			PlayerID:   playerID,
			LocationID: locationID,
			RealmKey:   realmKey,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewAchievementCompletedEvent creates a new achievement completion event
func NewAchievementCompletedEvent(playerID, achievementID, kind string, xpReward, goldReward int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementCompleted,
		Payload: AchievementCompletedPayloadV1{
			PlayerID:      playerID,
			AchievementID: achievementID,
			Kind:          kind,
			XPReward:      xpReward,
			GoldReward:    goldReward,
		},
	}
}

// NewCombatStartedEvent creates a new combat start event
func NewCombatStartedEvent(playerID, enemyName string, enemyLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CombatStarted,
		Payload: CombatStartedPayloadV1{
			PlayerID:   playerID,
			EnemyName:  enemyName,
			EnemyLevel: enemyLevel,
		},
	}
}

// NewCombatResolvedEvent creates a new combat resolution event
func NewCombatResolvedEvent(playerID, enemyName, outcome string, turns int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CombatResolved,
		Payload: CombatResolvedPayloadV1{
			PlayerID:  playerID,
			EnemyName: enemyName,
			Outcome:   outcome,
			Turns:     turns,
		},
	}
}

// NewQuestCompletedEvent creates a new quest completion event
func NewQuestCompletedEvent(playerID string, quest domain.Quest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestCompleted,
		Payload: QuestCompletedPayloadV1{
			PlayerID:   playerID,
			QuestID:    quest.ID,
			QuestKey:   quest.QuestKey,
			Scope:      string(quest.Scope),
			XPReward:   quest.XPReward,
			GoldReward: quest.GoldReward,
		},
	}
}

// NewItemUsedEvent creates a new item use event
func NewItemUsedEvent(playerID, itemName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemUsed,
		Payload: ItemUsedPayloadV1{
			PlayerID: playerID,
			ItemName: itemName,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously; game operations complete before the
	// next event is processed.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
