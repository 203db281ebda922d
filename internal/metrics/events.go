package metrics

import (
	"context"

	"github.com/striderquest/StriderQuest_Go/internal/event"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event type with a business metric
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.PlayerLevelUp,
		event.LocationDiscovered,
		event.AchievementCompleted,
		event.CombatStarted,
		event.CombatResolved,
		event.QuestCompleted,
		event.ItemUsed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics. Payloads are the typed
// structs the event constructors build; anything else only counts toward the
// published total.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.LevelUpPayloadV1:
		LevelUps.Inc()
		GoldGranted.Add(float64(payload.GoldGranted))

	case event.LocationDiscoveredPayloadV1:
		LocationsDiscovered.Inc()

	case event.AchievementCompletedPayloadV1:
		AchievementsEarned.WithLabelValues(payload.Kind).Inc()

	case event.CombatStartedPayloadV1:
		CombatsStarted.Inc()

	case event.CombatResolvedPayloadV1:
		CombatsResolved.WithLabelValues(payload.Outcome).Inc()

	case event.QuestCompletedPayloadV1:
		QuestsCompleted.WithLabelValues(payload.Scope).Inc()

	case event.ItemUsedPayloadV1:
		ItemsUsed.WithLabelValues(payload.ItemName).Inc()

	default:
		logger.FromContext(ctx).Debug("no business metric for event payload", "type", evt.Type)
	}

	return nil
}
