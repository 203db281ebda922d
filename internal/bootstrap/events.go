package bootstrap

import (
	"log/slog"

	"github.com/striderquest/StriderQuest_Go/internal/event"
	"github.com/striderquest/StriderQuest_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and subscribes the
// cross-cutting handlers: the Prometheus metrics collector that turns domain
// events into business counters.
func InitializeEventSystem() event.Bus {
	eventBus := event.NewMemoryBus()

	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(eventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	return eventBus
}
