package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CombatsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCombatsStarted,
			Help: HelpTextCombatsStarted,
		},
	)

	CombatsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCombatsResolved,
			Help: HelpTextCombatsResolved,
		},
		[]string{LabelOutcome},
	)

	LocationsDiscovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLocationsDiscovered,
			Help: HelpTextLocationsDiscovered,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelScope},
	)

	AchievementsEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsEarned,
			Help: HelpTextAchievementsEarned,
		},
		[]string{LabelKind},
	)

	ItemsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsUsed,
			Help: HelpTextItemsUsed,
		},
		[]string{LabelItem},
	)

	GoldGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldGranted,
			Help: HelpTextGoldGranted,
		},
	)
)
