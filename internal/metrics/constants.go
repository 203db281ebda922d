package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameCombatsStarted      = "combats_started_total"
	MetricNameCombatsResolved     = "combats_resolved_total"
	MetricNameLocationsDiscovered = "locations_discovered_total"
	MetricNameLevelUps            = "level_ups_total"
	MetricNameQuestsCompleted     = "quests_completed_total"
	MetricNameAchievementsEarned  = "achievements_earned_total"
	MetricNameItemsUsed           = "items_used_total"
	MetricNameGoldGranted         = "gold_granted_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished     = "Total number of events published"
	HelpTextEventHandlerErrors  = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextCombatsStarted      = "Total number of combat encounters started"
	HelpTextCombatsResolved     = "Total number of combat encounters resolved"
	HelpTextLocationsDiscovered = "Total number of locations discovered"
	HelpTextLevelUps            = "Total number of level-ups"
	HelpTextQuestsCompleted     = "Total number of quests completed"
	HelpTextAchievementsEarned  = "Total number of achievements earned"
	HelpTextItemsUsed           = "Total number of items used"
	HelpTextGoldGranted         = "Total gold granted by level-up rewards"
)

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelScope   = "scope"
	LabelKind    = "kind"
	LabelItem    = "item"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
