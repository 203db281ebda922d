package domain

import "time"

// QuestScope is the regeneration window a quest lives in
type QuestScope string

const (
	QuestScopeDaily    QuestScope = "daily"
	QuestScopeWeekly   QuestScope = "weekly"
	QuestScopeMonthly  QuestScope = "monthly"
	QuestScopeTutorial QuestScope = "tutorial"
	QuestScopeStory    QuestScope = "story"
)

// Quest is one active objective for a player
type Quest struct {
	ID          string     `json:"id"`
	QuestKey    string     `json:"quest_key"`
	Scope       QuestScope `json:"scope"`
	Description string     `json:"description"`
	TargetCount int        `json:"target_count"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	XPReward    int        `json:"xp_reward"`
	GoldReward  int        `json:"gold_reward,omitempty"`
	ItemReward  string     `json:"item_reward,omitempty"` // catalog item name
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Expired reports whether the quest's window has closed
func (q Quest) Expired(now time.Time) bool {
	return q.ExpiresAt != nil && now.After(*q.ExpiresAt)
}

// QuestTemplate is a pool entry quests are generated from
type QuestTemplate struct {
	QuestKey    string     `json:"quest_key"`
	Scope       QuestScope `json:"scope"`
	Description string     `json:"description"`
	TargetCount int        `json:"target_count"`
	XPReward    int        `json:"xp_reward"`
	GoldReward  int        `json:"gold_reward,omitempty"`
	ItemReward  string     `json:"item_reward,omitempty"`
}

// QuestPoolConfig is the quest pool configuration file shape
type QuestPoolConfig struct {
	Version   string          `json:"version"`
	QuestPool []QuestTemplate `json:"quest_pool"`
}

// QuestLog is the per-player quest state held in the quest store, keyed by
// player ID. Time-window sets are swapped wholesale at calendar boundaries.
type QuestLog struct {
	PlayerID string  `json:"player_id"`
	Quests   []Quest `json:"quests"`

	LastDailyGeneration   time.Time `json:"last_daily_generation"`
	LastWeeklyGeneration  time.Time `json:"last_weekly_generation"`
	LastMonthlyGeneration time.Time `json:"last_monthly_generation"`

	DailyCompleted   int `json:"daily_completed"`
	WeeklyCompleted  int `json:"weekly_completed"`
	MonthlyCompleted int `json:"monthly_completed"`
	TotalCompleted   int `json:"total_completed"`
}
