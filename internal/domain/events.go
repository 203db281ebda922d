package domain

// Event type constants shared between the bus, services and handlers
const (
	EventTypePlayerLevelUp        = "player.level_up"
	EventTypeExperienceGained     = "player.experience_gained"
	EventTypeGoldSpent            = "player.gold_spent"
	EventTypeLocationDiscovered   = "location.discovered"
	EventTypeAchievementCompleted = "achievement.completed"
	EventTypeCombatStarted        = "combat.started"
	EventTypeCombatResolved       = "combat.resolved"
	EventTypeQuestCompleted       = "quest.completed"
	EventTypeQuestSetRegenerated  = "quest.set_regenerated"
	EventTypeItemUsed             = "item.used"
)
