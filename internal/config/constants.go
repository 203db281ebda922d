package config

import "time"

// Configuration file paths
const (
	ConfigPathItems      = "configs/items/items.json"
	ConfigPathWorldAtlas = "configs/atlas/world_atlas.json"
	ConfigPathQuestPool  = "configs/quests/quest_pool.json"
)

// Resource regeneration tuning
const (
	// RegenInterval is the minimum elapsed time before passive regeneration applies
	RegenInterval = 5 * time.Minute
	// RegenFractionPerInterval restores this fraction of each max per interval
	RegenFractionPerInterval = 0.01
)

// Combat tuning. Defense mitigation differs by target type: enemy defense
// and player armor each reduce incoming damage by value * factor.
const (
	AttackAttributeMultiplier = 1.5
	EffectivenessStrong       = 1.5
	EffectivenessWeak         = 0.75
	CriticalMultiplier        = 1.5

	EnemyCriticalChance     = 0.05
	PlayerCriticalBase      = 0.10
	PlayerCriticalPerDex    = 0.005
	PlayerCriticalCap       = 0.25

	EnemyDefenseMitigation = 0.5
	PlayerArmorMitigation  = 0.3

	MinimumDamage   = 1
	DefendMultiplier = 0.5

	FleeBaseChance     = 0.70
	FleeDexterityBonus = 0.01
	FleeEnemyLevelPenalty = 0.02
	FleeMinChance      = 0.30
	FleeMaxChance      = 0.90

	// EnemyTurnDelay paces the enemy counter-attack after a player action
	EnemyTurnDelay = time.Second
)

// Progression tuning
const (
	// LevelUpGoldPerLevel grants level*this gold on each level gained
	LevelUpGoldPerLevel = 50
	// XPCurveBase scales the cumulative curve threshold(L) = L*L*XPCurveBase
	XPCurveBase = 100
)

// Defeat handling
const (
	// DefaultReviveFraction restores this share of each max when a revival
	// item carries no explicit fraction
	DefaultReviveFraction = 0.5
)

// Achievement rewards by hierarchy level
const (
	TerritoryXPReward   = 50
	TerritoryGoldReward = 10
	RealmXPReward       = 250
	RealmGoldReward     = 100
	ContinentXPReward   = 1000
	ContinentGoldReward = 500
	MetaXPReward        = 2500
	MetaGoldReward      = 1000
)

// Quest generation
const (
	DailyQuestCount   = 3
	WeeklyQuestCount  = 3
	MonthlyQuestCount = 2
)
