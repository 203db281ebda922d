package domain

import "time"

// AchievementKind is the hierarchy level a discovery achievement sits at
type AchievementKind string

const (
	AchievementTerritory AchievementKind = "territory" // one discoverable location
	AchievementRealm     AchievementKind = "realm"     // all territories in a region
	AchievementContinent AchievementKind = "continent" // all realms in a group
	AchievementMeta      AchievementKind = "meta"      // every territory everywhere
)

// MaxTrackedAchievements caps the user-selected tracked subset
const MaxTrackedAchievements = 3

// AchievementProgress is one player's progress on one achievement.
// Progress never decreases and Completed flips false->true exactly once.
type AchievementProgress struct {
	AchievementID string          `json:"achievement_id"`
	Kind          AchievementKind `json:"kind"`
	Progress      float64         `json:"progress"` // 0..1
	Completed     bool            `json:"completed"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	IsTracked     bool            `json:"is_tracked,omitempty"`
}

// Territory is a single discoverable location (city-level granularity)
type Territory struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
}

// Realm is a named grouping of territories
type Realm struct {
	Key         string      `json:"key"`
	Name        string      `json:"name"`
	Territories []Territory `json:"territories"`
}

// Continent is a named grouping of realms
type Continent struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Realms []Realm `json:"realms"`
}

// WorldAtlas is the static discovery hierarchy achievements are computed over
type WorldAtlas struct {
	Version    string      `json:"version"`
	Continents []Continent `json:"continents"`
}
