package domain

import "time"

// PlayerClass determines which core attribute drives a player's damage
type PlayerClass string

const (
	ClassNone   PlayerClass = ""
	ClassKnight PlayerClass = "knight"
	ClassMage   PlayerClass = "mage"
	ClassRanger PlayerClass = "ranger"
	ClassAny    PlayerClass = "any" // used only in equipment gates
)

// CoreStats are the three attributes every derived value hangs off
type CoreStats struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Dexterity    int `json:"dexterity"`
}

// ResourcePool is a clamped current/max pair (health, mana or stamina)
type ResourcePool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Player is the aggregate root for one account's progression state.
// It is the value every core operation receives and mutates; persistence
// treats it as one opaque blob keyed by ID.
type Player struct {
	ID         string       `json:"id"`
	Username   string       `json:"username"`
	Class      PlayerClass  `json:"class,omitempty"`
	Stats      CoreStats    `json:"stats"`
	Health     ResourcePool `json:"health"`
	Mana       ResourcePool `json:"mana"`
	Stamina    ResourcePool `json:"stamina"`
	Level      int          `json:"level"`
	Experience int          `json:"experience"`
	Gold       int          `json:"gold"`

	Inventory []InventoryItem                 `json:"inventory"`
	Equipment map[EquipmentSlot]InventoryItem `json:"equipment"`
	Armor     int                             `json:"armor"` // derived, sum of equipped armor values

	Achievements      map[string]*AchievementProgress `json:"achievements"`
	ActiveQuestIDs    map[string]bool                 `json:"active_quest_ids"`
	CompletedQuestIDs map[string]bool                 `json:"completed_quest_ids"`

	IsDead               bool      `json:"is_dead"`
	LastRegenerationTime time.Time `json:"last_regeneration_time"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Initial values for a freshly created player
const (
	InitialStatValue = 1
	InitialResource  = 100
	InitialGold      = 50
)

// NewPlayer creates a player record with starting stats and resources
func NewPlayer(id, username string, now time.Time) *Player {
	return &Player{
		ID:       id,
		Username: username,
		Stats: CoreStats{
			Strength:     InitialStatValue,
			Intelligence: InitialStatValue,
			Dexterity:    InitialStatValue,
		},
		Health:  ResourcePool{Current: InitialResource, Max: InitialResource},
		Mana:    ResourcePool{Current: InitialResource, Max: InitialResource},
		Stamina: ResourcePool{Current: InitialResource, Max: InitialResource},
		Level:   1,
		Gold:    InitialGold,
		Inventory: []InventoryItem{},
		Equipment: make(map[EquipmentSlot]InventoryItem),
		Achievements:      make(map[string]*AchievementProgress),
		ActiveQuestIDs:    make(map[string]bool),
		CompletedQuestIDs: make(map[string]bool),
		LastRegenerationTime: now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// AttackAttribute returns the stat value driving this player's base damage.
// Classless players use their highest attribute.
func (p *Player) AttackAttribute() int {
	switch p.Class {
	case ClassKnight:
		return p.Stats.Strength
	case ClassMage:
		return p.Stats.Intelligence
	case ClassRanger:
		return p.Stats.Dexterity
	default:
		best := p.Stats.Strength
		if p.Stats.Intelligence > best {
			best = p.Stats.Intelligence
		}
		if p.Stats.Dexterity > best {
			best = p.Stats.Dexterity
		}
		return best
	}
}

// AttackType returns the attack type a player's class fights with
func (p *Player) AttackType() AttackType {
	switch p.Class {
	case ClassMage:
		return AttackMagic
	case ClassRanger:
		return AttackRanged
	default:
		return AttackMelee
	}
}
