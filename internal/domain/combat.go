package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttackType is one corner of the effectiveness cycle
type AttackType string

const (
	AttackMelee  AttackType = "melee"
	AttackMagic  AttackType = "magic"
	AttackRanged AttackType = "ranged"
)

// Enemy is a transient combat opponent; it is never persisted
type Enemy struct {
	Name          string     `json:"name"`
	Level         int        `json:"level"`
	MaxHealth     int        `json:"max_health"`
	CurrentHealth int        `json:"current_health"`
	Attack        int        `json:"attack"`
	Defense       int        `json:"defense"`
	AttackType    AttackType `json:"attack_type"`
	XPReward      int        `json:"xp_reward"`
	GoldReward    int        `json:"gold_reward"`
}

// CombatState is the encounter state machine position
type CombatState string

const (
	CombatStateIdle       CombatState = "idle"
	CombatStatePlayerTurn CombatState = "player_turn"
	CombatStateEnemyTurn  CombatState = "enemy_turn"
	CombatStateVictory    CombatState = "victory"
	CombatStateDefeat     CombatState = "defeat"
	CombatStateFled       CombatState = "fled"
)

// Resolved reports whether the encounter has reached a terminal state
func (s CombatState) Resolved() bool {
	return s == CombatStateVictory || s == CombatStateDefeat || s == CombatStateFled
}

// CombatAction is a player command submitted during their turn
type CombatAction string

const (
	ActionAttack  CombatAction = "attack"
	ActionDefend  CombatAction = "defend"
	ActionUseItem CombatAction = "use_item"
	ActionFlee    CombatAction = "flee"
)

// CombatLogEntry is one line of the encounter log
type CombatLogEntry struct {
	Actor   string    `json:"actor"` // "player", "enemy" or "system"
	Message string    `json:"message"`
	Damage  int       `json:"damage,omitempty"`
	At      time.Time `json:"at"`
}

// Encounter is the live state of one combat. It belongs to exactly one
// player session and is dropped once resolved.
type Encounter struct {
	ID        uuid.UUID        `json:"id"`
	PlayerID  string           `json:"player_id"`
	Enemy     Enemy            `json:"enemy"`
	State     CombatState      `json:"state"`
	Defending bool             `json:"defending"`
	Log       []CombatLogEntry `json:"log"`
	StartedAt time.Time        `json:"started_at"`
}
