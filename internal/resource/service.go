package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/utils"
)

// Service derives resource caps from core stats and applies passive
// time-based regeneration.
type Service interface {
	DeriveCaps(stats domain.CoreStats) (maxHealth, maxMana, maxStamina int)
	ApplyCaps(player *domain.Player)
	IncreaseStat(ctx context.Context, player *domain.Player, attribute string, amount int) error
	Regenerate(ctx context.Context, player *domain.Player, now time.Time) (changed bool)
	Restore(player *domain.Player, kind domain.UseEffectKind, value float64) int
}

type service struct{}

// NewService creates a new resource service
func NewService() Service {
	return &service{}
}

// CapPerStatPoint is how much each stat point raises the matching resource cap
const CapPerStatPoint = 10

// BaseCap is the resource cap at stat 0
const BaseCap = 100

// DeriveCaps computes resource maxima from core stats
func (s *service) DeriveCaps(stats domain.CoreStats) (maxHealth, maxMana, maxStamina int) {
	maxHealth = BaseCap + CapPerStatPoint*stats.Strength
	maxMana = BaseCap + CapPerStatPoint*stats.Intelligence
	maxStamina = BaseCap + CapPerStatPoint*stats.Dexterity
	return
}

// ApplyCaps recomputes maxima from the player's stats and clamps current
// values into range. Raising a stat only lifts the ceiling; current values
// are never reduced below what they were unless the cap itself shrank below
// them (which normal play cannot produce).
func (s *service) ApplyCaps(player *domain.Player) {
	maxHealth, maxMana, maxStamina := s.DeriveCaps(player.Stats)
	player.Health.Max = maxHealth
	player.Mana.Max = maxMana
	player.Stamina.Max = maxStamina
	player.Health.Current = utils.ClampInt(player.Health.Current, 0, maxHealth)
	player.Mana.Current = utils.ClampInt(player.Mana.Current, 0, maxMana)
	player.Stamina.Current = utils.ClampInt(player.Stamina.Current, 0, maxStamina)
}

// IncreaseStat raises one core attribute (the rune-item path) and re-derives caps
func (s *service) IncreaseStat(ctx context.Context, player *domain.Player, attribute string, amount int) error {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return fmt.Errorf("%w: stat increase must be positive", domain.ErrInvalidInput)
	}

	switch attribute {
	case domain.AttrStrength:
		player.Stats.Strength += amount
	case domain.AttrIntelligence:
		player.Stats.Intelligence += amount
	case domain.AttrDexterity:
		player.Stats.Dexterity += amount
	default:
		return fmt.Errorf("%w: unknown attribute %q", domain.ErrInvalidInput, attribute)
	}

	s.ApplyCaps(player)
	log.Info("Stat increased", "player_id", player.ID, "attribute", attribute, "amount", amount)
	return nil
}

// Regenerate restores a fraction of each resource when at least the regen
// interval has elapsed. Restored amount scales linearly with elapsed time.
// Returns false (and leaves the record untouched) when nothing changed.
func (s *service) Regenerate(ctx context.Context, player *domain.Player, now time.Time) bool {
	elapsed := now.Sub(player.LastRegenerationTime)
	if elapsed < config.RegenInterval {
		return false
	}

	intervals := elapsed.Minutes() / config.RegenInterval.Minutes()

	restore := func(pool *domain.ResourcePool) bool {
		gain := int(float64(pool.Max) * config.RegenFractionPerInterval * intervals)
		if gain <= 0 || pool.Current >= pool.Max {
			return false
		}
		before := pool.Current
		pool.Current = utils.ClampInt(pool.Current+gain, 0, pool.Max)
		return pool.Current != before
	}

	changed := restore(&player.Health)
	changed = restore(&player.Mana) || changed
	changed = restore(&player.Stamina) || changed

	player.LastRegenerationTime = now

	if changed {
		log := logger.FromContext(ctx)
		log.Debug("Resources regenerated", "player_id", player.ID, "elapsed", elapsed)
	}
	return changed
}

// Restore applies a consumable's effect to the matching pool and returns the
// amount actually restored. Value < 1 is a fraction of max, >= 1 an absolute
// amount.
func (s *service) Restore(player *domain.Player, kind domain.UseEffectKind, value float64) int {
	var pool *domain.ResourcePool
	switch kind {
	case domain.EffectHealth:
		pool = &player.Health
	case domain.EffectMana:
		pool = &player.Mana
	case domain.EffectStamina:
		pool = &player.Stamina
	default:
		return 0
	}

	amount := int(value)
	if value < 1 {
		amount = int(float64(pool.Max) * value)
	}

	before := pool.Current
	pool.Current = utils.ClampInt(pool.Current+amount, 0, pool.Max)
	return pool.Current - before
}
