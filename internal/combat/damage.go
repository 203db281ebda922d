package combat

import (
	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/inventory"
	"github.com/striderquest/StriderQuest_Go/internal/utils"
)

// effectiveness returns the damage multiplier for an attacker/defender type
// pair. The cycle is Melee > Magic > Ranged > Melee; a strong matchup is a
// critical multiplier, the reverse matchup is weak, everything else normal.
func effectiveness(attacker, defender domain.AttackType) float64 {
	strongAgainst := map[domain.AttackType]domain.AttackType{
		domain.AttackMelee:  domain.AttackMagic,
		domain.AttackMagic:  domain.AttackRanged,
		domain.AttackRanged: domain.AttackMelee,
	}

	if strongAgainst[attacker] == defender {
		return config.EffectivenessStrong
	}
	if strongAgainst[defender] == attacker {
		return config.EffectivenessWeak
	}
	return 1.0
}

// playerCriticalChance scales with dexterity from a 10% floor to a 25% cap
func playerCriticalChance(player *domain.Player) float64 {
	chance := config.PlayerCriticalBase + config.PlayerCriticalPerDex*float64(player.Stats.Dexterity)
	return utils.ClampFloat(chance, config.PlayerCriticalBase, config.PlayerCriticalCap)
}

// playerDamage computes one player attack against the enemy. The base is the
// class attribute times the attack multiplier plus equipped stat bonuses;
// effectiveness and an independent random critical stack multiplicatively;
// enemy defense mitigates at its configured rate. Damage never drops below 1.
func (s *service) playerDamage(player *domain.Player, enemy *domain.Enemy) (damage int, critical bool) {
	base := float64(player.AttackAttribute()) * config.AttackAttributeMultiplier
	base += float64(inventory.EquippedStatBonus(player, domain.AttrStrength) +
		inventory.EquippedStatBonus(player, domain.AttrIntelligence) +
		inventory.EquippedStatBonus(player, domain.AttrDexterity))

	scaled := base * effectiveness(player.AttackType(), enemy.AttackType)

	if s.rnd() < playerCriticalChance(player) {
		scaled *= config.CriticalMultiplier
		critical = true
	}

	scaled -= float64(enemy.Defense) * config.EnemyDefenseMitigation

	damage = int(scaled)
	if damage < config.MinimumDamage {
		damage = config.MinimumDamage
	}
	return damage, critical
}

// enemyDamage computes one enemy attack against the player. Player armor
// mitigates at its configured rate and an active defend halves the result.
func (s *service) enemyDamage(enemy *domain.Enemy, player *domain.Player, defending bool) (damage int, critical bool) {
	scaled := float64(enemy.Attack) * effectiveness(enemy.AttackType, player.AttackType())

	if s.rnd() < config.EnemyCriticalChance {
		scaled *= config.CriticalMultiplier
		critical = true
	}

	scaled -= float64(player.Armor) * config.PlayerArmorMitigation

	if defending {
		scaled *= config.DefendMultiplier
	}

	damage = int(scaled)
	if damage < config.MinimumDamage {
		damage = config.MinimumDamage
	}
	return damage, critical
}

// fleeChance is 70% base, +1% per point of dexterity, -2% per enemy level,
// clamped to [30%, 90%]
func fleeChance(player *domain.Player, enemy *domain.Enemy) float64 {
	chance := config.FleeBaseChance +
		config.FleeDexterityBonus*float64(player.Stats.Dexterity) -
		config.FleeEnemyLevelPenalty*float64(enemy.Level)
	return utils.ClampFloat(chance, config.FleeMinChance, config.FleeMaxChance)
}
