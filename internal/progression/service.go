package progression

import (
	"context"
	"fmt"

	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/event"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
)

// ItemGranter is the slice of the inventory store the ledger needs for
// level-up chest rewards
type ItemGranter interface {
	AddItem(ctx context.Context, player *domain.Player, spec domain.ItemSpec, quantity int) *domain.InventoryItem
}

// Service is the progression ledger: experience, level, gold
type Service interface {
	AddExperience(ctx context.Context, player *domain.Player, amount int, reason string) (levelsGained int)
	LevelProgressPercent(player *domain.Player) int
	SpendGold(ctx context.Context, player *domain.Player, amount int, reason string) bool
	GrantGold(ctx context.Context, player *domain.Player, amount int, reason string)
}

type service struct {
	items    ItemGranter
	notifier notify.Notifier
	bus      event.Bus
}

// NewService creates a new progression ledger
func NewService(items ItemGranter, notifier notify.Notifier, bus event.Bus) Service {
	return &service{
		items:    items,
		notifier: notifier,
		bus:      bus,
	}
}

// achievementChestSpec is the level-up reward item
var achievementChestSpec = domain.ItemSpec{
	Name: domain.ItemAchievementChest,
	Type: domain.ItemTypeOther,
}

// AddExperience adds XP and resolves any level-ups it causes. Each level
// gained grants level*50 gold and one Achievement Chest. Experience never
// decreases; non-positive amounts are ignored.
func (s *service) AddExperience(ctx context.Context, player *domain.Player, amount int, reason string) int {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return 0
	}

	oldLevel := player.Level
	player.Experience += amount

	goldGranted := 0
	for player.Experience >= Threshold(player.Level+1) {
		player.Level++
		levelGold := player.Level * config.LevelUpGoldPerLevel
		player.Gold += levelGold
		goldGranted += levelGold

		if s.items != nil {
			s.items.AddItem(ctx, player, achievementChestSpec, 1)
		}

		s.notifier.Notify(ctx, notify.KindSuccess, "Level up!",
			fmt.Sprintf("You reached level %d and earned %d gold", player.Level, levelGold))
	}

	s.notifier.Notify(ctx, notify.KindSuccess, "Experience gained",
		fmt.Sprintf("+%d XP (%s)", amount, reason))

	levelsGained := player.Level - oldLevel
	if levelsGained > 0 {
		log.Info("Player leveled up",
			"player_id", player.ID, "old_level", oldLevel, "new_level", player.Level, "reason", reason)
		if s.bus != nil {
			_ = s.bus.Publish(ctx, event.NewLevelUpEvent(player.ID, oldLevel, player.Level, goldGranted))
		}
	}

	return levelsGained
}

// LevelProgressPercent reports progress through the current level as a
// floored percentage of the XP span between the two adjacent thresholds.
func (s *service) LevelProgressPercent(player *domain.Player) int {
	lower := Threshold(player.Level)
	upper := Threshold(player.Level + 1)
	if upper <= lower {
		return 0
	}
	pct := 100 * (player.Experience - lower) / (upper - lower)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// SpendGold deducts gold atomically. An insufficient balance leaves the
// record unchanged and reports failure.
func (s *service) SpendGold(ctx context.Context, player *domain.Player, amount int, reason string) bool {
	log := logger.FromContext(ctx)

	if amount < 0 {
		return false
	}
	if player.Gold < amount {
		s.notifier.Notify(ctx, notify.KindError, "Insufficient gold",
			fmt.Sprintf("You need %d gold but only have %d", amount, player.Gold))
		return false
	}

	player.Gold -= amount
	log.Info("Gold spent", "player_id", player.ID, "amount", amount, "reason", reason)
	s.notifier.Notify(ctx, notify.KindSuccess, "Gold spent",
		fmt.Sprintf("-%d gold (%s)", amount, reason))
	return true
}

// GrantGold adds gold directly (combat and achievement rewards)
func (s *service) GrantGold(ctx context.Context, player *domain.Player, amount int, reason string) {
	if amount <= 0 {
		return
	}
	player.Gold += amount
	s.notifier.Notify(ctx, notify.KindSuccess, "Gold earned",
		fmt.Sprintf("+%d gold (%s)", amount, reason))
}
