package inventory

import (
	"context"
	"fmt"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
)

// Equip moves one unit of an equippable item from the inventory into its
// slot. A previously equipped item in that slot returns to the inventory
// first, so a swap is a single transactional operation with no intermediate
// state visible to callers.
func (s *service) Equip(ctx context.Context, player *domain.Player, itemID string) error {
	log := logger.FromContext(ctx)

	item, ok := s.FindItem(player, itemID)
	if !ok {
		s.notifier.Notify(ctx, notify.KindError, "Cannot equip", "That item is not in your inventory")
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	if !item.IsEquippable || item.EquipmentStats == nil {
		s.notifier.Notify(ctx, notify.KindError, "Cannot equip",
			fmt.Sprintf("%s is not equippable", item.Name))
		return fmt.Errorf("%w: %s", domain.ErrNotEquippable, item.Name)
	}

	stats := item.EquipmentStats
	if stats.RequiredClass != "" && stats.RequiredClass != domain.ClassAny && stats.RequiredClass != player.Class {
		s.notifier.Notify(ctx, notify.KindError, "Cannot equip",
			fmt.Sprintf("%s requires the %s class", item.Name, stats.RequiredClass))
		return fmt.Errorf("%w: need %s", domain.ErrClassRequirement, stats.RequiredClass)
	}
	if stats.RequiredLevel > player.Level {
		s.notifier.Notify(ctx, notify.KindError, "Cannot equip",
			fmt.Sprintf("%s requires level %d", item.Name, stats.RequiredLevel))
		return fmt.Errorf("%w: need level %d", domain.ErrLevelRequirement, stats.RequiredLevel)
	}

	// Snapshot before mutating; the displaced item goes back first
	equipped := *item
	equipped.Quantity = 1

	if current, occupied := player.Equipment[stats.Slot]; occupied {
		s.returnToInventory(ctx, player, current)
	}

	if err := s.RemoveItem(ctx, player, itemID, 1); err != nil {
		return err
	}
	player.Equipment[stats.Slot] = equipped
	s.RecomputeArmor(player)

	log.Info("Item equipped", "player_id", player.ID, "item", equipped.Name, "slot", stats.Slot)
	s.notifier.Notify(ctx, notify.KindSuccess, "Equipped",
		fmt.Sprintf("%s equipped to %s", equipped.Name, stats.Slot))
	return nil
}

// Unequip clears a slot and returns its item to the inventory
func (s *service) Unequip(ctx context.Context, player *domain.Player, slot domain.EquipmentSlot) error {
	log := logger.FromContext(ctx)

	item, occupied := player.Equipment[slot]
	if !occupied {
		return fmt.Errorf("%w: %s", domain.ErrSlotEmpty, slot)
	}

	delete(player.Equipment, slot)
	s.returnToInventory(ctx, player, item)
	s.RecomputeArmor(player)

	log.Info("Item unequipped", "player_id", player.ID, "item", item.Name, "slot", slot)
	s.notifier.Notify(ctx, notify.KindSuccess, "Unequipped",
		fmt.Sprintf("%s returned to inventory", item.Name))
	return nil
}

// RecomputeArmor derives total armor from every equipped item
func (s *service) RecomputeArmor(player *domain.Player) {
	armor := 0
	for _, item := range player.Equipment {
		if item.EquipmentStats != nil {
			armor += item.EquipmentStats.Armor
		}
	}
	player.Armor = armor
}

// EquippedStatBonus sums stat bonuses for one attribute across all equipped
// items. The combat engine uses this for weapon damage contributions.
func EquippedStatBonus(player *domain.Player, attribute string) int {
	total := 0
	for _, item := range player.Equipment {
		if item.EquipmentStats == nil {
			continue
		}
		for _, bonus := range item.EquipmentStats.StatBonuses {
			if bonus.Attribute == attribute {
				total += bonus.Value
			}
		}
	}
	return total
}

// returnToInventory puts a previously equipped item back as its own entry,
// preserving its identity (equippable entries never merge)
func (s *service) returnToInventory(ctx context.Context, player *domain.Player, item domain.InventoryItem) {
	item.Quantity = 1
	player.Inventory = append(player.Inventory, item)
}
