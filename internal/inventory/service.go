package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
	"github.com/striderquest/StriderQuest_Go/internal/resource"
)

// Service owns the stackable item list and per-slot equipment bookkeeping
type Service interface {
	AddItem(ctx context.Context, player *domain.Player, spec domain.ItemSpec, quantity int) *domain.InventoryItem
	RemoveItem(ctx context.Context, player *domain.Player, itemID string, quantity int) error
	UseItem(ctx context.Context, player *domain.Player, itemID string) error
	Equip(ctx context.Context, player *domain.Player, itemID string) error
	Unequip(ctx context.Context, player *domain.Player, slot domain.EquipmentSlot) error
	FindItem(player *domain.Player, itemID string) (*domain.InventoryItem, bool)
	FindRevivalItem(player *domain.Player) (*domain.InventoryItem, bool)
}

type service struct {
	resources resource.Service
	notifier  notify.Notifier
	newID     func() string
}

// NewService creates a new inventory store
func NewService(resources resource.Service, notifier notify.Notifier) Service {
	return &service{
		resources: resources,
		notifier:  notifier,
		newID:     uuid.NewString,
	}
}

// AddItem adds quantity units minted from spec. Non-equippable items merge
// into an existing stack with matching (name, type); equippable items mint
// one quantity-1 entry per unit so every equip instance keeps its own
// identity. Returns the last entry touched.
func (s *service) AddItem(ctx context.Context, player *domain.Player, spec domain.ItemSpec, quantity int) *domain.InventoryItem {
	if quantity <= 0 {
		return nil
	}

	if spec.Stackable() {
		for i := range player.Inventory {
			item := &player.Inventory[i]
			if !item.IsEquippable && item.Name == spec.Name && item.Type == spec.Type {
				item.Quantity += quantity
				return item
			}
		}

		player.Inventory = append(player.Inventory, s.mint(spec, quantity))
		return &player.Inventory[len(player.Inventory)-1]
	}

	for i := 0; i < quantity; i++ {
		player.Inventory = append(player.Inventory, s.mint(spec, 1))
	}
	return &player.Inventory[len(player.Inventory)-1]
}

func (s *service) mint(spec domain.ItemSpec, quantity int) domain.InventoryItem {
	return domain.InventoryItem{
		ID:             s.newID(),
		Type:           spec.Type,
		Name:           spec.Name,
		Quantity:       quantity,
		UseEffect:      spec.UseEffect,
		StatGrant:      spec.StatGrant,
		IsEquippable:   spec.IsEquippable,
		EquipmentStats: spec.EquipmentStats,
	}
}

// RemoveItem decrements an entry's quantity, deleting the entry when it
// reaches zero. Entries never exist at quantity 0.
func (s *service) RemoveItem(ctx context.Context, player *domain.Player, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	idx := s.indexOf(player, itemID)
	if idx == -1 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	item := &player.Inventory[idx]
	if item.Quantity < quantity {
		return fmt.Errorf("%w: have %d, want %d", domain.ErrInsufficientQuantity, item.Quantity, quantity)
	}

	item.Quantity -= quantity
	if item.Quantity == 0 {
		player.Inventory = append(player.Inventory[:idx], player.Inventory[idx+1:]...)
	}
	return nil
}

// UseItem consumes one unit of an item, dispatching on its effect.
// Restorative effects apply through the resource model; rune items grant a
// permanent stat increase; revival items are reserved for the combat engine
// and refuse direct use without being consumed.
func (s *service) UseItem(ctx context.Context, player *domain.Player, itemID string) error {
	log := logger.FromContext(ctx)

	item, ok := s.FindItem(player, itemID)
	if !ok {
		s.notifier.Notify(ctx, notify.KindError, "Item not found", "That item is not in your inventory")
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	if item.Type == domain.ItemTypeRune && item.StatGrant != nil {
		if err := s.resources.IncreaseStat(ctx, player, item.StatGrant.Attribute, item.StatGrant.Value); err != nil {
			return err
		}
		name := item.Name
		if err := s.RemoveItem(ctx, player, itemID, 1); err != nil {
			return err
		}
		s.notifier.Notify(ctx, notify.KindSuccess, "Rune absorbed",
			fmt.Sprintf("%s permanently increased your power", name))
		return nil
	}

	if item.UseEffect == nil {
		return fmt.Errorf("%w: %s", domain.ErrItemNotUsable, item.Name)
	}

	switch item.UseEffect.Kind {
	case domain.EffectHealth, domain.EffectMana, domain.EffectStamina:
		restored := s.resources.Restore(player, item.UseEffect.Kind, item.UseEffect.Value)
		name := item.Name
		kind := item.UseEffect.Kind
		if err := s.RemoveItem(ctx, player, itemID, 1); err != nil {
			return err
		}
		log.Info("Item used", "player_id", player.ID, "item", name, "effect", kind, "restored", restored)
		s.notifier.Notify(ctx, notify.KindSuccess, "Item used",
			fmt.Sprintf("%s restored %d %s", name, restored, kind))
		return nil

	case domain.EffectRevival:
		// Auto-consumed by the combat engine on defeat, never usable directly
		s.notifier.Notify(ctx, notify.KindWarning, "Cannot use now",
			fmt.Sprintf("%s will activate automatically if you fall in combat", item.Name))
		return fmt.Errorf("%w: %s", domain.ErrRevivalReserved, item.Name)

	default:
		return nil
	}
}

// FindItem returns the inventory entry with the given id
func (s *service) FindItem(player *domain.Player, itemID string) (*domain.InventoryItem, bool) {
	idx := s.indexOf(player, itemID)
	if idx == -1 {
		return nil, false
	}
	return &player.Inventory[idx], true
}

// FindRevivalItem returns the first revival item in the inventory
func (s *service) FindRevivalItem(player *domain.Player) (*domain.InventoryItem, bool) {
	for i := range player.Inventory {
		item := &player.Inventory[i]
		if item.UseEffect != nil && item.UseEffect.Kind == domain.EffectRevival {
			return item, true
		}
	}
	return nil, false
}

func (s *service) indexOf(player *domain.Player, itemID string) int {
	for i := range player.Inventory {
		if player.Inventory[i].ID == itemID {
			return i
		}
	}
	return -1
}
