package domain

// ItemType is the closed set of inventory item categories
type ItemType string

const (
	ItemTypeWeapon  ItemType = "weapon"
	ItemTypeArmor   ItemType = "armor"
	ItemTypePotion  ItemType = "potion"
	ItemTypeElixir  ItemType = "elixir"
	ItemTypeRune    ItemType = "rune"
	ItemTypeMap     ItemType = "map"
	ItemTypeCompass ItemType = "compass"
	ItemTypeGold    ItemType = "gold"
	ItemTypeEnergy  ItemType = "energy"
	ItemTypeOther   ItemType = "other"
)

// UseEffectKind is what consuming an item does
type UseEffectKind string

const (
	EffectNone    UseEffectKind = "none"
	EffectHealth  UseEffectKind = "health"
	EffectMana    UseEffectKind = "mana"
	EffectStamina UseEffectKind = "stamina"
	EffectRevival UseEffectKind = "revival"
)

// UseEffect describes what happens when one unit of an item is consumed.
// Value < 1 is a fraction of the matching resource's max, Value >= 1 is an
// absolute amount.
type UseEffect struct {
	Kind  UseEffectKind `json:"kind"`
	Value float64       `json:"value"`
}

// EquipmentSlot is a named attachment point holding at most one item
type EquipmentSlot string

const (
	SlotMainHand  EquipmentSlot = "main_hand"
	SlotOffHand   EquipmentSlot = "off_hand"
	SlotHead      EquipmentSlot = "head"
	SlotBody      EquipmentSlot = "body"
	SlotLegs      EquipmentSlot = "legs"
	SlotFeet      EquipmentSlot = "feet"
	SlotAccessory EquipmentSlot = "accessory"
)

// StatBonus is a flat attribute bonus carried by an equipped item
type StatBonus struct {
	Attribute string `json:"attribute"` // "strength", "intelligence", "dexterity"
	Value     int    `json:"value"`
}

// EquipmentStats is present exactly when IsEquippable is true on the item
type EquipmentStats struct {
	Slot          EquipmentSlot `json:"slot"`
	Armor         int           `json:"armor,omitempty"`
	StatBonuses   []StatBonus   `json:"stat_bonuses,omitempty"`
	RequiredClass PlayerClass   `json:"required_class,omitempty"` // unset or "any" means no gate
	RequiredLevel int           `json:"required_level,omitempty"`
}

// InventoryItem is one entry in a player's inventory. Non-equippable items
// stack by (Name, Type); equippable items are always distinct entries.
type InventoryItem struct {
	ID             string          `json:"id"`
	Type           ItemType        `json:"type"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	UseEffect      *UseEffect      `json:"use_effect,omitempty"`
	StatGrant      *StatBonus      `json:"stat_grant,omitempty"` // rune items: permanent stat increase on use
	IsEquippable   bool            `json:"is_equippable,omitempty"`
	EquipmentStats *EquipmentStats `json:"equipment_stats,omitempty"`
}

// ItemSpec is a catalog definition an inventory entry is minted from
type ItemSpec struct {
	Name           string          `json:"name"`
	Type           ItemType        `json:"type"`
	UseEffect      *UseEffect      `json:"use_effect,omitempty"`
	StatGrant      *StatBonus      `json:"stat_grant,omitempty"`
	IsEquippable   bool            `json:"is_equippable,omitempty"`
	EquipmentStats *EquipmentStats `json:"equipment_stats,omitempty"`
}

// Stackable reports whether entries minted from this spec merge by (name, type)
func (s ItemSpec) Stackable() bool {
	return !s.IsEquippable
}
