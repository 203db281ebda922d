package domain

// Well-known catalog item names
const (
	ItemAchievementChest = "Achievement Chest"
	ItemRevivalFeather   = "Revival Feather"
)

// Attribute names used by rune items and equipment stat bonuses
const (
	AttrStrength     = "strength"
	AttrIntelligence = "intelligence"
	AttrDexterity    = "dexterity"
)
