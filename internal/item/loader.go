package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateName = errors.New("duplicate item name")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the JSON shape of the item catalog file
type Config struct {
	Version     string            `json:"version"`
	Description string            `json:"description,omitempty"`
	Items       []domain.ItemSpec `json:"items"`
}

// Catalog resolves item names to their specs. Inventory entries are minted
// from catalog specs; the catalog itself is immutable after load.
type Catalog interface {
	Spec(name string) (domain.ItemSpec, bool)
	All() []domain.ItemSpec
}

type catalog struct {
	specs map[string]domain.ItemSpec
}

// LoadCatalog reads, schema-checks and validates the item catalog file
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := validation.NewSchemaValidator().ValidateBytes(data, ItemsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return NewCatalog(&cfg)
}

// NewCatalog validates a config and builds the name index
func NewCatalog(cfg *Config) (Catalog, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	specs := make(map[string]domain.ItemSpec, len(cfg.Items))
	for _, spec := range cfg.Items {
		specs[spec.Name] = spec
	}
	return &catalog{specs: specs}, nil
}

func (c *catalog) Spec(name string) (domain.ItemSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

func (c *catalog) All() []domain.ItemSpec {
	out := make([]domain.ItemSpec, 0, len(c.specs))
	for _, spec := range c.specs {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks the catalog configuration for errors
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(cfg.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	names := make(map[string]bool, len(cfg.Items))
	for i := range cfg.Items {
		if err := validateSpec(i, &cfg.Items[i], names); err != nil {
			return err
		}
	}
	return nil
}

func validateSpec(index int, spec *domain.ItemSpec, names map[string]bool) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: item at index %d %s", ErrInvalidConfig, index, ErrMsgEmptyName)
	}
	if names[spec.Name] {
		return fmt.Errorf("%w: %q", ErrDuplicateName, spec.Name)
	}
	names[spec.Name] = true

	if !validItemType(spec.Type) {
		return fmt.Errorf("%w: item %q has unknown type %q", ErrInvalidConfig, spec.Name, spec.Type)
	}

	if spec.UseEffect != nil {
		if !validEffectKind(spec.UseEffect.Kind) {
			return fmt.Errorf("%w: item %q has unknown effect kind %q", ErrInvalidConfig, spec.Name, spec.UseEffect.Kind)
		}
		if spec.UseEffect.Kind != domain.EffectNone && spec.UseEffect.Value <= 0 {
			return fmt.Errorf("%w: item %q has non-positive effect value", ErrInvalidConfig, spec.Name)
		}
	}

	if spec.StatGrant != nil {
		if !validAttribute(spec.StatGrant.Attribute) {
			return fmt.Errorf("%w: item %q grants unknown attribute %q", ErrInvalidConfig, spec.Name, spec.StatGrant.Attribute)
		}
		if spec.StatGrant.Value <= 0 {
			return fmt.Errorf("%w: item %q has non-positive stat grant", ErrInvalidConfig, spec.Name)
		}
	}

	if spec.IsEquippable {
		if spec.EquipmentStats == nil {
			return fmt.Errorf("%w: equippable item %q has no equipment stats", ErrInvalidConfig, spec.Name)
		}
		if !validSlot(spec.EquipmentStats.Slot) {
			return fmt.Errorf("%w: item %q has unknown slot %q", ErrInvalidConfig, spec.Name, spec.EquipmentStats.Slot)
		}
		for _, bonus := range spec.EquipmentStats.StatBonuses {
			if !validAttribute(bonus.Attribute) {
				return fmt.Errorf("%w: item %q has bonus for unknown attribute %q", ErrInvalidConfig, spec.Name, bonus.Attribute)
			}
		}
	} else if spec.EquipmentStats != nil {
		return fmt.Errorf("%w: non-equippable item %q carries equipment stats", ErrInvalidConfig, spec.Name)
	}

	return nil
}

func validItemType(t domain.ItemType) bool {
	switch t {
	case domain.ItemTypeWeapon, domain.ItemTypeArmor, domain.ItemTypePotion,
		domain.ItemTypeElixir, domain.ItemTypeRune, domain.ItemTypeMap,
		domain.ItemTypeCompass, domain.ItemTypeGold, domain.ItemTypeEnergy,
		domain.ItemTypeOther:
		return true
	}
	return false
}

func validEffectKind(k domain.UseEffectKind) bool {
	switch k {
	case domain.EffectNone, domain.EffectHealth, domain.EffectMana,
		domain.EffectStamina, domain.EffectRevival:
		return true
	}
	return false
}

func validSlot(s domain.EquipmentSlot) bool {
	switch s {
	case domain.SlotMainHand, domain.SlotOffHand, domain.SlotHead,
		domain.SlotBody, domain.SlotLegs, domain.SlotFeet, domain.SlotAccessory:
		return true
	}
	return false
}

func validAttribute(attr string) bool {
	switch attr {
	case domain.AttrStrength, domain.AttrIntelligence, domain.AttrDexterity:
		return true
	}
	return false
}
