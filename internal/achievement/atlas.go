package achievement

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// Achievement ID namespaces. Territory achievements use the bare location
// ID; aggregate achievements are prefixed to keep one flat ID space.
const (
	realmIDPrefix     = "realm:"
	continentIDPrefix = "continent:"
	MetaAchievementID = "meta:world"
)

// RealmAchievementID returns the achievement ID for one realm
func RealmAchievementID(realmKey string) string {
	return realmIDPrefix + realmKey
}

// ContinentAchievementID returns the achievement ID for one continent
func ContinentAchievementID(continentKey string) string {
	return continentIDPrefix + continentKey
}

type territoryRef struct {
	territory    domain.Territory
	realmKey     string
	continentKey string
}

type realmRef struct {
	realm        domain.Realm
	continentKey string
}

// Atlas is the static discovery hierarchy with lookup indexes built over it
type Atlas struct {
	world       domain.WorldAtlas
	territories map[string]territoryRef
	realms      map[string]realmRef
	continents  map[string]domain.Continent
}

// LoadAtlas reads and validates the world atlas configuration
func LoadAtlas(path string) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config: %w", err)
	}

	var world domain.WorldAtlas
	if err := json.Unmarshal(data, &world); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config: %w", err)
	}

	return NewAtlas(world)
}

// NewAtlas builds lookup indexes over a world hierarchy, rejecting duplicate
// location IDs, realm keys and continent keys
func NewAtlas(world domain.WorldAtlas) (*Atlas, error) {
	a := &Atlas{
		world:       world,
		territories: make(map[string]territoryRef),
		realms:      make(map[string]realmRef),
		continents:  make(map[string]domain.Continent),
	}

	titler := cases.Title(language.English)

	for _, continent := range world.Continents {
		if _, exists := a.continents[continent.Key]; exists {
			return nil, fmt.Errorf("duplicate continent key %q", continent.Key)
		}
		a.continents[continent.Key] = continent

		for _, realm := range continent.Realms {
			if _, exists := a.realms[realm.Key]; exists {
				return nil, fmt.Errorf("duplicate realm key %q", realm.Key)
			}
			a.realms[realm.Key] = realmRef{realm: realm, continentKey: continent.Key}

			for _, territory := range realm.Territories {
				if _, exists := a.territories[territory.LocationID]; exists {
					return nil, fmt.Errorf("duplicate location ID %q", territory.LocationID)
				}
				if territory.Name == "" {
					territory.Name = titler.String(strings.ReplaceAll(territory.LocationID, "_", " "))
				}
				a.territories[territory.LocationID] = territoryRef{
					territory:    territory,
					realmKey:     realm.Key,
					continentKey: continent.Key,
				}
			}
		}
	}

	if len(a.territories) == 0 {
		return nil, fmt.Errorf("atlas contains no territories")
	}

	return a, nil
}

// Lookup resolves a location ID to its territory and parent keys
func (a *Atlas) Lookup(locationID string) (territory domain.Territory, realmKey, continentKey string, ok bool) {
	ref, ok := a.territories[locationID]
	if !ok {
		return domain.Territory{}, "", "", false
	}
	return ref.territory, ref.realmKey, ref.continentKey, true
}

// RealmName returns the display name of a realm
func (a *Atlas) RealmName(realmKey string) string {
	return a.realms[realmKey].realm.Name
}

// ContinentName returns the display name of a continent
func (a *Atlas) ContinentName(continentKey string) string {
	return a.continents[continentKey].Name
}

// TerritoriesInRealm returns all location IDs within a realm
func (a *Atlas) TerritoriesInRealm(realmKey string) []string {
	ref, ok := a.realms[realmKey]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(ref.realm.Territories))
	for _, t := range ref.realm.Territories {
		ids = append(ids, t.LocationID)
	}
	return ids
}

// RealmsInContinent returns all realm keys within a continent
func (a *Atlas) RealmsInContinent(continentKey string) []string {
	continent, ok := a.continents[continentKey]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(continent.Realms))
	for _, r := range continent.Realms {
		keys = append(keys, r.Key)
	}
	return keys
}

// AllLocationIDs returns every discoverable location ID
func (a *Atlas) AllLocationIDs() []string {
	ids := make([]string, 0, len(a.territories))
	for id := range a.territories {
		ids = append(ids, id)
	}
	return ids
}

// TotalTerritories is the number of discoverable locations in the atlas
func (a *Atlas) TotalTerritories() int {
	return len(a.territories)
}
