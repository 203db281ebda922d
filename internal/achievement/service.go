package achievement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/event"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
)

// Progression is the slice of the progression service achievements need for
// completion rewards.
type Progression interface {
	AddExperience(ctx context.Context, player *domain.Player, amount int, reason string) int
	GrantGold(ctx context.Context, player *domain.Player, amount int, reason string)
}

// Service computes hierarchical discovery progress. Territory completion
// cascades upward: realm progress is discovered/total within the realm,
// continent progress counts fully completed realms, and the meta
// achievement tracks every territory in the atlas. Each completion pays its
// reward exactly once.
type Service interface {
	OnLocationDiscovered(ctx context.Context, player *domain.Player, locationID string) error
	Track(ctx context.Context, player *domain.Player, achievementID string) error
	Untrack(ctx context.Context, player *domain.Player, achievementID string) error
	Tracked(player *domain.Player) []domain.AchievementProgress
	List(player *domain.Player) []domain.AchievementProgress
}

type service struct {
	atlas       *Atlas
	progression Progression
	notifier    notify.Notifier
	bus         event.Bus
	now         func() time.Time
}

func NewService(atlas *Atlas, progression Progression, notifier notify.Notifier, bus event.Bus) Service {
	return &service{
		atlas:       atlas,
		progression: progression,
		notifier:    notifier,
		bus:         bus,
		now:         time.Now,
	}
}

// OnLocationDiscovered marks the location's territory achievement complete
// and recomputes every aggregate above it. Replaying a discovery is safe:
// completed achievements never pay again.
func (s *service) OnLocationDiscovered(ctx context.Context, player *domain.Player, locationID string) error {
	log := logger.FromContext(ctx)

	territory, realmKey, continentKey, ok := s.atlas.Lookup(locationID)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownLocation, locationID)
	}

	territoryAch := s.ensure(player, locationID, domain.AchievementTerritory)
	if !territoryAch.Completed {
		territoryAch.Progress = 1
		s.complete(ctx, player, territoryAch,
			config.TerritoryXPReward, config.TerritoryGoldReward,
			fmt.Sprintf("Discovered %s", territory.Name))
	}

	s.recomputeRealm(ctx, player, realmKey)
	s.recomputeContinent(ctx, player, continentKey)
	s.recomputeMeta(ctx, player)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.NewLocationDiscoveredEvent(player.ID, locationID, realmKey))
	}

	log.Info("location discovered", "playerID", player.ID, "locationID", locationID, "realm", realmKey)
	return nil
}

func (s *service) recomputeRealm(ctx context.Context, player *domain.Player, realmKey string) {
	locations := s.atlas.TerritoriesInRealm(realmKey)
	discovered := 0
	for _, id := range locations {
		if ach, ok := player.Achievements[id]; ok && ach.Completed {
			discovered++
		}
	}

	ach := s.ensure(player, RealmAchievementID(realmKey), domain.AchievementRealm)
	s.raise(ach, float64(discovered)/float64(len(locations)))

	if ach.Progress >= 1 && !ach.Completed {
		s.complete(ctx, player, ach,
			config.RealmXPReward, config.RealmGoldReward,
			fmt.Sprintf("Explored all of %s", s.atlas.RealmName(realmKey)))
	}
}

func (s *service) recomputeContinent(ctx context.Context, player *domain.Player, continentKey string) {
	realms := s.atlas.RealmsInContinent(continentKey)
	completed := 0
	for _, key := range realms {
		if ach, ok := player.Achievements[RealmAchievementID(key)]; ok && ach.Completed {
			completed++
		}
	}

	ach := s.ensure(player, ContinentAchievementID(continentKey), domain.AchievementContinent)
	s.raise(ach, float64(completed)/float64(len(realms)))

	if ach.Progress >= 1 && !ach.Completed {
		s.complete(ctx, player, ach,
			config.ContinentXPReward, config.ContinentGoldReward,
			fmt.Sprintf("Conquered %s", s.atlas.ContinentName(continentKey)))
	}
}

func (s *service) recomputeMeta(ctx context.Context, player *domain.Player) {
	discovered := 0
	for _, id := range s.atlas.AllLocationIDs() {
		if ach, ok := player.Achievements[id]; ok && ach.Completed {
			discovered++
		}
	}

	ach := s.ensure(player, MetaAchievementID, domain.AchievementMeta)
	s.raise(ach, float64(discovered)/float64(s.atlas.TotalTerritories()))

	if ach.Progress >= 1 && !ach.Completed {
		s.complete(ctx, player, ach,
			config.MetaXPReward, config.MetaGoldReward,
			"Discovered the whole world")
	}
}

// ensure returns the tracked progress entry for an achievement, creating it
// on first touch
func (s *service) ensure(player *domain.Player, achievementID string, kind domain.AchievementKind) *domain.AchievementProgress {
	if ach, ok := player.Achievements[achievementID]; ok {
		return ach
	}
	ach := &domain.AchievementProgress{AchievementID: achievementID, Kind: kind}
	player.Achievements[achievementID] = ach
	return ach
}

// raise moves progress upward only; recomputation never regresses a value
func (s *service) raise(ach *domain.AchievementProgress, progress float64) {
	if progress > ach.Progress {
		ach.Progress = progress
	}
}

// complete flips the completed flag and pays the reward. Callers guard
// against re-entry with the Completed check, so rewards are paid once.
func (s *service) complete(ctx context.Context, player *domain.Player, ach *domain.AchievementProgress, xpReward, goldReward int, description string) {
	completedAt := s.now().UTC()
	ach.Completed = true
	ach.CompletedAt = &completedAt

	s.progression.AddExperience(ctx, player, xpReward, "achievement completed")
	if goldReward > 0 {
		s.progression.GrantGold(ctx, player, goldReward, "achievement completed")
	}

	s.notifier.Notify(ctx, notify.KindSuccess, "Achievement Unlocked", description)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.NewAchievementCompletedEvent(player.ID, ach.AchievementID, string(ach.Kind), xpReward, goldReward))
	}

	logger.FromContext(ctx).Info("achievement completed",
		"playerID", player.ID, "achievementID", ach.AchievementID, "kind", ach.Kind)
}

// Track marks an achievement as tracked, capped at MaxTrackedAchievements
func (s *service) Track(ctx context.Context, player *domain.Player, achievementID string) error {
	ach, ok := player.Achievements[achievementID]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrAchievementNotFound, achievementID)
	}
	if ach.IsTracked {
		return nil
	}

	tracked := 0
	for _, a := range player.Achievements {
		if a.IsTracked {
			tracked++
		}
	}
	if tracked >= domain.MaxTrackedAchievements {
		s.notifier.Notify(ctx, notify.KindWarning, "Tracking Limit",
			fmt.Sprintf("You can track at most %d achievements", domain.MaxTrackedAchievements))
		return domain.ErrTrackingLimit
	}

	ach.IsTracked = true
	return nil
}

// Untrack clears the tracked flag; untracking an untracked achievement is a
// no-op
func (s *service) Untrack(_ context.Context, player *domain.Player, achievementID string) error {
	ach, ok := player.Achievements[achievementID]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrAchievementNotFound, achievementID)
	}
	ach.IsTracked = false
	return nil
}

// Tracked returns the tracked subset ordered by achievement ID
func (s *service) Tracked(player *domain.Player) []domain.AchievementProgress {
	out := make([]domain.AchievementProgress, 0, domain.MaxTrackedAchievements)
	for _, ach := range player.Achievements {
		if ach.IsTracked {
			out = append(out, *ach)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out
}

// List returns every achievement progress entry ordered by achievement ID
func (s *service) List(player *domain.Player) []domain.AchievementProgress {
	out := make([]domain.AchievementProgress, 0, len(player.Achievements))
	for _, ach := range player.Achievements {
		out = append(out, *ach)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out
}
