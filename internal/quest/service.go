package quest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/event"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
)

// Objective keys quests are generated with. Progress feeds match on these.
const (
	ObjectiveDefeatEnemies     = "defeat_enemies"
	ObjectiveDiscoverLocations = "discover_locations"
	ObjectiveUseItems          = "use_items"
)

// Progression is the slice of the progression service quests need for
// completion rewards.
type Progression interface {
	AddExperience(ctx context.Context, player *domain.Player, amount int, reason string) int
	GrantGold(ctx context.Context, player *domain.Player, amount int, reason string)
}

// ItemGranter adds reward items to a player's inventory
type ItemGranter interface {
	AddItem(ctx context.Context, player *domain.Player, spec domain.ItemSpec, quantity int) *domain.InventoryItem
}

// Catalog resolves reward item names to their specs
type Catalog interface {
	Spec(name string) (domain.ItemSpec, bool)
}

// Service generates time-window quest sets and tracks progress. Daily,
// weekly and monthly sets are swapped wholesale the first time a check runs
// after the UTC calendar boundary; nothing fires at the boundary itself.
type Service interface {
	EnsureFresh(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, now time.Time) bool
	ActiveQuests(questLog *domain.QuestLog, now time.Time) []domain.Quest
	UpdateProgress(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, questID string, delta int, now time.Time) (*domain.Quest, error)
	AssignQuest(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, template domain.QuestTemplate, now time.Time) *domain.Quest

	OnEnemyDefeated(ctx context.Context, player *domain.Player, questLog *domain.QuestLog)
	OnLocationDiscovered(ctx context.Context, player *domain.Player, questLog *domain.QuestLog)
	OnItemUsed(ctx context.Context, player *domain.Player, questLog *domain.QuestLog)
}

type service struct {
	progression Progression
	items       ItemGranter
	catalog     Catalog
	notifier    notify.Notifier
	bus         event.Bus

	mu        sync.RWMutex
	questPool []domain.QuestTemplate
}

// NewService creates a quest service, loading the template pool from the
// quest pool config file.
func NewService(progression Progression, items ItemGranter, catalog Catalog, notifier notify.Notifier, bus event.Bus) (Service, error) {
	s := newService(progression, items, catalog, notifier, bus)
	if err := s.loadQuestPool(); err != nil {
		return nil, fmt.Errorf("failed to load quest pool: %w", err)
	}
	return s, nil
}

// NewServiceWithPool creates a quest service with an explicit template pool
func NewServiceWithPool(progression Progression, items ItemGranter, catalog Catalog, notifier notify.Notifier, bus event.Bus, pool []domain.QuestTemplate) Service {
	s := newService(progression, items, catalog, notifier, bus)
	s.questPool = pool
	return s
}

func newService(progression Progression, items ItemGranter, catalog Catalog, notifier notify.Notifier, bus event.Bus) *service {
	return &service{
		progression: progression,
		items:       items,
		catalog:     catalog,
		notifier:    notifier,
		bus:         bus,
	}
}

func (s *service) loadQuestPool() error {
	data, err := os.ReadFile(config.ConfigPathQuestPool)
	if err != nil {
		return err
	}

	var cfg domain.QuestPoolConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.questPool = cfg.QuestPool
	s.mu.Unlock()

	return nil
}

// EnsureFresh regenerates any quest set whose calendar window has rolled
// over since its last generation. A player's first check generates all
// three sets. Returns true when anything changed.
func (s *service) EnsureFresh(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, now time.Time) bool {
	now = now.UTC()
	changed := false

	if questLog.PlayerID == "" {
		questLog.PlayerID = player.ID
		changed = true
	}

	if questLog.LastDailyGeneration.IsZero() || !sameUTCDay(questLog.LastDailyGeneration, now) {
		s.regenerateScope(ctx, player, questLog, domain.QuestScopeDaily, now)
		changed = true
	}
	if questLog.LastWeeklyGeneration.IsZero() || !sameISOWeek(questLog.LastWeeklyGeneration, now) {
		s.regenerateScope(ctx, player, questLog, domain.QuestScopeWeekly, now)
		changed = true
	}
	if questLog.LastMonthlyGeneration.IsZero() || !sameMonth(questLog.LastMonthlyGeneration, now) {
		s.regenerateScope(ctx, player, questLog, domain.QuestScopeMonthly, now)
		changed = true
	}

	return changed
}

// regenerateScope swaps one time-window quest set wholesale and resets its
// completed counter. Selection is seeded by the calendar period so repeated
// generation within one window is stable.
func (s *service) regenerateScope(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, scope domain.QuestScope, now time.Time) {
	log := logger.FromContext(ctx)

	kept := questLog.Quests[:0]
	for _, q := range questLog.Quests {
		if q.Scope == scope {
			delete(player.ActiveQuestIDs, q.ID)
			continue
		}
		kept = append(kept, q)
	}
	questLog.Quests = kept

	s.mu.RLock()
	var candidates []domain.QuestTemplate
	for _, t := range s.questPool {
		if t.Scope == scope {
			candidates = append(candidates, t)
		}
	}
	s.mu.RUnlock()

	rng := rand.New(rand.NewSource(periodSeed(scope, now))) //nolint:gosec // deterministic selection, not security
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	count := scopeQuestCount(scope)
	if count > len(candidates) {
		count = len(candidates)
	}

	expiry := scopeExpiry(scope, now)
	generated := make([]string, 0, count)
	for _, template := range candidates[:count] {
		quest := domain.Quest{
			ID:          uuid.NewString(),
			QuestKey:    template.QuestKey,
			Scope:       scope,
			Description: template.Description,
			TargetCount: template.TargetCount,
			XPReward:    template.XPReward,
			GoldReward:  template.GoldReward,
			ItemReward:  template.ItemReward,
			ExpiresAt:   &expiry,
			CreatedAt:   now,
		}
		questLog.Quests = append(questLog.Quests, quest)
		player.ActiveQuestIDs[quest.ID] = true
		generated = append(generated, quest.ID)
	}

	switch scope {
	case domain.QuestScopeDaily:
		questLog.LastDailyGeneration = now
		questLog.DailyCompleted = 0
	case domain.QuestScopeWeekly:
		questLog.LastWeeklyGeneration = now
		questLog.WeeklyCompleted = 0
	case domain.QuestScopeMonthly:
		questLog.LastMonthlyGeneration = now
		questLog.MonthlyCompleted = 0
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.QuestSetRegenerated,
			Payload: event.QuestSetRegeneratedPayloadV1{
				PlayerID:  player.ID,
				Scope:     string(scope),
				QuestIDs:  generated,
				ResetTime: now,
			},
		})
	}

	log.Info("quest set regenerated", "playerID", player.ID, "scope", scope, "count", count)
}

// ActiveQuests returns incomplete, unexpired quests. Expired quests are
// filtered, not failed.
func (s *service) ActiveQuests(questLog *domain.QuestLog, now time.Time) []domain.Quest {
	now = now.UTC()
	active := make([]domain.Quest, 0, len(questLog.Quests))
	for _, q := range questLog.Quests {
		if q.Completed || q.Expired(now) {
			continue
		}
		active = append(active, q)
	}
	return active
}

// AssignQuest adds a quest outside the generated time-window sets, such as
// tutorial or story objectives
func (s *service) AssignQuest(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, template domain.QuestTemplate, now time.Time) *domain.Quest {
	quest := domain.Quest{
		ID:          uuid.NewString(),
		QuestKey:    template.QuestKey,
		Scope:       template.Scope,
		Description: template.Description,
		TargetCount: template.TargetCount,
		XPReward:    template.XPReward,
		GoldReward:  template.GoldReward,
		ItemReward:  template.ItemReward,
		CreatedAt:   now.UTC(),
	}
	questLog.Quests = append(questLog.Quests, quest)
	player.ActiveQuestIDs[quest.ID] = true

	logger.FromContext(ctx).Info("quest assigned", "playerID", player.ID, "questKey", quest.QuestKey, "scope", quest.Scope)
	return &questLog.Quests[len(questLog.Quests)-1]
}

// UpdateProgress adds delta to a quest's progress, capped at its target.
// Crossing the target completes the quest and pays its rewards exactly
// once; updates on completed or expired quests are no-ops.
func (s *service) UpdateProgress(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, questID string, delta int, now time.Time) (*domain.Quest, error) {
	log := logger.FromContext(ctx)

	idx := -1
	for i := range questLog.Quests {
		if questLog.Quests[i].ID == questID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrQuestNotFound
	}

	quest := &questLog.Quests[idx]
	if quest.Completed || quest.Expired(now.UTC()) {
		return quest, nil
	}

	quest.Progress += delta
	if quest.Progress > quest.TargetCount {
		quest.Progress = quest.TargetCount
	}
	if quest.Progress < quest.TargetCount {
		return quest, nil
	}

	quest.Completed = true
	delete(player.ActiveQuestIDs, quest.ID)
	player.CompletedQuestIDs[quest.ID] = true

	switch quest.Scope {
	case domain.QuestScopeDaily:
		questLog.DailyCompleted++
	case domain.QuestScopeWeekly:
		questLog.WeeklyCompleted++
	case domain.QuestScopeMonthly:
		questLog.MonthlyCompleted++
	}
	questLog.TotalCompleted++

	if quest.XPReward > 0 {
		s.progression.AddExperience(ctx, player, quest.XPReward, "quest completed")
	}
	if quest.GoldReward > 0 {
		s.progression.GrantGold(ctx, player, quest.GoldReward, "quest completed")
	}
	if quest.ItemReward != "" {
		s.grantItemReward(ctx, player, quest)
	}

	s.notifier.Notify(ctx, notify.KindSuccess, "Quest Complete", quest.Description)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.NewQuestCompletedEvent(player.ID, *quest))
	}

	log.Info("quest completed", "playerID", player.ID, "questKey", quest.QuestKey, "scope", quest.Scope)
	return quest, nil
}

func (s *service) grantItemReward(ctx context.Context, player *domain.Player, quest *domain.Quest) {
	log := logger.FromContext(ctx)

	if s.catalog == nil {
		log.Warn("no item catalog configured, skipping quest item reward", "questKey", quest.QuestKey, "item", quest.ItemReward)
		return
	}
	spec, ok := s.catalog.Spec(quest.ItemReward)
	if !ok {
		log.Warn("unknown quest item reward", "questKey", quest.QuestKey, "item", quest.ItemReward)
		return
	}
	s.items.AddItem(ctx, player, spec, 1)
}

// OnEnemyDefeated bumps every active defeat-objective quest by one
func (s *service) OnEnemyDefeated(ctx context.Context, player *domain.Player, questLog *domain.QuestLog) {
	s.progressObjective(ctx, player, questLog, ObjectiveDefeatEnemies, 1)
}

// OnLocationDiscovered bumps every active discovery-objective quest by one
func (s *service) OnLocationDiscovered(ctx context.Context, player *domain.Player, questLog *domain.QuestLog) {
	s.progressObjective(ctx, player, questLog, ObjectiveDiscoverLocations, 1)
}

// OnItemUsed bumps every active item-use-objective quest by one
func (s *service) OnItemUsed(ctx context.Context, player *domain.Player, questLog *domain.QuestLog) {
	s.progressObjective(ctx, player, questLog, ObjectiveUseItems, 1)
}

func (s *service) progressObjective(ctx context.Context, player *domain.Player, questLog *domain.QuestLog, objective string, delta int) {
	now := time.Now().UTC()

	ids := make([]string, 0, len(questLog.Quests))
	for _, q := range questLog.Quests {
		if q.Completed || q.Expired(now) || q.QuestKey != objective {
			continue
		}
		ids = append(ids, q.ID)
	}

	// completion mutates the slice, so collect IDs first
	for _, id := range ids {
		if _, err := s.UpdateProgress(ctx, player, questLog, id, delta, now); err != nil {
			logger.FromContext(ctx).Warn("failed to update quest progress", "questID", id, "error", err)
		}
	}
}

func scopeQuestCount(scope domain.QuestScope) int {
	switch scope {
	case domain.QuestScopeDaily:
		return config.DailyQuestCount
	case domain.QuestScopeWeekly:
		return config.WeeklyQuestCount
	case domain.QuestScopeMonthly:
		return config.MonthlyQuestCount
	default:
		return 0
	}
}

func periodSeed(scope domain.QuestScope, now time.Time) int64 {
	switch scope {
	case domain.QuestScopeWeekly:
		year, week := now.ISOWeek()
		return int64(year*100 + week)
	case domain.QuestScopeMonthly:
		return int64(now.Year()*100 + int(now.Month()))
	default:
		return int64(now.Year()*10000 + int(now.Month())*100 + now.Day())
	}
}

// scopeExpiry returns the next UTC boundary for a scope: midnight, the next
// ISO week's Monday, or the first of the next month
func scopeExpiry(scope domain.QuestScope, now time.Time) time.Time {
	year, month, day := now.Date()
	switch scope {
	case domain.QuestScopeWeekly:
		monday := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		for monday.Weekday() != time.Monday {
			monday = monday.AddDate(0, 0, -1)
		}
		return monday.AddDate(0, 0, 7)
	case domain.QuestScopeMonthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	}
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func sameISOWeek(a, b time.Time) bool {
	ay, aw := a.UTC().ISOWeek()
	by, bw := b.UTC().ISOWeek()
	return ay == by && aw == bw
}

func sameMonth(a, b time.Time) bool {
	return a.UTC().Year() == b.UTC().Year() && a.UTC().Month() == b.UTC().Month()
}
