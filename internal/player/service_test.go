package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/striderquest/StriderQuest_Go/internal/achievement"
	"github.com/striderquest/StriderQuest_Go/internal/combat"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/inventory"
	"github.com/striderquest/StriderQuest_Go/internal/item"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
	"github.com/striderquest/StriderQuest_Go/internal/progression"
	"github.com/striderquest/StriderQuest_Go/internal/quest"
	"github.com/striderquest/StriderQuest_Go/internal/repository/memory"
	"github.com/striderquest/StriderQuest_Go/internal/resource"
)

func testCatalog(t *testing.T) item.Catalog {
	t.Helper()
	catalog, err := item.NewCatalog(&item.Config{
		Version: "1.0",
		Items: []domain.ItemSpec{
			{
				Name: "Minor Healing Potion",
				Type: domain.ItemTypePotion,
				UseEffect: &domain.UseEffect{
					Kind:  domain.EffectHealth,
					Value: 25,
				},
			},
			{
				Name:         "Iron Sword",
				Type:         domain.ItemTypeWeapon,
				IsEquippable: true,
				EquipmentStats: &domain.EquipmentStats{
					Slot:        domain.SlotMainHand,
					StatBonuses: []domain.StatBonus{{Attribute: "strength", Value: 2}},
				},
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func testWorld(t *testing.T) *achievement.Atlas {
	t.Helper()
	atlas, err := achievement.NewAtlas(domain.WorldAtlas{
		Continents: []domain.Continent{{
			Key:  "aurelia",
			Name: "Aurelia",
			Realms: []domain.Realm{{
				Key:  "verdant_vale",
				Name: "Verdant Vale",
				Territories: []domain.Territory{
					{LocationID: "mosswick", Name: "Mosswick"},
					{LocationID: "fernhollow", Name: "Fernhollow"},
				},
			}},
		}},
	})
	require.NoError(t, err)
	return atlas
}

func questPool() []domain.QuestTemplate {
	return []domain.QuestTemplate{
		{QuestKey: quest.ObjectiveDefeatEnemies, Scope: domain.QuestScopeDaily, Description: "Defeat enemies", TargetCount: 1, XPReward: 10},
		{QuestKey: quest.ObjectiveDiscoverLocations, Scope: domain.QuestScopeDaily, Description: "Discover places", TargetCount: 1, XPReward: 10},
		{QuestKey: quest.ObjectiveUseItems, Scope: domain.QuestScopeDaily, Description: "Use items", TargetCount: 1, XPReward: 10},
	}
}

func newTestService(t *testing.T) *service {
	return newTestServiceWithDelay(t, 0)
}

func newTestServiceWithDelay(t *testing.T, turnDelay time.Duration) *service {
	t.Helper()

	profiles := memory.NewProfileStore()
	questLogs := memory.NewQuestLogStore()
	recorder := notify.NewRecorder()
	catalog := testCatalog(t)

	resources := resource.NewService()
	inv := inventory.NewService(resources, recorder)
	prog := progression.NewService(inv, recorder, nil)
	quests := quest.NewServiceWithPool(prog, inv, catalog, recorder, nil, questPool())
	achievements := achievement.NewService(testWorld(t), prog, recorder, nil)

	svc := NewService(profiles, questLogs, resources, inv, achievements, quests, catalog, nil)
	cmb := combat.NewServiceWithRand(prog, inv, recorder, nil, turnDelay, svc.RunCombatTurn, func() float64 { return 0.99 })
	svc.SetCombat(cmb)
	t.Cleanup(cmb.Shutdown)

	return svc
}

func TestGetOrCreateInitializesNewPlayer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	player, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)
	assert.Equal(t, "strider", player.Username)
	assert.Equal(t, 1, player.Level)
	assert.Equal(t, domain.InitialGold, player.Gold)

	// daily quest set generated on first contact
	quests, err := svc.Quests(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, quests, 3)

	// second call loads the same record
	again, err := svc.GetOrCreate(ctx, "p1", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "strider", again.Username)
}

func TestGetUnknownPlayer(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestChooseClassIsPermanent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)

	player, err := svc.ChooseClass(ctx, "p1", domain.ClassMage)
	require.NoError(t, err)
	assert.Equal(t, domain.ClassMage, player.Class)

	_, err = svc.ChooseClass(ctx, "p1", domain.ClassKnight)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ChooseClass(ctx, "p1", domain.PlayerClass("bard"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGrantAndUseItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)

	player, err := svc.GrantItem(ctx, "p1", "Minor Healing Potion", 2)
	require.NoError(t, err)
	require.Len(t, player.Inventory, 1)
	potionID := player.Inventory[0].ID

	// damage the player so the heal is visible
	player.Health.Current = 50
	player, err = svc.UseItem(ctx, "p1", potionID)
	require.NoError(t, err)
	assert.Equal(t, 75, player.Health.Current)
	assert.Equal(t, 1, player.Inventory[0].Quantity)

	// item-use quest completed and paid out
	quests, err := svc.Quests(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, quests, 2)
	for _, q := range quests {
		assert.NotEqual(t, quest.ObjectiveUseItems, q.QuestKey)
	}
	assert.Equal(t, 10, player.Experience)
	assert.Len(t, player.CompletedQuestIDs, 1)
}

func TestGrantUnknownItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)

	_, err = svc.GrantItem(ctx, "p1", "Chrono Blade", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestEquipAndUnequip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)

	player, err := svc.GrantItem(ctx, "p1", "Iron Sword", 1)
	require.NoError(t, err)
	swordID := player.Inventory[0].ID

	player, err = svc.EquipItem(ctx, "p1", swordID)
	require.NoError(t, err)
	_, equipped := player.Equipment[domain.SlotMainHand]
	assert.True(t, equipped)

	player, err = svc.UnequipItem(ctx, "p1", domain.SlotMainHand)
	require.NoError(t, err)
	_, equipped = player.Equipment[domain.SlotMainHand]
	assert.False(t, equipped)
}

func TestCombatVictoryProgressesQuest(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)
	_, err = svc.ChooseClass(ctx, "p1", domain.ClassKnight)
	require.NoError(t, err)

	enemy := domain.Enemy{
		Name:       "Mudling",
		Level:      1,
		MaxHealth:  1,
		Attack:     1,
		AttackType: domain.AttackMelee,
		XPReward:   20,
		GoldReward: 5,
	}
	enc, err := svc.StartCombat(ctx, "p1", enemy)
	require.NoError(t, err)
	assert.Equal(t, domain.CombatStatePlayerTurn, enc.State)

	enc, err = svc.CombatAction(ctx, "p1", domain.ActionAttack, "")
	require.NoError(t, err)
	assert.Equal(t, domain.CombatStateVictory, enc.State)

	_, active := svc.Encounter("p1")
	assert.False(t, active)

	player, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	// 20 XP from the kill plus 10 from the defeat-enemies quest
	assert.Equal(t, 30, player.Experience)
	assert.Equal(t, domain.InitialGold+5, player.Gold)

	quests, err := svc.Quests(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, quests, 2)
	for _, q := range quests {
		assert.NotEqual(t, quest.ObjectiveDefeatEnemies, q.QuestKey)
	}
}

func TestDeferredEnemyTurnPersistsAndVictoryRewardsSurvive(t *testing.T) {
	svc := newTestServiceWithDelay(t, 20*time.Millisecond)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)
	_, err = svc.ChooseClass(ctx, "p1", domain.ClassKnight)
	require.NoError(t, err)

	enemy := domain.Enemy{
		Name:       "Bog Shade",
		Level:      1,
		MaxHealth:  2,
		Attack:     4,
		AttackType: domain.AttackMelee,
		XPReward:   100,
		GoldReward: 30,
	}
	_, err = svc.StartCombat(ctx, "p1", enemy)
	require.NoError(t, err)

	// first attack leaves the enemy alive and arms the deferred counter
	enc, err := svc.CombatAction(ctx, "p1", domain.ActionAttack, "")
	require.NoError(t, err)

	// the counter-attack lands on the stored record, not a detached copy
	require.Eventually(t, func() bool {
		stored, err := svc.profiles.Get(ctx, "p1")
		return err == nil && stored.Health.Current < stored.Health.Max
	}, 2*time.Second, 5*time.Millisecond)

	enc, err = svc.CombatAction(ctx, "p1", domain.ActionAttack, "")
	require.NoError(t, err)
	assert.Equal(t, domain.CombatStateVictory, enc.State)

	stored, err := svc.profiles.Get(ctx, "p1")
	require.NoError(t, err)
	// 100 XP from the kill plus 10 from the defeat-enemies quest
	assert.Equal(t, 110, stored.Experience)
	assert.Equal(t, domain.InitialGold+30, stored.Gold)
	assert.Equal(t, stored.Health.Max-4, stored.Health.Current)
}

func TestDiscoverLocationCompletesAchievementAndQuest(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)

	player, err := svc.DiscoverLocation(ctx, "p1", "mosswick")
	require.NoError(t, err)
	require.Contains(t, player.Achievements, "mosswick")
	assert.True(t, player.Achievements["mosswick"].Completed)

	quests, err := svc.Quests(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, quests, 2)
	for _, q := range quests {
		assert.NotEqual(t, quest.ObjectiveDiscoverLocations, q.QuestKey)
	}

	_, err = svc.DiscoverLocation(ctx, "p1", "atlantis")
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)
}

func TestTrackAchievement(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)
	_, err = svc.DiscoverLocation(ctx, "p1", "mosswick")
	require.NoError(t, err)

	require.NoError(t, svc.TrackAchievement(ctx, "p1", "mosswick"))

	list, err := svc.Achievements(ctx, "p1")
	require.NoError(t, err)
	var tracked int
	for _, a := range list {
		if a.IsTracked {
			tracked++
		}
	}
	assert.Equal(t, 1, tracked)

	require.NoError(t, svc.UntrackAchievement(ctx, "p1", "mosswick"))

	err = svc.TrackAchievement(ctx, "p1", "realm:nowhere")
	assert.ErrorIs(t, err, domain.ErrAchievementNotFound)
}

func TestTickRegenerates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	player, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)
	start := player.LastRegenerationTime

	player.Health.Current = 40
	player, err = svc.Tick(ctx, "p1", start.Add(10*time.Minute))
	require.NoError(t, err)
	// two 5-minute intervals at 1% of max 100
	assert.Equal(t, 42, player.Health.Current)
}

func TestDeleteRemovesProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "p1", "strider")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "p1"))

	_, err = svc.Get(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}
