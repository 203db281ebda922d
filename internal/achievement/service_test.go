package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/striderquest/StriderQuest_Go/internal/config"
	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/notify"
)

type mockProgression struct {
	xpGranted   int
	goldGranted int
	reasons     []string
}

func (m *mockProgression) AddExperience(_ context.Context, _ *domain.Player, amount int, reason string) int {
	m.xpGranted += amount
	m.reasons = append(m.reasons, reason)
	return 0
}

func (m *mockProgression) GrantGold(_ context.Context, _ *domain.Player, amount int, _ string) {
	m.goldGranted += amount
}

func testWorld() domain.WorldAtlas {
	return domain.WorldAtlas{
		Version: "1",
		Continents: []domain.Continent{
			{
				Key:  "aurelia",
				Name: "Aurelia",
				Realms: []domain.Realm{
					{
						Key:  "verdant_vale",
						Name: "Verdant Vale",
						Territories: []domain.Territory{
							{LocationID: "mosswick", Name: "Mosswick"},
							{LocationID: "fernhollow", Name: "Fernhollow"},
						},
					},
					{
						Key:  "ember_steppe",
						Name: "Ember Steppe",
						Territories: []domain.Territory{
							{LocationID: "ashford", Name: "Ashford"},
						},
					},
				},
			},
			{
				Key:  "nordreach",
				Name: "Nordreach",
				Realms: []domain.Realm{
					{
						Key:  "frostmere",
						Name: "Frostmere",
						Territories: []domain.Territory{
							{LocationID: "icewatch"},
						},
					},
				},
			},
		},
	}
}

func newTestService(t *testing.T) (Service, *mockProgression, *notify.Recorder) {
	t.Helper()
	atlas, err := NewAtlas(testWorld())
	require.NoError(t, err)

	prog := &mockProgression{}
	recorder := notify.NewRecorder()
	return NewService(atlas, prog, recorder, nil), prog, recorder
}

func newTestPlayer() *domain.Player {
	return domain.NewPlayer("player-1", "tester", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestNewAtlasRejectsDuplicateLocations(t *testing.T) {
	world := testWorld()
	world.Continents[1].Realms[0].Territories = append(world.Continents[1].Realms[0].Territories,
		domain.Territory{LocationID: "mosswick"})

	_, err := NewAtlas(world)

	assert.ErrorContains(t, err, "duplicate location ID")
}

func TestNewAtlasRejectsEmptyWorld(t *testing.T) {
	_, err := NewAtlas(domain.WorldAtlas{})
	assert.Error(t, err)
}

func TestAtlasDerivesDisplayNames(t *testing.T) {
	atlas, err := NewAtlas(testWorld())
	require.NoError(t, err)

	territory, realmKey, continentKey, ok := atlas.Lookup("icewatch")
	require.True(t, ok)
	assert.Equal(t, "Icewatch", territory.Name)
	assert.Equal(t, "frostmere", realmKey)
	assert.Equal(t, "nordreach", continentKey)
}

func TestDiscoverCompletesTerritory(t *testing.T) {
	svc, prog, recorder := newTestService(t)
	player := newTestPlayer()

	err := svc.OnLocationDiscovered(context.Background(), player, "mosswick")
	require.NoError(t, err)

	territory := player.Achievements["mosswick"]
	require.NotNil(t, territory)
	assert.True(t, territory.Completed)
	assert.Equal(t, float64(1), territory.Progress)

	realm := player.Achievements[RealmAchievementID("verdant_vale")]
	require.NotNil(t, realm)
	assert.Equal(t, 0.5, realm.Progress)
	assert.False(t, realm.Completed)

	meta := player.Achievements[MetaAchievementID]
	require.NotNil(t, meta)
	assert.Equal(t, 0.25, meta.Progress)

	assert.Equal(t, config.TerritoryXPReward, prog.xpGranted)
	assert.Equal(t, config.TerritoryGoldReward, prog.goldGranted)
	assert.Equal(t, 1, recorder.Count("Achievement Unlocked"))
}

func TestLastLocationInRealmCompletesRealm(t *testing.T) {
	svc, prog, recorder := newTestService(t)
	player := newTestPlayer()

	require.NoError(t, svc.OnLocationDiscovered(context.Background(), player, "mosswick"))
	require.NoError(t, svc.OnLocationDiscovered(context.Background(), player, "fernhollow"))

	realm := player.Achievements[RealmAchievementID("verdant_vale")]
	require.NotNil(t, realm)
	assert.True(t, realm.Completed)
	assert.Equal(t, float64(1), realm.Progress)

	continent := player.Achievements[ContinentAchievementID("aurelia")]
	require.NotNil(t, continent)
	assert.Equal(t, 0.5, continent.Progress)
	assert.False(t, continent.Completed)

	// two territories and one realm
	expectedXP := 2*config.TerritoryXPReward + config.RealmXPReward
	expectedGold := 2*config.TerritoryGoldReward + config.RealmGoldReward
	assert.Equal(t, expectedXP, prog.xpGranted)
	assert.Equal(t, expectedGold, prog.goldGranted)
	assert.Equal(t, 3, recorder.Count("Achievement Unlocked"))
}

func TestReplayedDiscoveryPaysNothing(t *testing.T) {
	svc, prog, recorder := newTestService(t)
	player := newTestPlayer()

	require.NoError(t, svc.OnLocationDiscovered(context.Background(), player, "mosswick"))
	require.NoError(t, svc.OnLocationDiscovered(context.Background(), player, "fernhollow"))
	xpBefore, goldBefore := prog.xpGranted, prog.goldGranted
	notificationsBefore := recorder.Count("Achievement Unlocked")

	require.NoError(t, svc.OnLocationDiscovered(context.Background(), player, "fernhollow"))

	assert.Equal(t, xpBefore, prog.xpGranted)
	assert.Equal(t, goldBefore, prog.goldGranted)
	assert.Equal(t, notificationsBefore, recorder.Count("Achievement Unlocked"))
	assert.True(t, player.Achievements[RealmAchievementID("verdant_vale")].Completed)
}

func TestFullDiscoveryCompletesContinentsAndMeta(t *testing.T) {
	svc, prog, _ := newTestService(t)
	player := newTestPlayer()

	for _, id := range []string{"mosswick", "fernhollow", "ashford", "icewatch"} {
		require.NoError(t, svc.OnLocationDiscovered(context.Background(), player, id))
	}

	assert.True(t, player.Achievements[ContinentAchievementID("aurelia")].Completed)
	assert.True(t, player.Achievements[ContinentAchievementID("nordreach")].Completed)

	meta := player.Achievements[MetaAchievementID]
	require.NotNil(t, meta)
	assert.True(t, meta.Completed)
	assert.Equal(t, float64(1), meta.Progress)

	expectedXP := 4*config.TerritoryXPReward + 3*config.RealmXPReward + 2*config.ContinentXPReward + config.MetaXPReward
	assert.Equal(t, expectedXP, prog.xpGranted)
}

func TestDiscoverUnknownLocation(t *testing.T) {
	svc, prog, _ := newTestService(t)
	player := newTestPlayer()

	err := svc.OnLocationDiscovered(context.Background(), player, "atlantis")

	assert.ErrorIs(t, err, domain.ErrUnknownLocation)
	assert.Zero(t, prog.xpGranted)
	assert.Empty(t, player.Achievements)
}

func TestTrackLimit(t *testing.T) {
	svc, _, recorder := newTestService(t)
	player := newTestPlayer()

	for _, id := range []string{"mosswick", "fernhollow", "ashford"} {
		require.NoError(t, svc.OnLocationDiscovered(context.Background(), player, id))
	}

	require.NoError(t, svc.Track(context.Background(), player, "mosswick"))
	require.NoError(t, svc.Track(context.Background(), player, "fernhollow"))
	require.NoError(t, svc.Track(context.Background(), player, "ashford"))

	err := svc.Track(context.Background(), player, MetaAchievementID)
	assert.ErrorIs(t, err, domain.ErrTrackingLimit)
	assert.Equal(t, 1, recorder.Count("Tracking Limit"))
	assert.Len(t, svc.Tracked(player), 3)

	// tracking an already-tracked achievement stays a no-op
	require.NoError(t, svc.Track(context.Background(), player, "mosswick"))
	assert.Len(t, svc.Tracked(player), 3)

	// untracking frees a slot
	require.NoError(t, svc.Untrack(context.Background(), player, "mosswick"))
	require.NoError(t, svc.Track(context.Background(), player, MetaAchievementID))
	assert.Len(t, svc.Tracked(player), 3)
}

func TestTrackUnknownAchievement(t *testing.T) {
	svc, _, _ := newTestService(t)
	player := newTestPlayer()

	err := svc.Track(context.Background(), player, "realm:nowhere")

	assert.ErrorIs(t, err, domain.ErrAchievementNotFound)
}
