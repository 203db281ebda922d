package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// fakePlayerService implements player.Service with overridable function
// fields. Unset fields return zero values.
type fakePlayerService struct {
	getOrCreateFn      func(ctx context.Context, playerID, username string) (*domain.Player, error)
	getFn              func(ctx context.Context, playerID string) (*domain.Player, error)
	chooseClassFn      func(ctx context.Context, playerID string, class domain.PlayerClass) (*domain.Player, error)
	deleteFn           func(ctx context.Context, playerID string) error
	grantItemFn        func(ctx context.Context, playerID, itemName string, quantity int) (*domain.Player, error)
	useItemFn          func(ctx context.Context, playerID, itemID string) (*domain.Player, error)
	equipItemFn        func(ctx context.Context, playerID, itemID string) (*domain.Player, error)
	unequipItemFn      func(ctx context.Context, playerID string, slot domain.EquipmentSlot) (*domain.Player, error)
	startCombatFn      func(ctx context.Context, playerID string, enemy domain.Enemy) (*domain.Encounter, error)
	combatActionFn     func(ctx context.Context, playerID string, action domain.CombatAction, itemID string) (*domain.Encounter, error)
	encounterFn        func(playerID string) (*domain.Encounter, bool)
	discoverLocationFn func(ctx context.Context, playerID, locationID string) (*domain.Player, error)
	trackFn            func(ctx context.Context, playerID, achievementID string) error
	untrackFn          func(ctx context.Context, playerID, achievementID string) error
	achievementsFn     func(ctx context.Context, playerID string) ([]domain.AchievementProgress, error)
	questsFn           func(ctx context.Context, playerID string) ([]domain.Quest, error)
	tickFn             func(ctx context.Context, playerID string, now time.Time) (*domain.Player, error)
}

func (f *fakePlayerService) GetOrCreate(ctx context.Context, playerID, username string) (*domain.Player, error) {
	if f.getOrCreateFn != nil {
		return f.getOrCreateFn(ctx, playerID, username)
	}
	return nil, nil
}

func (f *fakePlayerService) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	if f.getFn != nil {
		return f.getFn(ctx, playerID)
	}
	return nil, nil
}

func (f *fakePlayerService) ChooseClass(ctx context.Context, playerID string, class domain.PlayerClass) (*domain.Player, error) {
	if f.chooseClassFn != nil {
		return f.chooseClassFn(ctx, playerID, class)
	}
	return nil, nil
}

func (f *fakePlayerService) Delete(ctx context.Context, playerID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, playerID)
	}
	return nil
}

func (f *fakePlayerService) GrantItem(ctx context.Context, playerID, itemName string, quantity int) (*domain.Player, error) {
	if f.grantItemFn != nil {
		return f.grantItemFn(ctx, playerID, itemName, quantity)
	}
	return nil, nil
}

func (f *fakePlayerService) UseItem(ctx context.Context, playerID, itemID string) (*domain.Player, error) {
	if f.useItemFn != nil {
		return f.useItemFn(ctx, playerID, itemID)
	}
	return nil, nil
}

func (f *fakePlayerService) EquipItem(ctx context.Context, playerID, itemID string) (*domain.Player, error) {
	if f.equipItemFn != nil {
		return f.equipItemFn(ctx, playerID, itemID)
	}
	return nil, nil
}

func (f *fakePlayerService) UnequipItem(ctx context.Context, playerID string, slot domain.EquipmentSlot) (*domain.Player, error) {
	if f.unequipItemFn != nil {
		return f.unequipItemFn(ctx, playerID, slot)
	}
	return nil, nil
}

func (f *fakePlayerService) StartCombat(ctx context.Context, playerID string, enemy domain.Enemy) (*domain.Encounter, error) {
	if f.startCombatFn != nil {
		return f.startCombatFn(ctx, playerID, enemy)
	}
	return nil, nil
}

func (f *fakePlayerService) CombatAction(ctx context.Context, playerID string, action domain.CombatAction, itemID string) (*domain.Encounter, error) {
	if f.combatActionFn != nil {
		return f.combatActionFn(ctx, playerID, action, itemID)
	}
	return nil, nil
}

func (f *fakePlayerService) Encounter(playerID string) (*domain.Encounter, bool) {
	if f.encounterFn != nil {
		return f.encounterFn(playerID)
	}
	return nil, false
}

func (f *fakePlayerService) DiscoverLocation(ctx context.Context, playerID, locationID string) (*domain.Player, error) {
	if f.discoverLocationFn != nil {
		return f.discoverLocationFn(ctx, playerID, locationID)
	}
	return nil, nil
}

func (f *fakePlayerService) TrackAchievement(ctx context.Context, playerID, achievementID string) error {
	if f.trackFn != nil {
		return f.trackFn(ctx, playerID, achievementID)
	}
	return nil
}

func (f *fakePlayerService) UntrackAchievement(ctx context.Context, playerID, achievementID string) error {
	if f.untrackFn != nil {
		return f.untrackFn(ctx, playerID, achievementID)
	}
	return nil
}

func (f *fakePlayerService) Achievements(ctx context.Context, playerID string) ([]domain.AchievementProgress, error) {
	if f.achievementsFn != nil {
		return f.achievementsFn(ctx, playerID)
	}
	return nil, nil
}

func (f *fakePlayerService) Quests(ctx context.Context, playerID string) ([]domain.Quest, error) {
	if f.questsFn != nil {
		return f.questsFn(ctx, playerID)
	}
	return nil, nil
}

func (f *fakePlayerService) Tick(ctx context.Context, playerID string, now time.Time) (*domain.Player, error) {
	if f.tickFn != nil {
		return f.tickFn(ctx, playerID, now)
	}
	return nil, nil
}

func (f *fakePlayerService) ActivePlayerIDs() []string { return nil }

func (f *fakePlayerService) RunCombatTurn(ctx context.Context, playerID string, fn func(player *domain.Player)) {
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf []byte
	if s, ok := body.(string); ok {
		buf = []byte(s)
	} else {
		var err error
		buf, err = json.Marshal(body)
		assert.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(buf))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleRegisterPlayer(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "not json",
			svc:            &fakePlayerService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing Username",
			reqBody:        RegisterPlayerRequest{PlayerID: "walker-1"},
			svc:            &fakePlayerService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:    "Service Error",
			reqBody: RegisterPlayerRequest{PlayerID: "walker-1", Username: "strider"},
			svc: &fakePlayerService{
				getOrCreateFn: func(_ context.Context, _, _ string) (*domain.Player, error) {
					return nil, errors.New("db down")
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgRegisterPlayerFailed,
		},
		{
			name:    "Success",
			reqBody: RegisterPlayerRequest{PlayerID: "walker-1", Username: "strider"},
			svc: &fakePlayerService{
				getOrCreateFn: func(_ context.Context, playerID, username string) (*domain.Player, error) {
					return domain.NewPlayer(playerID, username, time.Now().UTC()), nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"strider"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleRegisterPlayer(tt.svc), "/api/v1/player/register", tt.reqBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing Param",
			query:          "",
			svc:            &fakePlayerService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing player_id query parameter",
		},
		{
			name:  "Not Found",
			query: "?player_id=ghost",
			svc: &fakePlayerService{
				getFn: func(_ context.Context, _ string) (*domain.Player, error) {
					return nil, domain.ErrPlayerNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgPlayerNotFoundError,
		},
		{
			name:  "Success",
			query: "?player_id=walker-1",
			svc: &fakePlayerService{
				getFn: func(_ context.Context, playerID string) (*domain.Player, error) {
					return domain.NewPlayer(playerID, "strider", time.Now().UTC()), nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"walker-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/player"+tt.query, nil)
			rec := httptest.NewRecorder()
			HandleGetProfile(tt.svc)(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleChooseClass(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Unknown Class",
			reqBody:        ChooseClassRequest{PlayerID: "walker-1", Class: "necromancer"},
			svc:            &fakePlayerService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid class",
		},
		{
			name:    "Class Already Bound",
			reqBody: ChooseClassRequest{PlayerID: "walker-1", Class: "mage"},
			svc: &fakePlayerService{
				chooseClassFn: func(_ context.Context, _ string, _ domain.PlayerClass) (*domain.Player, error) {
					return nil, domain.ErrInvalidInput
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidInputError,
		},
		{
			name:    "Success",
			reqBody: ChooseClassRequest{PlayerID: "walker-1", Class: "knight"},
			svc: &fakePlayerService{
				chooseClassFn: func(_ context.Context, playerID string, class domain.PlayerClass) (*domain.Player, error) {
					p := domain.NewPlayer(playerID, "strider", time.Now().UTC())
					p.Class = class
					return p, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"class":"knight"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleChooseClass(tt.svc), "/api/v1/player/class", tt.reqBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGrantItem(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Zero Quantity",
			reqBody:        GrantItemRequest{PlayerID: "walker-1", ItemName: "Minor Healing Potion", Quantity: 0},
			svc:            &fakePlayerService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be at least 1",
		},
		{
			name:    "Unknown Item",
			reqBody: GrantItemRequest{PlayerID: "walker-1", ItemName: "Sword of Nonsense", Quantity: 1},
			svc: &fakePlayerService{
				grantItemFn: func(_ context.Context, _, _ string, _ int) (*domain.Player, error) {
					return nil, domain.ErrItemNotFound
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgItemNotFoundError,
		},
		{
			name:    "Success",
			reqBody: GrantItemRequest{PlayerID: "walker-1", ItemName: "Minor Healing Potion", Quantity: 3},
			svc: &fakePlayerService{
				grantItemFn: func(_ context.Context, playerID, _ string, _ int) (*domain.Player, error) {
					return domain.NewPlayer(playerID, "strider", time.Now().UTC()), nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgItemGrantedSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleGrantItem(tt.svc), "/api/v1/item/grant", tt.reqBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleStartCombat(t *testing.T) {
	InitValidator()

	validReq := func() StartCombatRequest {
		var req StartCombatRequest
		req.PlayerID = "walker-1"
		req.Enemy.Name = "Mudling"
		req.Enemy.Level = 1
		req.Enemy.MaxHealth = 10
		req.Enemy.Attack = 2
		req.Enemy.AttackType = "melee"
		req.Enemy.XPReward = 20
		req.Enemy.GoldReward = 5
		return req
	}

	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Bad Attack Type",
			reqBody: func() StartCombatRequest {
				req := validReq()
				req.Enemy.AttackType = "psychic"
				return req
			}(),
			svc:            &fakePlayerService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:    "Already In Combat",
			reqBody: validReq(),
			svc: &fakePlayerService{
				startCombatFn: func(_ context.Context, _ string, _ domain.Enemy) (*domain.Encounter, error) {
					return nil, domain.ErrCombatActive
				},
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgCombatActiveError,
		},
		{
			name:    "Dead Player",
			reqBody: validReq(),
			svc: &fakePlayerService{
				startCombatFn: func(_ context.Context, _ string, _ domain.Enemy) (*domain.Encounter, error) {
					return nil, domain.ErrPlayerDead
				},
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgPlayerDeadError,
		},
		{
			name:    "Success",
			reqBody: validReq(),
			svc: &fakePlayerService{
				startCombatFn: func(_ context.Context, playerID string, enemy domain.Enemy) (*domain.Encounter, error) {
					return &domain.Encounter{PlayerID: playerID, Enemy: enemy, State: domain.CombatStatePlayerTurn}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"state":"player_turn"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleStartCombat(tt.svc), "/api/v1/combat/start", tt.reqBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleCombatAction(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Unknown Action",
			reqBody:        CombatActionRequest{PlayerID: "walker-1", Action: "dance"},
			svc:            &fakePlayerService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid combat action",
		},
		{
			name:    "Not Player Turn",
			reqBody: CombatActionRequest{PlayerID: "walker-1", Action: "attack"},
			svc: &fakePlayerService{
				combatActionFn: func(_ context.Context, _ string, _ domain.CombatAction, _ string) (*domain.Encounter, error) {
					return nil, domain.ErrNotPlayerTurn
				},
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgNotPlayerTurnError,
		},
		{
			name:    "Success",
			reqBody: CombatActionRequest{PlayerID: "walker-1", Action: "defend"},
			svc: &fakePlayerService{
				combatActionFn: func(_ context.Context, playerID string, _ domain.CombatAction, _ string) (*domain.Encounter, error) {
					return &domain.Encounter{PlayerID: playerID, State: domain.CombatStateEnemyTurn, Defending: true}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"defending":true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleCombatAction(tt.svc), "/api/v1/combat/action", tt.reqBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetEncounter(t *testing.T) {
	t.Run("No Active Combat", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/combat?player_id=walker-1", nil)
		rec := httptest.NewRecorder()
		HandleGetEncounter(&fakePlayerService{})(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgNoActiveCombatError)
	})

	t.Run("Live Encounter", func(t *testing.T) {
		svc := &fakePlayerService{
			encounterFn: func(playerID string) (*domain.Encounter, bool) {
				return &domain.Encounter{PlayerID: playerID, State: domain.CombatStatePlayerTurn}, true
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/combat?player_id=walker-1", nil)
		rec := httptest.NewRecorder()
		HandleGetEncounter(svc)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"player_id":"walker-1"`)
	})
}

func TestHandleDiscoverLocation(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Unknown Location",
			reqBody: DiscoverLocationRequest{PlayerID: "walker-1", LocationID: "atlantis"},
			svc: &fakePlayerService{
				discoverLocationFn: func(_ context.Context, _, _ string) (*domain.Player, error) {
					return nil, domain.ErrUnknownLocation
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgUnknownLocationError,
		},
		{
			name:    "Success",
			reqBody: DiscoverLocationRequest{PlayerID: "walker-1", LocationID: "mosswick"},
			svc: &fakePlayerService{
				discoverLocationFn: func(_ context.Context, playerID, locationID string) (*domain.Player, error) {
					p := domain.NewPlayer(playerID, "strider", time.Now().UTC())
					p.Achievements["discover_"+locationID] = &domain.AchievementProgress{
						AchievementID: "discover_" + locationID,
						Kind:          domain.AchievementTerritory,
						Progress:      1,
						Completed:     true,
					}
					return p, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "discover_mosswick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleDiscoverLocation(tt.svc), "/api/v1/discovery", tt.reqBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleTrackAchievement(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		reqBody        interface{}
		svc            *fakePlayerService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Unknown Achievement",
			reqBody: TrackAchievementRequest{PlayerID: "walker-1", AchievementID: "ghost_badge", Tracked: true},
			svc: &fakePlayerService{
				trackFn: func(_ context.Context, _, _ string) error {
					return domain.ErrAchievementNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgAchievementNotFoundErr,
		},
		{
			name:    "Tracking Limit",
			reqBody: TrackAchievementRequest{PlayerID: "walker-1", AchievementID: "discover_aurelia", Tracked: true},
			svc: &fakePlayerService{
				trackFn: func(_ context.Context, _, _ string) error {
					return domain.ErrTrackingLimit
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgTrackingLimitError,
		},
		{
			name:    "Track Success",
			reqBody: TrackAchievementRequest{PlayerID: "walker-1", AchievementID: "discover_aurelia", Tracked: true},
			svc: &fakePlayerService{
				trackFn: func(_ context.Context, _, _ string) error { return nil },
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgTrackingUpdated,
		},
		{
			name:    "Untrack Success",
			reqBody: TrackAchievementRequest{PlayerID: "walker-1", AchievementID: "discover_aurelia", Tracked: false},
			svc: &fakePlayerService{
				untrackFn: func(_ context.Context, _, _ string) error { return nil },
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgTrackingUpdated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleTrackAchievement(tt.svc), "/api/v1/achievements/track", tt.reqBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetQuests(t *testing.T) {
	t.Run("Missing Param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/quests", nil)
		rec := httptest.NewRecorder()
		HandleGetQuests(&fakePlayerService{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing player_id query parameter")
	})

	t.Run("Success", func(t *testing.T) {
		svc := &fakePlayerService{
			questsFn: func(_ context.Context, _ string) ([]domain.Quest, error) {
				return []domain.Quest{{
					ID:          "q-1",
					QuestKey:    "defeat_enemies",
					Scope:       domain.QuestScopeDaily,
					Description: "Defeat 3 enemies",
					TargetCount: 3,
					XPReward:    10,
				}}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/quests?player_id=walker-1", nil)
		rec := httptest.NewRecorder()
		HandleGetQuests(svc)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"quest_key":"defeat_enemies"`)
	})
}
