package handler

import (
	"net/http"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/player"
)

type StartCombatRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	Enemy    struct {
		Name       string `json:"name" validate:"required,max=100"`
		Level      int    `json:"level" validate:"min=1,max=1000"`
		MaxHealth  int    `json:"max_health" validate:"min=1"`
		Attack     int    `json:"attack" validate:"min=0"`
		Defense    int    `json:"defense" validate:"min=0"`
		AttackType string `json:"attack_type" validate:"required,oneof=melee magic ranged"`
		XPReward   int    `json:"xp_reward" validate:"min=0"`
		GoldReward int    `json:"gold_reward" validate:"min=0"`
	} `json:"enemy"`
}

// HandleStartCombat opens an encounter against the submitted enemy
func HandleStartCombat(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartCombatRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start combat"); err != nil {
			return
		}

		enemy := domain.Enemy{
			Name:       req.Enemy.Name,
			Level:      req.Enemy.Level,
			MaxHealth:  req.Enemy.MaxHealth,
			Attack:     req.Enemy.Attack,
			Defense:    req.Enemy.Defense,
			AttackType: domain.AttackType(req.Enemy.AttackType),
			XPReward:   req.Enemy.XPReward,
			GoldReward: req.Enemy.GoldReward,
		}

		enc, err := svc.StartCombat(r.Context(), req.PlayerID, enemy)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: enc})
	}
}

type CombatActionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	Action   string `json:"action" validate:"required,combat_action"`
	ItemID   string `json:"item_id,omitempty" validate:"max=64"`
}

// HandleCombatAction submits a player command for the current turn
func HandleCombatAction(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CombatActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Combat action"); err != nil {
			return
		}

		enc, err := svc.CombatAction(r.Context(), req.PlayerID, domain.CombatAction(req.Action), req.ItemID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: enc})
	}
}

// HandleGetEncounter returns the player's live encounter, if any
func HandleGetEncounter(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		enc, active := svc.Encounter(playerID)
		if !active {
			respondError(w, http.StatusNotFound, ErrMsgNoActiveCombatError)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: enc})
	}
}
