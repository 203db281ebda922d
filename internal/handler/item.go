package handler

import (
	"net/http"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/player"
)

type GrantItemRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	ItemName string `json:"item_name" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleGrantItem adds a catalog item to a player's inventory
func HandleGrantItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant item"); err != nil {
			return
		}

		p, err := svc.GrantItem(r.Context(), req.PlayerID, req.ItemName, req.Quantity)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		log.Info("Item granted", "playerID", req.PlayerID, "item", req.ItemName, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgItemGrantedSuccess, Data: p})
	}
}

type UseItemRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	ItemID   string `json:"item_id" validate:"required,max=64"`
}

// HandleUseItem consumes one unit of an inventory item
func HandleUseItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UseItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Use item"); err != nil {
			return
		}

		p, err := svc.UseItem(r.Context(), req.PlayerID, req.ItemID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

type EquipItemRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	ItemID   string `json:"item_id" validate:"required,max=64"`
}

// HandleEquipItem equips an inventory item into its slot
func HandleEquipItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		p, err := svc.EquipItem(r.Context(), req.PlayerID, req.ItemID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

type UnequipItemRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	Slot     string `json:"slot" validate:"required,max=32"`
}

// HandleUnequipItem returns an equipped item to the inventory
func HandleUnequipItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnequipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
			return
		}

		p, err := svc.UnequipItem(r.Context(), req.PlayerID, domain.EquipmentSlot(req.Slot))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}
