package handler

import (
	"net/http"
	"time"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/player"
)

type RegisterPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Username string `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleRegisterPlayer loads a player profile, creating it on first contact
func HandleRegisterPlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterPlayerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register player"); err != nil {
			return
		}

		p, err := svc.GetOrCreate(r.Context(), req.PlayerID, req.Username)
		if err != nil {
			log.Error("Failed to register player", "error", err, "playerID", req.PlayerID)
			respondError(w, http.StatusInternalServerError, ErrMsgRegisterPlayerFailed)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

// HandleGetProfile returns the player record
func HandleGetProfile(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		p, err := svc.Get(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

type ChooseClassRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	Class    string `json:"class" validate:"required,class"`
}

// HandleChooseClass binds a class to a classless player
func HandleChooseClass(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChooseClassRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Choose class"); err != nil {
			return
		}

		p, err := svc.ChooseClass(r.Context(), req.PlayerID, domain.PlayerClass(req.Class))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

// HandleDeleteProfile removes a player record and its quest log
func HandleDeleteProfile(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), playerID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to delete profile", "error", err, "playerID", playerID)
			respondError(w, http.StatusInternalServerError, ErrMsgDeleteProfileFailed)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProfileDeleted})
	}
}

// HandleTick advances elapsed-time effects for a player and returns the
// updated record
func HandleTick(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		p, err := svc.Tick(r.Context(), playerID, time.Now().UTC())
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}
