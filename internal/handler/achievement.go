package handler

import (
	"net/http"

	"github.com/striderquest/StriderQuest_Go/internal/logger"
	"github.com/striderquest/StriderQuest_Go/internal/player"
)

type DiscoverLocationRequest struct {
	PlayerID   string `json:"player_id" validate:"required,max=64"`
	LocationID string `json:"location_id" validate:"required,max=100"`
}

// HandleDiscoverLocation records a first visit to a territory and resolves
// the achievement hierarchy it feeds
func HandleDiscoverLocation(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DiscoverLocationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Discover location"); err != nil {
			return
		}

		p, err := svc.DiscoverLocation(r.Context(), req.PlayerID, req.LocationID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		logger.FromContext(r.Context()).Info("Location discovered", "playerID", req.PlayerID, "locationID", req.LocationID)
		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

// HandleGetAchievements lists all achievement progress for a player
func HandleGetAchievements(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		list, err := svc.Achievements(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}

type TrackAchievementRequest struct {
	PlayerID      string `json:"player_id" validate:"required,max=64"`
	AchievementID string `json:"achievement_id" validate:"required,max=100"`
	Tracked       bool   `json:"tracked"`
}

// HandleTrackAchievement adds or removes an achievement from the tracked
// subset
func HandleTrackAchievement(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TrackAchievementRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Track achievement"); err != nil {
			return
		}

		var err error
		if req.Tracked {
			err = svc.TrackAchievement(r.Context(), req.PlayerID, req.AchievementID)
		} else {
			err = svc.UntrackAchievement(r.Context(), req.PlayerID, req.AchievementID)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTrackingUpdated})
	}
}
