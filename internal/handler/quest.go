package handler

import (
	"net/http"

	"github.com/striderquest/StriderQuest_Go/internal/player"
)

// HandleGetQuests lists the active daily and weekly quests for a player,
// regenerating any expired sets first
func HandleGetQuests(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		quests, err := svc.Quests(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: quests})
	}
}
