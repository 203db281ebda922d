package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to a buffer first; headers are already sent if encoding fails
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing messages for domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPlayerNotFoundError      = "Player not found"
	ErrMsgPlayerDeadError          = "Your character is dead"
	ErrMsgItemNotFoundError        = "Item not found"
	ErrMsgItemNotUsableError       = "That item cannot be used"
	ErrMsgNotEquippableError       = "That item cannot be equipped"
	ErrMsgClassRequirementError    = "Your class cannot equip that"
	ErrMsgLevelRequirementError    = "Your level is too low to equip that"
	ErrMsgSlotEmptyError           = "Nothing is equipped in that slot"
	ErrMsgRevivalReservedError     = "Revival items activate automatically on defeat"
	ErrMsgInsufficientItemsError   = "Not enough items"
	ErrMsgNotEnoughGoldError       = "Not enough gold"
	ErrMsgCombatActiveError        = "You are already in combat"
	ErrMsgNoActiveCombatError      = "You are not in combat"
	ErrMsgNotPlayerTurnError       = "It is not your turn"
	ErrMsgCombatResolvedError      = "That encounter is already over"
	ErrMsgAchievementNotFoundErr   = "Achievement not found"
	ErrMsgUnknownLocationError     = "Unknown location"
	ErrMsgTrackingLimitError       = "You can track at most 3 achievements"
	ErrMsgQuestNotFoundError       = "Quest not found"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-facing HTTP
// responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrPlayerDead):
		return http.StatusConflict, ErrMsgPlayerDeadError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrItemNotUsable):
		return http.StatusBadRequest, ErrMsgItemNotUsableError
	case errors.Is(err, domain.ErrNotEquippable):
		return http.StatusBadRequest, ErrMsgNotEquippableError
	case errors.Is(err, domain.ErrClassRequirement):
		return http.StatusBadRequest, ErrMsgClassRequirementError
	case errors.Is(err, domain.ErrLevelRequirement):
		return http.StatusBadRequest, ErrMsgLevelRequirementError
	case errors.Is(err, domain.ErrSlotEmpty):
		return http.StatusBadRequest, ErrMsgSlotEmptyError
	case errors.Is(err, domain.ErrRevivalReserved):
		return http.StatusBadRequest, ErrMsgRevivalReservedError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItemsError
	case errors.Is(err, domain.ErrInsufficientGold):
		return http.StatusBadRequest, ErrMsgNotEnoughGoldError
	case errors.Is(err, domain.ErrCombatActive):
		return http.StatusConflict, ErrMsgCombatActiveError
	case errors.Is(err, domain.ErrNoActiveCombat):
		return http.StatusBadRequest, ErrMsgNoActiveCombatError
	case errors.Is(err, domain.ErrNotPlayerTurn):
		return http.StatusConflict, ErrMsgNotPlayerTurnError
	case errors.Is(err, domain.ErrCombatResolved):
		return http.StatusConflict, ErrMsgCombatResolvedError
	case errors.Is(err, domain.ErrAchievementNotFound):
		return http.StatusNotFound, ErrMsgAchievementNotFoundErr
	case errors.Is(err, domain.ErrUnknownLocation):
		return http.StatusBadRequest, ErrMsgUnknownLocationError
	case errors.Is(err, domain.ErrTrackingLimit):
		return http.StatusBadRequest, ErrMsgTrackingLimitError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps a domain error and writes the response
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
