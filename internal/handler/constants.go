package handler

// Generic HTTP error messages for client responses. These intentionally do
// not expose internal error details. Handlers and tests reference these
// constants to stay consistent.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"

	ErrMsgRegisterPlayerFailed = "Failed to register player"
	ErrMsgGetProfileFailed     = "Failed to load profile"
	ErrMsgDeleteProfileFailed  = "Failed to delete profile"

	ErrMsgGrantItemFailed = "Failed to grant item"
	ErrMsgUseItemFailed   = "Failed to use item"
	ErrMsgEquipFailed     = "Failed to equip item"
	ErrMsgUnequipFailed   = "Failed to unequip item"

	ErrMsgStartCombatFailed  = "Failed to start combat"
	ErrMsgCombatActionFailed = "Failed to perform combat action"

	ErrMsgDiscoveryFailed       = "Failed to record discovery"
	ErrMsgGetAchievementsFailed = "Failed to load achievements"
	ErrMsgTrackFailed           = "Failed to update tracked achievements"

	ErrMsgGetQuestsFailed = "Failed to load quests"
)

// Success messages returned in JSON responses
const (
	MsgItemGrantedSuccess = "Item granted successfully"
	MsgProfileDeleted     = "Profile deleted"
	MsgTrackingUpdated    = "Tracking updated"
)
