package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgPlayerDead     = "player is dead"

	// Item errors
	ErrMsgItemNotFound     = "item not found"
	ErrMsgItemNotUsable    = "item has no usable effect"
	ErrMsgNotEquippable    = "item is not equippable"
	ErrMsgClassRequirement = "class requirement not met"
	ErrMsgLevelRequirement = "level requirement not met"
	ErrMsgSlotEmpty        = "equipment slot is empty"
	ErrMsgRevivalReserved  = "revival items activate automatically"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Gold errors
	ErrMsgInsufficientGold = "insufficient gold"

	// Combat errors
	ErrMsgCombatActive     = "a combat encounter is already active"
	ErrMsgNoActiveCombat   = "no active combat encounter"
	ErrMsgNotPlayerTurn    = "not the player's turn"
	ErrMsgCombatResolved   = "combat encounter already resolved"

	// Achievement errors
	ErrMsgAchievementNotFound = "achievement not found"
	ErrMsgUnknownLocation     = "unknown location"
	ErrMsgTrackingLimit       = "tracking limit reached"

	// Quest errors
	ErrMsgQuestNotFound = "quest not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrPlayerDead     = errors.New(ErrMsgPlayerDead)

	// Item errors
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrItemNotUsable    = errors.New(ErrMsgItemNotUsable)
	ErrNotEquippable    = errors.New(ErrMsgNotEquippable)
	ErrClassRequirement = errors.New(ErrMsgClassRequirement)
	ErrLevelRequirement = errors.New(ErrMsgLevelRequirement)
	ErrSlotEmpty        = errors.New(ErrMsgSlotEmpty)
	ErrRevivalReserved  = errors.New(ErrMsgRevivalReserved)

	// Inventory errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// Gold errors
	ErrInsufficientGold = errors.New(ErrMsgInsufficientGold)

	// Combat errors
	ErrCombatActive   = errors.New(ErrMsgCombatActive)
	ErrNoActiveCombat = errors.New(ErrMsgNoActiveCombat)
	ErrNotPlayerTurn  = errors.New(ErrMsgNotPlayerTurn)
	ErrCombatResolved = errors.New(ErrMsgCombatResolved)

	// Achievement errors
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)
	ErrUnknownLocation     = errors.New(ErrMsgUnknownLocation)
	ErrTrackingLimit       = errors.New(ErrMsgTrackingLimit)

	// Quest errors
	ErrQuestNotFound = errors.New(ErrMsgQuestNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
