package item

// Schema paths
const (
	ItemsSchemaPath = "configs/schemas/items.schema.json"
)

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read items config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse items config: %w"
)

// Validation error message fragments
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoItemsDefined = "no items defined"
	ErrMsgEmptyName      = "has empty name"
)
