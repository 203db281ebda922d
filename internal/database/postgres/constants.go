package postgres

// Error Messages - Profile Operations
const (
	ErrMsgFailedToMarshalProfile   = "failed to marshal profile"
	ErrMsgFailedToUnmarshalProfile = "failed to unmarshal profile"
	ErrMsgFailedToUpsertProfile    = "failed to upsert profile"
	ErrMsgFailedToGetProfile       = "failed to get profile"
	ErrMsgFailedToDeleteProfile    = "failed to delete profile"
)

// Error Messages - Quest Log Operations
const (
	ErrMsgFailedToMarshalQuestLog   = "failed to marshal quest log"
	ErrMsgFailedToUnmarshalQuestLog = "failed to unmarshal quest log"
	ErrMsgFailedToUpsertQuestLog    = "failed to upsert quest log"
	ErrMsgFailedToGetQuestLog       = "failed to get quest log"
	ErrMsgFailedToDeleteQuestLog    = "failed to delete quest log"
)
