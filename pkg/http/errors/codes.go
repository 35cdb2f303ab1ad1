package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound = "not_found"
	ErrCodeConflict = "conflict"

	// Question errors
	ErrCodeInvalidDifficulty = "invalid_difficulty"
	ErrCodeInvalidQuestionID = "invalid_question_id"
	ErrCodeQuestionNotFound  = "question_not_found"

	// Room/game errors
	ErrCodeRoomCreationFailed = "room_creation_failed"
	ErrCodeRoomNotFound       = "room_not_found"
	ErrCodeInvalidRoomCode    = "invalid_room_code"
	ErrCodeJoinFailed         = "join_failed"
	ErrCodeGameNotJoinable    = "game_not_joinable"
	ErrCodeInvalidTransition  = "invalid_transition"
	ErrCodeHostOnly           = "host_only"
	ErrCodeGameNotActive      = "game_not_active"
	ErrCodeAlreadyAnswered    = "already_answered"
	ErrCodeSubmitFailed       = "submit_failed"

	// Leaderboard errors
	ErrCodeLeaderboardFetchFailed = "leaderboard_fetch_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
