package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrConflict       ErrCode = "CONFLICT"
	ErrDuplicateEmail ErrCode = "DUPLICATE_EMAIL"

	// ─── Sessions ──────────────────────────────────────────────────────
	ErrSessionCompleted ErrCode = "SESSION_COMPLETED"
	ErrNotSessionOwner  ErrCode = "NOT_SESSION_OWNER"
	ErrNoAnswers        ErrCode = "NO_ANSWERS"

	// ─── Tables ────────────────────────────────────────────────────────
	ErrTableEmpty      ErrCode = "TABLE_EMPTY"
	ErrUnknownSection  ErrCode = "UNKNOWN_SECTION"
	ErrSiblingNotFound ErrCode = "SIBLING_PAPER_NOT_FOUND"
	ErrNoRankedScore   ErrCode = "NO_RANKED_SCORE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionInvalidated:
		return "Your session has ended. Please sign in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The resource was not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrDuplicateEmail:
		return "An account with this email already exists."

	// ─── Sessions ──────────────────────────────────────────────────────
	case ErrSessionCompleted:
		return "This practice session has already been completed."
	case ErrNotSessionOwner:
		return "This practice session belongs to another student."
	case ErrNoAnswers:
		return "This session has no marked answers yet."

	// ─── Tables ────────────────────────────────────────────────────────
	case ErrTableEmpty:
		return "The uploaded table has no rows."
	case ErrUnknownSection:
		return "The section is not recognized for this exam."
	case ErrSiblingNotFound:
		return "The referenced sibling paper was not found."
	case ErrNoRankedScore:
		return "You have no ranked score for this exam yet."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
