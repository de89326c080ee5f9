package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Client session ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Admin ─────────────────────────────────────────────────────────
	ErrAdminKeyRequired ErrCode = "ADMIN_KEY_REQUIRED"
	ErrAdminKeyInvalid  ErrCode = "ADMIN_KEY_INVALID"
	ErrAdminDisabled    ErrCode = "ADMIN_DISABLED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Catalog ───────────────────────────────────────────────────────
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrCourseNotFound    ErrCode = "COURSE_NOT_FOUND"
	ErrUnknownFacet      ErrCode = "UNKNOWN_FACET"
	ErrSearchUnavailable ErrCode = "SEARCH_UNAVAILABLE"

	// ─── Timetable ─────────────────────────────────────────────────────
	ErrCourseNotInTimetable ErrCode = "COURSE_NOT_IN_TIMETABLE"
	ErrUnknownTheme         ErrCode = "UNKNOWN_THEME"
	ErrInvalidShareLink     ErrCode = "INVALID_SHARE_LINK"
	ErrSemesterMismatch     ErrCode = "SEMESTER_MISMATCH"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "A client token is required. Request one from /api/v1/session."
	case ErrTokenInvalid:
		return "The client token is invalid or has expired."

	case ErrAdminKeyRequired:
		return "An admin key is required."
	case ErrAdminKeyInvalid:
		return "The admin key is invalid."
	case ErrAdminDisabled:
		return "Admin routes are disabled on this server."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	case ErrNotFound:
		return "Resource not found."
	case ErrCourseNotFound:
		return "No course with this id exists in the catalog."
	case ErrUnknownFacet:
		return "Unknown facet."
	case ErrSearchUnavailable:
		return "Course search is temporarily unavailable."

	case ErrCourseNotInTimetable:
		return "This course is not in the timetable."
	case ErrUnknownTheme:
		return "Unknown colour theme."
	case ErrInvalidShareLink:
		return "The share link does not contain a timetable."
	case ErrSemesterMismatch:
		return "The share link belongs to a different semester."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
