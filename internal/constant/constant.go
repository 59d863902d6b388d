package constant

import "time"

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"

	QUERY_TIMEOUT_DURATION = 5 * time.Second

	DefaultPageSize = 10
	MaxPageSize     = 100

	// RFP extracted text is truncated to this many characters before it is stored or sent
	// to the model.
	MaxExtractedTextLength = 50000

	// Minimum extracted characters for an RFP to be worth parsing.
	MinRFPTextLength = 100

	OAUTH_PROVIDER_GOOGLE = "google"
)

type JWTType string

const (
	JWT_TYPE_ACCESS  JWTType = "access"
	JWT_TYPE_REFRESH JWTType = "refresh"
)

// Error kinds returned in the "error" field of failed responses.
type ErrorKind string

const (
	ErrKindValidation ErrorKind = "ValidationError"
	ErrKindUnauth     ErrorKind = "Unauthorized"
	ErrKindForbidden  ErrorKind = "Forbidden"
	ErrKindNotFound   ErrorKind = "NotFound"
	ErrKindConflict   ErrorKind = "Conflict"
	ErrKindRateLimit  ErrorKind = "RateLimited"
	ErrKindUpstream   ErrorKind = "UpstreamFailure"
	ErrKindInternal   ErrorKind = "InternalError"
)
