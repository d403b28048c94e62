package i18nx

// Error message keys, matching locales/*.toml.
const (
	// Client errors
	KeyInvalid               = "invalid"
	KeyValidationFailed      = "validation_failed"
	KeyValidationFailedField = "validation_failed_field"
	KeyMalformedJSON         = "malformed_json"
	KeyNotFound              = "not_found"
	KeyConflict              = "conflict"
	KeyRateLimitExceeded     = "rate_limit_exceeded"

	// Business logic errors
	KeyAlreadyProcessed        = "already_processed"
	KeyEmailDomainNotAllowed   = "email_domain_not_allowed"
	KeyInvalidOrExpiredCode    = "invalid_or_expired_code"
	KeyInvalidVerificationCode = "invalid_verification_code"
	KeyTooManyVerifyAttempts   = "too_many_verification_attempts"
	KeyWaitUntilResend         = "wait_until_resend"

	// Server errors
	KeyInternalError        = "internal_error"
	KeyUpstreamServiceError = "upstream_service_error"
)

// Validation message keys.
const (
	ValidationRequired         = "validation_required"
	ValidationIsEmail          = "validation_is_email"
	ValidationLengthInvalid    = "validation_length_invalid"
	ValidationLengthOutOfRange = "validation_length_out_of_range"
	ValidationMatchInvalid     = "validation_match_invalid"
	ValidationIsDigit          = "validation_is_digit"
)

// Field name keys used in validation_failed_field templates.
const (
	FieldEmail            = "email"
	FieldVerificationCode = "code"
	FieldSubject          = "subject"
	FieldBody             = "body"
)

// Template argument keys.
const (
	ArgField      = "field"
	ArgRetryAfter = "retry_after"
)
