package verification

import (
	"net/http"

	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/i18nx"
)

var (
	ErrEmptyEmail            = errorx.NewValidationFieldFailed(i18nx.FieldEmail)
	ErrEmailExceedsMaxLength = errorx.NewValidationFieldFailed(i18nx.FieldEmail)
	ErrInvalidEmailFormat    = errorx.NewValidationFieldFailed(i18nx.FieldEmail)

	ErrEmailDomainNotAllowed = &errorx.I18nError{
		MessageKey: i18nx.KeyEmailDomainNotAllowed,
		Code:       errorx.CodeInvalid,
		HTTPCode:   http.StatusBadRequest,
	}

	// Expired and unknown both localize to the same message so responses do
	// not reveal whether a code ever existed for the email.
	ErrCodeExpired = &errorx.I18nError{
		MessageKey: i18nx.KeyInvalidOrExpiredCode,
		Code:       errorx.CodeInvalid,
		HTTPCode:   http.StatusBadRequest,
	}
	ErrVerificationNotFound = &errorx.I18nError{
		MessageKey: i18nx.KeyInvalidOrExpiredCode,
		Code:       errorx.CodeInvalid,
		HTTPCode:   http.StatusBadRequest,
	}

	ErrInvalidCode = &errorx.I18nError{
		MessageKey: i18nx.KeyInvalidVerificationCode,
		Code:       errorx.CodeInvalid,
		HTTPCode:   http.StatusBadRequest,
	}
	ErrTooManyAttempts = &errorx.I18nError{
		MessageKey: i18nx.KeyTooManyVerifyAttempts,
		Code:       errorx.CodeForbidden,
		HTTPCode:   http.StatusForbidden,
	}
	ErrWaitUntilResend = &errorx.I18nError{
		MessageKey: i18nx.KeyWaitUntilResend,
		Code:       errorx.CodeRateLimitExceeded,
		HTTPCode:   http.StatusTooManyRequests,
	}

	// Persistable variants commit the aggregate mutation that accompanied
	// the failure: the attempt increment, or the expiry cleanup.
	ErrPersistentInvalidCode     = errorx.NewPersistable(ErrInvalidCode)
	ErrPersistentTooManyAttempts = errorx.NewPersistable(ErrTooManyAttempts)
	ErrPersistentCodeExpired     = errorx.NewPersistable(ErrCodeExpired)
)
