package verification

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cunyswap/cunyswap-backend/pkg/env"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
)

func isPersistable(err error) bool {
	return errorx.IsPersistable(err)
}

func TestNewVerification(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		allowedDomains []string
		mode           env.Mode
		expectError    bool
		errorType      error
	}{
		{
			name:        "valid email in test mode",
			email:       "student@example.com",
			mode:        env.Test,
			expectError: false,
		},
		{
			name:        "valid email in dev mode",
			email:       "student@gmail.com",
			mode:        env.Dev,
			expectError: false,
		},
		{
			name:        "valid email in prod mode",
			email:       "student@gmail.com",
			mode:        env.Prod,
			expectError: false,
		},
		{
			name:           "email within allowed domains",
			email:          "student@login.cuny.edu",
			allowedDomains: []string{"login.cuny.edu", "cuny.edu"},
			mode:           env.Test,
			expectError:    false,
		},
		{
			name:           "allowed domain match is case insensitive",
			email:          "student@LOGIN.CUNY.EDU",
			allowedDomains: []string{"login.cuny.edu"},
			mode:           env.Test,
			expectError:    false,
		},
		{
			name:           "email outside allowed domains",
			email:          "student@gmail.com",
			allowedDomains: []string{"login.cuny.edu"},
			mode:           env.Test,
			expectError:    true,
			errorType:      ErrEmailDomainNotAllowed,
		},
		{
			name:        "empty email",
			email:       "",
			mode:        env.Test,
			expectError: true,
			errorType:   ErrEmptyEmail,
		},
		{
			name:        "email too long",
			email:       "a" + strings.Repeat("b", 255) + "@example.com",
			mode:        env.Test,
			expectError: true,
			errorType:   ErrEmailExceedsMaxLength,
		},
		{
			name:        "invalid email format - no @",
			email:       "notanemail",
			mode:        env.Test,
			expectError: true,
			errorType:   ErrInvalidEmailFormat,
		},
		{
			name:        "invalid email format - no domain",
			email:       "student@",
			mode:        env.Test,
			expectError: true,
			errorType:   ErrInvalidEmailFormat,
		},
		{
			name:        "invalid email format - no TLD",
			email:       "student@domain",
			mode:        env.Test,
			expectError: true,
			errorType:   ErrInvalidEmailFormat,
		},
		{
			name:        "non-icann tld rejected in dev mode",
			email:       "student@app.internal",
			mode:        env.Dev,
			expectError: true,
			errorType:   ErrInvalidEmailFormat,
		},
		{
			name:        "non-icann tld allowed in test mode",
			email:       "student@app.internal",
			mode:        env.Test,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVerification(tt.email, tt.allowedDomains, tt.mode)

			if tt.expectError {
				require.Error(t, err)
				require.Nil(t, v)
				if tt.errorType != nil {
					assert.ErrorIs(t, err, tt.errorType)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, v)

			NewVerificationAssertion(v).
				AssertEmail(t, tt.email).
				AssertCodeHashNotEmpty(t).
				AssertAttempts(t, 0).
				AssertConsumed(t, false).
				AssertExpiresAt(t, time.Now().Add(CodeTTL)).
				AssertResendTimeout(t, time.Now().Add(ResendTimeout)).
				AssertEventsCount(t, 1)

			events := v.GetUncommittedEvents()
			require.Len(t, events, 1)
			requested, ok := events[0].(*VerificationRequested)
			require.True(t, ok)
			assert.Equal(t, v.ID(), requested.VerificationID)
			assert.Equal(t, tt.email, requested.Email)
			assert.Len(t, requested.Code, CodeLength)
			assert.Equal(t, HashCode(requested.Code), v.CodeHash())
		})
	}
}

func TestVerification_VerifyCode(t *testing.T) {
	const code = "042137"
	const wrong = "000000"

	newPending := func(attempts int8, expiresAt time.Time) *Verification {
		return Rehydrate(RehydrateArgs{
			ID:            NewID(),
			Email:         "student@example.com",
			CodeHash:      HashCode(code),
			Attempts:      attempts,
			ExpiresAt:     expiresAt,
			ResendTimeout: time.Now().Add(ResendTimeout),
			CreatedAt:     time.Now().UTC(),
			UpdatedAt:     time.Now().UTC(),
		})
	}

	t.Run("correct code consumes verification", func(t *testing.T) {
		v := newPending(0, time.Now().Add(CodeTTL))

		require.NoError(t, v.VerifyCode(code))

		NewVerificationAssertion(v).
			AssertConsumed(t, true).
			AssertEventsCount(t, 1)

		events := v.GetUncommittedEvents()
		verified, ok := events[0].(*EmailVerified)
		require.True(t, ok)
		assert.Equal(t, v.Email(), verified.Email)
	})

	t.Run("wrong code increments attempts and persists", func(t *testing.T) {
		v := newPending(0, time.Now().Add(CodeTTL))

		err := v.VerifyCode(wrong)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCode)
		require.True(t, isPersistable(err))

		NewVerificationAssertion(v).
			AssertAttempts(t, 1).
			AssertConsumed(t, false).
			AssertNoEvents(t)
	})

	t.Run("correct code still accepted after failed attempts below cap", func(t *testing.T) {
		v := newPending(0, time.Now().Add(CodeTTL))

		for range MaxAttempts - 1 {
			require.Error(t, v.VerifyCode(wrong))
		}
		NewVerificationAssertion(v).AssertAttempts(t, MaxAttempts-1)

		require.NoError(t, v.VerifyCode(code))
		NewVerificationAssertion(v).AssertConsumed(t, true)
	})

	t.Run("attempt reaching cap fails with attempts error", func(t *testing.T) {
		v := newPending(MaxAttempts-1, time.Now().Add(CodeTTL))

		err := v.VerifyCode(wrong)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooManyAttempts)
		require.True(t, isPersistable(err))
		NewVerificationAssertion(v).AssertAttempts(t, MaxAttempts)
	})

	t.Run("attempts at cap rejects without increment, even the right code", func(t *testing.T) {
		v := newPending(MaxAttempts, time.Now().Add(CodeTTL))

		err := v.VerifyCode(code)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooManyAttempts)
		assert.False(t, isPersistable(err))

		NewVerificationAssertion(v).
			AssertAttempts(t, MaxAttempts).
			AssertConsumed(t, false)
	})

	t.Run("expiry wins over the attempt cap", func(t *testing.T) {
		v := newPending(MaxAttempts, time.Now().Add(-time.Minute))

		err := v.VerifyCode(code)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCodeExpired)
		assert.NotErrorIs(t, err, ErrTooManyAttempts)
		require.True(t, isPersistable(err))

		NewVerificationAssertion(v).AssertConsumed(t, true)
	})

	t.Run("expired code is rejected and consumed for cleanup", func(t *testing.T) {
		v := newPending(0, time.Now().Add(-time.Minute))

		err := v.VerifyCode(code)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCodeExpired)
		require.True(t, isPersistable(err))

		NewVerificationAssertion(v).
			AssertConsumed(t, true).
			AssertNoEvents(t)
	})
}

func TestVerification_Resend(t *testing.T) {
	newVerification := func(resendTimeout time.Time) *Verification {
		return Rehydrate(RehydrateArgs{
			ID:            NewID(),
			Email:         "student@example.com",
			CodeHash:      HashCode("042137"),
			Attempts:      3,
			ExpiresAt:     time.Now().Add(time.Minute),
			ResendTimeout: resendTimeout,
			CreatedAt:     time.Now().UTC(),
			UpdatedAt:     time.Now().UTC(),
		})
	}

	t.Run("resend rotates code and resets attempts", func(t *testing.T) {
		v := newVerification(time.Now().Add(-time.Second))
		oldHash := v.CodeHash()

		require.NoError(t, v.Resend())

		NewVerificationAssertion(v).
			AssertCodeHashIsNot(t, oldHash).
			AssertAttempts(t, 0).
			AssertConsumed(t, false).
			AssertExpiresAt(t, time.Now().Add(CodeTTL)).
			AssertResendTimeout(t, time.Now().Add(ResendTimeout)).
			AssertEventsCount(t, 1)

		events := v.GetUncommittedEvents()
		resent, ok := events[0].(*VerificationCodeResent)
		require.True(t, ok)
		assert.Equal(t, v.Email(), resent.Email)
		assert.Equal(t, HashCode(resent.Code), v.CodeHash())
	})

	t.Run("resend refused during timeout", func(t *testing.T) {
		v := newVerification(time.Now().Add(30 * time.Second))
		oldHash := v.CodeHash()

		err := v.Resend()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrWaitUntilResend)

		assert.Equal(t, oldHash, v.CodeHash())
		NewVerificationAssertion(v).AssertNoEvents(t)
	})
}

func TestHashCode(t *testing.T) {
	assert.Equal(t, HashCode("123456"), HashCode("123456"))
	assert.NotEqual(t, HashCode("123456"), HashCode("123457"))
	assert.Len(t, HashCode("000000"), 64)
}
