package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type VerificationAssertion struct {
	Verification *Verification
}

func NewVerificationAssertion(v *Verification) *VerificationAssertion {
	return &VerificationAssertion{Verification: v}
}

func (va *VerificationAssertion) AssertEmail(t *testing.T, expected string) *VerificationAssertion {
	t.Helper()
	assert.Equal(t, expected, va.Verification.email, "Expected verification email to be %s, got %s", expected, va.Verification.email)
	return va
}

func (va *VerificationAssertion) AssertCodeHashNotEmpty(t *testing.T) *VerificationAssertion {
	t.Helper()
	assert.NotEmpty(t, va.Verification.codeHash, "Expected verification code hash to not be empty")
	return va
}

func (va *VerificationAssertion) AssertCodeHashIsNot(t *testing.T, expected string) *VerificationAssertion {
	t.Helper()
	assert.NotEqual(
		t,
		expected,
		va.Verification.codeHash,
		"Expected verification code hash to not be %s",
		expected,
	)
	return va
}

func (va *VerificationAssertion) AssertAttempts(t *testing.T, expected int8) *VerificationAssertion {
	t.Helper()
	assert.Equal(
		t,
		expected,
		va.Verification.attempts,
		"Expected verification attempts to be %d, got %d",
		expected,
		va.Verification.attempts,
	)
	return va
}

func (va *VerificationAssertion) AssertConsumed(t *testing.T, expected bool) *VerificationAssertion {
	t.Helper()
	assert.Equal(t, expected, va.Verification.consumed, "Expected verification consumed to be %v", expected)
	return va
}

func (va *VerificationAssertion) AssertExpiresAt(t *testing.T, expected time.Time) *VerificationAssertion {
	t.Helper()
	assert.WithinDuration(
		t,
		expected,
		va.Verification.expiresAt,
		time.Second,
		"Expected verification expiry to be within a second of %s",
		expected,
	)
	return va
}

func (va *VerificationAssertion) AssertResendTimeout(t *testing.T, expected time.Time) *VerificationAssertion {
	t.Helper()
	assert.WithinDuration(
		t,
		expected,
		va.Verification.resendTimeout,
		time.Second,
		"Expected verification resend timeout to be within a second of %s",
		expected,
	)
	return va
}

func (va *VerificationAssertion) AssertEventsCount(t *testing.T, expected int) *VerificationAssertion {
	t.Helper()
	assert.Len(t, va.Verification.GetUncommittedEvents(), expected, "Expected %d uncommitted events", expected)
	return va
}

func (va *VerificationAssertion) AssertNoEvents(t *testing.T) *VerificationAssertion {
	t.Helper()
	assert.Empty(t, va.Verification.GetUncommittedEvents(), "Expected no uncommitted events")
	return va
}
