package builders

import (
	"time"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/randcode"
)

// DefaultCode is the plaintext code a freshly built verification accepts.
const DefaultCode = "123456"

type VerificationBuilder struct {
	id            verification.ID
	email         string
	codeHash      string
	attempts      int8
	expiresAt     time.Time
	resendTimeout time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewVerificationBuilder() *VerificationBuilder {
	now := time.Now()

	return &VerificationBuilder{
		id:            verification.NewID(),
		email:         "test@cuny.edu",
		codeHash:      verification.HashCode(DefaultCode),
		attempts:      0,
		expiresAt:     now.Add(verification.CodeTTL),
		resendTimeout: now.Add(verification.ResendTimeout),
		createdAt:     now,
		updatedAt:     now,
	}
}

func (b *VerificationBuilder) WithID(id verification.ID) *VerificationBuilder {
	b.id = id
	return b
}

func (b *VerificationBuilder) WithEmail(email string) *VerificationBuilder {
	b.email = email
	return b
}

// WithCode stores the digest of code, so Build returns a verification that
// accepts it.
func (b *VerificationBuilder) WithCode(code string) *VerificationBuilder {
	b.codeHash = verification.HashCode(code)
	return b
}

// WithRandomCode rotates the stored digest to a fresh random code and
// returns the plaintext alongside the builder.
func (b *VerificationBuilder) WithRandomCode() (*VerificationBuilder, string) {
	code, _ := randcode.GenerateNumericCode(verification.CodeLength)
	b.codeHash = verification.HashCode(code)
	return b, code
}

func (b *VerificationBuilder) WithAttempts(attempts int8) *VerificationBuilder {
	b.attempts = attempts
	return b
}

func (b *VerificationBuilder) WithExpiredCode() *VerificationBuilder {
	b.expiresAt = time.Now().Add(-1 * time.Hour)
	return b
}

func (b *VerificationBuilder) WithResendAvailable() *VerificationBuilder {
	b.resendTimeout = time.Now().Add(-1 * time.Minute)
	return b
}

func (b *VerificationBuilder) Build() *verification.Verification {
	return verification.Rehydrate(verification.RehydrateArgs{
		ID:            b.id,
		Email:         b.email,
		CodeHash:      b.codeHash,
		Attempts:      b.attempts,
		ExpiresAt:     b.expiresAt,
		ResendTimeout: b.resendTimeout,
		CreatedAt:     b.createdAt,
		UpdatedAt:     b.updatedAt,
	})
}
