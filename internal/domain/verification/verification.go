package verification

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/cunyswap/cunyswap-backend/internal/domain/event"
	"github.com/cunyswap/cunyswap-backend/pkg/env"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/randcode"
)

var emailRx = regexp.MustCompile(
	`^[a-zA-Z0-9._%+\-]+@` + // local part
		`(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+` + // labels
		`[A-Za-z]{2,63}$`) // TLD

const (
	CodeLength     = 6
	MaxEmailLength = 254

	ResendTimeout = 1 * time.Minute
	CodeTTL       = 10 * time.Minute
	MaxAttempts   = 5
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(id).String())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	uid, err := uuid.Parse(s)
	if err != nil {
		return err
	}

	*id = ID(uid)
	return nil
}

// Verification is a pending email verification. Only the SHA-256 digest of
// the code is kept on the aggregate; the plaintext code leaves it exactly
// once, inside the event that carries it to the mail handler.
type Verification struct {
	event.Recorder
	id            ID
	email         string
	codeHash      string
	attempts      int8
	consumed      bool
	expiresAt     time.Time
	resendTimeout time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewVerification issues a fresh code for the email. An empty allowedDomains
// list accepts any domain.
func NewVerification(email string, allowedDomains []string, mode env.Mode) (*Verification, error) {
	const op = "verification.NewVerification"

	if err := validateEmail(email, allowedDomains, mode); err != nil {
		return nil, errorx.Wrap(err, op)
	}

	code, err := randcode.GenerateNumericCode(CodeLength)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	now := time.Now().UTC()
	v := &Verification{
		id:            NewID(),
		email:         email,
		codeHash:      HashCode(code),
		attempts:      0,
		expiresAt:     now.Add(CodeTTL),
		resendTimeout: now.Add(ResendTimeout),
		createdAt:     now,
		updatedAt:     now,
	}

	v.AddEvent(&VerificationRequested{
		Header:         event.NewEventHeader(),
		VerificationID: v.id,
		Email:          email,
		Code:           code,
	})

	return v, nil
}

type RehydrateArgs struct {
	ID            ID
	Email         string
	CodeHash      string
	Attempts      int8
	ExpiresAt     time.Time
	ResendTimeout time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func Rehydrate(args RehydrateArgs) *Verification {
	return &Verification{
		id:            args.ID,
		email:         args.Email,
		codeHash:      args.CodeHash,
		attempts:      args.Attempts,
		expiresAt:     args.ExpiresAt,
		resendTimeout: args.ResendTimeout,
		createdAt:     args.CreatedAt,
		updatedAt:     args.UpdatedAt,
	}
}

// VerifyCode checks the submitted code against the stored digest. A wrong
// code increments the attempt counter, and the increment must reach the store
// even though the call fails, so it comes back wrapped in a Persistable.
// Success consumes the verification; the repository drops the row for a
// consumed aggregate, which is what makes the code single-use.
func (v *Verification) VerifyCode(code string) error {
	const op = "verification.Verification.VerifyCode"

	if time.Now().After(v.expiresAt) {
		v.consumed = true
		return errorx.Wrap(ErrPersistentCodeExpired, op)
	}

	if v.attempts >= MaxAttempts {
		return errorx.Wrap(ErrTooManyAttempts, op)
	}

	submitted := HashCode(code)
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(v.codeHash)) != 1 {
		v.attempts++
		v.updatedAt = time.Now().UTC()
		if v.attempts >= MaxAttempts {
			return errorx.Wrap(ErrPersistentTooManyAttempts, op)
		}
		return errorx.Wrap(ErrPersistentInvalidCode, op)
	}

	v.consumed = true
	v.updatedAt = time.Now().UTC()
	v.AddEvent(&EmailVerified{
		Header:         event.NewEventHeader(),
		VerificationID: v.id,
		Email:          v.email,
	})

	return nil
}

// Resend replaces the code, resets the attempt counter, and extends the
// expiry. It refuses while the resend timeout is still running.
func (v *Verification) Resend() error {
	const op = "verification.Verification.Resend"

	if !v.resendTimeout.IsZero() && !time.Now().After(v.resendTimeout) {
		return errorx.Wrap(ErrWaitUntilResend, op)
	}

	code, err := randcode.GenerateNumericCode(CodeLength)
	if err != nil {
		return errorx.Wrap(err, op)
	}

	now := time.Now().UTC()
	v.codeHash = HashCode(code)
	v.attempts = 0
	v.consumed = false
	v.expiresAt = now.Add(CodeTTL)
	v.resendTimeout = now.Add(ResendTimeout)
	v.updatedAt = now

	v.AddEvent(&VerificationCodeResent{
		Header:         event.NewEventHeader(),
		VerificationID: v.id,
		Email:          v.email,
		Code:           code,
	})

	return nil
}

func (v *Verification) ID() ID {
	if v == nil {
		return ID{}
	}
	return v.id
}

func (v *Verification) Email() string {
	if v == nil {
		return ""
	}
	return v.email
}

func (v *Verification) CodeHash() string {
	if v == nil {
		return ""
	}
	return v.codeHash
}

func (v *Verification) Attempts() int8 {
	if v == nil {
		return 0
	}
	return v.attempts
}

func (v *Verification) IsConsumed() bool {
	if v == nil {
		return false
	}
	return v.consumed
}

func (v *Verification) ExpiresAt() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.expiresAt
}

func (v *Verification) ResendTimeout() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.resendTimeout
}

func (v *Verification) CreatedAt() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.createdAt
}

func (v *Verification) UpdatedAt() time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.updatedAt
}

func (v *Verification) IsExpired() bool {
	if v == nil || v.expiresAt.IsZero() {
		return true
	}
	return time.Now().After(v.expiresAt)
}

// HashCode returns the hex-encoded SHA-256 digest of the code.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func validateEmail(email string, allowedDomains []string, mode env.Mode) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if len(email) > MaxEmailLength {
		return ErrEmailExceedsMaxLength
	}
	if !emailRx.MatchString(email) {
		return ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmailFormat
	}
	if (mode == env.Dev || mode == env.Prod) && !hasRealTLD(email) {
		return ErrInvalidEmailFormat
	}

	if len(allowedDomains) > 0 && !domainAllowed(email, allowedDomains) {
		return ErrEmailDomainNotAllowed
	}

	return nil
}

func domainAllowed(email string, allowedDomains []string) bool {
	at := strings.LastIndexByte(email, '@')
	domain := strings.ToLower(email[at+1:])

	for _, allowed := range allowedDomains {
		if domain == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func hasRealTLD(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}

	at := strings.LastIndexByte(parsed.Address, '@')
	domain := parsed.Address[at+1:]

	suffix, icann := publicsuffix.PublicSuffix(domain)

	// If the suffix is the entire domain there is no registrable part,
	// so "localhost", "internal", etc. fail here.
	return icann && suffix != domain
}
