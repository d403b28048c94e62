package cmd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/tests/integration/builders"
	"github.com/cunyswap/cunyswap-backend/tests/mocks"
)

type VerifySuite struct {
	Handler  *VerifyHandler
	MockRepo *mocks.VerificationRepo
}

func NewVerifySuite() *VerifySuite {
	mockRepo := mocks.NewVerificationRepo()
	handler := NewVerifyHandler(VerifyHandlerArgs{
		Repo: mockRepo,
	})

	return &VerifySuite{
		Handler:  handler,
		MockRepo: mockRepo,
	}
}

func TestVerifyHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().Build()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), Verify{
		Email: v.Email(),
		Code:  builders.DefaultCode,
	})
	require.NoError(t, err)

	assert.False(t, s.MockRepo.HasVerification(v.Email()), "consumed verification should be deleted")

	s.MockRepo.AssertEventCount(t, 1)
	e := mocks.RequireEventExists(t, s.MockRepo.EventRepo, &verification.EmailVerified{})
	require.NotNil(t, e)
	assert.Equal(t, v.ID(), e.VerificationID)
	assert.Equal(t, v.Email(), e.Email)
}

func TestVerifyHandler_CodeIsSingleUse(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().Build()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), Verify{Email: v.Email(), Code: builders.DefaultCode})
	require.NoError(t, err)

	err = s.Handler.Handle(t.Context(), Verify{Email: v.Email(), Code: builders.DefaultCode})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrVerificationNotFound)
}

func TestVerifyHandler_UnknownEmail(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()

	err := s.Handler.Handle(t.Context(), Verify{
		Email: "nobody@cuny.edu",
		Code:  "123456",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrVerificationNotFound)

	s.MockRepo.AssertEventCount(t, 0)
}

func TestVerifyHandler_WrongCode(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().Build()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), Verify{
		Email: v.Email(),
		Code:  "000000",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrInvalidCode)

	assert.True(t, s.MockRepo.HasVerification(v.Email()))
	assert.EqualValues(t, 1, v.Attempts(), "failed attempt should be recorded")
	s.MockRepo.AssertEventCount(t, 0)
}

func TestVerifyHandler_WrongCode_ReachesAttemptCap(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().
		WithAttempts(verification.MaxAttempts - 1).
		Build()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), Verify{
		Email: v.Email(),
		Code:  "000000",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrTooManyAttempts)

	assert.EqualValues(t, verification.MaxAttempts, v.Attempts())
	s.MockRepo.AssertEventCount(t, 0)
}

func TestVerifyHandler_CorrectCodeAfterCap(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().
		WithAttempts(verification.MaxAttempts).
		Build()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), Verify{
		Email: v.Email(),
		Code:  builders.DefaultCode,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrTooManyAttempts)

	assert.True(t, s.MockRepo.HasVerification(v.Email()), "capped verification should stay until expiry")
	assert.EqualValues(t, verification.MaxAttempts, v.Attempts(), "attempts should not grow past the cap")
	s.MockRepo.AssertEventCount(t, 0)
}

func TestVerifyHandler_ExpiredCode(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().
		WithExpiredCode().
		Build()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), Verify{
		Email: v.Email(),
		Code:  builders.DefaultCode,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrCodeExpired)

	assert.False(t, s.MockRepo.HasVerification(v.Email()), "expired verification should be cleaned up")
	s.MockRepo.AssertEventCount(t, 0)
}

func TestVerifyHandler_ConcurrentWrongCodes_AllAttemptsRecorded(t *testing.T) {
	t.Parallel()

	const workers = 3

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().Build()
	s.MockRepo.SeedVerification(t, v)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Handler.Handle(t.Context(), Verify{
				Email: v.Email(),
				Code:  "000000",
			})
			assert.Error(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, workers, v.Attempts(), "every failed attempt should be recorded")
	assert.True(t, s.MockRepo.HasVerification(v.Email()))
}

func TestVerifyHandler_NotFoundDoesNotLeakThroughError(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	v := builders.NewVerificationBuilder().WithExpiredCode().Build()
	s.MockRepo.SeedVerification(t, v)

	expiredErr := s.Handler.Handle(t.Context(), Verify{Email: v.Email(), Code: builders.DefaultCode})
	unknownErr := s.Handler.Handle(t.Context(), Verify{Email: "other@cuny.edu", Code: builders.DefaultCode})

	require.Error(t, expiredErr)
	require.Error(t, unknownErr)

	var expiredI18n, unknownI18n *errorx.I18nError
	require.ErrorAs(t, expiredErr, &expiredI18n)
	require.ErrorAs(t, unknownErr, &unknownI18n)
	assert.Equal(t, expiredI18n.MessageKey, unknownI18n.MessageKey)
	assert.Equal(t, expiredI18n.HTTPCode, unknownI18n.HTTPCode)
}
