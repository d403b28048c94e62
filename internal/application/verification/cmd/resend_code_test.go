package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/tests/integration/builders"
	"github.com/cunyswap/cunyswap-backend/tests/mocks"
)

type ResendCodeSuite struct {
	Handler  *ResendCodeHandler
	MockRepo *mocks.VerificationRepo
}

func NewResendCodeSuite() *ResendCodeSuite {
	mockRepo := mocks.NewVerificationRepo()
	handler := NewResendCodeHandler(ResendCodeHandlerArgs{
		Repo: mockRepo,
	})

	return &ResendCodeSuite{
		Handler:  handler,
		MockRepo: mockRepo,
	}
}

func TestResendCodeHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewResendCodeSuite()
	v := builders.NewVerificationBuilder().
		WithAttempts(2).
		WithResendAvailable().
		Build()
	oldHash := v.CodeHash()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), ResendCode{Email: v.Email()})
	require.NoError(t, err)

	assert.NotEqual(t, oldHash, v.CodeHash())
	assert.EqualValues(t, 0, v.Attempts())

	s.MockRepo.AssertEventCount(t, 1)
	e := mocks.RequireEventExists(t, s.MockRepo.EventRepo, &verification.VerificationCodeResent{})
	assert.Equal(t, v.Email(), e.Email)
	assert.Len(t, e.Code, verification.CodeLength)
}

func TestResendCodeHandler_WithinResendTimeout(t *testing.T) {
	t.Parallel()

	s := NewResendCodeSuite()
	v := builders.NewVerificationBuilder().Build()
	oldHash := v.CodeHash()
	s.MockRepo.SeedVerification(t, v)

	err := s.Handler.Handle(t.Context(), ResendCode{Email: v.Email()})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrWaitUntilResend)

	assert.Equal(t, oldHash, v.CodeHash())
	s.MockRepo.AssertEventCount(t, 0)
}

func TestResendCodeHandler_UnknownEmail(t *testing.T) {
	t.Parallel()

	s := NewResendCodeSuite()

	err := s.Handler.Handle(t.Context(), ResendCode{Email: "nobody@cuny.edu"})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))

	s.MockRepo.AssertEventCount(t, 0)
}
