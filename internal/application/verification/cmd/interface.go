package cmd

import (
	"context"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
)

type Repo interface {
	GetVerificationByEmail(ctx context.Context, email string) (*verification.Verification, error)
	SaveVerification(ctx context.Context, v *verification.Verification) error
	UpdateVerificationByEmail(ctx context.Context, email string, fn func(context.Context, *verification.Verification) error) error
}
