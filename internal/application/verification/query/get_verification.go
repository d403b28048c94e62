package query

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
)

// Verification is the debug view of a pending verification. Only the digest
// is stored, so there is no way to expose the code itself.
type Verification struct {
	Email         string    `json:"email"`
	Attempts      int8      `json:"attempts"`
	ExpiresAt     time.Time `json:"expires_at"`
	ResendTimeout time.Time `json:"resend_timeout"`
	CreatedAt     time.Time `json:"created_at"`
}

type GetVerificationHandler struct {
	pool *pgxpool.Pool
}

func NewGetVerificationHandler(pool *pgxpool.Pool) *GetVerificationHandler {
	return &GetVerificationHandler{
		pool: pool,
	}
}

func (h *GetVerificationHandler) Handle(ctx context.Context, email string) (*Verification, error) {
	var v Verification
	err := h.pool.QueryRow(ctx, `
        SELECT email, attempts, expires_at, resend_timeout, created_at
        FROM verifications
        WHERE email = $1
    `, email).Scan(&v.Email, &v.Attempts, &v.ExpiresAt, &v.ResendTimeout, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}
	return &v, nil
}
