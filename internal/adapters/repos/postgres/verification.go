package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
	"github.com/cunyswap/cunyswap-backend/pkg/postgres"
	"github.com/cunyswap/cunyswap-backend/pkg/watermillx"
)

type VerificationRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewVerificationRepo creates a new instance of VerificationRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewVerificationRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *VerificationRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &VerificationRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

// GetVerificationByEmail loads the pending verification for the email. An
// expired row is deleted on the way out and reported as not found.
func (r *VerificationRepo) GetVerificationByEmail(ctx context.Context, email string) (*verification.Verification, error) {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.GetVerificationByEmail")
	defer span.End()

	query := `
        SELECT id, email, code_hash, attempts, expires_at, resend_timeout, created_at, updated_at
        FROM verifications
        WHERE email = $1;
    `

	var dto VerificationDTO
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&dto.ID, &dto.Email, &dto.CodeHash, &dto.Attempts,
		&dto.ExpiresAt, &dto.ResendTimeout, &dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		otelx.RecordSpanError(span, err, "failed to get verification by email")
		return nil, err
	}

	v := VerificationToDomain(dto)
	if v.IsExpired() {
		span.AddEvent("verification expired, deleting")
		if _, err := r.pool.Exec(ctx, `DELETE FROM verifications WHERE id = $1`, dto.ID); err != nil {
			otelx.RecordSpanError(span, err, "failed to delete expired verification")
			return nil, err
		}
		return nil, errorx.NewNotFound()
	}

	return v, nil
}

// SaveVerification writes the verification and its events in one
// transaction. A row already holding the email is overwritten, which is the
// reissue path: the old code stops working the moment the new one is stored.
func (r *VerificationRepo) SaveVerification(ctx context.Context, v *verification.Verification) error {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.SaveVerification")
	defer span.End()

	dto := DomainToVerificationDTO(v)

	query := `
        INSERT INTO verifications (id, email, code_hash, attempts, expires_at, resend_timeout, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (email) DO UPDATE SET
            id = EXCLUDED.id,
            code_hash = EXCLUDED.code_hash,
            attempts = EXCLUDED.attempts,
            expires_at = EXCLUDED.expires_at,
            resend_timeout = EXCLUDED.resend_timeout,
            updated_at = EXCLUDED.updated_at;
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, query,
			dto.ID, dto.Email, dto.CodeHash, dto.Attempts,
			dto.ExpiresAt, dto.ResendTimeout, dto.CreatedAt, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert verification")
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting verification")
			return fmt.Errorf("failed to insert verification: %w", ErrNoRowsAffected)
		}

		if events := v.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}
		return nil
	})
}

// UpdateVerificationByEmail applies fn to the verification under a row lock,
// so concurrent attempts against the same email serialize and every counted
// attempt survives. A Persistable error from fn commits the mutation and is
// returned after the commit. A consumed aggregate deletes the row instead of
// updating it, which makes a successful code single-use.
func (r *VerificationRepo) UpdateVerificationByEmail(
	ctx context.Context,
	email string,
	fn func(ctx context.Context, v *verification.Verification) error,
) error {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.UpdateVerificationByEmail")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	selectquery := `
        SELECT id, email, code_hash, attempts, expires_at, resend_timeout, created_at, updated_at
        FROM verifications
        WHERE email = $1
        FOR UPDATE;
    `
	updatequery := `
        UPDATE verifications
        SET code_hash = $2, attempts = $3, expires_at = $4,
            resend_timeout = $5, updated_at = $6
        WHERE id = $1;
    `

	var fnerr error
	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dto VerificationDTO
		err := tx.QueryRow(ctx, selectquery, email).Scan(
			&dto.ID, &dto.Email, &dto.CodeHash, &dto.Attempts,
			&dto.ExpiresAt, &dto.ResendTimeout, &dto.CreatedAt, &dto.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			otelx.RecordSpanError(span, err, "failed to get verification for update")
			return err
		}

		v := VerificationToDomain(dto)

		fnerr = fn(ctx, v)
		if fnerr != nil && !errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "failed to apply update function")
			err := fnerr
			fnerr = nil
			return err
		}

		if v.IsConsumed() {
			if _, err := tx.Exec(ctx, `DELETE FROM verifications WHERE id = $1`, dto.ID); err != nil {
				otelx.RecordSpanError(span, err, "failed to delete verification")
				return err
			}
		} else {
			dto = DomainToVerificationDTO(v)
			res, err := tx.Exec(ctx, updatequery,
				dto.ID, dto.CodeHash, dto.Attempts,
				dto.ExpiresAt, dto.ResendTimeout, dto.UpdatedAt,
			)
			if err != nil {
				otelx.RecordSpanError(span, err, "failed to update verification")
				return err
			}
			if res.RowsAffected() == 0 {
				otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating verification")
				return fmt.Errorf("failed to update verification: %w", ErrNoRowsAffected)
			}
		}

		if events := v.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if fnerr != nil {
		// The transaction committed; the caller still needs the error.
		otelx.RecordSpanError(span, fnerr, "update function returned an error but its mutation is committed")
		return fnerr
	}
	return nil
}
