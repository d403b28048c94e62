package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
)

// VerificationRepo keeps verifications in a map keyed by email and mirrors
// the persistence semantics of the postgres repo: expired rows vanish on
// read, consumed verifications are deleted, and mutations accompanying a
// Persistable error survive.
type VerificationRepo struct {
	*EventRepo
	dbbyEmail map[string]*verification.Verification
	mu        sync.Mutex
}

func NewVerificationRepo() *VerificationRepo {
	return &VerificationRepo{
		EventRepo: NewEventRepo(),
		dbbyEmail: make(map[string]*verification.Verification),
	}
}

func (r *VerificationRepo) GetVerificationByEmail(ctx context.Context, email string) (*verification.Verification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.dbbyEmail[email]
	if !exists {
		return nil, errorx.NewNotFound()
	}
	if v.IsExpired() {
		delete(r.dbbyEmail, email)
		return nil, errorx.NewNotFound()
	}
	return v, nil
}

func (r *VerificationRepo) SaveVerification(ctx context.Context, v *verification.Verification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v == nil {
		return errors.New("verification cannot be nil")
	}

	r.dbbyEmail[v.Email()] = v
	r.appendEvents(v.GetUncommittedEvents()...)
	v.MarkEventsAsCommitted()

	return nil
}

func (r *VerificationRepo) UpdateVerificationByEmail(
	ctx context.Context,
	email string,
	fn func(context.Context, *verification.Verification) error,
) error {
	if fn == nil {
		return errors.New("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.dbbyEmail[email]
	if !exists {
		return errorx.NewNotFound()
	}

	fnerr := fn(ctx, v)
	if fnerr != nil && !errorx.IsPersistable(fnerr) {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}

	if v.IsConsumed() {
		delete(r.dbbyEmail, email)
	} else {
		r.dbbyEmail[email] = v
	}

	r.appendEvents(v.GetUncommittedEvents()...)
	v.MarkEventsAsCommitted()

	if fnerr != nil {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}
	return nil
}

func (r *VerificationRepo) SeedVerification(t *testing.T, v *verification.Verification) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyEmail[v.Email()]; exists {
		t.Fatalf("verification for email %s already exists", v.Email())
	}

	r.dbbyEmail[v.Email()] = v
}

func (r *VerificationRepo) HasVerification(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.dbbyEmail[email]
	return exists
}
