package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
)

type VerificationDTO struct {
	ID            uuid.UUID
	Email         string
	CodeHash      string
	Attempts      int16
	ExpiresAt     time.Time
	ResendTimeout time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func DomainToVerificationDTO(v *verification.Verification) VerificationDTO {
	return VerificationDTO{
		ID:            uuid.UUID(v.ID()),
		Email:         v.Email(),
		CodeHash:      v.CodeHash(),
		Attempts:      int16(v.Attempts()),
		ExpiresAt:     v.ExpiresAt(),
		ResendTimeout: v.ResendTimeout(),
		CreatedAt:     v.CreatedAt(),
		UpdatedAt:     v.UpdatedAt(),
	}
}

func VerificationToDomain(dto VerificationDTO) *verification.Verification {
	return verification.Rehydrate(verification.RehydrateArgs{
		ID:            verification.ID(dto.ID),
		Email:         dto.Email,
		CodeHash:      dto.CodeHash,
		Attempts:      int8(dto.Attempts),
		ExpiresAt:     dto.ExpiresAt,
		ResendTimeout: dto.ResendTimeout,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
