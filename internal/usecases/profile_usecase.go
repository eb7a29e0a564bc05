package usecases

import (
	"context"

	"github.com/google/uuid"
	"legal-city.backend/internal/domain/entities"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/domain/repositories"
)

// ProfileUsecase handles the authenticated account's own profile
type ProfileUsecase struct {
	accounts repositories.AccountRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(accounts repositories.AccountRepository) *ProfileUsecase {
	return &ProfileUsecase{accounts: accounts}
}

// Get returns the account's profile
func (u *ProfileUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	return u.accounts.GetByID(ctx, id)
}

// Update overwrites the mutable profile fields
func (u *ProfileUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) error {
	if fields := ValidateProfileUpdate(input); fields != nil {
		return domainerrors.ValidationFailed(fields)
	}
	return u.accounts.UpdateProfile(ctx, id, input)
}

// Delete removes the account
func (u *ProfileUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.accounts.SoftDelete(ctx, id)
}
