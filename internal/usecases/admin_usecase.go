package usecases

import (
	"context"

	"github.com/google/uuid"
	"legal-city.backend/internal/domain/entities"
	"legal-city.backend/internal/domain/repositories"
)

// AdminUsecase handles the admin lawyer-verification workflow
type AdminUsecase struct {
	accounts repositories.AccountRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(accounts repositories.AccountRepository) *AdminUsecase {
	return &AdminUsecase{accounts: accounts}
}

// ListUnverifiedLawyers lists lawyer accounts awaiting credential verification
func (u *AdminUsecase) ListUnverifiedLawyers(ctx context.Context) ([]*entities.Account, error) {
	return u.accounts.ListUnverifiedLawyers(ctx)
}

// VerifyLawyer marks a lawyer's credentials as verified. The flip is
// one-directional; verifying an already-verified lawyer succeeds.
func (u *AdminUsecase) VerifyLawyer(ctx context.Context, id uuid.UUID) error {
	return u.accounts.VerifyLawyer(ctx, id)
}
