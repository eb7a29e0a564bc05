package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"legal-city.backend/internal/domain/entities"
)

// AccountRepository defines account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)
	GetByRegistrationID(ctx context.Context, registrationID string) (*entities.Account, error)

	// ConsumeVerificationCode marks the account verified and clears the code.
	// Returns ErrNotFound when no unverified account matches email+code, so a
	// consumed code cannot be replayed.
	ConsumeVerificationCode(ctx context.Context, email, code string) error

	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error

	// ResetPassword overwrites the hash and clears the token pair for the
	// account whose unexpired reset token matches. Returns ErrNotFound when the
	// token is unknown, already used, or expired.
	ResetPassword(ctx context.Context, token, passwordHash string) error

	UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	ListUnverifiedLawyers(ctx context.Context) ([]*entities.Account, error)
	VerifyLawyer(ctx context.Context, id uuid.UUID) error

	// GrantAdmin flags an existing account as an administrator.
	GrantAdmin(ctx context.Context, id uuid.UUID) error
}
