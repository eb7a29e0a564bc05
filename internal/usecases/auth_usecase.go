package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"legal-city.backend/internal/domain/entities"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/domain/repositories"
	"legal-city.backend/internal/infrastructure/mailer"
	"legal-city.backend/pkg/crypto"
	"legal-city.backend/pkg/jwt"
)

const resetTokenTTL = time.Hour

// AuthUsecase handles the credential lifecycle: registration, email
// verification, login and password reset.
type AuthUsecase struct {
	accounts   repositories.AccountRepository
	uow        repositories.UnitOfWork
	mail       mailer.Dispatcher
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	accounts repositories.AccountRepository,
	uow repositories.UnitOfWork,
	mail mailer.Dispatcher,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		accounts:   accounts,
		uow:        uow,
		mail:       mail,
		jwtService: jwtService,
	}
}

// Register creates an unverified account and dispatches the verification code.
// The existence check and insert share a transaction; the unique email index
// backstops concurrent duplicates.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput, role entities.AccountRole) (*entities.Account, error) {
	if fields := ValidateRegistration(input, role); fields != nil {
		return nil, domainerrors.ValidationFailed(fields)
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	account := &entities.Account{
		Name:                  strings.TrimSpace(input.Name),
		Username:              null.NewString(input.Username, input.Username != ""),
		Email:                 strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:          passwordHash,
		Role:                  role,
		EmailVerificationCode: null.StringFrom(code),
		Address:               null.NewString(input.Address, input.Address != ""),
		ZipCode:               null.NewString(input.ZipCode, input.ZipCode != ""),
		City:                  null.NewString(input.City, input.City != ""),
		State:                 null.NewString(input.State, input.State != ""),
		Country:               null.NewString(input.Country, input.Country != ""),
		MobileNumber:          null.NewString(input.MobileNumber, input.MobileNumber != ""),
	}
	if role == entities.RoleLawyer {
		account.RegistrationID = null.StringFrom(strings.TrimSpace(input.RegistrationID))
		account.LawFirm = null.NewString(input.LawFirm, input.LawFirm != "")
		account.Speciality = null.NewString(input.Speciality, input.Speciality != "")
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		_, err := u.accounts.GetByEmail(txCtx, account.Email)
		if err == nil {
			return domainerrors.ErrAlreadyExists
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return u.accounts.Create(txCtx, account)
	})
	if err != nil {
		return nil, err
	}

	if err := u.mail.SendVerificationCode(ctx, account.Email, code); err != nil {
		return nil, err
	}

	return account, nil
}

// Login authenticates an account and issues a session token. Missing accounts
// and wrong passwords collapse to ErrInvalidCredentials; the unverified case
// stays distinguishable.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if fields := ValidateLogin(input); fields != nil {
		return nil, domainerrors.ValidationFailed(fields)
	}

	var account *entities.Account
	var err error

	if input.Email != "" {
		account, err = u.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	if account == nil && input.RegistrationID != "" {
		account, err = u.accounts.GetByRegistrationID(ctx, strings.TrimSpace(input.RegistrationID))
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}

	if account == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !account.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}
	if !crypto.CheckPassword(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(account.ID, account.Email, string(account.Role), account.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		Token:   token,
		Account: account,
	}, nil
}

// VerifyEmail consumes a verification code. Wrong email, wrong code and
// already-consumed code all collapse to ErrNotFound.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) error {
	if input.Email == "" || input.Code == "" {
		return domainerrors.ErrNotFound
	}
	return u.accounts.ConsumeVerificationCode(ctx, strings.ToLower(strings.TrimSpace(input.Email)), input.Code)
}

// ForgotPassword issues a time-boxed reset token when the email is known. The
// caller always answers neutrally, so unknown emails return nil.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	account, err := u.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return err
	}

	if err := u.accounts.SetResetToken(ctx, account.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	return u.mail.SendPasswordReset(ctx, account.Email, token)
}

// ResetPassword consumes a reset token and overwrites the password. The
// conditional update runs in a transaction so a token cannot be double-spent.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	if input.Token == "" {
		return domainerrors.ErrNotFound
	}
	if err := ValidatePassword(input.NewPassword); err != nil {
		return domainerrors.ValidationFailed(map[string]string{"newPassword": err.Error()})
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.accounts.ResetPassword(txCtx, input.Token, passwordHash)
	})
}

// GetAccountByID gets an account by ID
func (u *AuthUsecase) GetAccountByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	return u.accounts.GetByID(ctx, id)
}
