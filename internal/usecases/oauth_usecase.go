package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"legal-city.backend/internal/domain/entities"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/domain/repositories"
	"legal-city.backend/internal/infrastructure/oauth"
	"legal-city.backend/pkg/crypto"
	"legal-city.backend/pkg/jwt"
)

// OAuthUsecase exchanges provider identities for application session tokens
type OAuthUsecase struct {
	accounts        repositories.AccountRepository
	uow             repositories.UnitOfWork
	providers       map[string]oauth.Provider
	client          oauth.Client
	states          oauth.StateStore
	jwtService      *jwt.JWTService
	callbackBaseURL string
}

// NewOAuthUsecase creates a new OAuth usecase
func NewOAuthUsecase(
	accounts repositories.AccountRepository,
	uow repositories.UnitOfWork,
	providers []oauth.Provider,
	client oauth.Client,
	states oauth.StateStore,
	jwtService *jwt.JWTService,
	callbackBaseURL string,
) *OAuthUsecase {
	byName := make(map[string]oauth.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name] = p
	}
	return &OAuthUsecase{
		accounts:        accounts,
		uow:             uow,
		providers:       byName,
		client:          client,
		states:          states,
		jwtService:      jwtService,
		callbackBaseURL: callbackBaseURL,
	}
}

// AuthorizationURL builds the provider redirect URL with a fresh state
func (u *OAuthUsecase) AuthorizationURL(providerName string) (string, error) {
	provider, ok := u.providers[providerName]
	if !ok {
		return "", domainerrors.ErrNotFound
	}

	state, err := crypto.GenerateRandomToken(16)
	if err != nil {
		return "", err
	}
	u.states.Save(state)

	return provider.AuthorizationURL(u.redirectURI(providerName), state), nil
}

// HandleCallback validates the state, exchanges the code, and resolves the
// provider identity to a local account. A provider email matching a local
// account links only if that account's email is already verified; otherwise
// the attempt conflicts instead of silently merging.
func (u *OAuthUsecase) HandleCallback(ctx context.Context, providerName, code, state string) (string, error) {
	provider, ok := u.providers[providerName]
	if !ok {
		return "", domainerrors.ErrNotFound
	}
	if code == "" || !u.states.Consume(state) {
		return "", domainerrors.ErrUnauthorized
	}

	accessToken, err := u.client.ExchangeCode(ctx, provider, code, u.redirectURI(providerName))
	if err != nil {
		return "", fmt.Errorf("oauth exchange: %w", err)
	}

	profile, err := u.client.FetchProfile(ctx, provider, accessToken)
	if err != nil {
		return "", fmt.Errorf("oauth profile: %w", err)
	}

	account, err := u.resolveAccount(ctx, profile)
	if err != nil {
		return "", err
	}

	return u.jwtService.GenerateToken(account.ID, account.Email, string(account.Role), account.IsAdmin)
}

func (u *OAuthUsecase) resolveAccount(ctx context.Context, profile *entities.OAuthProfile) (*entities.Account, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))

	var account *entities.Account
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.accounts.GetByEmail(txCtx, email)
		if err == nil {
			if !existing.EmailVerified {
				// Provider asserts the email but the local owner never proved
				// it; refuse the merge.
				return domainerrors.ErrAlreadyExists
			}
			account = existing
			return nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		// Password login stays unusable for provider-created accounts.
		placeholder, err := crypto.GenerateRandomToken(32)
		if err != nil {
			return err
		}
		passwordHash, err := crypto.HashPassword(placeholder)
		if err != nil {
			return err
		}

		name := profile.Name
		if name == "" {
			name = email
		}

		account = &entities.Account{
			Name:          name,
			Email:         email,
			PasswordHash:  passwordHash,
			Role:          entities.RoleUser,
			EmailVerified: true,
			Username:      null.String{},
		}
		return u.accounts.Create(txCtx, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (u *OAuthUsecase) redirectURI(providerName string) string {
	return fmt.Sprintf("%s/%s/callback", u.callbackBaseURL, providerName)
}
