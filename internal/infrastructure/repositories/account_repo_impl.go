package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"legal-city.backend/internal/domain/entities"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/infrastructure/models"
)

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	m := toModel(account)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	account.ID = m.ID
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// GetByEmail gets an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// GetByRegistrationID gets a lawyer account by bar registration id
func (r *AccountRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*entities.Account, error) {
	var m models.Account
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("registration_id = ? AND role = ?", registrationID, string(entities.RoleLawyer)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// ConsumeVerificationCode marks the matching unverified account as verified and
// clears the code. The conditional update makes consumption single-use even
// under concurrent requests.
func (r *AccountRepository) ConsumeVerificationCode(ctx context.Context, email, code string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ? AND email_verification_code = ? AND email_verified = ?", email, code, false).
		Updates(map[string]interface{}{
			"email_verified":          true,
			"email_verification_code": nil,
			"updated_at":              time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetResetToken stores a reset token and its expiry on the account
func (r *AccountRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ResetPassword overwrites the hash and clears the token pair for the account
// whose unexpired token matches. A used or expired token affects zero rows.
func (r *AccountRepository) ResetPassword(ctx context.Context, token, passwordHash string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Account{}).
		Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now()).
		Updates(map[string]interface{}{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateProfile overwrites the mutable profile fields
func (r *AccountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":          input.Name,
			"username":      nilIfEmpty(input.Username),
			"address":       nilIfEmpty(input.Address),
			"zip_code":      nilIfEmpty(input.ZipCode),
			"city":          nilIfEmpty(input.City),
			"state":         nilIfEmpty(input.State),
			"country":       nilIfEmpty(input.Country),
			"mobile_number": nilIfEmpty(input.MobileNumber),
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes an account
func (r *AccountRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Account{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListUnverifiedLawyers lists lawyer accounts awaiting credential verification
func (r *AccountRepository) ListUnverifiedLawyers(ctx context.Context) ([]*entities.Account, error) {
	var accountModels []models.Account
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("role = ? AND lawyer_verified = ?", string(entities.RoleLawyer), false).
		Order("created_at ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, err
	}

	var accounts []*entities.Account
	for i := range accountModels {
		accounts = append(accounts, toEntity(&accountModels[i]))
	}
	return accounts, nil
}

// VerifyLawyer flips lawyer_verified for a lawyer account. One-directional.
func (r *AccountRepository) VerifyLawyer(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ? AND role = ?", id, string(entities.RoleLawyer)).
		Updates(map[string]interface{}{
			"lawyer_verified": true,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GrantAdmin flags an existing account as an administrator
func (r *AccountRepository) GrantAdmin(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_admin":   true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toModel(a *entities.Account) *models.Account {
	return &models.Account{
		ID:                    a.ID,
		Name:                  a.Name,
		Username:              a.Username.Ptr(),
		Email:                 a.Email,
		PasswordHash:          a.PasswordHash,
		Role:                  string(a.Role),
		IsAdmin:               a.IsAdmin,
		EmailVerified:         a.EmailVerified,
		EmailVerificationCode: a.EmailVerificationCode.Ptr(),
		ResetToken:            a.ResetToken.Ptr(),
		ResetTokenExpiry:      a.ResetTokenExpiry.Ptr(),
		Address:               a.Address.Ptr(),
		ZipCode:               a.ZipCode.Ptr(),
		City:                  a.City.Ptr(),
		State:                 a.State.Ptr(),
		Country:               a.Country.Ptr(),
		MobileNumber:          a.MobileNumber.Ptr(),
		RegistrationID:        a.RegistrationID.Ptr(),
		LawFirm:               a.LawFirm.Ptr(),
		Speciality:            a.Speciality.Ptr(),
		LawyerVerified:        a.LawyerVerified,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

func toEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:                    m.ID,
		Name:                  m.Name,
		Username:              null.StringFromPtr(m.Username),
		Email:                 m.Email,
		PasswordHash:          m.PasswordHash,
		Role:                  entities.AccountRole(m.Role),
		IsAdmin:               m.IsAdmin,
		EmailVerified:         m.EmailVerified,
		EmailVerificationCode: null.StringFromPtr(m.EmailVerificationCode),
		ResetToken:            null.StringFromPtr(m.ResetToken),
		ResetTokenExpiry:      null.TimeFromPtr(m.ResetTokenExpiry),
		Address:               null.StringFromPtr(m.Address),
		ZipCode:               null.StringFromPtr(m.ZipCode),
		City:                  null.StringFromPtr(m.City),
		State:                 null.StringFromPtr(m.State),
		Country:               null.StringFromPtr(m.Country),
		MobileNumber:          null.StringFromPtr(m.MobileNumber),
		RegistrationID:        null.StringFromPtr(m.RegistrationID),
		LawFirm:               null.StringFromPtr(m.LawFirm),
		Speciality:            null.StringFromPtr(m.Speciality),
		LawyerVerified:        m.LawyerVerified,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
