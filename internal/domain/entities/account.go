package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AccountRole represents account roles
type AccountRole string

const (
	RoleUser   AccountRole = "user"
	RoleLawyer AccountRole = "lawyer"
)

// Valid reports whether the role is one of the known roles
func (r AccountRole) Valid() bool {
	return r == RoleUser || r == RoleLawyer
}

// Account represents a user or lawyer identity record
type Account struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Username     null.String `json:"username,omitempty"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         AccountRole `json:"role"`
	IsAdmin      bool        `json:"-"`

	EmailVerified         bool        `json:"emailVerified"`
	EmailVerificationCode null.String `json:"-"`
	ResetToken            null.String `json:"-"`
	ResetTokenExpiry      null.Time   `json:"-"`

	Address      null.String `json:"address,omitempty"`
	ZipCode      null.String `json:"zipCode,omitempty"`
	City         null.String `json:"city,omitempty"`
	State        null.String `json:"state,omitempty"`
	Country      null.String `json:"country,omitempty"`
	MobileNumber null.String `json:"mobileNumber,omitempty"`

	RegistrationID null.String `json:"registrationId,omitempty"`
	LawFirm        null.String `json:"lawFirm,omitempty"`
	Speciality     null.String `json:"speciality,omitempty"`
	LawyerVerified bool        `json:"lawyerVerified"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
}

// RegisterInput represents input for account registration
type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Address      string `json:"address"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	MobileNumber string `json:"mobile_number"`

	RegistrationID string `json:"registration_id"`
	LawFirm        string `json:"law_firm"`
	Speciality     string `json:"speciality"`
}

// LoginInput represents input for login. Lawyers may authenticate with their
// registration id instead of (or alongside) their email.
type LoginInput struct {
	Email          string `json:"email"`
	RegistrationID string `json:"registration_id"`
	Password       string `json:"password"`
}

// VerifyEmailInput represents input for email verification
type VerifyEmailInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ForgotPasswordInput represents input for requesting a password reset
type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// ResetPasswordInput represents input for completing a password reset
type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileInput represents input for overwriting profile fields
type UpdateProfileInput struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Address      string `json:"address"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	MobileNumber string `json:"mobile_number"`
}

// AuthResponse represents a successful login response
type AuthResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"user"`
}

// OAuthProfile represents the identity asserted by an external provider
type OAuthProfile struct {
	Provider string
	Email    string
	Name     string
}
