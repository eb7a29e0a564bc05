package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Username     *string   `gorm:"type:varchar(100)"`
	// Uniqueness comes from a partial index over live rows (deleted_at IS NULL)
	// so a deleted account frees its email.
	Email        string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"`
	IsAdmin      bool      `gorm:"not null;default:false"`

	EmailVerified         bool    `gorm:"not null;default:false"`
	EmailVerificationCode *string `gorm:"type:varchar(10)"`
	ResetToken            *string `gorm:"type:varchar(128);index"`
	ResetTokenExpiry      *time.Time

	Address      *string `gorm:"type:varchar(255)"`
	ZipCode      *string `gorm:"type:varchar(20)"`
	City         *string `gorm:"type:varchar(100)"`
	State        *string `gorm:"type:varchar(100)"`
	Country      *string `gorm:"type:varchar(100)"`
	MobileNumber *string `gorm:"type:varchar(20)"`

	RegistrationID *string `gorm:"type:varchar(100);index"`
	LawFirm        *string `gorm:"type:varchar(255)"`
	Speciality     *string `gorm:"type:varchar(255)"`
	LawyerVerified bool    `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Account) TableName() string { return "accounts" }
