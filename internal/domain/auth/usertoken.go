package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/domain/user"
)

type TokenKind string

const (
	TokenKindAuth          TokenKind = "auth"
	TokenKindActivate      TokenKind = "activate"
	TokenKindPasswordReset TokenKind = "password_reset"
)

type UserToken struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	Kind TokenKind `gorm:"not null;default:'auth';column:kind" json:"kind"`

	// AccessToken/RefreshToken are set for auth tokens; single-use kinds
	// (activate, password_reset) only carry RefreshToken as the opaque secret.
	AccessToken  string    `gorm:"index;column:access_token" json:"-"`
	RefreshToken string    `gorm:"uniqueIndex;not null;column:refresh_token" json:"-"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expires_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserToken) TableName() string { return "user_token" }
