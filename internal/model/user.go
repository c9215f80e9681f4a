package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an authenticated user of the service.
// IsActive is the subscription flag, not email verification: accounts are
// created inactive and flipped by an admin with a 30-day expiry window.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string         `json:"role" gorm:"size:50;default:'user';index"`
	IsActive     bool           `json:"is_active" gorm:"default:false;index"`
	ActivatedAt  *time.Time     `json:"activated_at,omitempty"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	RefreshToken *string        `json:"-" gorm:"type:text"` // Last issued refresh token; at most one valid per user
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SubscriptionExpired reports whether the subscription window has lapsed.
// A nil ExpiresAt never expires.
func (u *User) SubscriptionExpired(now time.Time) bool {
	return u.ExpiresAt != nil && u.ExpiresAt.Before(now)
}
