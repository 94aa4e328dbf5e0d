package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a registered trader and their simulated cash balance.
type User struct {
	Base
	Username            string          `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash        string          `gorm:"not null" json:"-"`
	Cash                decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"cash"`
	RefreshTokenHash    string          `gorm:"size:64" json:"-"`
	FailedLoginAttempts int             `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time      `json:"-"`
	LastLoginAt         *time.Time      `json:"last_login_at,omitempty"`
}
