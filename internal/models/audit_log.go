package models

import (
	"time"

	"papertrade/internal/uuid"

	"gorm.io/gorm"
)

// Audit actions.
const (
	AuditActionRegister = "REGISTER"
	AuditActionLogin    = "LOGIN"
	AuditActionLogout   = "LOGOUT"
	AuditActionBuy      = "BUY"
	AuditActionSell     = "SELL"
)

// AuditLog records account and trading operations per user.
type AuditLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Changes      string    `json:"changes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New()
	}
	return nil
}
