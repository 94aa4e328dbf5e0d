package services

import (
	"encoding/json"

	"papertrade/internal/logger"
	"papertrade/internal/models"

	"gorm.io/gorm"
)

// auditService appends rows to the audit trail.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends an audit entry. Failures are logged and never reach the caller.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("Audit entry dropped",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
		return
	}
	logger.Get().Debugw("Audit entry recorded", "user_id", userID, "action", action)
}

// encodeChanges renders the change set as JSON; nil stays empty.
func encodeChanges(action string, changes map[string]any) string {
	if changes == nil {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("Audit changes not serializable", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
