// Package audit appends a row to the operational database for every mutating
// operation. The trail is best-effort diagnostics: a failed write is logged
// and never fails the operation it describes.
package audit

import (
	"context"
	"log"

	"gorm.io/gorm"

	"maintenance-backend/internal/model"
)

// Recorder writes audit events. A nil Recorder is valid and records nothing,
// so callers never need to branch on whether auditing is configured.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a recorder over the given database.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one event.
func (r *Recorder) Record(ctx context.Context, action, entityKind, entityID, detail string) {
	if r == nil || r.db == nil {
		return
	}
	event := model.AuditEvent{
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("Warning: failed to record audit event %s %s/%s: %v", action, entityKind, entityID, err)
	}
}
