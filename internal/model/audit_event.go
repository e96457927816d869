package model

import "time"

// AuditEvent is an append-only record of a mutating operation, stored in the
// operational database (not in the registry document).
type AuditEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Action     string    `gorm:"size:64;not null;index"`
	EntityKind string    `gorm:"size:32;not null"`
	EntityID   string    `gorm:"size:128;not null;index"`
	Detail     string    `gorm:"size:512"`
	CreatedAt  time.Time `gorm:"not null"`
}
