package models

import "time"

// AuditFields provides common audit timestamps for persisted rows.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
