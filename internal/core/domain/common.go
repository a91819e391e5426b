package domain

import "time"

// AuditFields holds creation/update instants shared by all domain entities.
// They exist for audit purposes only and carry no business meaning.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
