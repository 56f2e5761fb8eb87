package domain

import "time"

// AuditFields holds standard audit timestamps for configuration entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
