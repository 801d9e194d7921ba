// Package entities holds the persistence-backed domain model.
package entities

import "time"

// Audit carries the creation and last-modification instants shared by
// all persisted entities.
type Audit struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
