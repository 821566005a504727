package model

import "time"

// AuditFields carries the soft-delete flag and modification provenance
// shared by every trackable resource.
//
// CreatedBy is stamped once, on first persist, and never overwritten.
// UpdatedBy is overwritten on every persist performed with a current
// actor. Both references are weak: removing the actor nulls the column
// instead of cascading into resource rows.
type AuditFields struct {
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedByID *int64    `gorm:"index" json:"createdById,omitempty"`
	UpdatedByID *int64    `json:"updatedById,omitempty"`
	CreatedBy   *Actor    `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"createdBy,omitempty"`
	UpdatedBy   *Actor    `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"updatedBy,omitempty"`
}
