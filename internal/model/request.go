package model

import "time"

// RequestStatus is the state of a reservation request. Pending is the
// only initial state; approved and rejected are terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Valid reports whether s is a recognized request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// EnvironmentRequest is a user's request to use an environment. The
// composite unique index on (environment, user, status) is what keeps a
// user from holding two pending requests for the same environment under
// concurrent submissions.
type EnvironmentRequest struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	EnvironmentID  int64         `gorm:"not null;uniqueIndex:idx_requests_env_user_status" json:"environmentId"`
	Environment    *Environment  `gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE" json:"environment,omitempty"`
	UserID         int64         `gorm:"not null;uniqueIndex:idx_requests_env_user_status" json:"userId"`
	User           *Actor        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status         RequestStatus `gorm:"size:16;not null;default:'pending';uniqueIndex:idx_requests_env_user_status" json:"status"`
	RequestedAt    time.Time     `gorm:"not null" json:"requestedAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	RequestForDate *time.Time    `gorm:"type:date" json:"requestForDate,omitempty"`
	Note           string        `gorm:"size:255" json:"note,omitempty"`
	DecidedByID    *int64        `json:"decidedById,omitempty"`
	DecidedBy      *Actor        `gorm:"foreignKey:DecidedByID;constraint:OnDelete:SET NULL" json:"decidedBy,omitempty"`
}
