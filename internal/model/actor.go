package model

import "time"

// Role classifies an actor as seen by the identity subsystem.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// Actor is an authenticated principal attributable for a mutation.
// Rows are owned by the external identity subsystem; this service only
// reads them and references them from audit columns.
type Actor struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Role      Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
