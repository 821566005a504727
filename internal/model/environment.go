package model

// EnvironmentType classifies a physical space.
type EnvironmentType string

const (
	EnvironmentRoom       EnvironmentType = "room"
	EnvironmentLab        EnvironmentType = "lab"
	EnvironmentAuditorium EnvironmentType = "auditorium"
)

// Valid reports whether t is a recognized environment type.
func (t EnvironmentType) Valid() bool {
	switch t {
	case EnvironmentRoom, EnvironmentLab, EnvironmentAuditorium:
		return true
	}
	return false
}

// EnvironmentStatus is the availability state of an environment.
type EnvironmentStatus string

const (
	EnvironmentAvailable   EnvironmentStatus = "available"
	EnvironmentInUse       EnvironmentStatus = "in_use"
	EnvironmentMaintenance EnvironmentStatus = "maintenance"
)

// Valid reports whether s is a recognized environment status.
func (s EnvironmentStatus) Valid() bool {
	switch s {
	case EnvironmentAvailable, EnvironmentInUse, EnvironmentMaintenance:
		return true
	}
	return false
}

// Environment represents a reservable physical space (room, lab,
// auditorium). Name uniqueness is case-insensitive and spans inactive
// rows too; the backing expression index lives in internal/db.
type Environment struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:150;not null" json:"name"`
	Type        EnvironmentType   `gorm:"size:20;not null" json:"type"`
	Location    string            `gorm:"size:255" json:"location"`
	Capacity    *int              `json:"capacity,omitempty"`
	Status      EnvironmentStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	Description string            `gorm:"type:text" json:"description,omitempty"`
	AuditFields

	// Associations
	Equipments []Equipment `gorm:"foreignKey:EnvironmentID" json:"-"`
}
