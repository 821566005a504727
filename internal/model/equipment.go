package model

import "time"

// EquipmentCondition is the physical state of a piece of equipment.
type EquipmentCondition string

const (
	ConditionNew              EquipmentCondition = "new"
	ConditionGood             EquipmentCondition = "good"
	ConditionUnderMaintenance EquipmentCondition = "under_maintenance"
	ConditionDefective        EquipmentCondition = "defective"
)

// Valid reports whether c is a recognized equipment condition.
func (c EquipmentCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionUnderMaintenance, ConditionDefective:
		return true
	}
	return false
}

// Equipment is a movable asset, optionally assigned to an environment.
// Serial number uniqueness is case-insensitive and spans inactive rows;
// the backing expression index lives in internal/db.
type Equipment struct {
	ID              int64              `gorm:"primaryKey" json:"id"`
	Name            string             `gorm:"size:150;not null" json:"name"`
	Brand           string             `gorm:"size:100" json:"brand"`
	Model           string             `gorm:"size:100" json:"model"`
	SerialNumber    string             `gorm:"size:120;not null" json:"serialNumber"`
	Condition       EquipmentCondition `gorm:"size:24;not null;default:'good'" json:"condition"`
	EnvironmentID   *int64             `gorm:"index" json:"environmentId,omitempty"`
	Environment     *Environment       `gorm:"foreignKey:EnvironmentID;constraint:OnDelete:SET NULL" json:"environment,omitempty"`
	AcquisitionDate *time.Time         `gorm:"type:date" json:"acquisitionDate,omitempty"`
	Observation     string             `gorm:"type:text" json:"observation,omitempty"`
	AuditFields
}

// TableName pins the plural table name. GORM's naming strategy treats
// "equipment" as uncountable and would map the model to a singular
// table, which the expression-index DDL and the API paths do not use.
func (Equipment) TableName() string { return "equipments" }
