package model

import "time"

// TransferRecord is an immutable history entry for an equipment
// relocation. Rows are appended by the store when an update changes the
// equipment's environment and are never edited afterwards. Either end
// of the move may be nil (unassigned equipment).
type TransferRecord struct {
	ID                string       `gorm:"type:uuid;primaryKey" json:"id"`
	EquipmentID       int64        `gorm:"index;not null" json:"equipmentId"`
	Equipment         *Equipment   `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE" json:"-"`
	FromEnvironmentID *int64       `json:"fromEnvironmentId,omitempty"`
	FromEnvironment   *Environment `gorm:"foreignKey:FromEnvironmentID;constraint:OnDelete:SET NULL" json:"fromEnvironment,omitempty"`
	ToEnvironmentID   *int64       `json:"toEnvironmentId,omitempty"`
	ToEnvironment     *Environment `gorm:"foreignKey:ToEnvironmentID;constraint:OnDelete:SET NULL" json:"toEnvironment,omitempty"`
	ActorID           *int64       `json:"actorId,omitempty"`
	Actor             *Actor       `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"actor,omitempty"`
	OccurredAt        time.Time    `gorm:"index;not null" json:"occurredAt"`
}
