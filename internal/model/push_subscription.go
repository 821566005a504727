package model

import "time"

// PushSubscription holds a browser push subscription registered by an
// actor. The owner is notified when one of their environment requests
// is decided.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	ActorID   int64     `gorm:"index;not null"`
	Actor     *Actor    `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null"`
}
