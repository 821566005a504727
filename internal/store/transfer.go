package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resource-hub-backend/internal/actorctx"
	"resource-hub-backend/internal/model"
)

// recordTransfer appends one relocation history row inside the caller's
// transaction. It is invoked exactly once per equipment update whose
// environment diverged; it never mutates equipment or environment rows.
func recordTransfer(ctx context.Context, tx *gorm.DB, equipmentID int64, from, to *int64) error {
	rec := model.TransferRecord{
		ID:                uuid.NewString(),
		EquipmentID:       equipmentID,
		FromEnvironmentID: from,
		ToEnvironmentID:   to,
		OccurredAt:        time.Now().UTC(),
	}
	if actor, ok := actorctx.Current(ctx); ok {
		rec.ActorID = &actor.ID
	}
	return tx.Create(&rec).Error
}

// ListTransfers returns an equipment's relocation history, newest
// first.
func (s *Store) ListTransfers(ctx context.Context, equipmentID int64) ([]model.TransferRecord, error) {
	var records []model.TransferRecord
	err := s.db.WithContext(ctx).
		Preload("FromEnvironment").Preload("ToEnvironment").Preload("Actor").
		Where("equipment_id = ?", equipmentID).
		Order("occurred_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
