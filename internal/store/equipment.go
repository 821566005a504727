package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resource-hub-backend/internal/model"
)

// EquipmentInput carries the fields accepted when registering
// equipment.
type EquipmentInput struct {
	Name            string                   `json:"name"`
	Brand           string                   `json:"brand"`
	Model           string                   `json:"model"`
	SerialNumber    string                   `json:"serialNumber"`
	Condition       model.EquipmentCondition `json:"condition"`
	EnvironmentID   *int64                   `json:"environmentId"`
	AcquisitionDate *time.Time               `json:"acquisitionDate"`
	Observation     string                   `json:"observation"`
}

// EquipmentPatch is a partial update; nil fields are left unchanged.
// ClearEnvironment distinguishes "unassign" from "don't touch".
type EquipmentPatch struct {
	Name             *string                   `json:"name"`
	Brand            *string                   `json:"brand"`
	Model            *string                   `json:"model"`
	SerialNumber     *string                   `json:"serialNumber"`
	Condition        *model.EquipmentCondition `json:"condition"`
	EnvironmentID    *int64                    `json:"environmentId"`
	ClearEnvironment bool                      `json:"clearEnvironment"`
	AcquisitionDate  *time.Time                `json:"acquisitionDate"`
	Observation      *string                   `json:"observation"`
}

// CreateEquipment validates, stamps provenance and persists a new piece
// of equipment. Creation never records a transfer, even when the
// equipment starts out assigned to an environment.
func (s *Store) CreateEquipment(ctx context.Context, in EquipmentInput) (*model.Equipment, error) {
	eq := model.Equipment{
		Name:            strings.TrimSpace(in.Name),
		Brand:           in.Brand,
		Model:           in.Model,
		SerialNumber:    strings.TrimSpace(in.SerialNumber),
		Condition:       in.Condition,
		EnvironmentID:   in.EnvironmentID,
		AcquisitionDate: in.AcquisitionDate,
		Observation:     in.Observation,
	}
	if eq.Condition == "" {
		eq.Condition = model.ConditionGood
	}
	if err := validateEquipment(&eq); err != nil {
		return nil, err
	}
	eq.Active = true
	stampCreate(ctx, &eq.AuditFields)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := serialNumberTaken(tx, eq.SerialNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: serial number %q already in use", ErrConflict, eq.SerialNumber)
		}
		if eq.EnvironmentID != nil {
			if err := environmentExists(tx, *eq.EnvironmentID); err != nil {
				return err
			}
		}
		if err := tx.Create(&eq).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: serial number %q already in use", ErrConflict, eq.SerialNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

// GetEquipment fetches one equipment row. Soft-deleted rows are hidden
// unless includeInactive is set.
func (s *Store) GetEquipment(ctx context.Context, id int64, includeInactive bool) (*model.Equipment, error) {
	var eq model.Equipment
	err := activeOnly(s.db.WithContext(ctx), includeInactive).
		Preload("Environment").Preload("CreatedBy").Preload("UpdatedBy").
		First(&eq, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: equipment %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

// UpdateEquipment applies a partial update. The pre-patch environment
// is compared with the post-patch one before persisting; when they
// diverge a transfer record is appended in the same transaction, so the
// update and its history row commit or roll back together.
func (s *Store) UpdateEquipment(ctx context.Context, id int64, patch EquipmentPatch) (*model.Equipment, error) {
	var eq model.Equipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&eq, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: equipment %d", ErrNotFound, id)
			}
			return err
		}
		oldEnv := cloneID(eq.EnvironmentID)

		if patch.Name != nil {
			eq.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Brand != nil {
			eq.Brand = *patch.Brand
		}
		if patch.Model != nil {
			eq.Model = *patch.Model
		}
		if patch.SerialNumber != nil {
			eq.SerialNumber = strings.TrimSpace(*patch.SerialNumber)
		}
		if patch.Condition != nil {
			eq.Condition = *patch.Condition
		}
		if patch.ClearEnvironment {
			eq.EnvironmentID = nil
		} else if patch.EnvironmentID != nil {
			eq.EnvironmentID = cloneID(patch.EnvironmentID)
		}
		if patch.AcquisitionDate != nil {
			eq.AcquisitionDate = patch.AcquisitionDate
		}
		if patch.Observation != nil {
			eq.Observation = *patch.Observation
		}

		if err := validateEquipment(&eq); err != nil {
			return err
		}
		taken, err := serialNumberTaken(tx, eq.SerialNumber, eq.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: serial number %q already in use", ErrConflict, eq.SerialNumber)
		}
		if eq.EnvironmentID != nil && environmentChanged(oldEnv, eq.EnvironmentID) {
			if err := environmentExists(tx, *eq.EnvironmentID); err != nil {
				return err
			}
		}

		stampUpdate(ctx, &eq.AuditFields)
		if err := tx.Save(&eq).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: serial number %q already in use", ErrConflict, eq.SerialNumber)
			}
			return err
		}

		if environmentChanged(oldEnv, eq.EnvironmentID) {
			return recordTransfer(ctx, tx, eq.ID, oldEnv, cloneID(eq.EnvironmentID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

// SoftDeleteEquipment marks the row inactive without unlinking it from
// its environment.
func (s *Store) SoftDeleteEquipment(ctx context.Context, id int64) error {
	return s.setEquipmentActive(ctx, id, false)
}

// RestoreEquipment reverses a soft delete.
func (s *Store) RestoreEquipment(ctx context.Context, id int64) error {
	return s.setEquipmentActive(ctx, id, true)
}

func (s *Store) setEquipmentActive(ctx context.Context, id int64, active bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq model.Equipment
		if err := tx.First(&eq, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: equipment %d", ErrNotFound, id)
			}
			return err
		}
		eq.Active = active
		stampUpdate(ctx, &eq.AuditFields)
		return tx.Save(&eq).Error
	})
}

// HardDeleteEquipment physically removes the row together with its
// transfer history, for administrative purge only.
func (s *Store) HardDeleteEquipment(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq model.Equipment
		if err := tx.First(&eq, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: equipment %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Where("equipment_id = ?", id).
			Delete(&model.TransferRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&eq).Error
	})
}

// ListEquipment returns one page of equipment. The free-text query
// matches name, brand and serial number.
func (s *Store) ListEquipment(ctx context.Context, opts ListOptions) (*Page[model.Equipment], error) {
	opts.normalize()

	tx := activeOnly(s.db.WithContext(ctx).Model(&model.Equipment{}), opts.IncludeInactive)
	if q := strings.TrimSpace(opts.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(serial_number) LIKE ?", like, like, like)
	}
	if opts.Condition != "" {
		tx = tx.Where("condition = ?", opts.Condition)
	}
	if opts.EnvironmentID != nil {
		tx = tx.Where("environment_id = ?", *opts.EnvironmentID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.Equipment
	if err := tx.
		Preload("Environment").
		Order("name ASC").
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return &Page[model.Equipment]{Items: items, Total: total, Page: opts.Page, PageSize: opts.PageSize}, nil
}

func validateEquipment(eq *model.Equipment) error {
	if eq.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if eq.SerialNumber == "" {
		return fmt.Errorf("%w: serial number is required", ErrValidation)
	}
	if !eq.Condition.Valid() {
		return fmt.Errorf("%w: unknown equipment condition %q", ErrValidation, eq.Condition)
	}
	return nil
}

// serialNumberTaken checks serial uniqueness case-insensitively among
// active and inactive rows, excluding the record's own id on updates.
func serialNumberTaken(tx *gorm.DB, serial string, excludeID int64) (bool, error) {
	q := tx.Model(&model.Equipment{}).Where("LOWER(serial_number) = LOWER(?)", serial)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// environmentExists verifies an assignment target. Inactive
// environments are accepted; soft delete hides rows from listings, it
// does not sever equipment links.
func environmentExists(tx *gorm.DB, id int64) error {
	var n int64
	if err := tx.Model(&model.Environment{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: environment %d", ErrNotFound, id)
	}
	return nil
}

// environmentChanged reports whether two nullable environment ids
// differ. First-write vs. update handling lives in the callers: only
// UpdateEquipment consults this.
func environmentChanged(a, b *int64) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil || b == nil:
		return true
	default:
		return *a != *b
	}
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
