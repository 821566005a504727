package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"resource-hub-backend/internal/model"
)

// EnvironmentInput carries the fields accepted when creating an
// environment.
type EnvironmentInput struct {
	Name        string                  `json:"name"`
	Type        model.EnvironmentType   `json:"type"`
	Location    string                  `json:"location"`
	Capacity    *int                    `json:"capacity"`
	Status      model.EnvironmentStatus `json:"status"`
	Description string                  `json:"description"`
}

// EnvironmentPatch is a partial update; nil fields are left unchanged.
type EnvironmentPatch struct {
	Name          *string                  `json:"name"`
	Type          *model.EnvironmentType   `json:"type"`
	Location      *string                  `json:"location"`
	Capacity      *int                     `json:"capacity"`
	ClearCapacity bool                     `json:"clearCapacity"`
	Status        *model.EnvironmentStatus `json:"status"`
	Description   *string                  `json:"description"`
}

// CreateEnvironment validates, stamps provenance and persists a new
// environment. The uniqueness pre-check is an optimization; the
// LOWER(name) unique index is the final authority.
func (s *Store) CreateEnvironment(ctx context.Context, in EnvironmentInput) (*model.Environment, error) {
	env := model.Environment{
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		Location:    in.Location,
		Capacity:    in.Capacity,
		Status:      in.Status,
		Description: in.Description,
	}
	if env.Status == "" {
		env.Status = model.EnvironmentAvailable
	}
	if err := validateEnvironment(&env); err != nil {
		return nil, err
	}
	env.Active = true
	stampCreate(ctx, &env.AuditFields)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := environmentNameTaken(tx, env.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: environment name %q already in use", ErrConflict, env.Name)
		}
		if err := tx.Create(&env).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: environment name %q already in use", ErrConflict, env.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &env, nil
}

// GetEnvironment fetches one environment. Soft-deleted rows are hidden
// unless includeInactive is set.
func (s *Store) GetEnvironment(ctx context.Context, id int64, includeInactive bool) (*model.Environment, error) {
	var env model.Environment
	err := activeOnly(s.db.WithContext(ctx), includeInactive).
		Preload("CreatedBy").Preload("UpdatedBy").
		First(&env, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: environment %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &env, nil
}

// UpdateEnvironment applies a partial update. The row is loaded
// including inactive ones, so in-flight edits on a just-deactivated
// record still work.
func (s *Store) UpdateEnvironment(ctx context.Context, id int64, patch EnvironmentPatch) (*model.Environment, error) {
	var env model.Environment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&env, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: environment %d", ErrNotFound, id)
			}
			return err
		}

		if patch.Name != nil {
			env.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Type != nil {
			env.Type = *patch.Type
		}
		if patch.Location != nil {
			env.Location = *patch.Location
		}
		if patch.ClearCapacity {
			env.Capacity = nil
		} else if patch.Capacity != nil {
			env.Capacity = patch.Capacity
		}
		if patch.Status != nil {
			env.Status = *patch.Status
		}
		if patch.Description != nil {
			env.Description = *patch.Description
		}

		if err := validateEnvironment(&env); err != nil {
			return err
		}
		taken, err := environmentNameTaken(tx, env.Name, env.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: environment name %q already in use", ErrConflict, env.Name)
		}

		stampUpdate(ctx, &env.AuditFields)
		if err := tx.Save(&env).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: environment name %q already in use", ErrConflict, env.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &env, nil
}

// SoftDeleteEnvironment marks the row inactive. Associations are left
// untouched: equipment stays linked, default listings just stop showing
// the row.
func (s *Store) SoftDeleteEnvironment(ctx context.Context, id int64) error {
	return s.setEnvironmentActive(ctx, id, false)
}

// RestoreEnvironment reverses a soft delete.
func (s *Store) RestoreEnvironment(ctx context.Context, id int64) error {
	return s.setEnvironmentActive(ctx, id, true)
}

func (s *Store) setEnvironmentActive(ctx context.Context, id int64, active bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var env model.Environment
		if err := tx.First(&env, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: environment %d", ErrNotFound, id)
			}
			return err
		}
		env.Active = active
		stampUpdate(ctx, &env.AuditFields)
		return tx.Save(&env).Error
	})
}

// HardDeleteEnvironment physically removes the row, for administrative
// purge only. Dependent equipment is unlinked, never deleted; the
// environment's requests go with it.
func (s *Store) HardDeleteEnvironment(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var env model.Environment
		if err := tx.First(&env, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: environment %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Model(&model.Equipment{}).
			Where("environment_id = ?", id).
			Update("environment_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("environment_id = ?", id).
			Delete(&model.EnvironmentRequest{}).Error; err != nil {
			return err
		}
		// Transfer history keeps its rows but drops the dangling ends;
		// SQLite does not enforce the declared SET NULL actions, so the
		// cascade is explicit like the others.
		if err := tx.Model(&model.TransferRecord{}).
			Where("from_environment_id = ?", id).
			Update("from_environment_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.TransferRecord{}).
			Where("to_environment_id = ?", id).
			Update("to_environment_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&env).Error
	})
}

// ListEnvironments returns one page of environments. The free-text
// query matches name and location.
func (s *Store) ListEnvironments(ctx context.Context, opts ListOptions) (*Page[model.Environment], error) {
	opts.normalize()

	tx := activeOnly(s.db.WithContext(ctx).Model(&model.Environment{}), opts.IncludeInactive)
	if q := strings.TrimSpace(opts.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", like, like)
	}
	if opts.Type != "" {
		tx = tx.Where("type = ?", opts.Type)
	}
	if opts.Status != "" {
		tx = tx.Where("status = ?", opts.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var envs []model.Environment
	if err := tx.
		Order("name ASC").
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&envs).Error; err != nil {
		return nil, err
	}
	return &Page[model.Environment]{Items: envs, Total: total, Page: opts.Page, PageSize: opts.PageSize}, nil
}

func validateEnvironment(env *model.Environment) error {
	if env.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !env.Type.Valid() {
		return fmt.Errorf("%w: unknown environment type %q", ErrValidation, env.Type)
	}
	if !env.Status.Valid() {
		return fmt.Errorf("%w: unknown environment status %q", ErrValidation, env.Status)
	}
	if env.Capacity != nil && *env.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	return nil
}

// environmentNameTaken checks name uniqueness case-insensitively among
// active and inactive rows, excluding the record's own id on updates.
func environmentNameTaken(tx *gorm.DB, name string, excludeID int64) (bool, error) {
	q := tx.Model(&model.Environment{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
