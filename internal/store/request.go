package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resource-hub-backend/internal/actorctx"
	"resource-hub-backend/internal/model"
)

const maxRequestNoteLen = 255

// SubmitRequest opens a pending reservation request for the current
// actor. Preconditions are checked in order, first failure wins:
// availability, non-admin role, no duplicate pending request, date not
// in the past. The (environment, user, status) unique index remains the
// final authority for the duplicate check under concurrent submissions.
func (s *Store) SubmitRequest(ctx context.Context, environmentID int64, requestForDate *time.Time, note string) (*model.EnvironmentRequest, error) {
	actor, ok := actorctx.Current(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: no authenticated actor", ErrForbidden)
	}

	var req model.EnvironmentRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var env model.Environment
		if err := activeOnly(tx, false).First(&env, "id = ?", environmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: environment %d", ErrNotFound, environmentID)
			}
			return err
		}

		if env.Status != model.EnvironmentAvailable {
			return fmt.Errorf("%w: environment %q is %s", ErrNotAvailable, env.Name, env.Status)
		}
		if actor.IsAdmin() {
			return fmt.Errorf("%w: administrators manage environments directly", ErrForbidden)
		}

		var pending int64
		if err := tx.Model(&model.EnvironmentRequest{}).
			Where("environment_id = ? AND user_id = ? AND status = ?",
				environmentID, actor.ID, model.RequestPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("%w: a pending request for environment %q already exists", ErrDuplicateRequest, env.Name)
		}

		if requestForDate != nil {
			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if requestForDate.Before(today) {
				return fmt.Errorf("%w: request date must be today or later", ErrValidation)
			}
		}
		if len(note) > maxRequestNoteLen {
			return fmt.Errorf("%w: note exceeds %d characters", ErrValidation, maxRequestNoteLen)
		}

		req = model.EnvironmentRequest{
			ID:             uuid.NewString(),
			EnvironmentID:  environmentID,
			UserID:         actor.ID,
			Status:         model.RequestPending,
			RequestedAt:    time.Now().UTC(),
			RequestForDate: requestForDate,
			Note:           note,
		}
		if err := tx.Create(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: a pending request for environment %q already exists", ErrDuplicateRequest, env.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ApproveRequest transitions a pending request to approved.
func (s *Store) ApproveRequest(ctx context.Context, id string) (*model.EnvironmentRequest, error) {
	return s.decideRequest(ctx, id, model.RequestApproved)
}

// RejectRequest transitions a pending request to rejected.
func (s *Store) RejectRequest(ctx context.Context, id string) (*model.EnvironmentRequest, error) {
	return s.decideRequest(ctx, id, model.RequestRejected)
}

// decideRequest applies a terminal transition with a guarded UPDATE, so
// two concurrent decisions cannot both succeed: whoever loses the race
// sees zero affected rows and reports ErrInvalidTransition.
func (s *Store) decideRequest(ctx context.Context, id string, target model.RequestStatus) (*model.EnvironmentRequest, error) {
	actor, ok := actorctx.Current(ctx)
	if !ok || !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators decide requests", ErrForbidden)
	}

	var req model.EnvironmentRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.EnvironmentRequest{}).
			Where("id = ? AND status = ?", id, model.RequestPending).
			Updates(map[string]interface{}{
				"status":        target,
				"decided_by_id": actor.ID,
				"updated_at":    time.Now().UTC(),
			})
		if res.Error != nil {
			// The (environment, user, status) index also covers decided
			// rows: a repeat decision on a resubmission would duplicate
			// an earlier decided triple.
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: an identical decided request already exists for request %s", ErrConflict, id)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&model.EnvironmentRequest{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: request %s", ErrNotFound, id)
			}
			return fmt.Errorf("%w: request %s is no longer pending", ErrInvalidTransition, id)
		}
		return tx.Preload("Environment").Preload("User").First(&req, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// RequestOutcome is the per-id result of a bulk decision.
type RequestOutcome struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Request *model.EnvironmentRequest `json:"-"`
}

// BulkDecideRequests applies the same per-record transition rule to
// each id independently. A failed id never rolls back its siblings;
// partial success is the expected shape of the result.
func (s *Store) BulkDecideRequests(ctx context.Context, ids []string, target model.RequestStatus) []RequestOutcome {
	outcomes := make([]RequestOutcome, 0, len(ids))
	for _, id := range ids {
		req, err := s.decideRequest(ctx, id, target)
		if err != nil {
			outcomes = append(outcomes, RequestOutcome{ID: id, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, RequestOutcome{ID: id, OK: true, Request: req})
	}
	return outcomes
}

// RequestListOptions narrows and paginates a request listing.
type RequestListOptions struct {
	Status        model.RequestStatus
	EnvironmentID *int64
	UserID        *int64
	Page          int
	PageSize      int
}

// ListRequests returns one page of requests, newest first.
func (s *Store) ListRequests(ctx context.Context, opts RequestListOptions) (*Page[model.EnvironmentRequest], error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PageSize <= 0 || opts.PageSize > 100 {
		opts.PageSize = 20
	}

	tx := s.db.WithContext(ctx).Model(&model.EnvironmentRequest{})
	if opts.Status != "" {
		tx = tx.Where("status = ?", opts.Status)
	}
	if opts.EnvironmentID != nil {
		tx = tx.Where("environment_id = ?", *opts.EnvironmentID)
	}
	if opts.UserID != nil {
		tx = tx.Where("user_id = ?", *opts.UserID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var reqs []model.EnvironmentRequest
	if err := tx.
		Preload("Environment").Preload("User").
		Order("requested_at DESC").
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return &Page[model.EnvironmentRequest]{Items: reqs, Total: total, Page: opts.Page, PageSize: opts.PageSize}, nil
}
