package store

import (
	"context"

	"gorm.io/gorm"

	"resource-hub-backend/internal/actorctx"
	"resource-hub-backend/internal/model"
)

// Store persists environments, equipment, transfer history and
// reservation requests. Every mutation runs in its own transaction and
// stamps provenance from the actor carried in the context.
type Store struct {
	db *gorm.DB
}

// New creates a store over an initialized GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for read-only aggregation in
// handlers and for the notification worker.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// ListOptions narrows and paginates a resource listing. The zero value
// lists the first page of active rows.
type ListOptions struct {
	Query           string
	Type            model.EnvironmentType
	Status          model.EnvironmentStatus
	Condition       model.EquipmentCondition
	EnvironmentID   *int64
	IncludeInactive bool
	Page            int
	PageSize        int
}

func (o *ListOptions) normalize() {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 || o.PageSize > 100 {
		o.PageSize = 20
	}
}

// Page is one page of a listing plus the total row count before
// pagination.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// activeOnly narrows a query to active rows unless the caller opted in
// to seeing inactive ones. This is the only path by which soft-deleted
// rows are hidden; there is no query rewriting anywhere else.
func activeOnly(tx *gorm.DB, includeInactive bool) *gorm.DB {
	if includeInactive {
		return tx
	}
	return tx.Where("active = ?", true)
}

// stampCreate fills the provenance columns for a first persist. Both
// columns are set iff an actor is current; created_by is never touched
// again after this.
func stampCreate(ctx context.Context, af *model.AuditFields) {
	if actor, ok := actorctx.Current(ctx); ok {
		af.CreatedByID = &actor.ID
		af.UpdatedByID = &actor.ID
	}
}

// stampUpdate overwrites updated_by when an actor is current and leaves
// it alone otherwise. created_by is deliberately untouched.
func stampUpdate(ctx context.Context, af *model.AuditFields) {
	if actor, ok := actorctx.Current(ctx); ok {
		af.UpdatedByID = &actor.ID
	}
}
