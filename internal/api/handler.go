package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/notification"
	"resource-hub-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   *store.Store
	pool    *notification.WorkerPool
	webpush *webpush.Options
}

// NewHandler creates a new API handler. pool may be nil when push
// notifications are not configured.
func NewHandler(s *store.Store, pool *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		pool:    pool,
		webpush: webpushOptions,
	}
}

// notifyDecision hands a decided request to the worker pool, if one is
// running.
func (h *Handler) notifyDecision(req *model.EnvironmentRequest) {
	if h.pool == nil || req == nil {
		return
	}
	d := notification.Decision{
		RequestID: req.ID,
		UserID:    req.UserID,
		Status:    req.Status,
	}
	if req.Environment != nil {
		d.EnvironmentName = req.Environment.Name
	}
	h.pool.Dispatch(d)
}
