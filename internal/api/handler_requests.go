package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resource-hub-backend/internal/actorctx"
	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/store"
)

type submitRequestBody struct {
	RequestForDate *string `json:"requestForDate"`
	Note           string  `json:"note"`
}

// SubmitRequest handles POST /api/environments/:id/requests.
func (h *Handler) SubmitRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body submitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var requestFor *time.Time
	if body.RequestForDate != nil {
		d, err := time.ParseInLocation("2006-01-02", *body.RequestForDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "requestForDate must be YYYY-MM-DD"})
			return
		}
		requestFor = &d
	}

	req, err := h.store.SubmitRequest(c.Request.Context(), id, requestFor, body.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListRequests handles GET /api/requests. Administrators see every
// request; other actors only their own.
func (h *Handler) ListRequests(c *gin.Context) {
	actor, _ := actorctx.Current(c.Request.Context())

	opts := store.RequestListOptions{
		Status: model.RequestStatus(c.Query("status")),
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		opts.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil {
		opts.PageSize = v
	}
	if v, err := strconv.ParseInt(c.Query("environment_id"), 10, 64); err == nil {
		opts.EnvironmentID = &v
	}
	if !actor.IsAdmin() {
		opts.UserID = &actor.ID
	}

	page, err := h.store.ListRequests(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ApproveRequest handles POST /api/requests/:id/approve.
func (h *Handler) ApproveRequest(c *gin.Context) {
	req, err := h.store.ApproveRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.notifyDecision(req)
	c.JSON(http.StatusOK, req)
}

// RejectRequest handles POST /api/requests/:id/reject.
func (h *Handler) RejectRequest(c *gin.Context) {
	req, err := h.store.RejectRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.notifyDecision(req)
	c.JSON(http.StatusOK, req)
}

type bulkDecisionBody struct {
	IDs []string `json:"ids" binding:"required"`
}

// BulkApproveRequests handles POST /api/requests/approve.
func (h *Handler) BulkApproveRequests(c *gin.Context) {
	h.bulkDecide(c, model.RequestApproved)
}

// BulkRejectRequests handles POST /api/requests/reject.
func (h *Handler) BulkRejectRequests(c *gin.Context) {
	h.bulkDecide(c, model.RequestRejected)
}

// bulkDecide applies one decision per id and always answers 200 with
// per-id outcomes; a failed id is data, not a request failure.
func (h *Handler) bulkDecide(c *gin.Context, target model.RequestStatus) {
	var body bulkDecisionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcomes := h.store.BulkDecideRequests(c.Request.Context(), body.IDs, target)
	for _, o := range outcomes {
		if o.OK {
			h.notifyDecision(o.Request)
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": outcomes})
}
