package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/store"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func listOptionsFromQuery(c *gin.Context) store.ListOptions {
	opts := store.ListOptions{
		Query:           c.Query("q"),
		Type:            model.EnvironmentType(c.Query("type")),
		Status:          model.EnvironmentStatus(c.Query("status")),
		Condition:       model.EquipmentCondition(c.Query("condition")),
		IncludeInactive: c.Query("include_inactive") == "true",
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
	return opts
}

// ListEnvironments handles GET /api/environments.
func (h *Handler) ListEnvironments(c *gin.Context) {
	page, err := h.store.ListEnvironments(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetEnvironment handles GET /api/environments/:id.
func (h *Handler) GetEnvironment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	env, err := h.store.GetEnvironment(c.Request.Context(), id, c.Query("include_inactive") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// CreateEnvironment handles POST /api/environments.
func (h *Handler) CreateEnvironment(c *gin.Context) {
	var in store.EnvironmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	env, err := h.store.CreateEnvironment(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, env)
}

// UpdateEnvironment handles PATCH /api/environments/:id.
func (h *Handler) UpdateEnvironment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch store.EnvironmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	env, err := h.store.UpdateEnvironment(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// SoftDeleteEnvironment handles DELETE /api/environments/:id.
func (h *Handler) SoftDeleteEnvironment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.SoftDeleteEnvironment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreEnvironment handles POST /api/environments/:id/restore.
func (h *Handler) RestoreEnvironment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.RestoreEnvironment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HardDeleteEnvironment handles DELETE /api/environments/:id/purge.
func (h *Handler) HardDeleteEnvironment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.HardDeleteEnvironment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
