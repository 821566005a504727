package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resource-hub-backend/internal/store"
)

// ListEquipment handles GET /api/equipments.
func (h *Handler) ListEquipment(c *gin.Context) {
	page, err := h.store.ListEquipment(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetEquipment handles GET /api/equipments/:id.
func (h *Handler) GetEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	eq, err := h.store.GetEquipment(c.Request.Context(), id, c.Query("include_inactive") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// CreateEquipment handles POST /api/equipments.
func (h *Handler) CreateEquipment(c *gin.Context) {
	var in store.EquipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eq, err := h.store.CreateEquipment(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, eq)
}

// UpdateEquipment handles PATCH /api/equipments/:id.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch store.EquipmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eq, err := h.store.UpdateEquipment(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// SoftDeleteEquipment handles DELETE /api/equipments/:id.
func (h *Handler) SoftDeleteEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.SoftDeleteEquipment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreEquipment handles POST /api/equipments/:id/restore.
func (h *Handler) RestoreEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.RestoreEquipment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HardDeleteEquipment handles DELETE /api/equipments/:id/purge.
func (h *Handler) HardDeleteEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.HardDeleteEquipment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTransfers handles GET /api/equipments/:id/transfers.
func (h *Handler) ListTransfers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.store.ListTransfers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
