package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resource-hub-backend/internal/store"
)

// respondError maps the store's error taxonomy onto HTTP. Everything in
// the taxonomy is recoverable and carries a user-facing message; only
// unmapped errors are treated as infrastructure failures.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"code": "validation", "error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"code": "not_found", "error": err.Error()})
	case errors.Is(err, store.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "forbidden", "error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"code": "conflict", "error": err.Error()})
	case errors.Is(err, store.ErrNotAvailable):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"code": "not_available", "error": err.Error()})
	case errors.Is(err, store.ErrDuplicateRequest):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"code": "duplicate_request", "error": err.Error()})
	case errors.Is(err, store.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"code": "invalid_transition", "error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": "internal", "error": "internal error"})
	}
}
