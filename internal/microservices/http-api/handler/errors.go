package handler

import (
	"errors"
	"net/http"
	"time"

	"novelhub/internal/microservices/http-api/identifier"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestTimeout bounds every handler's call into the service layer.
const requestTimeout = 5 * time.Second

// writeError maps service errors onto status codes. Anything outside the
// known classes is logged and reported as a 500 without details.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindError reports a request body or query that failed binding.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

// paramID reads a surrogate-key path parameter. On failure the response has
// already been written.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := identifier.ParseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid " + name + ": " + err.Error()})
		return 0, false
	}
	return id, true
}
