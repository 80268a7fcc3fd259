package handler

import (
	"net/http"
	"time"

	"github.com/agency/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SystemHandler handles health and readiness endpoints.
type SystemHandler struct {
	BaseHandler
	db     *persistence.Database
	logger *zap.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *persistence.Database, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{db: db, logger: logger}
}

// Health reports liveness without touching dependencies.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready reports readiness, including the database connection state.
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.logger.Error("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"database": "down",
		})
		return
	}

	stats, err := h.db.Stats()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
		"connections": gin.H{
			"open":   stats.OpenConnections,
			"in_use": stats.InUse,
			"idle":   stats.Idle,
		},
	})
}
