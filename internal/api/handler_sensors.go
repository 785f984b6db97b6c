package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"building-telemetry-backend/internal/store"
)

// errorResponse is the generic failure envelope. Internal detail stays in the
// server log.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type latestResponse struct {
	Success   bool                 `json:"success"`
	Count     int                  `json:"count"`
	Data      []store.SensorLatest `json:"data"`
	Timestamp time.Time            `json:"timestamp"`
}

type historyResponse struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Data    []store.ReadingPoint `json:"data"`
}

type healthResponse struct {
	Success   bool      `json:"success"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// GetLatest handles GET /api/sensors/latest: every sensor joined with its most
// recent reading, ordered by sensor_id.
func (h *Handler) GetLatest(c *gin.Context) {
	sensors, err := h.store.LatestPerSensor(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching sensors: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch sensor data"})
		return
	}

	c.JSON(http.StatusOK, latestResponse{
		Success:   true,
		Count:     len(sensors),
		Data:      sensors,
		Timestamp: time.Now().UTC(),
	})
}

// GetHistory handles GET /api/sensors/:sensorId/history. The limit query
// parameter defaults to 100 when absent, non-numeric, or non-positive. An
// unknown sensor yields an empty result, not an error.
func (h *Handler) GetHistory(c *gin.Context) {
	sensorID := c.Param("sensorId")

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = store.DefaultHistoryLimit
	}

	history, err := h.store.History(c.Request.Context(), sensorID, limit)
	if err != nil {
		log.Printf("Error fetching history for %s: %v", sensorID, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch sensor history"})
		return
	}

	c.JSON(http.StatusOK, historyResponse{
		Success: true,
		Count:   len(history),
		Data:    history,
	})
}

// GetHealth handles GET /api/health.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
