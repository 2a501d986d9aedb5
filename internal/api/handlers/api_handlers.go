// Package handlers enthält die gin-Handler der JSON-API, die das Browser-Dashboard
// bedient. Fehler aus den Services werden hier auf HTTP-Status abgebildet: NotFound
// und Validierungsfehler sind nutzer-sichtbar, alles andere ist ein 500.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"metrowatch-go/config"
	"metrowatch-go/internal/server/sse"
	"metrowatch-go/internal/services"

	"github.com/gin-gonic/gin"
)

// APIHandler behandelt alle API-Anfragen des Dashboards
type APIHandler struct {
	cfg       *config.Config
	cameras   *services.CameraService
	incidents *services.IncidentService
	settings  *services.SettingsService
	sseHub    *sse.Hub
}

// NewAPIHandler erstellt einen neuen API-Handler
func NewAPIHandler(cfg *config.Config, cameras *services.CameraService, incidents *services.IncidentService, settings *services.SettingsService, sseHub *sse.Hub) *APIHandler {
	return &APIHandler{
		cfg:       cfg,
		cameras:   cameras,
		incidents: incidents,
		settings:  settings,
		sseHub:    sseHub,
	}
}

// RegisterRoutes registriert alle API-Routen
func (h *APIHandler) RegisterRoutes(api *gin.RouterGroup) {
	// Kamera-Endpunkte
	api.GET("/cameras", h.handleListCameras)
	api.POST("/cameras", h.handleCreateCamera)
	api.GET("/cameras/counts", h.handleCameraCounts)
	api.GET("/cameras/:id", h.handleGetCamera)
	api.PUT("/cameras/:id", h.handleUpdateCamera)
	api.DELETE("/cameras/:id", h.handleDeleteCamera)
	api.POST("/cameras/:id/status", h.handleUpdateCameraStatus)

	// Vorfall-Endpunkte
	api.GET("/incidents", h.handleListIncidents)
	api.POST("/incidents", h.handleCreateIncident)
	api.GET("/incidents/counts", h.handleIncidentCounts)
	api.GET("/incidents/:id", h.handleGetIncident)
	api.PUT("/incidents/:id", h.handleUpdateIncident)
	api.DELETE("/incidents/:id", h.handleDeleteIncident)
	api.POST("/incidents/:id/status", h.handleUpdateIncidentStatus)

	// Einstellungs-Endpunkte
	api.GET("/settings", h.handleGetSettings)
	api.PUT("/settings", h.handleUpdateSettings)
	api.POST("/settings/reset", h.handleResetSettings)
	api.POST("/settings/test-alert", h.handleSendTestAlert)

	// Dashboard-Zusammenfassung
	api.GET("/dashboard/summary", h.handleDashboardSummary)

	// System-Endpunkte
	api.GET("/system/health", h.handleHealth)
	api.GET("/system/status", h.handleSystemStatus)

	// Benachrichtigungs-Stream (SSE)
	api.GET("/events/stream", h.handleSSE)

	// Theme-Präferenz (Cookie-Session)
	api.GET("/preferences/theme", h.handleGetTheme)
	api.PUT("/preferences/theme", h.handleSetTheme)
}

// parseID liest den :id-Parameter. Bei ungültiger ID wird die Anfrage direkt mit
// 400 beantwortet und ok ist false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError bildet Service-Fehler auf HTTP-Status ab
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidChannel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
