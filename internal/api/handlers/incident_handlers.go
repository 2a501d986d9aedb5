package handlers

import (
	"net/http"

	"metrowatch-go/internal/core/models"
	"metrowatch-go/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Anzahl der Vorfälle in der Dashboard-Zusammenfassung
const recentIncidentLimit = 5

// handleListIncidents gibt Vorfälle zurück, neueste zuerst. Status, Typ und Suchbegriff
// können per Query-Parameter eingeschränkt werden.
func (h *APIHandler) handleListIncidents(c *gin.Context) {
	filter := services.IncidentFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Search: c.Query("q"),
	}

	incidents, err := h.incidents.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, incidents)
}

// handleGetIncident gibt einen einzelnen Vorfall zurück
func (h *APIHandler) handleGetIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	incident, err := h.incidents.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

// handleCreateIncident legt einen neuen Vorfall an
func (h *APIHandler) handleCreateIncident(c *gin.Context) {
	var in models.Incident
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	incident, err := h.incidents.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	log.Infof("Incident created: %s at %s (ID %d)", incident.Type, incident.Location, incident.ID)
	c.JSON(http.StatusCreated, incident)
}

// handleUpdateIncident aktualisiert einen Vorfall
func (h *APIHandler) handleUpdateIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.Incident
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	incident, err := h.incidents.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

// handleUpdateIncidentStatus ist die Triage-Kurzoperation (Active <-> Resolved)
func (h *APIHandler) handleUpdateIncidentStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	incident, err := h.incidents.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

// handleDeleteIncident löscht einen Vorfall
func (h *APIHandler) handleDeleteIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	incident, err := h.incidents.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

// handleIncidentCounts liefert die Zählungen aktiver und gelöster Vorfälle
func (h *APIHandler) handleIncidentCounts(c *gin.Context) {
	ctx := c.Request.Context()
	active, err := h.incidents.ActiveCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resolved, err := h.incidents.ResolvedCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active":   active,
		"resolved": resolved,
	})
}

// handleDashboardSummary bündelt die Kennzahlen der Dashboard-Seite in einer Antwort:
// Kamera-Zählungen, Vorfalls-Zählungen und die letzten Vorfälle.
func (h *APIHandler) handleDashboardSummary(c *gin.Context) {
	ctx := c.Request.Context()

	totalCameras, err := h.cameras.TotalCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	onlineCameras, err := h.cameras.OnlineCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	activeIncidents, err := h.incidents.ActiveCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resolvedIncidents, err := h.incidents.ResolvedCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	incidents, err := h.incidents.List(ctx, services.IncidentFilter{})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(incidents) > recentIncidentLimit {
		incidents = incidents[:recentIncidentLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCameras":      totalCameras,
		"onlineCameras":     onlineCameras,
		"activeIncidents":   activeIncidents,
		"resolvedIncidents": resolvedIncidents,
		"recentIncidents":   incidents,
	})
}
