package handlers

import (
	"net/http"

	"metrowatch-go/internal/core/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// handleGetSettings gibt die aktuellen Einstellungen zurück
func (h *APIHandler) handleGetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// handleUpdateSettings ersetzt die Einstellungen als Ganzes
func (h *APIHandler) handleUpdateSettings(c *gin.Context) {
	var in models.Settings
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	log.Info("Settings updated")
	c.JSON(http.StatusOK, settings)
}

// handleResetSettings setzt alle Einstellungen auf die Werkseinstellungen zurück
func (h *APIHandler) handleResetSettings(c *gin.Context) {
	settings, err := h.settings.ResetToDefaults(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	log.Info("Settings reset to defaults")
	c.JSON(http.StatusOK, settings)
}

// handleSendTestAlert löst den Testalarm-Stub für einen Kanal aus
func (h *APIHandler) handleSendTestAlert(c *gin.Context) {
	var body struct {
		Channel string `json:"channel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel is required"})
		return
	}

	result, err := h.settings.SendTestAlert(c.Request.Context(), body.Channel)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
