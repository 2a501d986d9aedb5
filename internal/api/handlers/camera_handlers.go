package handlers

import (
	"net/http"

	"metrowatch-go/internal/core/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// handleListCameras gibt alle Kameras zurück
func (h *APIHandler) handleListCameras(c *gin.Context) {
	cameras, err := h.cameras.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cameras)
}

// handleGetCamera gibt eine einzelne Kamera zurück
func (h *APIHandler) handleGetCamera(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	camera, err := h.cameras.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, camera)
}

// handleCreateCamera legt eine neue Kamera an (Formular "Kamera hinzufügen")
func (h *APIHandler) handleCreateCamera(c *gin.Context) {
	var in models.Camera
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	camera, err := h.cameras.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	log.Infof("Camera created: %s (ID %d)", camera.Name, camera.ID)
	c.JSON(http.StatusCreated, camera)
}

// handleUpdateCamera aktualisiert eine Kamera
func (h *APIHandler) handleUpdateCamera(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.Camera
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	camera, err := h.cameras.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, camera)
}

// handleUpdateCameraStatus ist der Status-Toggle einer Kamera
func (h *APIHandler) handleUpdateCameraStatus(c *gin.Context) {
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

	camera, err := h.cameras.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, camera)
}

// handleDeleteCamera löscht eine Kamera. Bestehende Vorfälle bleiben unberührt.
func (h *APIHandler) handleDeleteCamera(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	camera, err := h.cameras.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	log.Infof("Camera deleted: %s (ID %d)", camera.Name, camera.ID)
	c.JSON(http.StatusOK, camera)
}

// handleCameraCounts liefert Gesamt- und Online-Zählung der Kameras
func (h *APIHandler) handleCameraCounts(c *gin.Context) {
	ctx := c.Request.Context()
	total, err := h.cameras.TotalCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	online, err := h.cameras.OnlineCount(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"online": online,
	})
}
