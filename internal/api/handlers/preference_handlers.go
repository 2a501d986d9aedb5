package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session-Schlüssel für die Theme-Präferenz. Sie ist der einzige Zustand, der einen
// Seiten-Reload überlebt; der gesamte übrige Zustand ist speicherflüchtig.
const themeSessionKey = "theme"

const defaultTheme = "light"

// handleGetTheme gibt die gespeicherte Theme-Präferenz zurück
func (h *APIHandler) handleGetTheme(c *gin.Context) {
	session := sessions.Default(c)

	theme := defaultTheme
	if v, ok := session.Get(themeSessionKey).(string); ok && v != "" {
		theme = v
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// handleSetTheme speichert die Theme-Präferenz in der Cookie-Session
func (h *APIHandler) handleSetTheme(c *gin.Context) {
	var body struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme is required"})
		return
	}
	if body.Theme != "light" && body.Theme != "dark" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light or dark"})
		return
	}

	session := sessions.Default(c)
	session.Set(themeSessionKey, body.Theme)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": body.Theme})
}
