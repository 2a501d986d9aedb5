package handlers

import (
	"io"
	"net/http"

	"metrowatch-go/internal/server/sse"
	"metrowatch-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// handleHealth ist der einfache Liveness-Endpunkt
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSystemStatus liefert aktuelle System- und Laufzeitstatistiken
func (h *APIHandler) handleSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, utils.CollectSystemStats())
}

// handleSSE streamt Toast-Benachrichtigungen als Server-Sent Events an den Browser
func (h *APIHandler) handleSSE(c *gin.Context) {
	// SSE-Header setzen
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Client-Kanal erstellen
	client := make(sse.Client, 10) // Puffer für 10 Nachrichten

	// Client beim Hub registrieren
	h.sseHub.Register(client)
	defer h.sseHub.Unregister(client)

	c.Stream(func(w io.Writer) bool {
		// Auf die nächste Nachricht warten
		msg, ok := <-client
		if !ok {
			return false // Kanal geschlossen, Stream beenden
		}

		c.SSEvent("notification", string(msg))
		return true
	})
}
