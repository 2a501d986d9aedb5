// Package sse implementiert die Benachrichtigungsoberfläche des Dashboards: ein Hub,
// der Toast-Nachrichten per Server-Sent Events an alle verbundenen Browser verteilt.
// Die Zustellung ist fire-and-forget; ein voller Client-Kanal führt zum Verwerfen
// der Nachricht, nicht zu einem erneuten Versand.
package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Anzeigedauer eines Toasts im Browser, bevor er automatisch verschwindet
const toastAutoCloseMs = 5000

// Client repräsentiert einen einzelnen verbundenen SSE-Client
type Client chan []byte

// Hub verwaltet die Menge der aktiven Clients und sendet Broadcasts an sie
type Hub struct {
	// Registrierte Clients
	clients map[Client]bool

	// Eingehende Nachrichten von der Anwendung
	broadcast chan []byte

	// Registrierungsanfragen von Clients
	register chan Client

	// Abmeldeanfragen von Clients
	unregister chan Client

	// Mutex zum Schutz des simultanen Zugriffs auf die Clients-Map
	mu sync.Mutex
}

// ToastData definiert die Struktur einer Toast-Benachrichtigung für das Frontend
type ToastData struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"` // error, warning, info
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	TimestampLabel string    `json:"timestampLabel"`
	Timestamp      time.Time `json:"timestamp"`
	AutoClose      int       `json:"autoClose"` // Millisekunden
}

// NewHub erstellt eine neue Hub-Instanz
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 100), // Puffer für 100 Nachrichten
		register:   make(chan Client),
		unregister: make(chan Client),
		clients:    make(map[Client]bool),
	}
}

// Run startet die Verarbeitungsschleife des Hubs.
// Dies sollte in einer separaten Goroutine ausgeführt werden.
func (h *Hub) Run() {
	log.Info("SSE hub started and running")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			log.Infof("SSE client registered. Total clients: %d", clientCount)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client)
				log.Infof("SSE client unregistered. Total clients: %d", len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			log.Debugf("Broadcasting message to %d SSE clients", len(h.clients))

			for client := range h.clients {
				select {
				case client <- message:
					// Nachricht erfolgreich gesendet
				default:
					// Client-Kanal ist voll oder geschlossen
					log.Warn("SSE client channel full or closed, removing client")
					delete(h.clients, client)
					close(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register registriert einen neuen Client am Hub
func (h *Hub) Register(client Client) {
	h.register <- client
}

// Unregister meldet einen Client vom Hub ab
func (h *Hub) Unregister(client Client) {
	h.unregister <- client
}

// Broadcast sendet eine Nachricht an alle registrierten Clients
func (h *Hub) Broadcast(message []byte) {
	// Blockieren vermeiden, wenn der Broadcast-Kanal voll ist
	select {
	case h.broadcast <- message:
		// Nachricht erfolgreich zum Senden in die Queue gestellt
	default:
		log.Warn("SSE broadcast channel full, message dropped")
	}
}

// Notify erfüllt den Benachrichtigungsvertrag des Incident-Watchers: eine Toast-Nachricht
// mit Dringlichkeit, Titel, Text und Zeitstempel-Label wird an alle Clients verteilt.
func (h *Hub) Notify(kind, title, body, timestampLabel string) {
	data := ToastData{
		ID:             uuid.New().String(),
		Kind:           kind,
		Title:          title,
		Body:           body,
		TimestampLabel: timestampLabel,
		Timestamp:      time.Now(),
		AutoClose:      toastAutoCloseMs,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Errorf("Failed to marshal toast data for SSE: %v", err)
		return
	}

	h.Broadcast(jsonData)
}
