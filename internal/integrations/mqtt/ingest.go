package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"metrowatch-go/internal/core/models"
	"metrowatch-go/internal/services"

	log "github.com/sirupsen/logrus"
)

// Timeout für das Anlegen eines Vorfalls aus einer MQTT-Nachricht
const ingestTimeout = 30 * time.Second

// DetectionEvent repräsentiert ein Ereignis der Erkennungspipeline
type DetectionEvent struct {
	Camera      string    `json:"camera"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Snapshot    string    `json:"snapshot"`
	Timestamp   time.Time `json:"timestamp"`
}

// DetectionHandler setzt Erkennungsereignisse in Vorfälle um
type DetectionHandler struct {
	incidents *services.IncidentService
}

// NewDetectionHandler erstellt einen neuen DetectionHandler
func NewDetectionHandler(incidents *services.IncidentService) *DetectionHandler {
	return &DetectionHandler{incidents: incidents}
}

// HandleMessage implementiert MessageHandler. Ungültige Nachrichten werden nur
// geloggt; die Pipeline erhält keine Rückmeldung.
func (h *DetectionHandler) HandleMessage(topic string, payload []byte) {
	var event DetectionEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Errorf("Failed to parse detection event: %v", err)
		return
	}

	if event.Camera == "" || event.Type == "" {
		log.Warnf("Ignoring detection event without camera or type on topic %s", topic)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	incident, err := h.incidents.Create(ctx, models.Incident{
		Type:        event.Type,
		Severity:    event.Severity,
		Description: event.Description,
		CameraName:  event.Camera,
		Location:    event.Location,
		Snapshot:    event.Snapshot,
		Timestamp:   event.Timestamp,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create incident from detection event")
		return
	}

	log.WithFields(log.Fields{
		"incident_id": incident.ID,
		"camera":      incident.CameraName,
		"type":        incident.Type,
	}).Info("Created incident from detection event")
}
