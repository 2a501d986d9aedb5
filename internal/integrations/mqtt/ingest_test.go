package mqtt

import (
	"context"
	"testing"
	"time"

	"metrowatch-go/internal/core/models"
	"metrowatch-go/internal/db"
	"metrowatch-go/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetectionHandler(t *testing.T) (*DetectionHandler, *services.IncidentService) {
	t.Helper()
	store, err := db.New()
	require.NoError(t, err)
	incidents := services.NewIncidentService(store, 0)
	return NewDetectionHandler(incidents), incidents
}

func TestHandleMessageCreatesIncident(t *testing.T) {
	handler, incidents := newTestDetectionHandler(t)

	payload := []byte(`{
		"camera": "CAM-North Gate",
		"type": "Suspicious Activity",
		"severity": "medium",
		"description": "Person loitering near gate",
		"location": "North Gate",
		"timestamp": "2026-08-29T10:15:00Z"
	}`)
	handler.HandleMessage("metrowatch/detections", payload)

	created, err := incidents.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentSuspiciousActivity, created.Type)
	assert.Equal(t, "CAM-North Gate", created.CameraName)
	assert.Equal(t, models.SeverityMedium, created.Severity)
	assert.Equal(t, models.IncidentActive, created.Status)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC), created.Timestamp.UTC())
}

func TestHandleMessageIgnoresInvalidJSON(t *testing.T) {
	handler, incidents := newTestDetectionHandler(t)

	handler.HandleMessage("metrowatch/detections", []byte("not json"))

	all, err := incidents.List(context.Background(), services.IncidentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestHandleMessageIgnoresIncompleteEvent(t *testing.T) {
	handler, incidents := newTestDetectionHandler(t)

	// Kamera fehlt
	handler.HandleMessage("metrowatch/detections", []byte(`{"type":"Theft"}`))
	// Typ fehlt
	handler.HandleMessage("metrowatch/detections", []byte(`{"camera":"CAM-1"}`))

	all, err := incidents.List(context.Background(), services.IncidentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 8)
}
