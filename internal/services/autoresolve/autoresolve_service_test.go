package autoresolve

import (
	"context"
	"testing"
	"time"

	"metrowatch-go/internal/core/models"
	"metrowatch-go/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	store, err := db.New()
	require.NoError(t, err)
	return store
}

func activeCount(t *testing.T, store *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, store.Model(&models.Incident{}).
		Where("status = ?", models.IncidentActive).Count(&count).Error)
	return count
}

func TestSweepResolvesStaleIncidents(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, time.Minute)

	// Alle Fixture-Vorfälle liegen weit hinter dem 30-Minuten-Timeout
	require.Equal(t, int64(4), activeCount(t, store))

	require.NoError(t, svc.RunSweep(context.Background()))

	assert.Equal(t, int64(0), activeCount(t, store))
}

func TestSweepKeepsFreshIncidentsActive(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, time.Minute)

	fresh := models.Incident{
		Type:       models.IncidentTheft,
		Status:     models.IncidentActive,
		CameraName: "CAM-Platform A",
		Timestamp:  time.Now(),
	}
	require.NoError(t, store.Create(&fresh).Error)

	require.NoError(t, svc.RunSweep(context.Background()))

	var reloaded models.Incident
	require.NoError(t, store.First(&reloaded, fresh.ID).Error)
	assert.Equal(t, models.IncidentActive, reloaded.Status)
}

func TestSweepDisabledWhenTimeoutZero(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, time.Minute)

	require.NoError(t, store.Model(&models.Settings{}).
		Where("id = ?", models.SettingsID).
		Update("auto_resolve_timeout", 0).Error)

	require.NoError(t, svc.RunSweep(context.Background()))

	assert.Equal(t, int64(4), activeCount(t, store), "sweep must not touch incidents when disabled")
}
