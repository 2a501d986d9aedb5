package db

import (
	"testing"

	"metrowatch-go/internal/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsFixtures(t *testing.T) {
	store, err := New()
	require.NoError(t, err)

	var cameras int64
	require.NoError(t, store.Model(&models.Camera{}).Count(&cameras).Error)
	assert.Equal(t, int64(6), cameras)

	var incidents int64
	require.NoError(t, store.Model(&models.Incident{}).Count(&incidents).Error)
	assert.Equal(t, int64(8), incidents)

	var settings models.Settings
	require.NoError(t, store.First(&settings, models.SettingsID).Error)
	assert.Equal(t, 75, settings.AlertThreshold)
}

func TestStoresAreIsolated(t *testing.T) {
	first, err := New()
	require.NoError(t, err)
	second, err := New()
	require.NoError(t, err)

	require.NoError(t, first.Delete(&models.Incident{}, 1).Error)

	var count int64
	require.NoError(t, second.Model(&models.Incident{}).Count(&count).Error)
	assert.Equal(t, int64(8), count, "each store owns its own memory database")
}

func TestIDsAreMonotonic(t *testing.T) {
	store, err := New()
	require.NoError(t, err)

	first := models.Incident{Type: models.IncidentTheft, CameraName: "CAM-1"}
	require.NoError(t, store.Create(&first).Error)
	assert.Equal(t, uint(9), first.ID)

	// Ein gelöschter Datensatz gibt seine ID nicht wieder frei
	require.NoError(t, store.Delete(&models.Incident{}, first.ID).Error)

	second := models.Incident{Type: models.IncidentVandalism, CameraName: "CAM-2"}
	require.NoError(t, store.Create(&second).Error)
	assert.Greater(t, second.ID, first.ID)
}
