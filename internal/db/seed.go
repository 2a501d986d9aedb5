package db

import (
	"embed"
	"encoding/json"
	"fmt"

	"metrowatch-go/internal/core/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// Seed lädt die statischen Fixtures in einen leeren Speicher. Die Fixture-IDs sind
// fortlaufend vergeben, so dass die Store-eigene ID-Vergabe nahtlos dahinter fortsetzt.
func Seed(gdb *gorm.DB) error {
	var cameras []models.Camera
	if err := loadFixture("fixtures/cameras.json", &cameras); err != nil {
		return err
	}
	if err := gdb.Create(&cameras).Error; err != nil {
		return fmt.Errorf("failed to seed cameras: %w", err)
	}

	var incidents []models.Incident
	if err := loadFixture("fixtures/incidents.json", &incidents); err != nil {
		return err
	}
	if err := gdb.Create(&incidents).Error; err != nil {
		return fmt.Errorf("failed to seed incidents: %w", err)
	}

	// Die Settings-Fixture enthält genau die Werkseinstellungen
	settings := models.DefaultSettings()
	if err := loadFixture("fixtures/settings.json", &settings); err != nil {
		return err
	}
	settings.ID = models.SettingsID
	if err := gdb.Create(&settings).Error; err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	log.Infof("Seeded %d cameras and %d incidents from fixtures", len(cameras), len(incidents))
	return nil
}

func loadFixture(name string, out any) error {
	data, err := fixtures.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}
	return nil
}
