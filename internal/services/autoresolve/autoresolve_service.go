// Package autoresolve gibt der Einstellung autoResolveTimeout ihr Verhalten: aktive
// Vorfälle, die älter als der konfigurierte Zeitraum sind, werden automatisch gelöst.
package autoresolve

import (
	"context"
	"fmt"
	"time"

	"metrowatch-go/internal/core/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service ist verantwortlich für die automatische Auflösung alter Vorfälle
type Service struct {
	db            *gorm.DB
	checkInterval time.Duration
}

// NewService erstellt einen neuen AutoResolve-Service
func NewService(db *gorm.DB, checkInterval time.Duration) *Service {
	return &Service{
		db:            db,
		checkInterval: checkInterval,
	}
}

// Start startet den Dienst im Hintergrund, bis der Context abgebrochen wird
func (s *Service) Start(ctx context.Context) {
	log.Info("Auto-resolve service started")

	// Sofort einen ersten Durchlauf ausführen
	if err := s.RunSweep(ctx); err != nil {
		log.Errorf("Initial auto-resolve sweep failed: %v", err)
	}

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.RunSweep(ctx); err != nil {
				log.Errorf("Scheduled auto-resolve sweep failed: %v", err)
			}
		case <-ctx.Done():
			log.Info("Auto-resolve service stopped")
			return
		}
	}
}

// RunSweep führt einen einzelnen Durchlauf aus. Der Timeout wird bei jedem Durchlauf
// frisch aus den Einstellungen gelesen; ein Wert <= 0 deaktiviert die Auflösung.
func (s *Service) RunSweep(ctx context.Context) error {
	var settings models.Settings
	if err := s.db.WithContext(ctx).First(&settings, models.SettingsID).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if settings.AutoResolveTimeout <= 0 {
		log.Debug("Auto-resolve disabled (timeout <= 0)")
		return nil
	}

	cutoff := time.Now().Add(-time.Duration(settings.AutoResolveTimeout) * time.Minute)

	result := s.db.WithContext(ctx).Model(&models.Incident{}).
		Where("status = ? AND timestamp < ?", models.IncidentActive, cutoff).
		Update("status", models.IncidentResolved)
	if result.Error != nil {
		return fmt.Errorf("failed to resolve stale incidents: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Infof("Auto-resolved %d incidents older than %d minutes",
			result.RowsAffected, settings.AutoResolveTimeout)
	}
	return nil
}
