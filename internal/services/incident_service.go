package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"metrowatch-go/internal/core/models"

	"gorm.io/gorm"
)

// IncidentFilter schränkt die Vorfallsliste optional ein. Leere Felder filtern nicht.
type IncidentFilter struct {
	Status string
	Type   string
	Search string // Volltextsuche über Beschreibung, Kameraname und Typ
}

// IncidentService ist die Fassade für alle Vorfall-Operationen
type IncidentService struct {
	db      *gorm.DB
	latency time.Duration
}

// NewIncidentService erstellt einen neuen IncidentService
func NewIncidentService(db *gorm.DB, latency time.Duration) *IncidentService {
	return &IncidentService{db: db, latency: latency}
}

// List gibt alle Vorfälle zurück, neueste zuerst. Der Filter ist optional.
func (s *IncidentService) List(ctx context.Context, filter IncidentFilter) ([]models.Incident, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Model(&models.Incident{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(description) LIKE ? OR LOWER(camera_name) LIKE ? OR LOWER(type) LIKE ?",
			term, term, term,
		)
	}

	var incidents []models.Incident
	if err := query.Order("timestamp DESC").Find(&incidents).Error; err != nil {
		return nil, translateError(err)
	}
	return incidents, nil
}

// GetByID gibt einen einzelnen Vorfall zurück
func (s *IncidentService) GetByID(ctx context.Context, id uint) (models.Incident, error) {
	var incident models.Incident
	if err := simulateLatency(ctx, s.latency); err != nil {
		return incident, err
	}
	if err := s.db.WithContext(ctx).First(&incident, id).Error; err != nil {
		return incident, translateError(err)
	}
	return incident, nil
}

// Create legt einen neuen Vorfall an. Die ID wird vom Speicher monoton vergeben;
// der Zeitstempel wird gesetzt, falls er fehlt.
func (s *IncidentService) Create(ctx context.Context, in models.Incident) (models.Incident, error) {
	if in.Type == "" || in.CameraName == "" {
		return models.Incident{}, fmt.Errorf("incident requires type and cameraName: %w", ErrValidation)
	}
	if err := simulateLatency(ctx, s.latency); err != nil {
		return models.Incident{}, err
	}

	in.ID = 0 // ID-Vergabe liegt beim Speicher
	if in.Status == "" {
		in.Status = models.IncidentActive
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&in).Error; err != nil {
		return models.Incident{}, translateError(err)
	}
	return in, nil
}

// Update aktualisiert die übergebenen Felder eines Vorfalls und gibt den neuen Stand zurück
func (s *IncidentService) Update(ctx context.Context, id uint, updates models.Incident) (models.Incident, error) {
	var incident models.Incident
	if err := simulateLatency(ctx, s.latency); err != nil {
		return incident, err
	}
	if err := s.db.WithContext(ctx).First(&incident, id).Error; err != nil {
		return incident, translateError(err)
	}
	if err := s.db.WithContext(ctx).Model(&incident).Updates(updates).Error; err != nil {
		return incident, translateError(err)
	}
	return incident, nil
}

// UpdateStatus ist die Status-Kurzoperation der Triage (Active <-> Resolved)
func (s *IncidentService) UpdateStatus(ctx context.Context, id uint, status string) (models.Incident, error) {
	var incident models.Incident
	if err := simulateLatency(ctx, s.latency); err != nil {
		return incident, err
	}
	if err := s.db.WithContext(ctx).First(&incident, id).Error; err != nil {
		return incident, translateError(err)
	}
	if err := s.db.WithContext(ctx).Model(&incident).Update("status", status).Error; err != nil {
		return incident, translateError(err)
	}
	return incident, nil
}

// Delete entfernt einen Vorfall und gibt den gelöschten Datensatz zurück
func (s *IncidentService) Delete(ctx context.Context, id uint) (models.Incident, error) {
	var incident models.Incident
	if err := simulateLatency(ctx, s.latency); err != nil {
		return incident, err
	}
	if err := s.db.WithContext(ctx).First(&incident, id).Error; err != nil {
		return incident, translateError(err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Incident{}, id).Error; err != nil {
		return incident, translateError(err)
	}
	return incident, nil
}

// ActiveCount gibt die Anzahl aktiver Vorfälle zurück
func (s *IncidentService) ActiveCount(ctx context.Context) (int64, error) {
	return s.countByStatus(ctx, models.IncidentActive)
}

// ResolvedCount gibt die Anzahl gelöster Vorfälle zurück
func (s *IncidentService) ResolvedCount(ctx context.Context) (int64, error) {
	return s.countByStatus(ctx, models.IncidentResolved)
}

func (s *IncidentService) countByStatus(ctx context.Context, status string) (int64, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return 0, err
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Incident{}).
		Where("status = ?", status).Count(&count).Error
	return count, translateError(err)
}
