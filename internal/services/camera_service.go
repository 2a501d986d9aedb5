package services

import (
	"context"
	"fmt"
	"time"

	"metrowatch-go/internal/core/models"

	"gorm.io/gorm"
)

// CameraService ist die Fassade für alle Kamera-Operationen
type CameraService struct {
	db      *gorm.DB
	latency time.Duration
}

// NewCameraService erstellt einen neuen CameraService
func NewCameraService(db *gorm.DB, latency time.Duration) *CameraService {
	return &CameraService{db: db, latency: latency}
}

// List gibt alle Kameras zurück
func (s *CameraService) List(ctx context.Context) ([]models.Camera, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	var cameras []models.Camera
	if err := s.db.WithContext(ctx).Order("id").Find(&cameras).Error; err != nil {
		return nil, translateError(err)
	}
	return cameras, nil
}

// GetByID gibt eine einzelne Kamera zurück
func (s *CameraService) GetByID(ctx context.Context, id uint) (models.Camera, error) {
	var camera models.Camera
	if err := simulateLatency(ctx, s.latency); err != nil {
		return camera, err
	}
	if err := s.db.WithContext(ctx).First(&camera, id).Error; err != nil {
		return camera, translateError(err)
	}
	return camera, nil
}

// Create legt eine neue Kamera an. Name und Standort sind Pflichtfelder; die ID wird
// vom Speicher vergeben.
func (s *CameraService) Create(ctx context.Context, in models.Camera) (models.Camera, error) {
	if in.Name == "" || in.Location == "" {
		return models.Camera{}, fmt.Errorf("camera requires name and location: %w", ErrValidation)
	}
	if err := simulateLatency(ctx, s.latency); err != nil {
		return models.Camera{}, err
	}

	in.ID = 0 // ID-Vergabe liegt beim Speicher
	in.LastPing = time.Now()
	in.Health = 100
	if in.Status == "" {
		in.Status = models.CameraOnline
	}
	if err := s.db.WithContext(ctx).Create(&in).Error; err != nil {
		return models.Camera{}, translateError(err)
	}
	return in, nil
}

// Update aktualisiert die übergebenen Felder einer Kamera und gibt den neuen Stand zurück
func (s *CameraService) Update(ctx context.Context, id uint, updates models.Camera) (models.Camera, error) {
	var camera models.Camera
	if err := simulateLatency(ctx, s.latency); err != nil {
		return camera, err
	}
	if err := s.db.WithContext(ctx).First(&camera, id).Error; err != nil {
		return camera, translateError(err)
	}
	// Nur gesetzte Felder übernehmen (Updates mit Struct ignoriert Nullwerte)
	if err := s.db.WithContext(ctx).Model(&camera).Updates(updates).Error; err != nil {
		return camera, translateError(err)
	}
	return camera, nil
}

// UpdateStatus ist die Status-Kurzoperation des Kamera-Toggles; sie aktualisiert
// zusätzlich den letzten Ping-Zeitpunkt.
func (s *CameraService) UpdateStatus(ctx context.Context, id uint, status string) (models.Camera, error) {
	var camera models.Camera
	if err := simulateLatency(ctx, s.latency); err != nil {
		return camera, err
	}
	if err := s.db.WithContext(ctx).First(&camera, id).Error; err != nil {
		return camera, translateError(err)
	}
	updates := map[string]any{
		"status":    status,
		"last_ping": time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&camera).Updates(updates).Error; err != nil {
		return camera, translateError(err)
	}
	return camera, nil
}

// Delete entfernt eine Kamera und gibt den gelöschten Datensatz zurück.
// Vorfälle referenzieren Kameras nur über den denormalisierten Namen und bleiben bestehen.
func (s *CameraService) Delete(ctx context.Context, id uint) (models.Camera, error) {
	var camera models.Camera
	if err := simulateLatency(ctx, s.latency); err != nil {
		return camera, err
	}
	if err := s.db.WithContext(ctx).First(&camera, id).Error; err != nil {
		return camera, translateError(err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Camera{}, id).Error; err != nil {
		return camera, translateError(err)
	}
	return camera, nil
}

// OnlineCount gibt die Anzahl der Kameras mit Status "Online" zurück
func (s *CameraService) OnlineCount(ctx context.Context) (int64, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return 0, err
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Camera{}).
		Where("status = ?", models.CameraOnline).Count(&count).Error
	return count, translateError(err)
}

// TotalCount gibt die Gesamtzahl der Kameras zurück
func (s *CameraService) TotalCount(ctx context.Context) (int64, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return 0, err
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Camera{}).Count(&count).Error
	return count, translateError(err)
}
