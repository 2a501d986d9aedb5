package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"metrowatch-go/internal/core/models"

	"gorm.io/gorm"
)

// ErrInvalidChannel wird bei einem unbekannten Benachrichtigungskanal zurückgegeben
var ErrInvalidChannel = errors.New("invalid notification channel")

// TestAlertResult ist die Antwort des Testalarm-Stubs. Es findet kein echter Versand
// statt; SMS/E-Mail/WhatsApp-Transport liegt außerhalb des Systems.
type TestAlertResult struct {
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

var testAlertMessages = map[string]string{
	"sms":      "SMS alert test sent successfully",
	"email":    "Email alert test sent successfully",
	"whatsapp": "WhatsApp alert test sent successfully",
}

// SettingsService ist die Fassade für den Settings-Singleton
type SettingsService struct {
	db      *gorm.DB
	latency time.Duration
}

// NewSettingsService erstellt einen neuen SettingsService
func NewSettingsService(db *gorm.DB, latency time.Duration) *SettingsService {
	return &SettingsService{db: db, latency: latency}
}

// Get gibt die aktuellen Einstellungen zurück
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	if err := simulateLatency(ctx, s.latency); err != nil {
		return settings, err
	}
	if err := s.db.WithContext(ctx).First(&settings, models.SettingsID).Error; err != nil {
		return settings, translateError(err)
	}
	return settings, nil
}

// Update ersetzt den Settings-Datensatz als Ganzes und gibt den neuen Stand zurück.
// Eine Historie wird nicht geführt.
func (s *SettingsService) Update(ctx context.Context, in models.Settings) (models.Settings, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return models.Settings{}, err
	}
	in.ID = models.SettingsID
	if err := s.db.WithContext(ctx).Save(&in).Error; err != nil {
		return models.Settings{}, translateError(err)
	}
	return in, nil
}

// ResetToDefaults setzt alle Einstellungen auf die Werkseinstellungen zurück
func (s *SettingsService) ResetToDefaults(ctx context.Context) (models.Settings, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return models.Settings{}, err
	}
	defaults := models.DefaultSettings()
	if err := s.db.WithContext(ctx).Save(&defaults).Error; err != nil {
		return models.Settings{}, translateError(err)
	}
	return defaults, nil
}

// SendTestAlert simuliert den Versand eines Testalarms über den angegebenen Kanal.
// Bekannte Kanäle sind sms, email und whatsapp.
func (s *SettingsService) SendTestAlert(ctx context.Context, channel string) (TestAlertResult, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return TestAlertResult{}, err
	}
	message, ok := testAlertMessages[channel]
	if !ok {
		return TestAlertResult{}, fmt.Errorf("channel %q: %w", channel, ErrInvalidChannel)
	}
	return TestAlertResult{
		Message:   message,
		Channel:   channel,
		Timestamp: time.Now(),
	}, nil
}
