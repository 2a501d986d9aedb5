package models

import (
	"time"

	"gorm.io/datatypes"
)

// Kamerastatus-Werte
const (
	CameraOnline      = "Online"
	CameraOffline     = "Offline"
	CameraMaintenance = "Maintenance"
)

// Vorfallsstatus-Werte
const (
	IncidentActive   = "Active"
	IncidentResolved = "Resolved"
)

// Schweregrade eines Vorfalls
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Vorfallstypen, wie sie von der Erkennungspipeline gemeldet werden
const (
	IncidentTheft              = "Theft"
	IncidentUnattendedObject   = "Unattended Object"
	IncidentVandalism          = "Vandalism"
	IncidentSuspiciousActivity = "Suspicious Activity"
)

// Camera repräsentiert eine überwachte Videoquelle mit Verbindungs- und Gesundheitszustand
type Camera struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Location  string    `gorm:"not null" json:"location"`
	StreamURL string    `json:"streamUrl"`
	Status    string    `gorm:"index" json:"status"`
	Health    int       `json:"health"` // 0-100
	LastPing  time.Time `json:"lastPing"`
}

// Incident repräsentiert ein erkanntes Sicherheitsereignis, das Operator-Aufmerksamkeit erfordert.
// CameraName ist bewusst denormalisiert (kein Fremdschlüssel): das Löschen einer Kamera
// lässt bestehende Vorfälle unberührt.
type Incident struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Type        string    `gorm:"index" json:"type"`
	Status      string    `gorm:"index" json:"status"`
	Severity    string    `json:"severity,omitempty"`
	Description string    `json:"description"`
	CameraName  string    `gorm:"index" json:"cameraName"`
	Location    string    `json:"location"`
	Snapshot    string    `json:"snapshot"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

// NotificationChannels enthält die Kanal-Schalter für ausgehende Benachrichtigungen
type NotificationChannels struct {
	SMS      bool `json:"sms"`
	Email    bool `json:"email"`
	WhatsApp bool `json:"whatsapp"`
}

// Settings ist der prozessweite Singleton-Datensatz mit den Systemeinstellungen.
// Er wird als einzelne Zeile (ID 1) gehalten und bei Updates komplett ersetzt.
type Settings struct {
	ID                   uint                                       `gorm:"primarykey" json:"-"`
	AlertThreshold       int                                        `json:"alertThreshold"`
	AutoResolveTimeout   int                                        `json:"autoResolveTimeout"` // Minuten
	MaxConcurrentAlerts  int                                        `json:"maxConcurrentAlerts"`
	MotionSensitivity    int                                        `json:"motionSensitivity"`
	FaceBlurEnabled      bool                                       `json:"faceBlurEnabled"`
	DarkMode             bool                                       `json:"darkMode"`
	RecordingQuality     string                                     `json:"recordingQuality"` // low, medium, high
	NotificationChannels datatypes.JSONType[NotificationChannels]   `json:"notificationChannels"`
}

// SettingsID ist der Primärschlüssel der Singleton-Zeile
const SettingsID uint = 1

// DefaultSettings liefert die Werkseinstellungen, wie sie auch beim Seeding verwendet werden
func DefaultSettings() Settings {
	return Settings{
		ID:                  SettingsID,
		AlertThreshold:      75,
		AutoResolveTimeout:  30,
		MaxConcurrentAlerts: 10,
		MotionSensitivity:   65,
		FaceBlurEnabled:     true,
		DarkMode:            false,
		RecordingQuality:    "high",
		NotificationChannels: datatypes.NewJSONType(NotificationChannels{
			SMS:      true,
			Email:    true,
			WhatsApp: false,
		}),
	}
}
