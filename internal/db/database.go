package db

import (
	"fmt"
	"time"

	"metrowatch-go/internal/core/models"

	"github.com/glebarez/sqlite" // Pure Go SQLite Treiber
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New öffnet einen frischen In-Memory-Datenspeicher, migriert das Schema und lädt die
// statischen Fixtures. Jeder Aufruf liefert eine unabhängige Instanz; ein Prozessneustart
// verwirft damit sämtliche Mutationen und kehrt zu den Fixtures zurück.
//
// Der Speicher wird explizit vom Aufrufer besessen und per Referenz an die Services
// gereicht; es gibt bewusst keinen globalen Zustand auf Paketebene.
func New() (*gorm.DB, error) {
	// Konfiguration des GORM-Loggers
	gormLogger := logger.New(
		log.StandardLogger(), // Verwende den konfigurierten logrus-Logger
		logger.Config{
			SlowThreshold:             time.Second * 2,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true, // ErrRecordNotFound wird nicht geloggt
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}

	// Eine einzige Verbindung: jede weitere Verbindung würde bei ":memory:" eine eigene,
	// leere Datenbank sehen. Gleichzeitig serialisiert das alle Mutationen auf einem
	// einzigen Pfad, wodurch die ID-Vergabe atomar bleibt.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&models.Camera{}, &models.Incident{}, &models.Settings{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := Seed(gdb); err != nil {
		return nil, fmt.Errorf("failed to seed fixtures: %w", err)
	}

	log.Info("In-memory store initialized and seeded")
	return gdb, nil
}
