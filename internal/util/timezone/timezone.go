package timezone

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Aktuell konfigurierte Zeitzone
var currentLocation *time.Location

// Initialize setzt die Zeitzone. Ein leerer Name fällt auf die TZ-Umgebungsvariable
// und schließlich auf UTC zurück. Sollte beim Programmstart aufgerufen werden.
func Initialize(tzName string) {
	if tzName == "" {
		tzName = os.Getenv("TZ")
	}
	if tzName == "" {
		tzName = "UTC"
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Warnf("Failed to load timezone %s: %v. Falling back to UTC.", tzName, err)
		currentLocation = time.UTC
		return
	}

	log.Infof("Timezone initialized to %s", tzName)
	currentLocation = loc
}

// Now gibt die aktuelle Zeit in der konfigurierten Zeitzone zurück
func Now() time.Time {
	if currentLocation == nil {
		Initialize("")
	}
	return time.Now().In(currentLocation)
}

// Format formatiert ein time.Time-Objekt in der konfigurierten Zeitzone
func Format(t time.Time, layout string) string {
	if currentLocation == nil {
		Initialize("")
	}
	return t.In(currentLocation).Format(layout)
}

// ISO8601 formatiert die Zeit im RFC3339-Format in der konfigurierten Zeitzone
func ISO8601(t time.Time) string {
	return Format(t, time.RFC3339)
}
