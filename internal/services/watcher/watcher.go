// Package watcher enthält den Incident-Watcher: eine Hintergrundschleife, die den
// Vorfallsbestand periodisch abruft, gegen den zuletzt bekannten ID-Stand difft und
// für jeden neu beobachteten Vorfall genau eine Benachrichtigung auslöst.
package watcher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"metrowatch-go/internal/core/models"
	"metrowatch-go/internal/util/timezone"

	log "github.com/sirupsen/logrus"
)

// Dringlichkeitsstufen einer Benachrichtigung
const (
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

// IncidentSource liefert den vollständigen aktuellen Vorfallsbestand. Jeder Poll
// holt die komplette Liste; Delta- oder Cursor-Abfragen gibt es nicht.
type IncidentSource interface {
	ListIncidents(ctx context.Context) ([]models.Incident, error)
}

// SourceFunc erlaubt es, eine Funktion als IncidentSource zu verwenden
type SourceFunc func(ctx context.Context) ([]models.Incident, error)

// ListIncidents implementiert IncidentSource
func (f SourceFunc) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	return f(ctx)
}

// Notifier ist die Benachrichtigungsoberfläche: fire-and-forget, ohne Bestätigung
// und ohne Zustellgarantie.
type Notifier interface {
	Notify(kind, title, body, timestampLabel string)
}

// Watcher pollt die Vorfallsquelle und meldet neu beobachtete Vorfälle.
type Watcher struct {
	source   IncidentSource
	notifier Notifier
	interval time.Duration

	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	knownIDs    map[uint]struct{}
	initialized bool
}

// New erstellt einen neuen Watcher. Das Intervall bestimmt den Abstand zwischen
// zwei Poll-Zyklen; der erste Poll erfolgt sofort beim Start.
func New(source IncidentSource, notifier Notifier, interval time.Duration) *Watcher {
	return &Watcher{
		source:   source,
		notifier: notifier,
		interval: interval,
	}
}

// Start startet die Poll-Schleife. Ein erneuter Start nach Stop verhält sich wie ein
// frischer erster Poll: alles, was dann vorhanden ist, wird ohne Benachrichtigung
// in den bekannten Stand übernommen.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.running = true
	w.knownIDs = nil
	w.initialized = false

	w.wg.Add(1)
	go w.run(ctx)

	log.Infof("Incident watcher started (interval %s)", w.interval)
}

// Stop beendet die Poll-Schleife deterministisch. Ein laufender Poll darf zu Ende
// laufen, seine Ergebnisse werden aber verworfen.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.cancel()
	w.mu.Unlock()

	w.wg.Wait()
	log.Info("Incident watcher stopped")
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	// Beim Start einmal sofort pollen
	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Poll führt genau einen Zyklus aus: Bestand holen, diffen, benachrichtigen.
//
// Der erste erfolgreiche Poll übernimmt alle IDs kommentarlos in den bekannten Stand
// (verhindert einen Benachrichtigungssturm für Altbestand beim Start). Danach wird für
// jede ID in (aktuell - bekannt) genau eine Benachrichtigung ausgelöst und der bekannte
// Stand vollständig durch den aktuellen ersetzt - auch wenn nur IDs verschwunden sind.
// Eine ID, die verschwindet und später wieder auftaucht, gilt damit erneut als neu.
//
// Ein fehlgeschlagener Poll wird nur geloggt und lässt den Stand unverändert; der
// nächste Zyklus difft wieder gegen den letzten erfolgreichen Schnappschuss.
func (w *Watcher) Poll(ctx context.Context) {
	incidents, err := w.source.ListIncidents(ctx)
	if err != nil {
		log.WithError(err).Warn("Incident poll failed, keeping last known state")
		return
	}

	// Deaktivierung während des Abrufs: Ergebnisse verwerfen, nichts melden
	if ctx.Err() != nil {
		return
	}

	current := make(map[uint]struct{}, len(incidents))
	for _, incident := range incidents {
		current[incident.ID] = struct{}{}
	}

	w.mu.Lock()
	if !w.initialized {
		w.knownIDs = current
		w.initialized = true
		w.mu.Unlock()
		log.Debugf("Incident watcher initialized with %d known incidents", len(current))
		return
	}

	var fresh []models.Incident
	for _, incident := range incidents {
		if _, known := w.knownIDs[incident.ID]; !known {
			fresh = append(fresh, incident)
		}
	}
	w.knownIDs = current
	w.mu.Unlock()

	for _, incident := range fresh {
		w.notify(incident)
	}
}

// notify setzt einen Vorfall in eine Benachrichtigung um. Schweregrad bestimmt die
// Dringlichkeit: high -> error, medium -> warning, low oder leer -> info.
func (w *Watcher) notify(incident models.Incident) {
	title := fmt.Sprintf("New %s Incident", incident.Type)
	body := incident.Location
	label := timezone.Format(incident.Timestamp, "15:04:05")

	log.Infof("New incident observed (ID %d, type %s, severity %s)",
		incident.ID, incident.Type, incident.Severity)
	w.notifier.Notify(KindForSeverity(incident.Severity), title, body, label)
}

// KindForSeverity bildet einen Schweregrad auf die Dringlichkeit der Benachrichtigung ab
func KindForSeverity(severity string) string {
	switch strings.ToLower(severity) {
	case models.SeverityHigh:
		return KindError
	case models.SeverityMedium:
		return KindWarning
	case models.SeverityLow:
		return KindInfo
	default:
		return KindInfo
	}
}
