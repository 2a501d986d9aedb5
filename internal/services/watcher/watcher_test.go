package watcher

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"metrowatch-go/internal/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedNotification struct {
	kind  string
	title string
	body  string
	label string
}

// recordingNotifier sammelt alle Benachrichtigungen für Assertions
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []recordedNotification
}

func (r *recordingNotifier) Notify(kind, title, body, timestampLabel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, recordedNotification{
		kind:  kind,
		title: title,
		body:  body,
		label: timestampLabel,
	})
}

func (r *recordingNotifier) all() []recordedNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]recordedNotification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// staticSource liefert bei jedem Poll die aktuell hinterlegte Liste
type staticSource struct {
	mu        sync.Mutex
	incidents []models.Incident
	err       error
	calls     int
}

func (s *staticSource) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Incident, len(s.incidents))
	copy(out, s.incidents)
	return out, nil
}

func (s *staticSource) set(incidents []models.Incident, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents = incidents
	s.err = err
}

func incident(id uint, incidentType, severity, location string) models.Incident {
	return models.Incident{
		ID:        id,
		Type:      incidentType,
		Status:    models.IncidentActive,
		Severity:  severity,
		Location:  location,
		Timestamp: time.Date(2025, 6, 14, 8, 30, 0, 0, time.UTC),
	}
}

func (w *Watcher) knownSnapshot() map[uint]struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[uint]struct{}, len(w.knownIDs))
	for id := range w.knownIDs {
		out[id] = struct{}{}
	}
	return out
}

func TestFirstPollEmitsNothing(t *testing.T) {
	source := &staticSource{}
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityHigh, "Platform A"),
		incident(2, models.IncidentVandalism, models.SeverityMedium, "Ticket Hall"),
	}, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	w.Poll(context.Background())

	assert.Empty(t, notifier.all(), "pre-existing incidents must not notify on startup")
	assert.Equal(t, map[uint]struct{}{1: {}, 2: {}}, w.knownSnapshot())
	assert.True(t, w.initialized)
}

func TestNewIncidentNotifiedExactlyOnce(t *testing.T) {
	source := &staticSource{}
	base := []models.Incident{
		incident(1, models.IncidentVandalism, models.SeverityLow, "West Corridor"),
		incident(2, models.IncidentTheft, models.SeverityMedium, "Platform B"),
		incident(3, models.IncidentSuspiciousActivity, models.SeverityLow, "North Entrance"),
	}
	source.set(base, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	w.Poll(context.Background())
	require.Empty(t, notifier.all())

	// Vorfall 4 kommt hinzu: high-severity Theft auf Platform A
	source.set(append(base, incident(4, models.IncidentTheft, models.SeverityHigh, "Platform A")), nil)
	w.Poll(context.Background())

	got := notifier.all()
	require.Len(t, got, 1)
	assert.Equal(t, KindError, got[0].kind)
	assert.Contains(t, got[0].title, "Theft")
	assert.Contains(t, got[0].body, "Platform A")
	assert.NotEmpty(t, got[0].label)
	assert.Equal(t, map[uint]struct{}{1: {}, 2: {}, 3: {}, 4: {}}, w.knownSnapshot())
}

func TestMultipleNewIncidentsCarryTheirOwnDetails(t *testing.T) {
	source := &staticSource{}
	source.set([]models.Incident{incident(1, models.IncidentTheft, models.SeverityLow, "Platform A")}, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	w.Poll(context.Background())

	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityLow, "Platform A"),
		incident(2, models.IncidentVandalism, models.SeverityHigh, "Ticket Hall"),
		incident(3, models.IncidentUnattendedObject, models.SeverityMedium, "Platform B"),
	}, nil)
	w.Poll(context.Background())

	got := notifier.all()
	require.Len(t, got, 2)

	byBody := map[string]recordedNotification{}
	for _, n := range got {
		byBody[n.body] = n
	}
	require.Contains(t, byBody, "Ticket Hall")
	assert.Equal(t, KindError, byBody["Ticket Hall"].kind)
	assert.Contains(t, byBody["Ticket Hall"].title, "Vandalism")
	require.Contains(t, byBody, "Platform B")
	assert.Equal(t, KindWarning, byBody["Platform B"].kind)
	assert.Contains(t, byBody["Platform B"].title, "Unattended Object")
}

func TestUnchangedPollIsIdempotent(t *testing.T) {
	source := &staticSource{}
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityHigh, "Platform A"),
	}, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	w.Poll(context.Background())
	w.Poll(context.Background())
	w.Poll(context.Background())

	assert.Empty(t, notifier.all())
}

func TestFailedPollKeepsLastKnownState(t *testing.T) {
	source := &staticSource{}
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityLow, "Platform A"),
		incident(2, models.IncidentVandalism, models.SeverityLow, "Platform B"),
	}, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	w.Poll(context.Background())
	before := w.knownSnapshot()

	source.set(nil, assert.AnError)
	w.Poll(context.Background())

	assert.Empty(t, notifier.all())
	assert.Equal(t, before, w.knownSnapshot(), "failed poll must not advance state")

	// Der nächste erfolgreiche Poll difft gegen den letzten erfolgreichen Schnappschuss
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityLow, "Platform A"),
		incident(2, models.IncidentVandalism, models.SeverityLow, "Platform B"),
		incident(3, models.IncidentUnattendedObject, models.SeverityMedium, "Ticket Hall"),
	}, nil)
	w.Poll(context.Background())

	got := notifier.all()
	require.Len(t, got, 1)
	assert.Contains(t, got[0].title, "Unattended Object")
}

func TestRemovedIncidentDoesNotNotifyButReappearanceDoes(t *testing.T) {
	source := &staticSource{}
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityHigh, "Platform A"),
		incident(2, models.IncidentVandalism, models.SeverityLow, "Platform B"),
		incident(3, models.IncidentUnattendedObject, models.SeverityLow, "Ticket Hall"),
	}, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	w.Poll(context.Background())

	// Vorfall 1 verschwindet: kein "neues" Ereignis, aber der Stand wird ersetzt
	source.set([]models.Incident{
		incident(2, models.IncidentVandalism, models.SeverityLow, "Platform B"),
		incident(3, models.IncidentUnattendedObject, models.SeverityLow, "Ticket Hall"),
	}, nil)
	w.Poll(context.Background())

	assert.Empty(t, notifier.all())
	assert.Equal(t, map[uint]struct{}{2: {}, 3: {}}, w.knownSnapshot(),
		"known set must be replaced in full, not merged")

	// Vorfall 1 taucht wieder auf: er war im unmittelbar vorherigen Schnappschuss
	// nicht enthalten und gilt damit erneut als neu
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityHigh, "Platform A"),
		incident(2, models.IncidentVandalism, models.SeverityLow, "Platform B"),
		incident(3, models.IncidentUnattendedObject, models.SeverityLow, "Ticket Hall"),
	}, nil)
	w.Poll(context.Background())

	got := notifier.all()
	require.Len(t, got, 1)
	assert.Equal(t, KindError, got[0].kind)
	assert.Contains(t, got[0].title, "Theft")
}

func TestStopDiscardsInFlightPoll(t *testing.T) {
	release := make(chan struct{})
	var calls int32

	notifier := &recordingNotifier{}
	source := SourceFunc(func(ctx context.Context) ([]models.Incident, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return []models.Incident{
				incident(1, models.IncidentTheft, models.SeverityLow, "Platform A"),
			}, nil
		}
		// Spätere Polls: blockieren, bis der Test Stop ausgelöst hat, und liefern
		// dann erfolgreich einen neuen Vorfall - der verworfen werden muss.
		<-release
		return []models.Incident{
			incident(1, models.IncidentTheft, models.SeverityLow, "Platform A"),
			incident(2, models.IncidentVandalism, models.SeverityHigh, "Ticket Hall"),
		}, nil
	})

	w := New(source, notifier, 10*time.Millisecond)
	w.Start()

	// Warten, bis der erste Poll verarbeitet ist und der zweite im Abruf hängt
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.initialized
	}, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 2
	}, time.Second, time.Millisecond)

	// Stop, während der zweite Poll im Abruf hängt; danach darf der Abruf zurückkehren
	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	<-stopped

	assert.Empty(t, notifier.all(), "a poll resolving after Stop must not notify")
	assert.Equal(t, map[uint]struct{}{1: {}}, w.knownSnapshot(),
		"a poll resolving after Stop must not mutate state")
}

func TestRestartBehavesLikeFreshFirstPoll(t *testing.T) {
	source := &staticSource{}
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityHigh, "Platform A"),
	}, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	// Erster Lauf kennt nur Vorfall 1
	w.Poll(context.Background())
	require.Equal(t, map[uint]struct{}{1: {}}, w.knownSnapshot())

	// Neustart mit erweitertem Bestand: Start setzt den Stand zurück, der erste
	// Poll danach übernimmt alles Vorhandene kommentarlos
	source.set([]models.Incident{
		incident(1, models.IncidentTheft, models.SeverityHigh, "Platform A"),
		incident(2, models.IncidentVandalism, models.SeverityLow, "Platform B"),
	}, nil)
	w.Start()
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.initialized
	}, time.Second, time.Millisecond)
	w.Stop()

	assert.Empty(t, notifier.all(), "first poll after restart must suppress notifications")
	assert.Equal(t, map[uint]struct{}{1: {}, 2: {}}, w.knownSnapshot())
}

func TestKindForSeverity(t *testing.T) {
	tests := []struct {
		severity string
		want     string
	}{
		{models.SeverityHigh, KindError},
		{models.SeverityMedium, KindWarning},
		{models.SeverityLow, KindInfo},
		{"HIGH", KindError},
		{"", KindInfo},
		{"unknown", KindInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindForSeverity(tt.severity), "severity %q", tt.severity)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	source := &staticSource{}
	source.set(nil, nil)
	notifier := &recordingNotifier{}
	w := New(source, notifier, time.Minute)

	w.Start()
	w.Start() // zweiter Start darf keine zweite Schleife erzeugen
	w.Stop()
	w.Stop() // zweiter Stop ist ein No-op

	assert.Empty(t, notifier.all())
}
