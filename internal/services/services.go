// Package services enthält die Domain-Fassaden über dem In-Memory-Datenspeicher.
// Alle Operationen sind kontextfähig, simulieren eine konfigurierbare Netzwerklatenz
// und liefern Kopien der gespeicherten Daten zurück.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound wird zurückgegeben, wenn eine Operation eine ID referenziert, die im
// Speicher nicht (mehr) existiert.
var ErrNotFound = errors.New("record not found")

// ErrValidation wird zurückgegeben, wenn Pflichtfelder fehlen. Die Prüfung erfolgt
// vor jeder Speicher-Mutation.
var ErrValidation = errors.New("validation failed")

// simulateLatency wartet die künstliche Latenz ab und bricht bei Context-Abbruch sofort ab.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// translateError bildet GORM-Fehler auf die Domain-Fehler ab
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
