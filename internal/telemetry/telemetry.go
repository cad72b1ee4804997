// Package telemetry records gameplay events for later balancing analysis.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/platform/id"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage"
)

// Emitter appends gameplay events to a telemetry store. A nil Emitter or a
// nil store silently drops events: telemetry must never block gameplay.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// New returns an emitter writing to the given store.
func New(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// WithClock replaces the time source, for tests.
func (e *Emitter) WithClock(clock func() time.Time) *Emitter {
	e.clock = clock
	return e
}

// Emit appends one event. Fields are JSON-encoded into the payload.
func (e *Emitter) Emit(ctx context.Context, kind string, fields map[string]any) error {
	if e == nil || e.store == nil {
		return nil
	}

	eventID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("event id: %w", err)
	}

	payload := "{}"
	if len(fields) > 0 {
		raw, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("encode event payload: %w", err)
		}
		payload = string(raw)
	}

	return e.store.AppendEvent(ctx, storage.TelemetryEvent{
		ID:         eventID,
		Kind:       kind,
		Payload:    payload,
		OccurredAt: e.clock().UTC(),
	})
}
