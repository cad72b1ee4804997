// Package storage defines persistence contracts for session state.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// RunnerRecord stores one generated runner.
type RunnerRecord struct {
	ID        string
	Name      string
	Level     int
	Archetype string
	Muscle    int
	Hacking   int
	Social    int
	Stealth   int
	State     string
	Hired     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerRecord stores the persistent player progression.
type PlayerRecord struct {
	ID                 string
	Money              int
	Risk               int
	Level              int
	ContractsCompleted int
	UpdatedAt          time.Time
}

// ResolutionRecord stores the outcome of one completed contract.
type ResolutionRecord struct {
	ID          string
	ContractID  string
	Seed        int64
	Reward      int
	RiskApplied int
	RollCount   int
	CreatedAt   time.Time
}

// TelemetryEvent stores one gameplay event for later analysis.
type TelemetryEvent struct {
	ID         string
	Kind       string
	Payload    string // JSON-encoded event fields
	OccurredAt time.Time
}

// RunnerStore persists runner records.
type RunnerStore interface {
	SaveRunner(ctx context.Context, record RunnerRecord) error
	GetRunner(ctx context.Context, id string) (RunnerRecord, error)
	ListRunners(ctx context.Context) ([]RunnerRecord, error)
}

// PlayerStore persists the player record.
type PlayerStore interface {
	SavePlayer(ctx context.Context, record PlayerRecord) error
	GetPlayer(ctx context.Context, id string) (PlayerRecord, error)
}

// ResolutionStore appends completed-contract outcomes.
type ResolutionStore interface {
	AppendResolution(ctx context.Context, record ResolutionRecord) error
	ListResolutions(ctx context.Context, contractID string) ([]ResolutionRecord, error)
}

// TelemetryStore appends gameplay events.
type TelemetryStore interface {
	AppendEvent(ctx context.Context, event TelemetryEvent) error
}

// Store bundles every persistence contract the session needs.
type Store interface {
	RunnerStore
	PlayerStore
	ResolutionStore
	TelemetryStore
}
