// Package sqlite provides a SQLite-backed storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/platform/sqlitemigrate"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage/sqlite/migrations"
)

// Store persists session state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// SaveRunner inserts or replaces one runner record.
func (s *Store) SaveRunner(ctx context.Context, record storage.RunnerRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("runner id is required")
	}
	now := time.Now().UTC()
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runners (
		   id, name, level, archetype,
		   muscle, hacking, social, stealth,
		   state, hired, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   level = excluded.level,
		   archetype = excluded.archetype,
		   muscle = excluded.muscle,
		   hacking = excluded.hacking,
		   social = excluded.social,
		   stealth = excluded.stealth,
		   state = excluded.state,
		   hired = excluded.hired,
		   updated_at = excluded.updated_at`,
		record.ID,
		record.Name,
		record.Level,
		record.Archetype,
		record.Muscle,
		record.Hacking,
		record.Social,
		record.Stealth,
		record.State,
		boolToInt(record.Hired),
		toMillis(createdAt),
		toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("save runner: %w", err)
	}
	return nil
}

// GetRunner returns one runner by ID.
func (s *Store) GetRunner(ctx context.Context, id string) (storage.RunnerRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.RunnerRecord{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.RunnerRecord{}, fmt.Errorf("runner id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, level, archetype,
		        muscle, hacking, social, stealth,
		        state, hired, created_at, updated_at
		   FROM runners
		  WHERE id = ?`,
		id,
	)
	record, err := scanRunner(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RunnerRecord{}, storage.ErrNotFound
		}
		return storage.RunnerRecord{}, fmt.Errorf("get runner: %w", err)
	}
	return record, nil
}

// ListRunners returns every runner record in creation order.
func (s *Store) ListRunners(ctx context.Context) ([]storage.RunnerRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, level, archetype,
		        muscle, hacking, social, stealth,
		        state, hired, created_at, updated_at
		   FROM runners
		  ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runners: %w", err)
	}
	defer rows.Close()

	var records []storage.RunnerRecord
	for rows.Next() {
		record, err := scanRunner(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list runners: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runners: %w", err)
	}
	return records, nil
}

// SavePlayer inserts or replaces the player record.
func (s *Store) SavePlayer(ctx context.Context, record storage.PlayerRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("player id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO players (id, money, risk, level, contracts_completed, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   money = excluded.money,
		   risk = excluded.risk,
		   level = excluded.level,
		   contracts_completed = excluded.contracts_completed,
		   updated_at = excluded.updated_at`,
		record.ID,
		record.Money,
		record.Risk,
		record.Level,
		record.ContractsCompleted,
		toMillis(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

// GetPlayer returns the player record by ID.
func (s *Store) GetPlayer(ctx context.Context, id string) (storage.PlayerRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.PlayerRecord{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.PlayerRecord{}, fmt.Errorf("player id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, money, risk, level, contracts_completed, updated_at
		   FROM players
		  WHERE id = ?`,
		id,
	)

	var record storage.PlayerRecord
	var updatedAt int64
	err := row.Scan(&record.ID, &record.Money, &record.Risk,
		&record.Level, &record.ContractsCompleted, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PlayerRecord{}, storage.ErrNotFound
		}
		return storage.PlayerRecord{}, fmt.Errorf("get player: %w", err)
	}
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// AppendResolution inserts one completed-contract record.
func (s *Store) AppendResolution(ctx context.Context, record storage.ResolutionRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("resolution id is required")
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO resolutions (id, contract_id, seed, reward, risk_applied, roll_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.ContractID,
		record.Seed,
		record.Reward,
		record.RiskApplied,
		record.RollCount,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("append resolution: %w", err)
	}
	return nil
}

// ListResolutions returns the resolutions for one contract, oldest first.
func (s *Store) ListResolutions(ctx context.Context, contractID string) ([]storage.ResolutionRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, contract_id, seed, reward, risk_applied, roll_count, created_at
		   FROM resolutions
		  WHERE contract_id = ?
		  ORDER BY created_at ASC, id ASC`,
		strings.TrimSpace(contractID),
	)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var records []storage.ResolutionRecord
	for rows.Next() {
		var record storage.ResolutionRecord
		var createdAt int64
		if err := rows.Scan(&record.ID, &record.ContractID, &record.Seed,
			&record.Reward, &record.RiskApplied, &record.RollCount, &createdAt); err != nil {
			return nil, fmt.Errorf("list resolutions: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	return records, nil
}

// AppendEvent inserts one telemetry event.
func (s *Store) AppendEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(event.ID) == "" {
		return fmt.Errorf("event id is required")
	}
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (id, kind, payload, occurred_at)
		 VALUES (?, ?, ?, ?)`,
		event.ID,
		event.Kind,
		event.Payload,
		toMillis(occurredAt),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func scanRunner(scan func(...any) error) (storage.RunnerRecord, error) {
	var record storage.RunnerRecord
	var hired int
	var createdAt, updatedAt int64
	if err := scan(
		&record.ID, &record.Name, &record.Level, &record.Archetype,
		&record.Muscle, &record.Hacking, &record.Social, &record.Stealth,
		&record.State, &hired, &createdAt, &updatedAt,
	); err != nil {
		return storage.RunnerRecord{}, err
	}
	record.Hired = hired != 0
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

var _ storage.Store = (*Store)(nil)
