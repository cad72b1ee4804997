// Package session owns the mutable state of one playthrough: the loaded
// contract, the runner roster, and the player's progression. The engine
// packages underneath it are pure; every mutation funnels through here.
package session

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/balancing"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/contract"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/availability"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/expr"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/pool"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/resolution"
	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/platform/id"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/telemetry"
)

// Player is the persistent progression across contracts.
type Player struct {
	Money              int
	Risk               int
	Level              int
	ContractsCompleted int
}

// State is one full evaluation of the current session: the pool snapshot,
// the per-node availability, and any diagnostics the engine raised.
type State struct {
	Snapshot     pool.Snapshot
	Availability map[string]availability.Status
	Diagnostics  []expr.Diagnostic
}

// Session is the mutable context the engine operates on. Methods are safe
// for concurrent use; each one runs to completion under the session lock.
type Session struct {
	mu sync.Mutex

	cfg   balancing.Config
	table balancing.DamageTable

	contractID string
	graph      *contract.Graph
	roster     runner.Roster
	player     Player

	generator *runner.Generator
	store     storage.Store
	emitter   *telemetry.Emitter
	logger    *log.Logger
	tracer    trace.Tracer
}

// New returns a session with no contract loaded and an empty roster.
func New(cfg balancing.Config, table balancing.DamageTable, gen *runner.Generator) *Session {
	return &Session{
		cfg:       cfg,
		table:     table,
		generator: gen,
		player:    Player{Level: 1},
		logger:    log.Default(),
		tracer:    otel.Tracer("session"),
	}
}

// WithStore attaches a persistence backend. Without one the session is
// memory-only.
func (s *Session) WithStore(store storage.Store) *Session {
	s.store = store
	s.emitter = telemetry.New(store)
	return s
}

// WithLogger replaces the diagnostic logger.
func (s *Session) WithLogger(logger *log.Logger) *Session {
	s.logger = logger
	return s
}

// Player returns a copy of the player progression.
func (s *Session) Player() Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

// SetPlayer replaces the player progression, typically restored from storage.
func (s *Session) SetPlayer(p Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = p
}

// Roster returns the session's runner roster.
func (s *Session) Roster() runner.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(runner.Roster, len(s.roster))
	copy(out, s.roster)
	return out
}

// AddRunners appends restored or generated runners to the roster.
func (s *Session) AddRunners(runners ...*runner.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = append(s.roster, runners...)
}

// ContractID returns the identity of the loaded contract, empty when none.
func (s *Session) ContractID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contractID
}

// LoadContract replaces the current contract with a fresh graph. Any
// previous selection is discarded.
func (s *Session) LoadContract(ctx context.Context, contractID string, nodes []*contract.Node) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := contract.NewGraph(nodes)
	if err != nil {
		return State{}, err
	}
	s.contractID = contractID
	s.graph = g

	s.emit(ctx, "contract.loaded", map[string]any{
		"contract_id": contractID,
		"nodes":       g.Len(),
	})
	return s.recompute(ctx), nil
}

// SelectNode selects a node after checking it is currently available.
func (s *Session) SelectNode(ctx context.Context, nodeID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireContract(); err != nil {
		return State{}, err
	}

	statuses, _ := availability.Compute(s.graph, s.roster.Hired())
	switch statuses[nodeID] {
	case availability.StatusSelected:
		return State{}, apperrors.WithMetadata(apperrors.CodeContractNodeAlreadySelected,
			"node is already selected", map[string]string{"node_id": nodeID})
	case availability.StatusAvailable:
	default:
		if s.graph.Node(nodeID) == nil {
			return State{}, apperrors.WithMetadata(apperrors.CodeContractNodeNotFound,
				"node not found", map[string]string{"node_id": nodeID})
		}
		return State{}, apperrors.WithMetadata(apperrors.CodeContractNodeUnavailable,
			"node is not available for selection", map[string]string{"node_id": nodeID})
	}

	if err := s.graph.Select(nodeID); err != nil {
		return State{}, err
	}
	s.emit(ctx, "node.selected", map[string]any{"node_id": nodeID})
	return s.recompute(ctx), nil
}

// DeselectNode clears a node's selection.
func (s *Session) DeselectNode(ctx context.Context, nodeID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireContract(); err != nil {
		return State{}, err
	}
	if err := s.graph.Deselect(nodeID); err != nil {
		return State{}, err
	}
	s.emit(ctx, "node.deselected", map[string]any{"node_id": nodeID})
	return s.recompute(ctx), nil
}

// GenerateRunners creates one batch of hireable runners and adds them to
// the roster.
func (s *Session) GenerateRunners(ctx context.Context) (runner.Roster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, err := s.generator.Batch()
	if err != nil {
		return nil, err
	}
	s.roster = append(s.roster, batch...)
	s.persistRunners(ctx, batch)
	s.emit(ctx, "runners.generated", map[string]any{"count": len(batch)})
	return batch, nil
}

// HireRunner hires a roster runner, deducting the hiring cost.
func (s *Session) HireRunner(ctx context.Context, runnerID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster.ByID(runnerID)
	if r == nil {
		return State{}, apperrors.WithMetadata(apperrors.CodeRunnerNotFound,
			"runner not found", map[string]string{"runner_id": runnerID})
	}
	if s.player.Money < s.cfg.HiringCost {
		return State{}, apperrors.WithMetadata(apperrors.CodeSessionInsufficientFunds,
			"not enough money to hire", map[string]string{"runner_id": runnerID})
	}
	if err := r.Hire(); err != nil {
		return State{}, err
	}
	s.player.Money -= s.cfg.HiringCost

	s.persistRunners(ctx, runner.Roster{r})
	s.persistPlayer(ctx)
	s.emit(ctx, "runner.hired", map[string]any{"runner_id": runnerID})
	return s.recompute(ctx), nil
}

// UnhireRunner releases a hired runner and refunds the hiring cost.
func (s *Session) UnhireRunner(ctx context.Context, runnerID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.roster.ByID(runnerID)
	if r == nil {
		return State{}, apperrors.WithMetadata(apperrors.CodeRunnerNotFound,
			"runner not found", map[string]string{"runner_id": runnerID})
	}
	if err := r.Unhire(); err != nil {
		return State{}, err
	}
	s.player.Money += s.cfg.HiringCost

	s.persistRunners(ctx, runner.Roster{r})
	s.persistPlayer(ctx)
	s.emit(ctx, "runner.unhired", map[string]any{"runner_id": runnerID})
	return s.recompute(ctx), nil
}

// Recompute evaluates the pools and availability for the current state.
func (s *Session) Recompute(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireContract(); err != nil {
		return State{}, err
	}
	return s.recompute(ctx), nil
}

// CompleteContract settles the loaded contract: resolution, player updates,
// persistence, and a selection reset. The seed makes the roll sequence
// reproducible.
func (s *Session) CompleteContract(ctx context.Context, seed int64) (resolution.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireContract(); err != nil {
		return resolution.Result{}, err
	}

	ctx, span := s.tracer.Start(ctx, "session.CompleteContract",
		trace.WithAttributes(
			attribute.String("contract.id", s.contractID),
			attribute.Int64("resolution.seed", seed),
		))
	defer span.End()

	snap, diags := pool.Compute(s.graph, s.roster.Hired())
	s.logDiagnostics(diags)

	resolver := resolution.New(s.cfg, s.table, seed)
	result, resolveDiags := resolver.Resolve(snap, s.roster)
	s.logDiagnostics(resolveDiags)

	s.player.Money += result.Reward
	s.player.Risk += result.RiskApplied
	s.player.Level += result.PlayerLevelDelta
	s.player.ContractsCompleted++

	s.graph.ClearSelection()

	s.persistRunners(ctx, s.roster)
	s.persistPlayer(ctx)
	s.persistResolution(ctx, seed, result)
	s.emit(ctx, "contract.resolved", map[string]any{
		"contract_id":  s.contractID,
		"reward":       result.Reward,
		"risk_applied": result.RiskApplied,
		"rolls":        len(result.Rolls),
	})

	span.SetAttributes(
		attribute.Int("resolution.reward", result.Reward),
		attribute.Int("resolution.rolls", len(result.Rolls)),
	)
	return result, nil
}

func (s *Session) requireContract() error {
	if s.graph == nil {
		return apperrors.New(apperrors.CodeSessionNoContract, "no contract loaded")
	}
	return nil
}

// recompute runs the engine and logs diagnostics. Callers hold the lock.
func (s *Session) recompute(ctx context.Context) State {
	_, span := s.tracer.Start(ctx, "session.Recompute",
		trace.WithAttributes(attribute.String("contract.id", s.contractID)))
	defer span.End()

	hired := s.roster.Hired()
	snap, diags := pool.Compute(s.graph, hired)
	statuses, availDiags := availability.Compute(s.graph, hired)
	diags = append(diags, availDiags...)
	s.logDiagnostics(diags)

	span.SetAttributes(
		attribute.Int("pool.damage", snap.Damage),
		attribute.Int("pool.risk", snap.Risk),
		attribute.Int("pool.money", snap.Money),
		attribute.Int("diagnostics", len(diags)),
	)

	return State{Snapshot: snap, Availability: statuses, Diagnostics: diags}
}

// logDiagnostics reports engine degradation. Diagnostics are never fatal;
// they surface data bugs without interrupting play.
func (s *Session) logDiagnostics(diags []expr.Diagnostic) {
	for _, d := range diags {
		s.logger.Printf("engine %s [%s]: %s (raw: %q)", d.Severity, d.Code, d.Message, d.Raw)
	}
}

// emit records a telemetry event. Callers hold the lock. Emission failures
// are logged and swallowed.
func (s *Session) emit(ctx context.Context, kind string, fields map[string]any) {
	if err := s.emitter.Emit(ctx, kind, fields); err != nil {
		s.logger.Printf("telemetry %s: %v", kind, err)
	}
}

// persistRunners writes runner records. Storage failures are logged, not
// returned: losing a write must not lose the in-memory game state.
func (s *Session) persistRunners(ctx context.Context, runners runner.Roster) {
	if s.store == nil {
		return
	}
	for _, r := range runners {
		if err := s.store.SaveRunner(ctx, runnerRecord(r)); err != nil {
			s.logger.Printf("persist runner %s: %v", r.ID, err)
		}
	}
}

func (s *Session) persistPlayer(ctx context.Context) {
	if s.store == nil {
		return
	}
	record := storage.PlayerRecord{
		ID:                 playerRecordID,
		Money:              s.player.Money,
		Risk:               s.player.Risk,
		Level:              s.player.Level,
		ContractsCompleted: s.player.ContractsCompleted,
	}
	if err := s.store.SavePlayer(ctx, record); err != nil {
		s.logger.Printf("persist player: %v", err)
	}
}

func (s *Session) persistResolution(ctx context.Context, seed int64, result resolution.Result) {
	if s.store == nil {
		return
	}
	recordID, err := id.NewID()
	if err != nil {
		s.logger.Printf("persist resolution: %v", err)
		return
	}
	record := storage.ResolutionRecord{
		ID:          recordID,
		ContractID:  s.contractID,
		Seed:        seed,
		Reward:      result.Reward,
		RiskApplied: result.RiskApplied,
		RollCount:   len(result.Rolls),
	}
	if err := s.store.AppendResolution(ctx, record); err != nil {
		s.logger.Printf("persist resolution: %v", err)
	}
}

// playerRecordID is the fixed row identity of the single-player progression.
const playerRecordID = "player"

func runnerRecord(r *runner.Runner) storage.RunnerRecord {
	return storage.RunnerRecord{
		ID:        r.ID,
		Name:      r.Name,
		Level:     r.Level,
		Archetype: string(r.Archetype),
		Muscle:    r.Stat(runner.StatMuscle),
		Hacking:   r.Stat(runner.StatHacking),
		Social:    r.Stat(runner.StatSocial),
		Stealth:   r.Stat(runner.StatStealth),
		State:     r.State.String(),
		Hired:     r.Hired,
	}
}
