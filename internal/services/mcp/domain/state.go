// Package domain defines the MCP tool surface of the contract engine:
// input/output schemas and the handlers binding them to a session.
package domain

import (
	"fmt"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/expr"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/session"
)

// PoolsResult represents the pool snapshot exposed to MCP clients.
type PoolsResult struct {
	Damage          int `json:"damage" jsonschema:"damage pool net of prevention"`
	Risk            int `json:"risk" jsonschema:"risk pool net of prevention"`
	Money           int `json:"money" jsonschema:"money pool"`
	Grit            int `json:"grit" jsonschema:"grit pool"`
	Veil            int `json:"veil" jsonschema:"veil pool"`
	DamagePrevented int `json:"damage_prevented" jsonschema:"damage prevented by grit"`
	RiskPrevented   int `json:"risk_prevented" jsonschema:"risk prevented by veil"`
}

// DiagnosticResult represents one engine diagnostic.
type DiagnosticResult struct {
	Severity string `json:"severity" jsonschema:"WARN or ERROR"`
	Code     string `json:"code" jsonschema:"machine-readable diagnostic code"`
	Message  string `json:"message" jsonschema:"human-readable description"`
	Raw      string `json:"raw,omitempty" jsonschema:"the offending expression text"`
}

// StateResult represents one full session evaluation.
type StateResult struct {
	Pools        PoolsResult        `json:"pools" jsonschema:"current pool snapshot"`
	Availability map[string]string  `json:"availability" jsonschema:"node id to availability status (available, selected, unavailable)"`
	Diagnostics  []DiagnosticResult `json:"diagnostics,omitempty" jsonschema:"engine degradation diagnostics"`
}

// RunnerResult represents one roster runner.
type RunnerResult struct {
	ID        string         `json:"id" jsonschema:"runner identifier"`
	Name      string         `json:"name" jsonschema:"display name"`
	Level     int            `json:"level" jsonschema:"runner level"`
	Archetype string         `json:"archetype" jsonschema:"muscle, hacker, face, or ghost"`
	Stats     map[string]int `json:"stats" jsonschema:"stat values per axis"`
	State     string         `json:"state" jsonschema:"ready, injured, or dead"`
	Hired     bool           `json:"hired" jsonschema:"whether the runner is on the crew"`
}

// PlayerResult represents the player progression.
type PlayerResult struct {
	Money              int `json:"money" jsonschema:"player money"`
	Risk               int `json:"risk" jsonschema:"accumulated risk"`
	Level              int `json:"level" jsonschema:"player level"`
	ContractsCompleted int `json:"contracts_completed" jsonschema:"completed contract count"`
}

func stateResult(state session.State) StateResult {
	out := StateResult{
		Pools: PoolsResult{
			Damage:          state.Snapshot.Damage,
			Risk:            state.Snapshot.Risk,
			Money:           state.Snapshot.Money,
			Grit:            state.Snapshot.Grit,
			Veil:            state.Snapshot.Veil,
			DamagePrevented: state.Snapshot.DamagePrevented,
			RiskPrevented:   state.Snapshot.RiskPrevented,
		},
		Availability: make(map[string]string, len(state.Availability)),
	}
	for nodeID, status := range state.Availability {
		out.Availability[nodeID] = status.String()
	}
	out.Diagnostics = diagnosticResults(state.Diagnostics)
	return out
}

func diagnosticResults(diags []expr.Diagnostic) []DiagnosticResult {
	if len(diags) == 0 {
		return nil
	}
	out := make([]DiagnosticResult, 0, len(diags))
	for _, d := range diags {
		out = append(out, DiagnosticResult{
			Severity: string(d.Severity),
			Code:     string(d.Code),
			Message:  d.Message,
			Raw:      d.Raw,
		})
	}
	return out
}

func runnerResult(r *runner.Runner) RunnerResult {
	stats := make(map[string]int, len(runner.StatAxes()))
	for _, axis := range runner.StatAxes() {
		stats[string(axis)] = r.Stat(axis)
	}
	return RunnerResult{
		ID:        r.ID,
		Name:      r.Name,
		Level:     r.Level,
		Archetype: string(r.Archetype),
		Stats:     stats,
		State:     r.State.String(),
		Hired:     r.Hired,
	}
}

func playerResult(p session.Player) PlayerResult {
	return PlayerResult{
		Money:              p.Money,
		Risk:               p.Risk,
		Level:              p.Level,
		ContractsCompleted: p.ContractsCompleted,
	}
}

func validateRequired(value, field string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}
