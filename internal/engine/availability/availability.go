// Package availability derives the per-node selection state of a contract.
//
// Availability is a pure function of the graph's selection state and the
// hired roster. It is recomputed from scratch whenever either changes; no
// incremental state is kept between calls.
package availability

import (
	"fmt"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/contract"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/expr"
	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
)

// Status is the availability of a single node.
type Status int

const (
	// StatusUnavailable means the node cannot be selected right now.
	StatusUnavailable Status = iota
	// StatusAvailable means the node may be selected.
	StatusAvailable
	// StatusSelected means the node is currently selected and must be
	// deselected before it can be chosen again.
	StatusSelected
)

func (s Status) String() string {
	switch s {
	case StatusUnavailable:
		return "unavailable"
	case StatusAvailable:
		return "available"
	case StatusSelected:
		return "selected"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Compute returns the availability of every node in the graph.
//
// The rules, in order:
//   - a selected node reports StatusSelected
//   - start and synergy nodes are always available
//   - a gate needs a selected predecessor and a met gate condition; a
//     missing or malformed condition keeps the gate unavailable and emits
//     an error diagnostic
//   - every other node needs at least one selected predecessor
//
// Predecessors flow forward: node A precedes node B when B's ID appears in
// A's successor set.
func Compute(g *contract.Graph, hired []*runner.Runner) (map[string]Status, []expr.Diagnostic) {
	out := make(map[string]Status, g.Len())
	var diags []expr.Diagnostic

	ctx := expr.EvalContext{Hired: hired, Selected: g.SelectedNodes()}

	for _, n := range g.Nodes() {
		if n.Selected {
			out[n.ID] = StatusSelected
			continue
		}

		switch n.Variant {
		case contract.VariantStart, contract.VariantSynergy:
			out[n.ID] = StatusAvailable
		case contract.VariantGate:
			status, diag := gateStatus(g, n, ctx)
			out[n.ID] = status
			if diag != nil {
				diags = append(diags, *diag)
			}
		default:
			out[n.ID] = predecessorStatus(g, n.ID)
		}
	}
	return out, diags
}

func predecessorStatus(g *contract.Graph, id string) Status {
	if g.HasSelectedPredecessor(id) {
		return StatusAvailable
	}
	return StatusUnavailable
}

// gateStatus evaluates a gate node. The condition is parsed before the
// predecessor check so a malformed gate surfaces its diagnostic on every
// recompute, not only once the gate becomes reachable.
func gateStatus(g *contract.Graph, n *contract.Node, ctx expr.EvalContext) (Status, *expr.Diagnostic) {
	gate, err := expr.ParseGateCondition(n.GateCondition)
	if err != nil {
		d := expr.Diagnostic{
			Severity: expr.SeverityError,
			Code:     apperrors.GetCode(err),
			Message:  fmt.Sprintf("gate %s unavailable: %v", n.ID, err),
			Raw:      n.GateCondition,
		}
		return StatusUnavailable, &d
	}
	if !g.HasSelectedPredecessor(n.ID) {
		return StatusUnavailable, nil
	}
	if !gate.Met(ctx) {
		return StatusUnavailable, nil
	}
	return StatusAvailable, nil
}
