// Package pool computes the five resource pools of a contract evaluation.
package pool

import (
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/contract"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/expr"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/prevent"
	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
)

// Snapshot is the result of one pool computation. Damage and Risk are
// reported net of final prevention; the prevention amounts are included for
// display.
type Snapshot struct {
	Damage int
	Risk   int
	Money  int
	Grit   int
	Veil   int

	DamagePrevented int
	RiskPrevented   int
}

// parsedEffect pairs an effect with the node it came from, preserving
// node-selection order.
type parsedEffect struct {
	effect expr.Effect
	nodeID string
}

// Compute evaluates every effect belonging to the currently selected,
// non-gate nodes and returns the resulting snapshot.
//
// # Ordering
//
// Effects run in two passes. The early pass applies the standard operators
// (+, -, *, /) in node-selection order. Preliminary prevention is then
// derived from the early-pass result. The late pass applies percent effects
// and any effect conditioned on PrevDam/PrevRisk; percent effects always
// operate on the pool as it stood after the early pass, never interleaved
// with it. This two-pass split is the central correctness property of the
// calculator.
//
// # Purity
//
// Compute reads the graph and roster but mutates nothing. Recomputing with
// unchanged inputs yields an identical snapshot, so callers recompute on
// every selection or roster change instead of patching incrementally.
func Compute(g *contract.Graph, hired []*runner.Runner) (Snapshot, []expr.Diagnostic) {
	values := map[expr.Stat]int{
		expr.StatDamage: 0,
		expr.StatRisk:   0,
		expr.StatMoney:  0,
		expr.StatGrit:   0,
		expr.StatVeil:   0,
	}

	selected := g.SelectedNodes()
	ctx := expr.EvalContext{Hired: hired, Selected: selected}

	early, late, diags := partitionEffects(selected)

	// Early pass: standard operators in node-selection order.
	for _, pe := range early {
		diags = applyEffect(values, values, pe.effect, ctx, diags)
	}

	// Preliminary prevention feeds PrevDam/PrevRisk conditions in the late
	// pass. It is computed exactly once; never mid-pass.
	prelim := prevent.Compute(values[expr.StatDamage], values[expr.StatRisk],
		values[expr.StatGrit], values[expr.StatVeil])
	ctx.PrevDamage = prelim.DamagePrevented
	ctx.PrevRisk = prelim.RiskPrevented

	// Late pass: percent effects read the frozen post-early base so that
	// multiple percent effects stack additively against the shared base.
	base := make(map[expr.Stat]int, len(values))
	for stat, v := range values {
		base[stat] = v
	}
	for _, pe := range late {
		diags = applyEffect(values, base, pe.effect, ctx, diags)
	}

	final := prevent.Compute(values[expr.StatDamage], values[expr.StatRisk],
		values[expr.StatGrit], values[expr.StatVeil])

	return Snapshot{
		Damage:          values[expr.StatDamage] - final.DamagePrevented,
		Risk:            values[expr.StatRisk] - final.RiskPrevented,
		Money:           values[expr.StatMoney],
		Grit:            values[expr.StatGrit],
		Veil:            values[expr.StatVeil],
		DamagePrevented: final.DamagePrevented,
		RiskPrevented:   final.RiskPrevented,
	}, diags
}

// partitionEffects parses the effects of the selected non-gate nodes and
// splits them into the early (standard) and late (percent or
// prevention-conditioned) passes. Unparseable effects are skipped with a
// diagnostic; parsing never aborts the evaluation.
func partitionEffects(selected []*contract.Node) (early, late []parsedEffect, diags []expr.Diagnostic) {
	for _, n := range selected {
		for _, raw := range n.RawEffects() {
			effect, parseDiags, err := expr.ParseEffect(raw)
			diags = append(diags, parseDiags...)
			if err != nil {
				diags = append(diags, skippedEffectDiag(err, raw))
				continue
			}
			pe := parsedEffect{effect: effect, nodeID: n.ID}
			if effect.Percent() || effect.DependsOnPrevention() {
				late = append(late, pe)
			} else {
				early = append(early, pe)
			}
		}
	}
	return early, late, diags
}

// applyEffect applies one effect to the pool values. For percent effects the
// operand base comes from the frozen base map; everything else reads and
// writes the live values.
//
// A condition multiplier of zero means "does not apply": the effect is
// skipped outright, so a multiply or divide cannot collapse a pool through
// an unmatched condition.
func applyEffect(values, base map[expr.Stat]int, effect expr.Effect, ctx expr.EvalContext, diags []expr.Diagnostic) []expr.Diagnostic {
	multiplier := ctx.Multiplier(effect.Condition)
	if multiplier == 0 {
		return diags
	}

	if effect.Percent() {
		values[effect.Stat] += percentDelta(base[effect.Stat], effect.Amount, multiplier)
		return diags
	}

	next, diag := expr.Apply(effect.Operator, values[effect.Stat], effect.Amount, multiplier)
	if diag != nil {
		d := *diag
		d.Raw = effect.Raw
		return append(diags, d)
	}
	values[effect.Stat] = next
	return diags
}

// percentDelta is the percent-stacking rule: each percent effect computes
// its delta from the shared pre-percentage base, so simultaneous percent
// effects stack additively. Switching to multiplicative stacking (each
// percent compounding on the previous one's output) means computing the
// delta from the live value instead; the rule is isolated here so that swap
// touches nothing else.
func percentDelta(baseValue, amount, multiplier int) int {
	return baseValue * (amount * multiplier) / 100
}

func skippedEffectDiag(err error, raw string) expr.Diagnostic {
	return expr.Diagnostic{
		Severity: expr.SeverityError,
		Code:     apperrors.GetCode(err),
		Message:  "effect skipped: " + err.Error(),
		Raw:      raw,
	}
}
