package expr

import (
	"fmt"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/contract"
	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
)

// EvalContext is the read-only state a condition evaluates against. The
// engine holds no state of its own; callers assemble the context per pass.
//
// PrevDamage/PrevRisk carry the preliminary prevention record. They are zero
// until the pool calculator has run its standard pass, which is why effects
// conditioned on them are deferred to the late pass.
type EvalContext struct {
	Hired      []*runner.Runner
	Selected   []*contract.Node
	PrevDamage int
	PrevRisk   int
}

// Multiplier evaluates a condition to its non-negative integer multiplier.
// Zero means the condition does not apply and the effect contributes
// nothing.
//
// Gate nodes are invisible to the color conditions: only selected non-gate
// nodes count toward NodeColor and NodeColorCombo.
func (ctx EvalContext) Multiplier(cond Condition) int {
	switch cond.Kind {
	case CondNone:
		return 1
	case CondRunnerType:
		return ctx.countArchetypes(cond.Params)
	case CondRunnerStat:
		threshold := cond.Threshold
		if threshold < 1 {
			threshold = 1
		}
		m := ctx.sumStats(cond.Params) / threshold
		if m < 0 {
			m = 0
		}
		return m
	case CondNodeColor:
		if ctx.anySelectedColor(cond.Params) {
			return 1
		}
		return 0
	case CondNodeColorCombo:
		if ctx.allColorsSelected(cond.Params) {
			return 1
		}
		return 0
	case CondPrevDam:
		return ctx.PrevDamage
	case CondPrevRisk:
		return ctx.PrevRisk
	default:
		// Unknown conditions are neutral: they neither block nor amplify.
		// The parser already emitted the diagnostic.
		return 1
	}
}

func (ctx EvalContext) countArchetypes(labels []string) int {
	count := 0
	for _, r := range ctx.Hired {
		for _, label := range labels {
			if string(r.Archetype) == label {
				count++
				break
			}
		}
	}
	return count
}

func (ctx EvalContext) sumStats(labels []string) int {
	sum := 0
	for _, label := range labels {
		axis, ok := runner.ParseStatAxis(label)
		if !ok {
			continue
		}
		for _, r := range ctx.Hired {
			sum += r.Stat(axis)
		}
	}
	return sum
}

func (ctx EvalContext) anySelectedColor(colors []string) bool {
	for _, n := range ctx.Selected {
		if !n.ContributesEffects() {
			continue
		}
		for _, c := range colors {
			if n.Color == contract.Color(c) {
				return true
			}
		}
	}
	return false
}

func (ctx EvalContext) allColorsSelected(colors []string) bool {
	if len(colors) == 0 {
		return false
	}
	for _, c := range colors {
		found := false
		for _, n := range ctx.Selected {
			if n.ContributesEffects() && n.Color == contract.Color(c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply combines a pool value with an effect amount under the effect's
// operator. The returned diagnostic is non-nil when the operation was
// skipped (division by a zero effective amount).
//
// For the percent operator the base must be the pool value after all
// standard effects; choosing that base is the pool calculator's job.
func Apply(op Operator, current, amount, multiplier int) (int, *Diagnostic) {
	effective := amount * multiplier
	switch op {
	case OpAdd:
		return current + effective, nil
	case OpSubtract:
		return current - effective, nil
	case OpMultiply:
		return current * effective, nil
	case OpDivide:
		if effective == 0 {
			d := warnDiag(apperrors.CodeExprDivideByZero,
				"division by zero effective amount, effect skipped", "")
			return current, &d
		}
		return current / effective, nil
	case OpPercent:
		return current + current*effective/100, nil
	default:
		d := warnDiag(apperrors.CodeExprUnknownOperator,
			fmt.Sprintf("unknown operator %d applied as addition", int(op)), "")
		return current + effective, &d
	}
}
