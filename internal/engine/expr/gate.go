package expr

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

// GateCondition is the requirement carried by a gate node, of the form
//
//	ConditionType:Params;Threshold
//
// where ConditionType is RunnerType or RunnerStat. RunnerType gates open
// when the count of hired runners with a listed archetype reaches the
// threshold; RunnerStat gates open when the summed stats reach it.
type GateCondition struct {
	Kind      ConditionKind // CondRunnerType or CondRunnerStat
	Params    []string
	Threshold int
	Raw       string
}

// ParseGateCondition parses a gate condition string. Unlike effect parsing
// there is no degraded fallback: a gate with a malformed condition stays
// permanently unavailable, so any problem is an error for the caller to log.
func ParseGateCondition(raw string) (GateCondition, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return GateCondition{}, apperrors.New(apperrors.CodeExprMalformedGate,
			"gate condition is empty")
	}

	parts := strings.Split(trimmed, ";")
	if len(parts) != 2 {
		return GateCondition{}, apperrors.WithMetadata(apperrors.CodeExprMalformedGate,
			fmt.Sprintf("expected 2 segments, got %d", len(parts)),
			map[string]string{"condition": raw})
	}

	cond := parseCondition(parts[0])
	if cond.Kind != CondRunnerType && cond.Kind != CondRunnerStat {
		return GateCondition{}, apperrors.WithMetadata(apperrors.CodeExprMalformedGate,
			fmt.Sprintf("unsupported gate condition type %s", cond.Kind),
			map[string]string{"condition": raw})
	}
	if len(cond.Params) == 0 {
		return GateCondition{}, apperrors.WithMetadata(apperrors.CodeExprMalformedGate,
			"gate condition has no parameters",
			map[string]string{"condition": raw})
	}

	threshold, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || threshold < 1 {
		return GateCondition{}, apperrors.WithMetadata(apperrors.CodeExprMalformedGate,
			fmt.Sprintf("threshold %q must be a positive integer", strings.TrimSpace(parts[1])),
			map[string]string{"condition": raw})
	}

	return GateCondition{
		Kind:      cond.Kind,
		Params:    cond.Params,
		Threshold: threshold,
		Raw:       raw,
	}, nil
}

// Met reports whether the hired roster satisfies the gate condition.
func (g GateCondition) Met(ctx EvalContext) bool {
	switch g.Kind {
	case CondRunnerType:
		return ctx.countArchetypes(g.Params) >= g.Threshold
	case CondRunnerStat:
		return ctx.sumStats(g.Params) >= g.Threshold
	default:
		return false
	}
}
