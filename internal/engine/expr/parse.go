package expr

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

// ParseEffect parses one effect expression of the form
//
//	Condition;Operator;Amount;Stat
//
// RunnerStat conditions carry their threshold in an extra segment
// (RunnerStat:stats;threshold;Operator;Amount;Stat), so the expression then
// has five segments.
//
// Recoverable problems degrade with a warning diagnostic: an unknown
// operator falls back to addition, a non-numeric amount defaults to 1, and
// an unknown condition tag evaluates neutrally. A wrong segment count or an
// unknown target stat makes the whole effect unusable and returns an error;
// the caller skips the effect and logs.
func ParseEffect(raw string) (Effect, []Diagnostic, error) {
	parts := strings.Split(raw, ";")

	cond := parseCondition(parts[0])
	switch {
	case len(parts) == 4:
		// Standard shape.
	case len(parts) == 5 && cond.Kind == CondRunnerStat:
		// Threshold segment between condition and operator.
		threshold, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || threshold < 1 {
			return Effect{}, nil, apperrors.WithMetadata(apperrors.CodeExprMalformedEffect,
				"runner stat threshold must be a positive integer",
				map[string]string{"expression": raw})
		}
		cond.Threshold = threshold
		parts = append(parts[:1], parts[2:]...)
	default:
		return Effect{}, nil, apperrors.WithMetadata(apperrors.CodeExprMalformedEffect,
			fmt.Sprintf("expected 4 segments, got %d", len(parts)),
			map[string]string{"expression": raw})
	}

	var diags []Diagnostic
	if cond.Kind == CondUnknown {
		diags = append(diags, warnDiag(apperrors.CodeExprUnknownCondition,
			fmt.Sprintf("unknown condition %q, treating as neutral", strings.TrimSpace(parts[0])), raw))
	}

	op, ok := ParseOperator(parts[1])
	if !ok {
		diags = append(diags, warnDiag(apperrors.CodeExprUnknownOperator,
			fmt.Sprintf("unknown operator %q, falling back to addition", strings.TrimSpace(parts[1])), raw))
		op = OpAdd
	}

	amount, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		diags = append(diags, warnDiag(apperrors.CodeExprInvalidAmount,
			fmt.Sprintf("non-numeric amount %q, defaulting to 1", strings.TrimSpace(parts[2])), raw))
		amount = 1
	}

	stat, ok := ParseStat(parts[3])
	if !ok {
		return Effect{}, diags, apperrors.WithMetadata(apperrors.CodeExprUnknownStat,
			fmt.Sprintf("unknown stat %q", strings.TrimSpace(parts[3])),
			map[string]string{"expression": raw})
	}

	return Effect{
		Condition: cond,
		Operator:  op,
		Amount:    amount,
		Stat:      stat,
		Raw:       raw,
	}, diags, nil
}
