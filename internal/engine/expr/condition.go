package expr

import (
	"strings"
)

// ConditionKind tags the closed set of effect conditions.
type ConditionKind int

const (
	CondNone ConditionKind = iota
	CondRunnerType
	CondRunnerStat
	CondNodeColor
	CondNodeColorCombo
	CondPrevDam
	CondPrevRisk
	CondUnknown
)

func (k ConditionKind) String() string {
	switch k {
	case CondNone:
		return "None"
	case CondRunnerType:
		return "RunnerType"
	case CondRunnerStat:
		return "RunnerStat"
	case CondNodeColor:
		return "NodeColor"
	case CondNodeColorCombo:
		return "NodeColorCombo"
	case CondPrevDam:
		return "PrevDam"
	case CondPrevRisk:
		return "PrevRisk"
	default:
		return "Unknown"
	}
}

// Condition is a parsed effect condition: a kind plus its parameters.
// Params hold archetype labels for RunnerType, stat-axis labels for
// RunnerStat, and color labels for the node-color kinds, all lowercased.
// Threshold is the divisor for RunnerStat's effect form (defaults to 1).
type Condition struct {
	Kind      ConditionKind
	Params    []string
	Threshold int
	Raw       string
}

// parseCondition interprets the condition segment of an effect expression.
// Unknown condition tags are not an error: they parse to CondUnknown, which
// evaluates to the neutral multiplier 1, and the caller logs the diagnostic.
func parseCondition(segment string) Condition {
	raw := segment
	segment = strings.TrimSpace(segment)

	tag := segment
	params := ""
	if idx := strings.Index(segment, ":"); idx >= 0 {
		tag = segment[:idx]
		params = segment[idx+1:]
	}

	cond := Condition{Raw: raw, Threshold: 1}
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "none", "":
		cond.Kind = CondNone
	case "runnertype":
		cond.Kind = CondRunnerType
		cond.Params = splitParams(params)
	case "runnerstat":
		cond.Kind = CondRunnerStat
		cond.Params = splitParams(params)
	case "nodecolor":
		cond.Kind = CondNodeColor
		cond.Params = splitParams(params)
	case "nodecolorcombo":
		cond.Kind = CondNodeColorCombo
		cond.Params = splitParams(params)
	case "prevdam":
		cond.Kind = CondPrevDam
	case "prevrisk":
		cond.Kind = CondPrevRisk
	default:
		cond.Kind = CondUnknown
	}
	return cond
}

func splitParams(params string) []string {
	var out []string
	for _, p := range strings.Split(params, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
