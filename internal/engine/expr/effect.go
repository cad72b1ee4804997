package expr

import "strings"

// Stat names one of the five pool accumulators an effect can target.
type Stat string

const (
	StatDamage Stat = "damage"
	StatRisk   Stat = "risk"
	StatMoney  Stat = "money"
	StatGrit   Stat = "grit"
	StatVeil   Stat = "veil"
)

// Stats lists every pool stat.
func Stats() []Stat {
	return []Stat{StatDamage, StatRisk, StatMoney, StatGrit, StatVeil}
}

// ParseStat normalizes and validates a pool stat label.
func ParseStat(value string) (Stat, bool) {
	switch Stat(strings.ToLower(strings.TrimSpace(value))) {
	case StatDamage:
		return StatDamage, true
	case StatRisk:
		return StatRisk, true
	case StatMoney:
		return StatMoney, true
	case StatGrit:
		return StatGrit, true
	case StatVeil:
		return StatVeil, true
	default:
		return "", false
	}
}

// Operator combines a pool value with an effect amount.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPercent
)

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpPercent:
		return "%"
	default:
		return "?"
	}
}

// ParseOperator maps an operator symbol to an Operator.
func ParseOperator(symbol string) (Operator, bool) {
	switch strings.TrimSpace(symbol) {
	case "+":
		return OpAdd, true
	case "-":
		return OpSubtract, true
	case "*":
		return OpMultiply, true
	case "/":
		return OpDivide, true
	case "%":
		return OpPercent, true
	default:
		return OpAdd, false
	}
}

// Effect is one parsed effect expression. Immutable once parsed.
type Effect struct {
	Condition Condition
	Operator  Operator
	Amount    int
	Stat      Stat
	Raw       string // original expression text, for diagnostics
}

// Percent reports whether the effect uses the percent operator, which must
// run in the dedicated late pass of the pool calculator.
func (e Effect) Percent() bool {
	return e.Operator == OpPercent
}

// DependsOnPrevention reports whether the effect's condition reads the
// preliminary prevention record and therefore must run after preliminary
// prevention is computed.
func (e Effect) DependsOnPrevention() bool {
	return e.Condition.Kind == CondPrevDam || e.Condition.Kind == CondPrevRisk
}
