package expr

import (
	"testing"

	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

func TestParseEffectStandard(t *testing.T) {
	effect, diags, err := ParseEffect("None;+;10;Damage")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if effect.Condition.Kind != CondNone {
		t.Fatalf("expected None condition, got %s", effect.Condition.Kind)
	}
	if effect.Operator != OpAdd || effect.Amount != 10 || effect.Stat != StatDamage {
		t.Fatalf("unexpected effect: %+v", effect)
	}
}

func TestParseEffectConditions(t *testing.T) {
	tests := []struct {
		raw        string
		kind       ConditionKind
		params     []string
		threshold  int
	}{
		{"RunnerType:muscle,hacker;+;2;Money", CondRunnerType, []string{"muscle", "hacker"}, 1},
		{"RunnerStat:muscle,hacking;3;+;1;Damage", CondRunnerStat, []string{"muscle", "hacking"}, 3},
		{"NodeColor:red,blue;-;5;Risk", CondNodeColor, []string{"red", "blue"}, 1},
		{"NodeColorCombo:red,blue,green;*;2;Grit", CondNodeColorCombo, []string{"red", "blue", "green"}, 1},
		{"PrevDam;+;5;Money", CondPrevDam, nil, 1},
		{"PrevRisk;%;10;Veil", CondPrevRisk, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			effect, diags, err := ParseEffect(tt.raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if effect.Condition.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", effect.Condition.Kind, tt.kind)
			}
			if effect.Condition.Threshold != tt.threshold {
				t.Fatalf("threshold = %d, want %d", effect.Condition.Threshold, tt.threshold)
			}
			if len(effect.Condition.Params) != len(tt.params) {
				t.Fatalf("params = %v, want %v", effect.Condition.Params, tt.params)
			}
			for i, p := range tt.params {
				if effect.Condition.Params[i] != p {
					t.Fatalf("params = %v, want %v", effect.Condition.Params, tt.params)
				}
			}
		})
	}
}

func TestParseEffectWrongSegmentCount(t *testing.T) {
	for _, raw := range []string{"None;+;10", "None;+;10;Damage;extra", "", "just-text"} {
		t.Run(raw, func(t *testing.T) {
			_, _, err := ParseEffect(raw)
			if !apperrors.IsCode(err, apperrors.CodeExprMalformedEffect) {
				t.Fatalf("expected malformed effect error, got %v", err)
			}
		})
	}
}

func TestParseEffectUnknownStatIsFatal(t *testing.T) {
	_, _, err := ParseEffect("None;+;10;Karma")
	if !apperrors.IsCode(err, apperrors.CodeExprUnknownStat) {
		t.Fatalf("expected unknown stat error, got %v", err)
	}
}

func TestParseEffectUnknownOperatorFallsBackToAdd(t *testing.T) {
	effect, diags, err := ParseEffect("None;^;10;Damage")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if effect.Operator != OpAdd {
		t.Fatalf("expected fallback to add, got %s", effect.Operator)
	}
	if len(diags) != 1 || diags[0].Code != apperrors.CodeExprUnknownOperator {
		t.Fatalf("expected unknown operator diagnostic, got %v", diags)
	}
	if diags[0].Severity != SeverityWarn {
		t.Fatalf("expected warning severity, got %s", diags[0].Severity)
	}
}

func TestParseEffectNonNumericAmountDefaultsToOne(t *testing.T) {
	effect, diags, err := ParseEffect("None;+;lots;Damage")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if effect.Amount != 1 {
		t.Fatalf("expected amount 1, got %d", effect.Amount)
	}
	if len(diags) != 1 || diags[0].Code != apperrors.CodeExprInvalidAmount {
		t.Fatalf("expected invalid amount diagnostic, got %v", diags)
	}
}

func TestParseEffectUnknownConditionIsNeutral(t *testing.T) {
	effect, diags, err := ParseEffect("MoonPhase:full;+;10;Damage")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if effect.Condition.Kind != CondUnknown {
		t.Fatalf("expected unknown condition kind, got %s", effect.Condition.Kind)
	}
	if len(diags) != 1 || diags[0].Code != apperrors.CodeExprUnknownCondition {
		t.Fatalf("expected unknown condition diagnostic, got %v", diags)
	}
	if m := (EvalContext{}).Multiplier(effect.Condition); m != 1 {
		t.Fatalf("unknown condition multiplier = %d, want neutral 1", m)
	}
}

func TestParseEffectBadRunnerStatThreshold(t *testing.T) {
	for _, raw := range []string{
		"RunnerStat:muscle;zero;+;1;Damage",
		"RunnerStat:muscle;0;+;1;Damage",
		"RunnerStat:muscle;-2;+;1;Damage",
	} {
		t.Run(raw, func(t *testing.T) {
			_, _, err := ParseEffect(raw)
			if !apperrors.IsCode(err, apperrors.CodeExprMalformedEffect) {
				t.Fatalf("expected malformed effect error, got %v", err)
			}
		})
	}
}

func TestParseEffectNegativeAmount(t *testing.T) {
	effect, _, err := ParseEffect("None;+;-5;Money")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if effect.Amount != -5 {
		t.Fatalf("expected amount -5, got %d", effect.Amount)
	}
}
