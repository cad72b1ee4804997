package balancing

import (
	"testing"

	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

func TestDefaultTableCoversEveryRoll(t *testing.T) {
	table := DefaultTable()
	cfg := Default()

	if err := table.Validate(cfg.MaxRollValue); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}

	// Every integer in [1, maxRoll] must match exactly one range.
	for roll := 1; roll <= cfg.MaxRollValue; roll++ {
		matches := 0
		for _, r := range table {
			if roll >= r.MinRoll && roll <= r.MaxRoll {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("roll %d matched %d ranges, want exactly 1", roll, matches)
		}
	}
}

func TestValidateDetectsGap(t *testing.T) {
	table := DamageTable{
		{MinRoll: 1, MaxRoll: 10, Effect: EffectDeath},
		{MinRoll: 15, MaxRoll: 100, Effect: EffectNoEffect},
	}
	err := table.Validate(100)
	if !apperrors.IsCode(err, apperrors.CodeBalancingTableGap) {
		t.Fatalf("expected table gap error, got %v", err)
	}
}

func TestValidateDetectsOverlap(t *testing.T) {
	table := DamageTable{
		{MinRoll: 1, MaxRoll: 50, Effect: EffectDeath},
		{MinRoll: 40, MaxRoll: 100, Effect: EffectNoEffect},
	}
	err := table.Validate(100)
	if !apperrors.IsCode(err, apperrors.CodeBalancingTableOverlap) {
		t.Fatalf("expected table overlap error, got %v", err)
	}
}

func TestValidateDetectsShortCoverage(t *testing.T) {
	table := DamageTable{
		{MinRoll: 1, MaxRoll: 90, Effect: EffectNoEffect},
	}
	err := table.Validate(100)
	if !apperrors.IsCode(err, apperrors.CodeBalancingTableGap) {
		t.Fatalf("expected table gap error, got %v", err)
	}
}

func TestValidateDetectsBadRange(t *testing.T) {
	table := DamageTable{
		{MinRoll: 10, MaxRoll: 1, Effect: EffectNoEffect},
	}
	err := table.Validate(100)
	if !apperrors.IsCode(err, apperrors.CodeBalancingInvalidRange) {
		t.Fatalf("expected invalid range error, got %v", err)
	}
}

func TestValidateDetectsUnknownEffect(t *testing.T) {
	table := DamageTable{
		{MinRoll: 1, MaxRoll: 100, Effect: "explode"},
	}
	err := table.Validate(100)
	if !apperrors.IsCode(err, apperrors.CodeBalancingUnknownEffect) {
		t.Fatalf("expected unknown effect error, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	table := DefaultTable()

	r, ok := table.Lookup(56)
	if !ok {
		t.Fatal("expected roll 56 to match")
	}
	if r.Effect != EffectReduce || r.Value != 10 {
		t.Fatalf("roll 56: got %s %d, want reduce 10", r.Effect, r.Value)
	}

	if _, ok := table.Lookup(101); ok {
		t.Fatal("roll 101 should not match any range")
	}
	if _, ok := table.Lookup(0); ok {
		t.Fatal("roll 0 should not match any range")
	}
}
