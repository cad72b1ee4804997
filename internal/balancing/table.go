package balancing

import (
	"strconv"
	"strings"

	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

// RollEffect is the outcome category of one damage roll.
type RollEffect string

const (
	EffectNoEffect RollEffect = "noeffect"
	EffectInjury   RollEffect = "injury"
	EffectDeath    RollEffect = "death"
	EffectReduce   RollEffect = "reduce" // reduce reward by Value percent
	EffectExtra    RollEffect = "extra"  // increase reward by Value percent
)

// ParseRollEffect normalizes and validates a roll effect label.
func ParseRollEffect(value string) (RollEffect, error) {
	switch RollEffect(strings.ToLower(strings.TrimSpace(value))) {
	case EffectNoEffect:
		return EffectNoEffect, nil
	case EffectInjury:
		return EffectInjury, nil
	case EffectDeath:
		return EffectDeath, nil
	case EffectReduce:
		return EffectReduce, nil
	case EffectExtra:
		return EffectExtra, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeBalancingUnknownEffect,
			"unknown roll effect", map[string]string{"effect": value})
	}
}

// Range maps an inclusive roll interval to an effect. Value is the percent
// for Reduce/Extra effects and ignored otherwise.
type Range struct {
	MinRoll int        `yaml:"min_roll"`
	MaxRoll int        `yaml:"max_roll"`
	Effect  RollEffect `yaml:"effect"`
	Value   int        `yaml:"value"`
}

// DamageTable is the ordered range table consulted once per unit of
// unprevented damage at contract completion.
type DamageTable []Range

// Validate checks that the table covers [1, maxRoll] contiguously with no
// gaps or overlaps and that every range is well-formed.
func (t DamageTable) Validate(maxRoll int) error {
	if maxRoll < 1 {
		return apperrors.WithMetadata(apperrors.CodeBalancingInvalidMaxRoll,
			"max roll value must be at least 1",
			map[string]string{"max_roll": strconv.Itoa(maxRoll)})
	}

	expected := 1
	for _, r := range t {
		if r.MinRoll > r.MaxRoll {
			return apperrors.WithMetadata(apperrors.CodeBalancingInvalidRange,
				"range minimum exceeds maximum", rangeMetadata(r))
		}
		if _, err := ParseRollEffect(string(r.Effect)); err != nil {
			return err
		}
		if r.MinRoll > expected {
			return apperrors.WithMetadata(apperrors.CodeBalancingTableGap,
				"damage table leaves rolls uncovered", rangeMetadata(r))
		}
		if r.MinRoll < expected {
			return apperrors.WithMetadata(apperrors.CodeBalancingTableOverlap,
				"damage table ranges overlap", rangeMetadata(r))
		}
		expected = r.MaxRoll + 1
	}
	if expected != maxRoll+1 {
		return apperrors.WithMetadata(apperrors.CodeBalancingTableGap,
			"damage table does not cover the full roll range",
			map[string]string{
				"covered_through": strconv.Itoa(expected - 1),
				"max_roll":        strconv.Itoa(maxRoll),
			})
	}
	return nil
}

// Lookup returns the range matching the roll. A missing match on a validated
// table is a data bug; callers treat it as NoEffect and log, per the
// degrade-don't-crash error policy.
func (t DamageTable) Lookup(roll int) (Range, bool) {
	for _, r := range t {
		if roll >= r.MinRoll && roll <= r.MaxRoll {
			return r, true
		}
	}
	return Range{}, false
}

func rangeMetadata(r Range) map[string]string {
	return map[string]string{
		"min_roll": strconv.Itoa(r.MinRoll),
		"max_roll": strconv.Itoa(r.MaxRoll),
		"effect":   string(r.Effect),
	}
}

// DefaultTable returns the compiled-in damage table covering [1, 100].
func DefaultTable() DamageTable {
	return DamageTable{
		{MinRoll: 1, MaxRoll: 10, Effect: EffectDeath},
		{MinRoll: 11, MaxRoll: 30, Effect: EffectInjury},
		{MinRoll: 31, MaxRoll: 50, Effect: EffectReduce, Value: 15},
		{MinRoll: 51, MaxRoll: 70, Effect: EffectReduce, Value: 10},
		{MinRoll: 71, MaxRoll: 94, Effect: EffectNoEffect},
		{MinRoll: 95, MaxRoll: 100, Effect: EffectExtra, Value: 5},
	}
}
