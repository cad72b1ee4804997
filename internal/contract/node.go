package contract

import (
	"strings"

	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

// Variant describes the role a node plays in the contract tree.
type Variant string

const (
	VariantNormal  Variant = "normal"
	VariantSynergy Variant = "synergy"
	VariantGate    Variant = "gate"
	VariantStart   Variant = "start"
	VariantEnd     Variant = "end"
)

// ParseVariant normalizes and validates a node variant label.
func ParseVariant(value string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(value))) {
	case VariantNormal:
		return VariantNormal, nil
	case VariantSynergy:
		return VariantSynergy, nil
	case VariantGate:
		return VariantGate, nil
	case VariantStart:
		return VariantStart, nil
	case VariantEnd:
		return VariantEnd, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeContractInvalidVariant,
			"unknown node variant", map[string]string{"variant": value})
	}
}

// Color is the color tag used by NodeColor and NodeColorCombo conditions.
// Colors are free-form labels supplied by contract data; they are compared
// case-insensitively.
type Color string

// NormalizeColor lowercases and trims a color label.
func NormalizeColor(value string) Color {
	return Color(strings.ToLower(strings.TrimSpace(value)))
}

// Node is one selectable position in a contract tree.
//
// Gate nodes never contribute effects: their Effect1/Effect2 fields are
// ignored by the pool calculator and they are excluded from color-counting
// conditions. A gate carries its requirement in GateCondition instead.
type Node struct {
	ID            string
	Variant       Variant
	Color         Color
	Effect1       string // raw effect expression, empty when unused
	Effect2       string // raw effect expression, empty when unused
	GateCondition string // raw gate condition, required for gate nodes
	Successors    []string
	Selected      bool
}

// ContributesEffects reports whether the node's effect fields participate in
// pool calculation.
func (n *Node) ContributesEffects() bool {
	return n != nil && n.Variant != VariantGate
}

// RawEffects returns the node's non-empty effect expressions in slot order.
func (n *Node) RawEffects() []string {
	if n == nil || !n.ContributesEffects() {
		return nil
	}
	var raw []string
	if strings.TrimSpace(n.Effect1) != "" {
		raw = append(raw, n.Effect1)
	}
	if strings.TrimSpace(n.Effect2) != "" {
		raw = append(raw, n.Effect2)
	}
	return raw
}
