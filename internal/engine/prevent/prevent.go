// Package prevent derives damage and risk prevention from Grit and Veil.
//
// Prevention converts Grit into reduced Damage and Veil into reduced Risk at
// a fixed 2:1 ratio. The pool calculator computes it twice per evaluation:
// once preliminarily after the standard pass (feeding PrevDam/PrevRisk
// conditions) and once finally after the percent pass (subtracted from the
// reported pools). The two records may legitimately differ when percent
// effects move Grit, Veil, Damage, or Risk; only the final record is
// subtracted.
package prevent

// Ratio is the pool points of Grit or Veil consumed per point prevented.
const Ratio = 2

// Record holds one prevention computation.
//
// Invariant: both fields are non-negative and never exceed the stat they
// prevent.
type Record struct {
	DamagePrevented int
	RiskPrevented   int
}

// Compute derives a prevention record from the given pool values.
func Compute(damage, risk, grit, veil int) Record {
	return Record{
		DamagePrevented: prevented(grit, damage),
		RiskPrevented:   prevented(veil, risk),
	}
}

// prevented converts a prevention stat into prevented points, capped at the
// stat being prevented and clamped to zero.
func prevented(source, target int) int {
	p := source / Ratio
	if p < 0 {
		p = 0
	}
	if target < 0 {
		target = 0
	}
	if p > target {
		p = target
	}
	return p
}
