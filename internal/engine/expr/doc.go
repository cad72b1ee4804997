// Package expr parses and evaluates the effect-expression language of
// contract nodes: conditions that yield integer multipliers, operators that
// combine pool values with amounts, and the gate-condition grammar used by
// gate nodes.
//
// The language is a closed set of string tags. Everything parses into
// tagged values matched exhaustively; there is no reflection and no user
// extension point. Malformed input degrades into diagnostics rather than
// failures (see Diagnostic).
package expr
