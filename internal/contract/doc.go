// Package contract models the node tree of a single contract: node
// variants, color tags, raw effect expressions, directional connections,
// and runtime selection state.
//
// The package holds no game rules. Effect parsing and evaluation live in
// the engine packages; contract only guarantees structural invariants
// (unique ids, selection-order tracking, directional predecessor lookup).
package contract
