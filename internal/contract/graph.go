package contract

import (
	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

// Graph holds the node set of one loaded contract plus its runtime selection
// state. Nodes are created when a contract loads and only their selection
// flags mutate afterwards; unloading the contract discards the graph.
//
// Selection order is tracked because standard effects apply in the order
// nodes were selected.
type Graph struct {
	nodes map[string]*Node
	order []string // node ids in insertion order, for stable iteration
	sel   []string // node ids in selection order
}

// NewGraph builds a graph from parsed contract nodes.
//
// Duplicate node ids are rejected. A gate node without a gate condition is
// accepted here (the availability engine reports it as permanently
// unavailable, per the degrade-don't-crash error policy).
func NewGraph(nodes []*Node) (*Graph, error) {
	g := &Graph{nodes: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, exists := g.nodes[n.ID]; exists {
			return nil, apperrors.WithMetadata(apperrors.CodeContractDuplicateNode,
				"duplicate node id", map[string]string{"node_id": n.ID})
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
		if n.Selected {
			g.sel = append(g.sel, n.ID)
		}
	}
	return g, nil
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	if g == nil {
		return nil
	}
	return g.nodes[id]
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []*Node {
	if g == nil {
		return nil
	}
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// Select marks a node as selected and records its position in the selection
// order. Selecting an unknown or already-selected node is an error; whether
// the node is *available* is the session layer's concern.
func (g *Graph) Select(id string) error {
	n := g.Node(id)
	if n == nil {
		return apperrors.WithMetadata(apperrors.CodeContractNodeNotFound,
			"node not found", map[string]string{"node_id": id})
	}
	if n.Selected {
		return apperrors.WithMetadata(apperrors.CodeContractNodeAlreadySelected,
			"node already selected", map[string]string{"node_id": id})
	}
	n.Selected = true
	g.sel = append(g.sel, id)
	return nil
}

// Deselect clears a node's selection flag and removes it from the selection
// order.
func (g *Graph) Deselect(id string) error {
	n := g.Node(id)
	if n == nil {
		return apperrors.WithMetadata(apperrors.CodeContractNodeNotFound,
			"node not found", map[string]string{"node_id": id})
	}
	if !n.Selected {
		return apperrors.WithMetadata(apperrors.CodeContractNodeNotSelected,
			"node not selected", map[string]string{"node_id": id})
	}
	n.Selected = false
	for i, sid := range g.sel {
		if sid == id {
			g.sel = append(g.sel[:i], g.sel[i+1:]...)
			break
		}
	}
	return nil
}

// ClearSelection deselects every node, e.g. after contract resolution.
func (g *Graph) ClearSelection() {
	if g == nil {
		return
	}
	for _, n := range g.nodes {
		n.Selected = false
	}
	g.sel = nil
}

// SelectedNodes returns the selected nodes in the order they were selected.
func (g *Graph) SelectedNodes() []*Node {
	if g == nil {
		return nil
	}
	out := make([]*Node, 0, len(g.sel))
	for _, id := range g.sel {
		out = append(out, g.nodes[id])
	}
	return out
}

// Predecessors returns the nodes whose successor sets contain the target id.
// Connections are directional: availability flows forward along successor
// edges, so a node's predecessors are found by scanning the full node set.
func (g *Graph) Predecessors(id string) []*Node {
	if g == nil {
		return nil
	}
	var preds []*Node
	for _, nid := range g.order {
		n := g.nodes[nid]
		for _, succ := range n.Successors {
			if succ == id {
				preds = append(preds, n)
				break
			}
		}
	}
	return preds
}

// HasSelectedPredecessor reports whether any predecessor of the node is
// currently selected.
func (g *Graph) HasSelectedPredecessor(id string) bool {
	for _, p := range g.Predecessors(id) {
		if p.Selected {
			return true
		}
	}
	return false
}
