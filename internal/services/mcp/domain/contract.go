package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/contract"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/session"
)

// NodeInput represents one contract node supplied by the client.
type NodeInput struct {
	ID            string   `json:"id" jsonschema:"node identifier"`
	Variant       string   `json:"variant" jsonschema:"normal, synergy, gate, start, or end"`
	Color         string   `json:"color,omitempty" jsonschema:"color tag used by color conditions"`
	Effect1       string   `json:"effect1,omitempty" jsonschema:"first effect expression (Condition;Operator;Amount;Stat)"`
	Effect2       string   `json:"effect2,omitempty" jsonschema:"second effect expression"`
	GateCondition string   `json:"gate_condition,omitempty" jsonschema:"gate requirement (ConditionType:Params;Threshold), required for gate nodes"`
	Successors    []string `json:"successors,omitempty" jsonschema:"ids of nodes this node feeds into"`
}

// ContractLoadInput represents the MCP tool input for loading a contract.
type ContractLoadInput struct {
	ContractID string      `json:"contract_id" jsonschema:"contract identifier"`
	Nodes      []NodeInput `json:"nodes" jsonschema:"the contract's node graph"`
}

// ContractLoadTool defines the MCP tool schema for loading a contract.
func ContractLoadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "contract.load",
		Description: "Loads a contract node graph into the session, replacing any current contract and clearing the selection.",
	}
}

// ContractLoadHandler executes a contract load request.
func ContractLoadHandler(sess *session.Session) mcp.ToolHandlerFor[ContractLoadInput, StateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ContractLoadInput) (*mcp.CallToolResult, StateResult, error) {
		if err := validateRequired(input.ContractID, "contract_id"); err != nil {
			return nil, StateResult{}, err
		}
		if len(input.Nodes) == 0 {
			return nil, StateResult{}, fmt.Errorf("nodes are required")
		}

		nodes := make([]*contract.Node, 0, len(input.Nodes))
		for _, n := range input.Nodes {
			variant, err := contract.ParseVariant(n.Variant)
			if err != nil {
				return nil, StateResult{}, fmt.Errorf("node %s: %w", n.ID, err)
			}
			nodes = append(nodes, &contract.Node{
				ID:            n.ID,
				Variant:       variant,
				Color:         contract.NormalizeColor(n.Color),
				Effect1:       n.Effect1,
				Effect2:       n.Effect2,
				GateCondition: n.GateCondition,
				Successors:    n.Successors,
			})
		}

		state, err := sess.LoadContract(ctx, input.ContractID, nodes)
		if err != nil {
			return nil, StateResult{}, fmt.Errorf("load contract: %w", err)
		}
		return nil, stateResult(state), nil
	}
}

// NodeSelectInput represents the MCP tool input for selecting a node.
type NodeSelectInput struct {
	NodeID string `json:"node_id" jsonschema:"node identifier"`
}

// NodeSelectTool defines the MCP tool schema for selecting a node.
func NodeSelectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "node.select",
		Description: "Selects an available contract node and returns the recomputed pools and availability.",
	}
}

// NodeSelectHandler executes a node selection request.
func NodeSelectHandler(sess *session.Session) mcp.ToolHandlerFor[NodeSelectInput, StateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NodeSelectInput) (*mcp.CallToolResult, StateResult, error) {
		if err := validateRequired(input.NodeID, "node_id"); err != nil {
			return nil, StateResult{}, err
		}
		state, err := sess.SelectNode(ctx, input.NodeID)
		if err != nil {
			return nil, StateResult{}, fmt.Errorf("select node: %w", err)
		}
		return nil, stateResult(state), nil
	}
}

// NodeDeselectInput represents the MCP tool input for deselecting a node.
type NodeDeselectInput struct {
	NodeID string `json:"node_id" jsonschema:"node identifier"`
}

// NodeDeselectTool defines the MCP tool schema for deselecting a node.
func NodeDeselectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "node.deselect",
		Description: "Deselects a selected contract node and returns the recomputed pools and availability.",
	}
}

// NodeDeselectHandler executes a node deselection request.
func NodeDeselectHandler(sess *session.Session) mcp.ToolHandlerFor[NodeDeselectInput, StateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NodeDeselectInput) (*mcp.CallToolResult, StateResult, error) {
		if err := validateRequired(input.NodeID, "node_id"); err != nil {
			return nil, StateResult{}, err
		}
		state, err := sess.DeselectNode(ctx, input.NodeID)
		if err != nil {
			return nil, StateResult{}, fmt.Errorf("deselect node: %w", err)
		}
		return nil, stateResult(state), nil
	}
}

// PoolsGetInput represents the (empty) MCP tool input for reading pools.
type PoolsGetInput struct{}

// PoolsGetTool defines the MCP tool schema for reading the pool snapshot.
func PoolsGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pools.get",
		Description: "Recomputes and returns the current pool snapshot with prevention amounts.",
	}
}

// PoolsGetHandler executes a pool snapshot request.
func PoolsGetHandler(sess *session.Session) mcp.ToolHandlerFor[PoolsGetInput, StateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ PoolsGetInput) (*mcp.CallToolResult, StateResult, error) {
		state, err := sess.Recompute(ctx)
		if err != nil {
			return nil, StateResult{}, fmt.Errorf("recompute pools: %w", err)
		}
		return nil, stateResult(state), nil
	}
}

// AvailabilityGetInput represents the (empty) MCP tool input for reading
// node availability.
type AvailabilityGetInput struct{}

// AvailabilityGetResult represents the availability map on its own.
type AvailabilityGetResult struct {
	Availability map[string]string  `json:"availability" jsonschema:"node id to availability status"`
	Diagnostics  []DiagnosticResult `json:"diagnostics,omitempty" jsonschema:"engine degradation diagnostics"`
}

// AvailabilityGetTool defines the MCP tool schema for reading availability.
func AvailabilityGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "availability.get",
		Description: "Recomputes and returns the per-node availability map for the loaded contract.",
	}
}

// AvailabilityGetHandler executes an availability request.
func AvailabilityGetHandler(sess *session.Session) mcp.ToolHandlerFor[AvailabilityGetInput, AvailabilityGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ AvailabilityGetInput) (*mcp.CallToolResult, AvailabilityGetResult, error) {
		state, err := sess.Recompute(ctx)
		if err != nil {
			return nil, AvailabilityGetResult{}, fmt.Errorf("recompute availability: %w", err)
		}
		full := stateResult(state)
		return nil, AvailabilityGetResult{
			Availability: full.Availability,
			Diagnostics:  full.Diagnostics,
		}, nil
	}
}
