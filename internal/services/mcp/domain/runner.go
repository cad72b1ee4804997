package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/session"
)

// RunnerGenerateInput represents the (empty) MCP tool input for generating
// a runner batch.
type RunnerGenerateInput struct{}

// RunnerGenerateResult represents one generated runner batch.
type RunnerGenerateResult struct {
	Runners []RunnerResult `json:"runners" jsonschema:"the freshly generated runners"`
}

// RunnerGenerateTool defines the MCP tool schema for generating runners.
func RunnerGenerateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "runner.generate",
		Description: "Generates one batch of hireable runners and adds them to the roster.",
	}
}

// RunnerGenerateHandler executes a runner generation request.
func RunnerGenerateHandler(sess *session.Session) mcp.ToolHandlerFor[RunnerGenerateInput, RunnerGenerateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ RunnerGenerateInput) (*mcp.CallToolResult, RunnerGenerateResult, error) {
		batch, err := sess.GenerateRunners(ctx)
		if err != nil {
			return nil, RunnerGenerateResult{}, fmt.Errorf("generate runners: %w", err)
		}
		result := RunnerGenerateResult{Runners: make([]RunnerResult, 0, len(batch))}
		for _, r := range batch {
			result.Runners = append(result.Runners, runnerResult(r))
		}
		return nil, result, nil
	}
}

// RunnerHireInput represents the MCP tool input for hiring a runner.
type RunnerHireInput struct {
	RunnerID string `json:"runner_id" jsonschema:"runner identifier"`
}

// RunnerHireResult represents the outcome of a hire or unhire.
type RunnerHireResult struct {
	Player PlayerResult `json:"player" jsonschema:"player progression after the money change"`
	State  StateResult  `json:"state" jsonschema:"recomputed pools and availability"`
}

// RunnerHireTool defines the MCP tool schema for hiring a runner.
func RunnerHireTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "runner.hire",
		Description: "Hires a roster runner, deducting the hiring cost from the player's money.",
	}
}

// RunnerHireHandler executes a hire request.
func RunnerHireHandler(sess *session.Session) mcp.ToolHandlerFor[RunnerHireInput, RunnerHireResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RunnerHireInput) (*mcp.CallToolResult, RunnerHireResult, error) {
		if err := validateRequired(input.RunnerID, "runner_id"); err != nil {
			return nil, RunnerHireResult{}, err
		}
		state, err := sess.HireRunner(ctx, input.RunnerID)
		if err != nil {
			return nil, RunnerHireResult{}, fmt.Errorf("hire runner: %w", err)
		}
		return nil, RunnerHireResult{
			Player: playerResult(sess.Player()),
			State:  stateResult(state),
		}, nil
	}
}

// RunnerUnhireInput represents the MCP tool input for unhiring a runner.
type RunnerUnhireInput struct {
	RunnerID string `json:"runner_id" jsonschema:"runner identifier"`
}

// RunnerUnhireTool defines the MCP tool schema for unhiring a runner.
func RunnerUnhireTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "runner.unhire",
		Description: "Releases a hired runner and refunds the hiring cost.",
	}
}

// RunnerUnhireHandler executes an unhire request.
func RunnerUnhireHandler(sess *session.Session) mcp.ToolHandlerFor[RunnerUnhireInput, RunnerHireResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RunnerUnhireInput) (*mcp.CallToolResult, RunnerHireResult, error) {
		if err := validateRequired(input.RunnerID, "runner_id"); err != nil {
			return nil, RunnerHireResult{}, err
		}
		state, err := sess.UnhireRunner(ctx, input.RunnerID)
		if err != nil {
			return nil, RunnerHireResult{}, fmt.Errorf("unhire runner: %w", err)
		}
		return nil, RunnerHireResult{
			Player: playerResult(sess.Player()),
			State:  stateResult(state),
		}, nil
	}
}
