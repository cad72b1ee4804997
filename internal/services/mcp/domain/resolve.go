package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/session"
)

// ContractResolveInput represents the MCP tool input for resolving the
// loaded contract.
type ContractResolveInput struct {
	Seed int64 `json:"seed,omitempty" jsonschema:"random seed for the damage rolls; 0 draws a time-based seed"`
}

// RollResult represents one damage roll.
type RollResult struct {
	Roll        int    `json:"roll" jsonschema:"the raw roll value"`
	Effect      string `json:"effect" jsonschema:"noeffect, injury, death, reduce, or extra"`
	Value       int    `json:"value,omitempty" jsonschema:"percent value for reduce/extra effects"`
	RunnerID    string `json:"runner_id,omitempty" jsonschema:"runner affected by the roll, if any"`
	Description string `json:"description" jsonschema:"human-readable roll outcome"`
	RewardAfter int    `json:"reward_after" jsonschema:"running reward after this roll"`
}

// ContractResolveResult represents a completed contract resolution.
type ContractResolveResult struct {
	Rolls            []RollResult `json:"rolls" jsonschema:"damage rolls in order"`
	Reward           int          `json:"reward" jsonschema:"final reward paid to the player"`
	RiskApplied      int          `json:"risk_applied" jsonschema:"risk added to the player"`
	LeveledRunnerIDs []string     `json:"leveled_runner_ids,omitempty" jsonschema:"runners that gained a level"`
	PlayerLevelDelta int          `json:"player_level_delta" jsonschema:"player levels gained"`
	Player           PlayerResult `json:"player" jsonschema:"player progression after resolution"`
}

// ContractResolveTool defines the MCP tool schema for contract resolution.
func ContractResolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "contract.resolve",
		Description: "Completes the loaded contract: runs the damage rolls, applies casualties and rewards, levels survivors, and unhires the crew.",
	}
}

// ContractResolveHandler executes a contract resolution request.
func ContractResolveHandler(sess *session.Session, seedFn func() int64) mcp.ToolHandlerFor[ContractResolveInput, ContractResolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ContractResolveInput) (*mcp.CallToolResult, ContractResolveResult, error) {
		seed := input.Seed
		if seed == 0 {
			seed = seedFn()
		}

		result, err := sess.CompleteContract(ctx, seed)
		if err != nil {
			return nil, ContractResolveResult{}, fmt.Errorf("resolve contract: %w", err)
		}

		out := ContractResolveResult{
			Rolls:            make([]RollResult, 0, len(result.Rolls)),
			Reward:           result.Reward,
			RiskApplied:      result.RiskApplied,
			LeveledRunnerIDs: result.LeveledRunnerIDs,
			PlayerLevelDelta: result.PlayerLevelDelta,
			Player:           playerResult(sess.Player()),
		}
		for _, roll := range result.Rolls {
			out.Rolls = append(out.Rolls, RollResult{
				Roll:        roll.Roll,
				Effect:      string(roll.Effect),
				Value:       roll.Value,
				RunnerID:    roll.RunnerID,
				Description: roll.Description,
				RewardAfter: roll.RewardAfter,
			})
		}
		return nil, out, nil
	}
}
