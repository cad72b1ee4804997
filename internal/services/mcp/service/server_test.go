package service

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/balancing"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/session"
)

func newTestSession() *session.Session {
	cfg := balancing.Default()
	gen := runner.NewGenerator(cfg, runner.NewSeededRNG(1, false))
	sess := session.New(cfg, balancing.DefaultTable(), gen)
	sess.WithLogger(log.New(io.Discard, "", 0))
	sess.SetPlayer(session.Player{Money: 500, Level: 1})
	return sess
}

func connectInMemory(t *testing.T, ctx context.Context, server *Server) *mcp.ClientSession {
	t.Helper()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.mcpServer.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = clientSession.Close() })
	return clientSession
}

func callTool(t *testing.T, ctx context.Context, cs *mcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()
	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if res.IsError {
		for _, c := range res.Content {
			if tc, ok := c.(*mcp.TextContent); ok {
				t.Fatalf("CallTool(%s) returned error: %s", name, tc.Text)
			}
		}
		t.Fatalf("CallTool(%s) returned error", name)
	}
	result := make(map[string]any)
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			if err := json.Unmarshal([]byte(tc.Text), &result); err != nil {
				t.Fatalf("unmarshal tool result: %v (text: %s)", err, tc.Text)
			}
			return result
		}
	}
	t.Fatal("no text content in tool result")
	return nil
}

func loadTestContract(t *testing.T, ctx context.Context, cs *mcp.ClientSession) map[string]any {
	t.Helper()
	return callTool(t, ctx, cs, "contract.load", map[string]any{
		"contract_id": "milk-run",
		"nodes": []map[string]any{
			{
				"id": "start", "variant": "start",
				"effect1":    "None;+;10;Money",
				"successors": []string{"heat"},
			},
			{
				"id": "heat", "variant": "normal", "color": "red",
				"effect1": "None;+;4;Damage",
				"effect2": "None;%;50;Money",
			},
		},
	})
}

func TestToolDiscovery(t *testing.T) {
	ctx := context.Background()
	server := New(newTestSession())
	cs := connectInMemory(t, ctx, server)

	tools, err := cs.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	want := []string{
		"contract.load", "node.select", "node.deselect",
		"pools.get", "availability.get",
		"runner.generate", "runner.hire", "runner.unhire",
		"contract.resolve",
	}
	found := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		found[tool.Name] = true
	}
	for _, name := range want {
		if !found[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestContractLoadAndSelectFlow(t *testing.T) {
	ctx := context.Background()
	server := New(newTestSession())
	cs := connectInMemory(t, ctx, server)

	result := loadTestContract(t, ctx, cs)
	avail, ok := result["availability"].(map[string]any)
	if !ok {
		t.Fatalf("missing availability map in %v", result)
	}
	if avail["start"] != "available" || avail["heat"] != "unavailable" {
		t.Fatalf("unexpected availability: %v", avail)
	}

	result = callTool(t, ctx, cs, "node.select", map[string]any{"node_id": "start"})
	pools := result["pools"].(map[string]any)
	if pools["money"].(float64) != 10 {
		t.Fatalf("money = %v, want 10", pools["money"])
	}

	result = callTool(t, ctx, cs, "node.select", map[string]any{"node_id": "heat"})
	pools = result["pools"].(map[string]any)
	// 10 money + 50% percent effect, 4 damage.
	if pools["money"].(float64) != 15 || pools["damage"].(float64) != 4 {
		t.Fatalf("unexpected pools: %v", pools)
	}

	// Selecting an unavailable node surfaces a tool error.
	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "node.select",
		Arguments: map[string]any{"node_id": "start"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error selecting an already-selected node")
	}
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok && !strings.Contains(tc.Text, "select node") {
			t.Fatalf("unexpected error text: %s", tc.Text)
		}
	}
}

func TestRunnerLifecycleTools(t *testing.T) {
	ctx := context.Background()
	server := New(newTestSession())
	cs := connectInMemory(t, ctx, server)

	result := callTool(t, ctx, cs, "runner.generate", nil)
	runners := result["runners"].([]any)
	if len(runners) != balancing.Default().BatchSize {
		t.Fatalf("runners = %d, want %d", len(runners), balancing.Default().BatchSize)
	}
	first := runners[0].(map[string]any)
	runnerID := first["id"].(string)

	result = callTool(t, ctx, cs, "runner.hire", map[string]any{"runner_id": runnerID})
	player := result["player"].(map[string]any)
	if player["money"].(float64) != float64(500-balancing.Default().HiringCost) {
		t.Fatalf("money after hire = %v", player["money"])
	}

	result = callTool(t, ctx, cs, "runner.unhire", map[string]any{"runner_id": runnerID})
	player = result["player"].(map[string]any)
	if player["money"].(float64) != 500 {
		t.Fatalf("money after refund = %v, want 500", player["money"])
	}
}

func TestContractResolveTool(t *testing.T) {
	ctx := context.Background()
	server := New(newTestSession())
	cs := connectInMemory(t, ctx, server)

	loadTestContract(t, ctx, cs)
	callTool(t, ctx, cs, "node.select", map[string]any{"node_id": "start"})

	result := callTool(t, ctx, cs, "contract.resolve", map[string]any{"seed": 42})
	reward := result["reward"].(float64)
	if reward < float64(balancing.Default().BaseReward) {
		t.Fatalf("reward = %v, below base reward", reward)
	}
	player := result["player"].(map[string]any)
	if player["contracts_completed"].(float64) != 1 {
		t.Fatalf("contracts completed = %v, want 1", player["contracts_completed"])
	}
}
