package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	base := New(CodeRunnerNotFound, "runner not found")
	other := New(CodeRunnerNotFound, "different message, same code")

	if !errors.Is(base, other) {
		t.Fatal("expected errors with the same code to match")
	}
	if errors.Is(base, New(CodeNotFound, "record not found")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(CodeNotFound, "lookup failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Error() != "lookup failed" {
		t.Fatalf("expected message %q, got %q", "lookup failed", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"domain error", New(CodeExprMalformedEffect, "bad effect"), CodeExprMalformedEffect},
		{"wrapped domain error", fmt.Errorf("outer: %w", New(CodeBalancingTableGap, "gap")), CodeBalancingTableGap},
		{"plain error", fmt.Errorf("plain"), CodeUnknown},
		{"nil", nil, CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Fatalf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetMetadata(t *testing.T) {
	err := WithMetadata(CodeContractNodeUnavailable, "node locked", map[string]string{"node_id": "gate1"})
	meta := GetMetadata(err)
	if meta["node_id"] != "gate1" {
		t.Fatalf("expected node_id metadata, got %v", meta)
	}
	if GetMetadata(fmt.Errorf("plain")) != nil {
		t.Fatal("expected nil metadata for non-domain error")
	}
}
