// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Contract errors
	CodeContractNotLoaded           Code = "CONTRACT_NOT_LOADED"
	CodeContractNodeNotFound        Code = "CONTRACT_NODE_NOT_FOUND"
	CodeContractNodeUnavailable     Code = "CONTRACT_NODE_UNAVAILABLE"
	CodeContractNodeAlreadySelected Code = "CONTRACT_NODE_ALREADY_SELECTED"
	CodeContractNodeNotSelected     Code = "CONTRACT_NODE_NOT_SELECTED"
	CodeContractInvalidVariant      Code = "CONTRACT_INVALID_VARIANT"
	CodeContractDuplicateNode       Code = "CONTRACT_DUPLICATE_NODE"
	CodeContractGateMissingCondition Code = "CONTRACT_GATE_MISSING_CONDITION"

	// Runner errors
	CodeRunnerNotFound          Code = "RUNNER_NOT_FOUND"
	CodeRunnerInvalidArchetype  Code = "RUNNER_INVALID_ARCHETYPE"
	CodeRunnerIllegalTransition Code = "RUNNER_ILLEGAL_TRANSITION"
	CodeRunnerAlreadyHired      Code = "RUNNER_ALREADY_HIRED"
	CodeRunnerNotHired          Code = "RUNNER_NOT_HIRED"
	CodeRunnerDead              Code = "RUNNER_DEAD"

	// Session errors
	CodeSessionInsufficientFunds Code = "SESSION_INSUFFICIENT_FUNDS"
	CodeSessionNoContract        Code = "SESSION_NO_CONTRACT"

	// Expression errors
	CodeExprMalformedEffect  Code = "EXPR_MALFORMED_EFFECT"
	CodeExprUnknownStat      Code = "EXPR_UNKNOWN_STAT"
	CodeExprUnknownCondition Code = "EXPR_UNKNOWN_CONDITION"
	CodeExprUnknownOperator  Code = "EXPR_UNKNOWN_OPERATOR"
	CodeExprInvalidAmount    Code = "EXPR_INVALID_AMOUNT"
	CodeExprDivideByZero     Code = "EXPR_DIVIDE_BY_ZERO"
	CodeExprMalformedGate    Code = "EXPR_MALFORMED_GATE"

	// Balancing errors
	CodeBalancingInvalidMaxRoll Code = "BALANCING_INVALID_MAX_ROLL"
	CodeBalancingInvalidRange   Code = "BALANCING_INVALID_RANGE"
	CodeBalancingTableGap       Code = "BALANCING_TABLE_GAP"
	CodeBalancingTableOverlap   Code = "BALANCING_TABLE_OVERLAP"
	CodeBalancingUnknownEffect  Code = "BALANCING_UNKNOWN_EFFECT"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
