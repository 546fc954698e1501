package blocks

import (
	"fmt"
)

// OperationType names the kind of block operation that failed.
type OperationType int

const (
	OpProposerSlashing OperationType = iota
	OpAttesterSlashing
	OpAttestation
	OpDeposit
	OpVoluntaryExit
	OpBLSToExecutionChange
)

// String returns the human readable name of the operation type.
func (t OperationType) String() string {
	switch t {
	case OpProposerSlashing:
		return "proposer slashing"
	case OpAttesterSlashing:
		return "attester slashing"
	case OpAttestation:
		return "attestation"
	case OpDeposit:
		return "deposit"
	case OpVoluntaryExit:
		return "voluntary exit"
	case OpBLSToExecutionChange:
		return "bls to execution change"
	default:
		return "unknown operation"
	}
}

// OperationError reports the failing operation kind and its index within that
// operation's list in the block. Block processing stops at the first one.
type OperationError struct {
	Type  OperationType
	Index int
	Err   error
}

// NewOperationError tags an error with the operation kind and list index.
func NewOperationError(t OperationType, index int, err error) *OperationError {
	return &OperationError{Type: t, Index: index, Err: err}
}

// Error satisfies the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("could not process %s at index %d: %v", e.Type, e.Index, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Err
}
