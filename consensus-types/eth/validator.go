// Package eth holds the native consensus objects processed in a beacon block:
// the validator record, attestations and the block operations. Byte-slice
// fields carry their SSZ sizes as struct tags.
package eth

import (
	types "github.com/dospore/helios/consensus-types/primitives"
)

// Validator is a record in the beacon state registry.
type Validator struct {
	PublicKey                  []byte `ssz-size:"48"`
	WithdrawalCredentials      []byte `ssz-size:"32"`
	EffectiveBalance           uint64
	Slashed                    bool
	ActivationEligibilityEpoch types.Epoch
	ActivationEpoch            types.Epoch
	ExitEpoch                  types.Epoch
	WithdrawableEpoch          types.Epoch
}
