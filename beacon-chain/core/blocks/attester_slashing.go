package blocks

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/core/signing"
	coretime "github.com/dospore/helios/beacon-chain/core/time"
	v "github.com/dospore/helios/beacon-chain/core/validators"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
)

// ProcessAttesterSlashings applies the block's attester slashings in order,
// stopping at the first invalid record. One record may slash several
// validators; an already-slashed index is skipped without failing the record.
//
// Spec pseudocode definition:
//   def process_attester_slashing(state: BeaconState, attester_slashing: AttesterSlashing) -> None
func ProcessAttesterSlashings(
	ctx context.Context,
	st *state.BeaconState,
	slashings []*eth.AttesterSlashing,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "blocks.ProcessAttesterSlashings")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}
	for idx, slashing := range slashings {
		if err := ProcessAttesterSlashing(ctx, st, slashing, cctx, mode, cfg); err != nil {
			return NewOperationError(OpAttesterSlashing, idx, err)
		}
	}
	return nil
}

// ProcessAttesterSlashing verifies and applies a single attester slashing.
func ProcessAttesterSlashing(
	ctx context.Context,
	st *state.BeaconState,
	slashing *eth.AttesterSlashing,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if err := VerifyAttesterSlashing(ctx, st, slashing, mode, cfg); err != nil {
		return errors.Wrap(err, "could not verify attester slashing")
	}
	slashableIndices := SlashableAttesterIndices(slashing)
	currentEpoch := coretime.CurrentEpoch(st, cfg)
	var slashedAny bool
	for _, validatorIndex := range slashableIndices {
		idx := types.ValidatorIndex(validatorIndex)
		validator, err := st.ValidatorAtIndex(idx)
		if err != nil {
			return err
		}
		if helpers.IsSlashableValidator(validator.ActivationEpoch, validator.WithdrawableEpoch, validator.Slashed, currentEpoch) {
			if err := v.SlashValidator(ctx, st, idx, cctx, cfg); err != nil {
				return errors.Wrapf(err, "could not slash validator index %d", idx)
			}
			slashedAny = true
		}
	}
	if !slashedAny {
		return errors.New("unable to slash any validator despite confirmed attester slashing")
	}
	return nil
}

// VerifyAttesterSlashing checks that the two attestations conflict and that
// both are valid indexed attestations.
func VerifyAttesterSlashing(
	ctx context.Context,
	st *state.BeaconState,
	slashing *eth.AttesterSlashing,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if slashing == nil {
		return errors.New("nil slashing")
	}
	if slashing.Attestation_1 == nil || slashing.Attestation_2 == nil {
		return errors.New("nil attestation")
	}
	if slashing.Attestation_1.Data == nil || slashing.Attestation_2.Data == nil {
		return errors.New("nil attestation data")
	}
	att1 := slashing.Attestation_1
	att2 := slashing.Attestation_2
	if !IsSlashableAttestationData(att1.Data, att2.Data) {
		return errors.New("attestations are not slashable")
	}
	if err := VerifyIndexedAttestation(ctx, st, att1, mode, cfg); err != nil {
		return errors.Wrap(err, "could not validate indexed attestation")
	}
	if err := VerifyIndexedAttestation(ctx, st, att2, mode, cfg); err != nil {
		return errors.Wrap(err, "could not validate indexed attestation")
	}
	return nil
}

// IsSlashableAttestationData reports whether the two votes conflict as a
// double vote or a surround vote.
//
// Spec pseudocode definition:
//   def is_slashable_attestation_data(data_1: AttestationData, data_2: AttestationData) -> bool:
//     return (
//       # Double vote
//       (data_1 != data_2 and data_1.target.epoch == data_2.target.epoch) or
//       # Surround vote
//       (data_1.source.epoch < data_2.source.epoch and data_2.target.epoch < data_1.target.epoch)
//     )
func IsSlashableAttestationData(data1, data2 *eth.AttestationData) bool {
	if data1 == nil || data2 == nil || data1.Target == nil || data2.Target == nil || data1.Source == nil || data2.Source == nil {
		return false
	}
	isDoubleVote := !attestationDataEqual(data1, data2) && data1.Target.Epoch == data2.Target.Epoch
	isSurroundVote := data1.Source.Epoch < data2.Source.Epoch && data2.Target.Epoch < data1.Target.Epoch
	return isDoubleVote || isSurroundVote
}

func attestationDataEqual(a, b *eth.AttestationData) bool {
	return a.Slot == b.Slot &&
		a.CommitteeIndex == b.CommitteeIndex &&
		bytes.Equal(a.BeaconBlockRoot, b.BeaconBlockRoot) &&
		checkpointEqual(a.Source, b.Source) &&
		checkpointEqual(a.Target, b.Target)
}

func checkpointEqual(a, b *eth.Checkpoint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Epoch == b.Epoch && bytes.Equal(a.Root, b.Root)
}

// SlashableAttesterIndices returns the validator indices attesting in both
// conflicting attestations, in ascending order.
func SlashableAttesterIndices(slashing *eth.AttesterSlashing) []uint64 {
	if slashing == nil || slashing.Attestation_1 == nil || slashing.Attestation_2 == nil {
		return nil
	}
	indices1 := slashing.Attestation_1.AttestingIndices
	indices2 := slashing.Attestation_2.AttestingIndices
	return intersection(indices1, indices2)
}

// intersection of two ascending index lists, preserving order.
func intersection(a, b []uint64) []uint64 {
	out := make([]uint64, 0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
