// Package transition sequences the per-operation processors for one block.
package transition

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/altair"
	"github.com/dospore/helios/beacon-chain/core/blocks"
	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
)

// ProcessOperations applies every operation carried by the block body in the
// mandated order: proposer slashings, attester slashings, attestations,
// deposits, voluntary exits, then (from Capella) BLS to execution changes.
// The state is mutated in place; on any error the caller must discard it.
//
// Spec pseudocode definition:
//   def process_operations(state: BeaconState, body: BeaconBlockBody) -> None:
//     # Verify that outstanding deposits are processed up to the maximum number of deposits
//     assert len(body.deposits) == min(MAX_DEPOSITS, state.eth1_data.deposit_count - state.eth1_deposit_index)
//
//     def for_ops(operations: Sequence[Any], fn: Callable[[BeaconState, Any], None]) -> None:
//       for operation in operations:
//         fn(state, operation)
//
//     for_ops(body.proposer_slashings, process_proposer_slashing)
//     for_ops(body.attester_slashings, process_attester_slashing)
//     for_ops(body.attestations, process_attestation)
//     for_ops(body.deposits, process_deposit)
//     for_ops(body.voluntary_exits, process_voluntary_exit)
//     for_ops(body.bls_to_execution_changes, process_bls_to_execution_change)  # [New in Capella]
func ProcessOperations(
	ctx context.Context,
	st *state.BeaconState,
	body *eth.BeaconBlockBody,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "transition.ProcessOperations")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}
	if body == nil {
		return errors.New("nil block body")
	}
	if cctx == nil {
		cctx = cache.NewConsensusContext()
	}

	if err := verifyOperationLengths(body, cfg); err != nil {
		return err
	}

	if err := blocks.ProcessProposerSlashings(ctx, st, body.ProposerSlashings, cctx, mode, cfg); err != nil {
		return errors.Wrap(err, "could not process block proposer slashings")
	}
	if err := blocks.ProcessAttesterSlashings(ctx, st, body.AttesterSlashings, cctx, mode, cfg); err != nil {
		return errors.Wrap(err, "could not process block attester slashings")
	}
	switch st.Version() {
	case version.Phase0:
		if err := blocks.ProcessAttestations(ctx, st, body.Attestations, cctx, mode, cfg); err != nil {
			return errors.Wrap(err, "could not process block attestations")
		}
	case version.Altair, version.Bellatrix, version.Capella:
		if err := altair.ProcessAttestations(ctx, st, body.Attestations, cctx, mode, cfg); err != nil {
			return errors.Wrap(err, "could not process block attestations")
		}
	default:
		return errors.New("unknown state version")
	}
	if err := blocks.ProcessDeposits(ctx, st, body.Deposits, cfg); err != nil {
		return errors.Wrap(err, "could not process deposits")
	}
	if err := blocks.ProcessVoluntaryExits(ctx, st, body.VoluntaryExits, mode, cfg); err != nil {
		return errors.Wrap(err, "could not process voluntary exits")
	}
	if st.Version() < version.Capella {
		if len(body.BLSToExecutionChanges) > 0 {
			return errors.New("bls to execution changes are not supported before capella")
		}
		return nil
	}
	if err := blocks.ProcessBLSToExecutionChanges(ctx, st, body.BLSToExecutionChanges, mode, cfg); err != nil {
		return errors.Wrap(err, "could not process bls to execution changes")
	}
	return nil
}

// verifyOperationLengths rejects a body whose operation lists exceed the
// per-block caps. The deposit count equality check lives with the deposit
// processor, which knows the outstanding deposit window.
func verifyOperationLengths(body *eth.BeaconBlockBody, cfg *params.BeaconChainConfig) error {
	if uint64(len(body.ProposerSlashings)) > cfg.MaxProposerSlashings {
		return fmt.Errorf("number of proposer slashings (%d) in block body exceeds allowed threshold of %d",
			len(body.ProposerSlashings), cfg.MaxProposerSlashings)
	}
	if uint64(len(body.AttesterSlashings)) > cfg.MaxAttesterSlashings {
		return fmt.Errorf("number of attester slashings (%d) in block body exceeds allowed threshold of %d",
			len(body.AttesterSlashings), cfg.MaxAttesterSlashings)
	}
	if uint64(len(body.Attestations)) > cfg.MaxAttestations {
		return fmt.Errorf("number of attestations (%d) in block body exceeds allowed threshold of %d",
			len(body.Attestations), cfg.MaxAttestations)
	}
	if uint64(len(body.VoluntaryExits)) > cfg.MaxVoluntaryExits {
		return fmt.Errorf("number of voluntary exits (%d) in block body exceeds allowed threshold of %d",
			len(body.VoluntaryExits), cfg.MaxVoluntaryExits)
	}
	if uint64(len(body.BLSToExecutionChanges)) > cfg.MaxBlsToExecutionChanges {
		return fmt.Errorf("number of bls to execution changes (%d) in block body exceeds allowed threshold of %d",
			len(body.BLSToExecutionChanges), cfg.MaxBlsToExecutionChanges)
	}
	return nil
}
