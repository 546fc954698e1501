// Package blocks implements the per-operation processors of the block
// transition: slashings, attestations, deposits, exits and withdrawal
// credential changes.
package blocks

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/core/signing"
	coretime "github.com/dospore/helios/beacon-chain/core/time"
	v "github.com/dospore/helios/beacon-chain/core/validators"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/time/slots"
)

// ProcessProposerSlashings applies the block's proposer slashings in order,
// stopping at the first invalid record. Records run strictly in sequence so a
// second slashing of the same proposer within one block is rejected.
//
// Spec pseudocode definition:
//   def process_proposer_slashing(state: BeaconState, proposer_slashing: ProposerSlashing) -> None
func ProcessProposerSlashings(
	ctx context.Context,
	st *state.BeaconState,
	slashings []*eth.ProposerSlashing,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "blocks.ProcessProposerSlashings")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}
	for idx, slashing := range slashings {
		if err := ProcessProposerSlashing(ctx, st, slashing, cctx, mode, cfg); err != nil {
			return NewOperationError(OpProposerSlashing, idx, err)
		}
	}
	return nil
}

// ProcessProposerSlashing verifies and applies a single proposer slashing.
func ProcessProposerSlashing(
	ctx context.Context,
	st *state.BeaconState,
	slashing *eth.ProposerSlashing,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if err := VerifyProposerSlashing(st, slashing, mode, cfg); err != nil {
		return errors.Wrap(err, "could not verify proposer slashing")
	}
	if err := v.SlashValidator(ctx, st, slashing.Header_1.Header.ProposerIndex, cctx, cfg); err != nil {
		return errors.Wrapf(err, "could not slash proposer index %d", slashing.Header_1.Header.ProposerIndex)
	}
	return nil
}

// VerifyProposerSlashing checks that the two headers conflict and that the
// proposer is still slashable, then verifies both header signatures unless
// verification is skipped.
func VerifyProposerSlashing(
	st *state.BeaconState,
	slashing *eth.ProposerSlashing,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if slashing == nil {
		return errors.New("nil proposer slashing")
	}
	if slashing.Header_1 == nil || slashing.Header_1.Header == nil || slashing.Header_2 == nil || slashing.Header_2.Header == nil {
		return errors.New("nil header cannot be verified")
	}
	h1 := slashing.Header_1.Header
	h2 := slashing.Header_2.Header
	if h1.Slot != h2.Slot {
		return fmt.Errorf("mismatched header slots, received %d == %d", h1.Slot, h2.Slot)
	}
	if h1.ProposerIndex != h2.ProposerIndex {
		return fmt.Errorf("mismatched indices, received %d == %d", h1.ProposerIndex, h2.ProposerIndex)
	}
	r1, err := h1.HashTreeRoot()
	if err != nil {
		return err
	}
	r2, err := h2.HashTreeRoot()
	if err != nil {
		return err
	}
	if bytes.Equal(r1[:], r2[:]) {
		return errors.New("expected slashing headers to differ")
	}
	proposer, err := st.ValidatorAtIndex(h1.ProposerIndex)
	if err != nil {
		return err
	}
	if !helpers.IsSlashableValidator(proposer.ActivationEpoch, proposer.WithdrawableEpoch, proposer.Slashed, coretime.CurrentEpoch(st, cfg)) {
		return fmt.Errorf("validator with key %#x is not slashable", proposer.PublicKey)
	}
	if mode == signing.SkipSignatureVerification {
		return nil
	}
	headers := []*eth.SignedBeaconBlockHeader{slashing.Header_1, slashing.Header_2}
	for _, header := range headers {
		epoch := slots.ToEpoch(header.Header.Slot, cfg)
		err := signing.ComputeDomainVerifySigningRoot(
			st.Fork(), st.GenesisValidatorsRoot(), epoch,
			header.Header, cfg.DomainBeaconProposer,
			proposer.PublicKey, header.Signature,
		)
		if err != nil {
			return errors.Wrap(err, "could not verify beacon block header")
		}
	}
	return nil
}
