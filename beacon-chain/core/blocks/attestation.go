package blocks

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/core/signing"
	coretime "github.com/dospore/helios/beacon-chain/core/time"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/bls"
)

// ProcessAttestations applies the block's attestations on a pre-Altair state,
// buffering each one as a pending attestation for epoch processing. Rewards
// are deferred to the epoch boundary.
func ProcessAttestations(
	ctx context.Context,
	st *state.BeaconState,
	atts []*eth.Attestation,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "blocks.ProcessAttestations")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}
	for idx, att := range atts {
		if err := ProcessAttestation(ctx, st, att, cctx, mode, cfg); err != nil {
			return NewOperationError(OpAttestation, idx, err)
		}
	}
	return nil
}

// ProcessAttestation verifies a single attestation and appends the derived
// pending attestation to the bucket matching its target epoch.
//
// Spec pseudocode definition (phase 0 portion):
//   def process_attestation(state: BeaconState, attestation: Attestation) -> None
func ProcessAttestation(
	ctx context.Context,
	st *state.BeaconState,
	att *eth.Attestation,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if err := VerifyAttestationNoVerifySignature(ctx, st, att, cctx, cfg); err != nil {
		return err
	}
	if mode == signing.VerifyAllSignatures {
		if err := VerifyAttestationSignature(ctx, st, att, cctx, cfg); err != nil {
			return err
		}
	}

	proposerIndex, err := cctx.ProposerIndex(st, cfg)
	if err != nil {
		return err
	}
	pendingAtt := &eth.PendingAttestation{
		AggregationBits: att.AggregationBits,
		Data:            att.Data,
		InclusionDelay:  st.Slot() - att.Data.Slot,
		ProposerIndex:   proposerIndex,
	}
	if att.Data.Target.Epoch == coretime.CurrentEpoch(st, cfg) {
		return st.AppendCurrentEpochAttestations(pendingAtt)
	}
	return st.AppendPreviousEpochAttestations(pendingAtt)
}

// VerifyAttestationNoVerifySignature runs every attestation inclusion check
// except the aggregate signature: epoch window, source checkpoint, inclusion
// delay, committee index and bitfield length.
func VerifyAttestationNoVerifySignature(
	ctx context.Context,
	st *state.BeaconState,
	att *eth.Attestation,
	cctx *cache.ConsensusContext,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "blocks.VerifyAttestationNoVerifySignature")
	defer span.End()

	if err := helpers.ValidateNilAttestation(att); err != nil {
		return err
	}
	currEpoch := coretime.CurrentEpoch(st, cfg)
	prevEpoch := coretime.PrevEpoch(st, cfg)
	data := att.Data
	if data.Target.Epoch != prevEpoch && data.Target.Epoch != currEpoch {
		return fmt.Errorf(
			"expected target epoch (%d) to be the previous epoch (%d) or the current epoch (%d)",
			data.Target.Epoch, prevEpoch, currEpoch,
		)
	}
	if err := helpers.ValidateSlotTargetEpoch(data, cfg); err != nil {
		return err
	}

	if data.Target.Epoch == currEpoch {
		if !st.MatchCurrentJustifiedCheckpoint(data.Source) {
			return errors.New("source check point not equal to current justified checkpoint")
		}
	} else {
		if !st.MatchPreviousJustifiedCheckpoint(data.Source) {
			return errors.New("source check point not equal to previous justified checkpoint")
		}
	}

	s := st.Slot()
	minInclusionCheck := data.Slot+cfg.MinAttestationInclusionDelay <= s
	epochInclusionCheck := s <= data.Slot+cfg.SlotsPerEpoch
	if !minInclusionCheck {
		return fmt.Errorf("attestation slot %d + inclusion delay %d > state slot %d", data.Slot, cfg.MinAttestationInclusionDelay, s)
	}
	if !epochInclusionCheck {
		return fmt.Errorf("state slot %d > attestation slot %d + SLOTS_PER_EPOCH %d", s, data.Slot, cfg.SlotsPerEpoch)
	}

	activeValidatorCount, err := helpers.ActiveValidatorCount(st, data.Target.Epoch)
	if err != nil {
		return err
	}
	c := helpers.SlotCommitteeCount(activeValidatorCount, cfg)
	if uint64(data.CommitteeIndex) >= c {
		return fmt.Errorf("committee index %d >= committee count %d", data.CommitteeIndex, c)
	}

	committee, err := cctx.BeaconCommittee(st, data.Slot, data.CommitteeIndex, cfg)
	if err != nil {
		return err
	}
	if att.AggregationBits.Len() != uint64(len(committee)) {
		return fmt.Errorf(
			"bitfield length %d is not equal to committee length %d",
			att.AggregationBits.Len(), len(committee),
		)
	}
	return nil
}

// VerifyAttestationSignature resolves the attestation to its indexed form and
// checks the aggregate signature.
func VerifyAttestationSignature(
	ctx context.Context,
	st *state.BeaconState,
	att *eth.Attestation,
	cctx *cache.ConsensusContext,
	cfg *params.BeaconChainConfig,
) error {
	if err := helpers.ValidateNilAttestation(att); err != nil {
		return err
	}
	committee, err := cctx.BeaconCommittee(st, att.Data.Slot, att.Data.CommitteeIndex, cfg)
	if err != nil {
		return err
	}
	indexedAtt, err := ConvertToIndexed(ctx, att, committee)
	if err != nil {
		return err
	}
	return VerifyIndexedAttestation(ctx, st, indexedAtt, signing.VerifyAllSignatures, cfg)
}

// ConvertToIndexed resolves the aggregation bits over the committee into an
// indexed attestation with ascending attesting indices.
//
// Spec pseudocode definition:
//   def get_indexed_attestation(state: BeaconState, attestation: Attestation) -> IndexedAttestation:
//     attesting_indices = get_attesting_indices(state, attestation.data, attestation.aggregation_bits)
//     return IndexedAttestation(
//       attesting_indices=sorted(attesting_indices),
//       data=attestation.data,
//       signature=attestation.signature,
//     )
func ConvertToIndexed(_ context.Context, att *eth.Attestation, committee []types.ValidatorIndex) (*eth.IndexedAttestation, error) {
	attIndices, err := helpers.AttestingIndices(att.AggregationBits, committee)
	if err != nil {
		return nil, errors.Wrap(err, "could not get attesting indices")
	}
	sort.Slice(attIndices, func(i, j int) bool {
		return attIndices[i] < attIndices[j]
	})
	return &eth.IndexedAttestation{
		AttestingIndices: attIndices,
		Data:             att.Data,
		Signature:        att.Signature,
	}, nil
}

// VerifyIndexedAttestation checks the structural validity of an indexed
// attestation (non-empty, capped, strictly ascending indices) and, unless
// skipped, its aggregate signature over the attestation data.
//
// Spec pseudocode definition:
//   def is_valid_indexed_attestation(state: BeaconState, indexed_attestation: IndexedAttestation) -> bool
func VerifyIndexedAttestation(
	ctx context.Context,
	st *state.BeaconState,
	indexedAtt *eth.IndexedAttestation,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "blocks.VerifyIndexedAttestation")
	defer span.End()

	if indexedAtt == nil || indexedAtt.Data == nil || indexedAtt.Data.Target == nil {
		return errors.New("nil or missing indexed attestation data")
	}
	indices := indexedAtt.AttestingIndices
	if len(indices) == 0 {
		return errors.New("expected non-empty attesting indices")
	}
	if uint64(len(indices)) > cfg.MaxValidatorsPerCommittee {
		return fmt.Errorf("validator indices count exceeds MAX_VALIDATORS_PER_COMMITTEE, %d > %d", len(indices), cfg.MaxValidatorsPerCommittee)
	}
	for i := 1; i < len(indices); i++ {
		if indices[i-1] >= indices[i] {
			return errors.New("attesting indices is not uniquely sorted")
		}
	}
	if mode == signing.SkipSignatureVerification {
		return nil
	}

	pubkeys := make([]bls.PublicKey, 0, len(indices))
	for _, idx := range indices {
		pubkeyAtIdx, err := st.PubkeyAtIndex(types.ValidatorIndex(idx))
		if err != nil {
			return errors.Wrap(err, "could not get pubkey")
		}
		pk, err := bls.PublicKeyFromBytes(pubkeyAtIdx[:])
		if err != nil {
			return errors.Wrap(err, "could not deserialize validator public key")
		}
		pubkeys = append(pubkeys, pk)
	}

	domain, err := signing.Domain(st.Fork(), indexedAtt.Data.Target.Epoch, cfg.DomainBeaconAttester, st.GenesisValidatorsRoot())
	if err != nil {
		return err
	}
	root, err := signing.ComputeSigningRoot(indexedAtt.Data, domain)
	if err != nil {
		return errors.Wrap(err, "could not get signing root of object")
	}
	sig, err := bls.SignatureFromBytes(indexedAtt.Signature)
	if err != nil {
		return errors.Wrap(err, "could not convert bytes to signature")
	}
	if !sig.FastAggregateVerify(pubkeys, root) {
		return signing.ErrSigFailedToVerify
	}
	return nil
}
