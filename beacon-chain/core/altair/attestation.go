// Package altair implements the participation-flag attestation processing
// used from the Altair fork on: flags replace the pending attestation
// buckets and the proposer is paid for inclusions immediately.
package altair

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/blocks"
	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/core/signing"
	coretime "github.com/dospore/helios/beacon-chain/core/time"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/math"
)

// HasValidatorFlag reports whether the participation flag at the position is
// set.
func HasValidatorFlag(flag, flagPosition uint8) (bool, error) {
	if flagPosition > 7 {
		return false, errors.New("flag position exceeds length")
	}
	return ((flag >> flagPosition) & 1) == 1, nil
}

// AddValidatorFlag returns the participation byte with the flag at the
// position set.
func AddValidatorFlag(flag, flagPosition uint8) (uint8, error) {
	if flagPosition > 7 {
		return flag, errors.New("flag position exceeds length")
	}
	return flag | (1 << flagPosition), nil
}

// ProcessAttestations applies the block's attestations on an Altair or later
// state. Every newly set participation flag accrues the attesting validator's
// base reward times the flag weight into one per-block numerator; the
// proposer is credited with numerator/denominator once, after the last
// attestation, so repeated flag contributions never lose precision to
// intermediate floor divisions.
//
// Spec pseudocode definition:
//   def process_attestation(state: BeaconState, attestation: Attestation) -> None
func ProcessAttestations(
	ctx context.Context,
	st *state.BeaconState,
	atts []*eth.Attestation,
	cctx *cache.ConsensusContext,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "altair.ProcessAttestations")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}

	proposerRewardNumerator := uint64(0)
	for idx, att := range atts {
		if err := blocks.VerifyAttestationNoVerifySignature(ctx, st, att, cctx, cfg); err != nil {
			return blocks.NewOperationError(blocks.OpAttestation, idx, err)
		}
		if mode == signing.VerifyAllSignatures {
			if err := blocks.VerifyAttestationSignature(ctx, st, att, cctx, cfg); err != nil {
				return blocks.NewOperationError(blocks.OpAttestation, idx, err)
			}
		}
		delay := st.Slot() - att.Data.Slot
		participatedFlags, err := AttestationParticipationFlagIndices(st, att.Data, delay, cfg)
		if err != nil {
			return blocks.NewOperationError(blocks.OpAttestation, idx, err)
		}
		committee, err := cctx.BeaconCommittee(st, att.Data.Slot, att.Data.CommitteeIndex, cfg)
		if err != nil {
			return blocks.NewOperationError(blocks.OpAttestation, idx, err)
		}
		indices, err := helpers.AttestingIndices(att.AggregationBits, committee)
		if err != nil {
			return blocks.NewOperationError(blocks.OpAttestation, idx, err)
		}
		n, err := setParticipationBits(st, att.Data.Target.Epoch, indices, participatedFlags, cctx, cfg)
		if err != nil {
			return blocks.NewOperationError(blocks.OpAttestation, idx, err)
		}
		proposerRewardNumerator, err = math.Add64(proposerRewardNumerator, n)
		if err != nil {
			return blocks.NewOperationError(blocks.OpAttestation, idx, err)
		}
	}

	return rewardProposer(st, proposerRewardNumerator, cctx, cfg)
}

// setParticipationBits sets the newly earned participation flags for every
// attesting validator in the epoch bucket matching the target epoch and
// returns the proposer reward numerator those transitions earned.
func setParticipationBits(
	st *state.BeaconState,
	targetEpoch types.Epoch,
	indices []uint64,
	participatedFlags map[uint8]bool,
	cctx *cache.ConsensusContext,
	cfg *params.BeaconChainConfig,
) (uint64, error) {
	currentEpoch := coretime.CurrentEpoch(st, cfg)
	baseRewardPerIncrement, err := cctx.BaseRewardPerIncrement(st, cfg)
	if err != nil {
		return 0, err
	}

	flagIndices := cfg.ParticipationFlagIndices()
	flagWeights := cfg.ParticipationFlagWeights()
	numerator := uint64(0)
	for _, index := range indices {
		vIdx := types.ValidatorIndex(index)
		var epochParticipation byte
		if targetEpoch == currentEpoch {
			epochParticipation, err = st.CurrentEpochParticipationAtIndex(vIdx)
		} else {
			epochParticipation, err = st.PreviousEpochParticipationAtIndex(vIdx)
		}
		if err != nil {
			return 0, err
		}

		val, err := st.ValidatorAtIndex(vIdx)
		if err != nil {
			return 0, err
		}
		baseReward, err := math.Mul64(val.EffectiveBalance/cfg.EffectiveBalanceIncrement, baseRewardPerIncrement)
		if err != nil {
			return 0, err
		}

		for i, flagIndex := range flagIndices {
			has, err := HasValidatorFlag(epochParticipation, flagIndex)
			if err != nil {
				return 0, err
			}
			if !participatedFlags[flagIndex] || has {
				continue
			}
			epochParticipation, err = AddValidatorFlag(epochParticipation, flagIndex)
			if err != nil {
				return 0, err
			}
			earned, err := math.Mul64(baseReward, flagWeights[i])
			if err != nil {
				return 0, err
			}
			numerator, err = math.Add64(numerator, earned)
			if err != nil {
				return 0, err
			}
			if flagIndex == cfg.TimelyTargetFlagIndex && cctx.OnTimelyTargetAttested != nil {
				cctx.OnTimelyTargetAttested(vIdx, val.EffectiveBalance)
			}
		}

		if targetEpoch == currentEpoch {
			err = st.SetCurrentEpochParticipationAtIndex(vIdx, epochParticipation)
		} else {
			err = st.SetPreviousEpochParticipationAtIndex(vIdx, epochParticipation)
		}
		if err != nil {
			return 0, err
		}
	}
	return numerator, nil
}

// rewardProposer credits the proposer with numerator/denominator where
// denominator = (WEIGHT_DENOMINATOR - PROPOSER_WEIGHT) * WEIGHT_DENOMINATOR / PROPOSER_WEIGHT.
// Both divisions floor, in that order.
func rewardProposer(
	st *state.BeaconState,
	proposerRewardNumerator uint64,
	cctx *cache.ConsensusContext,
	cfg *params.BeaconChainConfig,
) error {
	if proposerRewardNumerator == 0 {
		return nil
	}
	denominator := (cfg.WeightDenominator - cfg.ProposerWeight) * cfg.WeightDenominator / cfg.ProposerWeight
	if denominator == 0 {
		return math.ErrDivByZero
	}
	proposerReward := proposerRewardNumerator / denominator
	proposerIndex, err := cctx.ProposerIndex(st, cfg)
	if err != nil {
		return err
	}
	return helpers.IncreaseBalance(st, proposerIndex, proposerReward)
}

// AttestationParticipationFlagIndices derives which timeliness flags the
// attestation earns from its inclusion delay and how well its checkpoints
// match the state's history.
//
// Spec pseudocode definition:
//   def get_attestation_participation_flag_indices(state: BeaconState, data: AttestationData, inclusion_delay: uint64) -> Sequence[int]
func AttestationParticipationFlagIndices(
	st *state.BeaconState,
	data *eth.AttestationData,
	delay types.Slot,
	cfg *params.BeaconChainConfig,
) (map[uint8]bool, error) {
	currEpoch := coretime.CurrentEpoch(st, cfg)
	var justifiedCheckpoint *eth.Checkpoint
	if data.Target.Epoch == currEpoch {
		justifiedCheckpoint = st.CurrentJustifiedCheckpoint()
	} else {
		justifiedCheckpoint = st.PreviousJustifiedCheckpoint()
	}

	matchedSource, err := matchingSource(data, justifiedCheckpoint)
	if err != nil {
		return nil, err
	}
	matchedTarget, err := matchingTarget(st, data, matchedSource, cfg)
	if err != nil {
		return nil, err
	}
	matchedHead, err := matchingHead(st, data, matchedTarget, cfg)
	if err != nil {
		return nil, err
	}

	participatedFlags := make(map[uint8]bool)
	if matchedSource && delay <= cfg.SqrRootSlotsPerEpoch {
		participatedFlags[cfg.TimelySourceFlagIndex] = true
	}
	if matchedTarget && delay <= cfg.SlotsPerEpoch {
		participatedFlags[cfg.TimelyTargetFlagIndex] = true
	}
	if matchedHead && delay == cfg.MinAttestationInclusionDelay {
		participatedFlags[cfg.TimelyHeadFlagIndex] = true
	}
	return participatedFlags, nil
}

// matchingSource requires the FFG source to equal the justified checkpoint
// of the target's epoch.
func matchingSource(data *eth.AttestationData, justifiedCheckpoint *eth.Checkpoint) (bool, error) {
	if data.Source == nil || justifiedCheckpoint == nil {
		return false, errors.New("nil source checkpoint")
	}
	if data.Source.Epoch != justifiedCheckpoint.Epoch || !bytes.Equal(data.Source.Root, justifiedCheckpoint.Root) {
		return false, errors.New("source does not match the justified checkpoint")
	}
	return true, nil
}

// matchingTarget requires a matching source plus the target root equaling the
// block root at the target epoch's start.
func matchingTarget(st *state.BeaconState, data *eth.AttestationData, matchedSource bool, cfg *params.BeaconChainConfig) (bool, error) {
	if !matchedSource {
		return false, nil
	}
	targetRoot, err := helpers.BlockRoot(st, data.Target.Epoch, cfg)
	if err != nil {
		return false, err
	}
	return bytes.Equal(data.Target.Root, targetRoot), nil
}

// matchingHead requires a matching target plus the vote's head equaling the
// block root at the attestation slot.
func matchingHead(st *state.BeaconState, data *eth.AttestationData, matchedTarget bool, cfg *params.BeaconChainConfig) (bool, error) {
	if !matchedTarget {
		return false, nil
	}
	headRoot, err := helpers.BlockRootAtSlot(st, data.Slot, cfg)
	if err != nil {
		return false, err
	}
	return bytes.Equal(data.BeaconBlockRoot, headRoot), nil
}
