// Package validators implements the registry status transitions shared by
// the slashing and exit operations.
package validators

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/helpers"
	coretime "github.com/dospore/helios/beacon-chain/core/time"
	"github.com/dospore/helios/beacon-chain/state"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
)

// InitiateValidatorExit places the validator into the churn-limited exit
// queue. A validator already exiting is left untouched.
//
// Spec pseudocode definition:
//   def initiate_validator_exit(state: BeaconState, index: ValidatorIndex) -> None:
//     validator = state.validators[index]
//     if validator.exit_epoch != FAR_FUTURE_EPOCH:
//       return
//     exit_epochs = [v.exit_epoch for v in state.validators if v.exit_epoch != FAR_FUTURE_EPOCH]
//     exit_queue_epoch = max(exit_epochs + [compute_activation_exit_epoch(get_current_epoch(state))])
//     exit_queue_churn = len([v for v in state.validators if v.exit_epoch == exit_queue_epoch])
//     if exit_queue_churn >= get_validator_churn_limit(state):
//       exit_queue_epoch += Epoch(1)
//     validator.exit_epoch = exit_queue_epoch
//     validator.withdrawable_epoch = Epoch(validator.exit_epoch + MIN_VALIDATOR_WITHDRAWABILITY_DELAY)
func InitiateValidatorExit(ctx context.Context, st *state.BeaconState, idx types.ValidatorIndex, cfg *params.BeaconChainConfig) error {
	validator, err := st.ValidatorAtIndex(idx)
	if err != nil {
		return err
	}
	if validator.ExitEpoch != cfg.FarFutureEpoch {
		return nil
	}

	currentEpoch := coretime.CurrentEpoch(st, cfg)
	exitQueueEpoch := helpers.ActivationExitEpoch(currentEpoch, cfg)
	activeCount := uint64(0)
	exitQueueChurn := uint64(0)
	for _, v := range st.Validators() {
		if v.ExitEpoch != cfg.FarFutureEpoch && v.ExitEpoch > exitQueueEpoch {
			exitQueueEpoch = v.ExitEpoch
		}
		if helpers.IsActiveValidator(v, currentEpoch) {
			activeCount++
		}
	}
	for _, v := range st.Validators() {
		if v.ExitEpoch == exitQueueEpoch {
			exitQueueChurn++
		}
	}
	if exitQueueChurn >= helpers.ValidatorChurnLimit(activeCount, cfg) {
		exitQueueEpoch++
	}

	validator.ExitEpoch = exitQueueEpoch
	validator.WithdrawableEpoch = exitQueueEpoch + cfg.MinValidatorWithdrawabilityDelay
	return st.UpdateValidatorAtIndex(idx, validator)
}

// SlashValidator forces the validator out, marks it slashed, accrues its
// effective balance into the slashings vector, burns the slashing penalty and
// pays the whistleblower and proposer rewards.
//
// Spec pseudocode definition:
//   def slash_validator(state: BeaconState, slashed_index: ValidatorIndex, whistleblower_index: ValidatorIndex=None) -> None
func SlashValidator(
	ctx context.Context,
	st *state.BeaconState,
	slashedIdx types.ValidatorIndex,
	cctx *cache.ConsensusContext,
	cfg *params.BeaconChainConfig,
) error {
	if err := InitiateValidatorExit(ctx, st, slashedIdx, cfg); err != nil {
		return errors.Wrapf(err, "could not initiate exit for validator %d", slashedIdx)
	}
	currentEpoch := coretime.CurrentEpoch(st, cfg)
	validator, err := st.ValidatorAtIndex(slashedIdx)
	if err != nil {
		return err
	}
	validator.Slashed = true
	maxWithdrawable := currentEpoch + cfg.EpochsPerSlashingsVector
	if validator.WithdrawableEpoch > maxWithdrawable {
		maxWithdrawable = validator.WithdrawableEpoch
	}
	validator.WithdrawableEpoch = maxWithdrawable
	if err := st.UpdateValidatorAtIndex(slashedIdx, validator); err != nil {
		return err
	}

	slashingsIdx := uint64(currentEpoch % cfg.EpochsPerSlashingsVector)
	accrued := st.Slashings()[slashingsIdx]
	if err := st.UpdateSlashingsAtIndex(slashingsIdx, accrued+validator.EffectiveBalance); err != nil {
		return err
	}

	var slashingQuotient uint64
	switch st.Version() {
	case version.Phase0:
		slashingQuotient = cfg.MinSlashingPenaltyQuotient
	case version.Altair:
		slashingQuotient = cfg.MinSlashingPenaltyQuotientAltair
	case version.Bellatrix, version.Capella:
		slashingQuotient = cfg.MinSlashingPenaltyQuotientBellatrix
	default:
		return errors.New("unknown state version")
	}
	if err := helpers.DecreaseBalance(st, slashedIdx, validator.EffectiveBalance/slashingQuotient); err != nil {
		return err
	}

	// The block proposer doubles as the whistleblower.
	proposerIdx, err := cctx.ProposerIndex(st, cfg)
	if err != nil {
		return errors.Wrap(err, "could not get proposer index")
	}
	whistleblowerIdx := proposerIdx
	whistleblowerReward := validator.EffectiveBalance / cfg.WhistleBlowerRewardQuotient
	var proposerReward uint64
	if st.Version() == version.Phase0 {
		proposerReward = whistleblowerReward / cfg.ProposerRewardQuotient
	} else {
		proposerReward = whistleblowerReward * cfg.ProposerWeight / cfg.WeightDenominator
	}
	if err := helpers.IncreaseBalance(st, proposerIdx, proposerReward); err != nil {
		return err
	}
	return helpers.IncreaseBalance(st, whistleblowerIdx, whistleblowerReward-proposerReward)
}
