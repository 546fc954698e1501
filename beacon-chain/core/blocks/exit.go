package blocks

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/core/signing"
	coretime "github.com/dospore/helios/beacon-chain/core/time"
	v "github.com/dospore/helios/beacon-chain/core/validators"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
)

// ValidatorAlreadyExitedMsg defines a message saying that a validator has already exited.
const ValidatorAlreadyExitedMsg = "validator has already submitted an exit, which will take place at epoch"

// ValidatorCannotExitYetMsg defines a message saying that a validator cannot exit
// because it has not been active long enough.
const ValidatorCannotExitYetMsg = "validator has not been active long enough to exit"

// ProcessVoluntaryExits applies the block's exits in order, stopping at the
// first invalid one. Exits run strictly in sequence so later exits see the
// churn scheduled by earlier ones, and a duplicate exit fails validation.
//
// Spec pseudocode definition:
//   def process_voluntary_exit(state: BeaconState, signed_voluntary_exit: SignedVoluntaryExit) -> None
func ProcessVoluntaryExits(
	ctx context.Context,
	st *state.BeaconState,
	exits []*eth.SignedVoluntaryExit,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "blocks.ProcessVoluntaryExits")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}
	for idx, exit := range exits {
		if err := ProcessVoluntaryExit(ctx, st, exit, mode, cfg); err != nil {
			return NewOperationError(OpVoluntaryExit, idx, err)
		}
	}
	return nil
}

// ProcessVoluntaryExit verifies a single signed exit against the current
// state and initiates the exit.
func ProcessVoluntaryExit(
	ctx context.Context,
	st *state.BeaconState,
	signed *eth.SignedVoluntaryExit,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if signed == nil || signed.Exit == nil {
		return errors.New("nil exit")
	}
	exit := signed.Exit
	validator, err := st.ValidatorAtIndex(exit.ValidatorIndex)
	if err != nil {
		return err
	}
	if err := VerifyExitAndSignature(validator, st, signed, mode, cfg); err != nil {
		return errors.Wrapf(err, "could not verify exit %d", exit.ValidatorIndex)
	}
	return v.InitiateValidatorExit(ctx, st, exit.ValidatorIndex, cfg)
}

// VerifyExitAndSignature checks every exit precondition against the current
// state: the validator is active, not already exiting, old enough, the exit
// epoch has arrived, and the signature verifies unless skipped.
//
// Spec pseudocode definition:
//   def process_voluntary_exit(state: BeaconState, signed_voluntary_exit: SignedVoluntaryExit) -> None:
//     voluntary_exit = signed_voluntary_exit.message
//     validator = state.validators[voluntary_exit.validator_index]
//     # Verify the validator is active
//     assert is_active_validator(validator, get_current_epoch(state))
//     # Verify exit has not been initiated
//     assert validator.exit_epoch == FAR_FUTURE_EPOCH
//     # Exits must specify an epoch when they become valid; they are not valid before then
//     assert get_current_epoch(state) >= voluntary_exit.epoch
//     # Verify the validator has been active long enough
//     assert get_current_epoch(state) >= validator.activation_epoch + SHARD_COMMITTEE_PERIOD
//     # Verify signature
//     domain = get_domain(state, DOMAIN_VOLUNTARY_EXIT, voluntary_exit.epoch)
//     signing_root = compute_signing_root(voluntary_exit, domain)
//     assert bls.Verify(validator.pubkey, signing_root, signed_voluntary_exit.signature)
func VerifyExitAndSignature(
	validator *eth.Validator,
	st *state.BeaconState,
	signed *eth.SignedVoluntaryExit,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if signed == nil || signed.Exit == nil || validator == nil {
		return errors.New("nil exit or nil validator provided")
	}
	exit := signed.Exit
	currentEpoch := coretime.CurrentEpoch(st, cfg)
	if !helpers.IsActiveValidator(validator, currentEpoch) {
		return fmt.Errorf("non-active validator cannot exit, current epoch: %d, validator activation epoch: %d", currentEpoch, validator.ActivationEpoch)
	}
	if validator.ExitEpoch != cfg.FarFutureEpoch {
		return fmt.Errorf("%s: %d", ValidatorAlreadyExitedMsg, validator.ExitEpoch)
	}
	if currentEpoch < exit.Epoch {
		return fmt.Errorf("expected current epoch >= exit epoch, received %d < %d", currentEpoch, exit.Epoch)
	}
	if currentEpoch < validator.ActivationEpoch+cfg.ShardCommitteePeriod {
		return fmt.Errorf(
			"%s: %d epochs vs required %d epochs",
			ValidatorCannotExitYetMsg,
			currentEpoch-validator.ActivationEpoch,
			cfg.ShardCommitteePeriod,
		)
	}
	if mode == signing.SkipSignatureVerification {
		return nil
	}
	domain, err := signing.Domain(st.Fork(), exit.Epoch, cfg.DomainVoluntaryExit, st.GenesisValidatorsRoot())
	if err != nil {
		return err
	}
	if err := signing.VerifySigningRoot(exit, validator.PublicKey, signed.Signature, domain); err != nil {
		return errors.Wrap(err, "could not verify voluntary exit signature")
	}
	return nil
}
