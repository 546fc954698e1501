package helpers

import (
	"github.com/pkg/errors"

	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/hash"
	"github.com/dospore/helios/encoding/bytesutil"
	"github.com/dospore/helios/time/slots"
)

// IsActiveValidator reports whether the validator is active at the epoch.
//
// Spec pseudocode definition:
//   def is_active_validator(validator: Validator, epoch: Epoch) -> bool:
//     return validator.activation_epoch <= epoch < validator.exit_epoch
func IsActiveValidator(validator *eth.Validator, epoch types.Epoch) bool {
	return validator.ActivationEpoch <= epoch && epoch < validator.ExitEpoch
}

// IsSlashableValidator reports whether the validator may still be slashed at
// the epoch.
//
// Spec pseudocode definition:
//   def is_slashable_validator(validator: Validator, epoch: Epoch) -> bool:
//     return (not validator.slashed) and (validator.activation_epoch <= epoch < validator.withdrawable_epoch)
func IsSlashableValidator(activationEpoch, withdrawableEpoch types.Epoch, slashed bool, epoch types.Epoch) bool {
	active := activationEpoch <= epoch
	beforeWithdrawable := epoch < withdrawableEpoch
	return active && beforeWithdrawable && !slashed
}

// ActiveValidatorIndices returns the indices of validators active at the
// epoch, in registry order.
func ActiveValidatorIndices(st *state.BeaconState, epoch types.Epoch) ([]types.ValidatorIndex, error) {
	if st == nil {
		return nil, state.ErrNilState
	}
	var indices []types.ValidatorIndex
	for i, v := range st.Validators() {
		if IsActiveValidator(v, epoch) {
			indices = append(indices, types.ValidatorIndex(i))
		}
	}
	return indices, nil
}

// ActiveValidatorCount returns the number of validators active at the epoch.
func ActiveValidatorCount(st *state.BeaconState, epoch types.Epoch) (uint64, error) {
	if st == nil {
		return 0, state.ErrNilState
	}
	count := uint64(0)
	for _, v := range st.Validators() {
		if IsActiveValidator(v, epoch) {
			count++
		}
	}
	return count, nil
}

// ValidatorChurnLimit returns how many validators may enter or leave the
// active set per epoch.
//
// Spec pseudocode definition:
//   def get_validator_churn_limit(state: BeaconState) -> uint64:
//     active_validator_indices = get_active_validator_indices(state, get_current_epoch(state))
//     return max(MIN_PER_EPOCH_CHURN_LIMIT, uint64(len(active_validator_indices)) // CHURN_LIMIT_QUOTIENT)
func ValidatorChurnLimit(activeValidatorCount uint64, cfg *params.BeaconChainConfig) uint64 {
	churnLimit := activeValidatorCount / cfg.ChurnLimitQuotient
	if churnLimit < cfg.MinPerEpochChurnLimit {
		churnLimit = cfg.MinPerEpochChurnLimit
	}
	return churnLimit
}

// ActivationExitEpoch returns the earliest epoch a status change initiated at
// the given epoch can take effect.
//
// Spec pseudocode definition:
//   def compute_activation_exit_epoch(epoch: Epoch) -> Epoch:
//     return Epoch(epoch + 1 + MAX_SEED_LOOKAHEAD)
func ActivationExitEpoch(epoch types.Epoch, cfg *params.BeaconChainConfig) types.Epoch {
	return epoch + 1 + cfg.MaxSeedLookahead
}

// ComputeProposerIndex samples the proposer from the given active indices,
// weighted by effective balance.
//
// Spec pseudocode definition:
//   def compute_proposer_index(state: BeaconState, indices: Sequence[ValidatorIndex], seed: Bytes32) -> ValidatorIndex
func ComputeProposerIndex(st *state.BeaconState, activeIndices []types.ValidatorIndex, seed [32]byte, cfg *params.BeaconChainConfig) (types.ValidatorIndex, error) {
	length := uint64(len(activeIndices))
	if length == 0 {
		return 0, errors.New("empty active indices list")
	}
	maxRandomByte := uint64(1<<8 - 1)
	hashFunc := hash.CustomSHA256Hasher()

	for i := uint64(0); ; i++ {
		candidateIndex, err := ComputeShuffledIndex(types.ValidatorIndex(i%length), length, seed, true, cfg)
		if err != nil {
			return 0, err
		}
		candidateIndex = activeIndices[candidateIndex]
		if uint64(candidateIndex) >= uint64(st.NumValidators()) {
			return 0, state.ErrOutOfBounds
		}
		b := append(seed[:], bytesutil.Bytes8(i/32)...)
		randomByte := hashFunc(b)[i%32]
		v, err := st.ValidatorAtIndex(candidateIndex)
		if err != nil {
			return 0, err
		}
		if v.EffectiveBalance*maxRandomByte >= cfg.MaxEffectiveBalance*uint64(randomByte) {
			return candidateIndex, nil
		}
	}
}

// BeaconProposerIndex returns the proposer of the state's slot.
//
// Spec pseudocode definition:
//   def get_beacon_proposer_index(state: BeaconState) -> ValidatorIndex:
//     epoch = get_current_epoch(state)
//     seed = hash(get_seed(state, epoch, DOMAIN_BEACON_PROPOSER) + uint_to_bytes(state.slot))
//     indices = get_active_validator_indices(state, epoch)
//     return compute_proposer_index(state, indices, seed)
func BeaconProposerIndex(st *state.BeaconState, cfg *params.BeaconChainConfig) (types.ValidatorIndex, error) {
	epoch := slots.ToEpoch(st.Slot(), cfg)
	seed, err := Seed(st, epoch, cfg.DomainBeaconProposer, cfg)
	if err != nil {
		return 0, errors.Wrap(err, "could not generate seed")
	}
	seedWithSlot := append(seed[:], bytesutil.Bytes8(uint64(st.Slot()))...)
	seedWithSlotHash := hash.Hash(seedWithSlot)
	indices, err := ActiveValidatorIndices(st, epoch)
	if err != nil {
		return 0, err
	}
	return ComputeProposerIndex(st, indices, seedWithSlotHash, cfg)
}
