package helpers

import (
	"github.com/pkg/errors"

	"github.com/dospore/helios/beacon-chain/state"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/math"
	"github.com/dospore/helios/time/slots"
)

// TotalBalance returns the summed effective balance of the given validators,
// floored at one effective balance increment to avoid divisions by zero.
//
// Spec pseudocode definition:
//   def get_total_balance(state: BeaconState, indices: Set[ValidatorIndex]) -> Gwei:
//     return Gwei(max(EFFECTIVE_BALANCE_INCREMENT, sum([state.validators[index].effective_balance for index in indices])))
func TotalBalance(st *state.BeaconState, indices []types.ValidatorIndex, cfg *params.BeaconChainConfig) uint64 {
	total := uint64(0)
	validators := st.Validators()
	for _, idx := range indices {
		if uint64(idx) >= uint64(len(validators)) {
			continue
		}
		total += validators[idx].EffectiveBalance
	}
	if total < cfg.EffectiveBalanceIncrement {
		return cfg.EffectiveBalanceIncrement
	}
	return total
}

// TotalActiveBalance returns the summed effective balance of all validators
// active in the state's epoch.
func TotalActiveBalance(st *state.BeaconState, cfg *params.BeaconChainConfig) (uint64, error) {
	if st == nil {
		return 0, state.ErrNilState
	}
	epoch := slots.ToEpoch(st.Slot(), cfg)
	total := uint64(0)
	for _, v := range st.Validators() {
		if IsActiveValidator(v, epoch) {
			total += v.EffectiveBalance
		}
	}
	if total < cfg.EffectiveBalanceIncrement {
		return cfg.EffectiveBalanceIncrement, nil
	}
	return total, nil
}

// IncreaseBalance adds to the balance of the validator at the index.
//
// Spec pseudocode definition:
//   def increase_balance(state: BeaconState, index: ValidatorIndex, delta: Gwei) -> None:
//     state.balances[index] += delta
func IncreaseBalance(st *state.BeaconState, idx types.ValidatorIndex, delta uint64) error {
	balance, err := st.BalanceAtIndex(idx)
	if err != nil {
		return err
	}
	newBalance, err := math.Add64(balance, delta)
	if err != nil {
		return errors.Wrapf(err, "could not increase balance of validator %d", idx)
	}
	return st.UpdateBalancesAtIndex(idx, newBalance)
}

// DecreaseBalance subtracts from the balance of the validator at the index,
// clamping at zero.
//
// Spec pseudocode definition:
//   def decrease_balance(state: BeaconState, index: ValidatorIndex, delta: Gwei) -> None:
//     state.balances[index] = 0 if delta > state.balances[index] else state.balances[index] - delta
func DecreaseBalance(st *state.BeaconState, idx types.ValidatorIndex, delta uint64) error {
	balance, err := st.BalanceAtIndex(idx)
	if err != nil {
		return err
	}
	if delta > balance {
		return st.UpdateBalancesAtIndex(idx, 0)
	}
	return st.UpdateBalancesAtIndex(idx, balance-delta)
}

// BaseRewardPerIncrement returns the reward accruing to one effective balance
// increment, given the total active balance.
//
// Spec pseudocode definition:
//   def get_base_reward_per_increment(state: BeaconState) -> Gwei:
//     return Gwei(EFFECTIVE_BALANCE_INCREMENT * BASE_REWARD_FACTOR // integer_squareroot(get_total_active_balance(state)))
func BaseRewardPerIncrement(totalActiveBalance uint64, cfg *params.BeaconChainConfig) (uint64, error) {
	if totalActiveBalance == 0 {
		return 0, errors.New("total active balance can't be 0")
	}
	return cfg.EffectiveBalanceIncrement * cfg.BaseRewardFactor / math.IntegerSquareRoot(totalActiveBalance), nil
}

// BaseReward returns the base reward of the validator at the index, given the
// total active balance.
//
// Spec pseudocode definition:
//   def get_base_reward(state: BeaconState, index: ValidatorIndex) -> Gwei:
//     increments = state.validators[index].effective_balance // EFFECTIVE_BALANCE_INCREMENT
//     return Gwei(increments * get_base_reward_per_increment(state))
func BaseReward(st *state.BeaconState, idx types.ValidatorIndex, totalActiveBalance uint64, cfg *params.BeaconChainConfig) (uint64, error) {
	val, err := st.ValidatorAtIndex(idx)
	if err != nil {
		return 0, errors.Wrap(err, "could not get validator")
	}
	baseRewardPerIncrement, err := BaseRewardPerIncrement(totalActiveBalance, cfg)
	if err != nil {
		return 0, errors.Wrap(err, "could not get base reward per increment")
	}
	return val.EffectiveBalance / cfg.EffectiveBalanceIncrement * baseRewardPerIncrement, nil
}
