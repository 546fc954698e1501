package helpers

import (
	"github.com/pkg/errors"

	"github.com/dospore/helios/beacon-chain/state"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/time/slots"
	"github.com/prysmaticlabs/go-bitfield"
)

// SlotCommitteeCount returns the number of committees in one slot for the
// given active validator count.
//
// Spec pseudocode definition:
//   def get_committee_count_per_slot(state: BeaconState, epoch: Epoch) -> uint64:
//     return max(uint64(1), min(
//       MAX_COMMITTEES_PER_SLOT,
//       uint64(len(get_active_validator_indices(state, epoch))) // SLOTS_PER_EPOCH // TARGET_COMMITTEE_SIZE,
//     ))
func SlotCommitteeCount(activeValidatorCount uint64, cfg *params.BeaconChainConfig) uint64 {
	committeesPerSlot := activeValidatorCount / uint64(cfg.SlotsPerEpoch) / cfg.TargetCommitteeSize
	if committeesPerSlot > cfg.MaxCommitteesPerSlot {
		return cfg.MaxCommitteesPerSlot
	}
	if committeesPerSlot == 0 {
		return 1
	}
	return committeesPerSlot
}

// ComputeCommittee returns the committee slice [index] out of [count]
// committees over the shuffled active set.
//
// Spec pseudocode definition:
//   def compute_committee(indices: Sequence[ValidatorIndex], seed: Bytes32, index: uint64, count: uint64) -> Sequence[ValidatorIndex]:
//     start = (len(indices) * index) // count
//     end = (len(indices) * uint64(index + 1)) // count
//     return [indices[compute_shuffled_index(uint64(i), uint64(len(indices)), seed)] for i in range(start, end)]
func ComputeCommittee(
	indices []types.ValidatorIndex,
	seed [32]byte,
	index, count uint64,
	cfg *params.BeaconChainConfig,
) ([]types.ValidatorIndex, error) {
	validatorCount := uint64(len(indices))
	start := validatorCount * index / count
	end := validatorCount * (index + 1) / count
	if start > validatorCount || end > validatorCount {
		return nil, errors.New("index out of range")
	}

	committee := make([]types.ValidatorIndex, 0, end-start)
	for i := start; i < end; i++ {
		shuffled, err := ComputeShuffledIndex(types.ValidatorIndex(i), validatorCount, seed, true, cfg)
		if err != nil {
			return nil, errors.Wrap(err, "could not compute shuffled index")
		}
		committee = append(committee, indices[shuffled])
	}
	return committee, nil
}

// BeaconCommittee returns the committee assigned to attest at the given slot
// and committee index.
//
// Spec pseudocode definition:
//   def get_beacon_committee(state: BeaconState, slot: Slot, index: CommitteeIndex) -> Sequence[ValidatorIndex]
func BeaconCommittee(
	st *state.BeaconState,
	slot types.Slot,
	committeeIndex types.CommitteeIndex,
	cfg *params.BeaconChainConfig,
) ([]types.ValidatorIndex, error) {
	epoch := slots.ToEpoch(slot, cfg)
	activeIndices, err := ActiveValidatorIndices(st, epoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get active indices")
	}
	committeesPerSlot := SlotCommitteeCount(uint64(len(activeIndices)), cfg)
	if uint64(committeeIndex) >= committeesPerSlot {
		return nil, errors.Errorf("committee index %d out of range, committees per slot %d", committeeIndex, committeesPerSlot)
	}
	seed, err := Seed(st, epoch, cfg.DomainBeaconAttester, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not get seed")
	}

	indexOffset := uint64(committeeIndex) + uint64(slot.Mod(uint64(cfg.SlotsPerEpoch)))*committeesPerSlot
	count := committeesPerSlot * uint64(cfg.SlotsPerEpoch)
	return ComputeCommittee(activeIndices, seed, indexOffset, count, cfg)
}

// AttestingIndices resolves the aggregation bits over a committee to the
// validator indices that attested. The bitlist length must match the
// committee size.
//
// Spec pseudocode definition:
//   def get_attesting_indices(state: BeaconState, data: AttestationData, bits: Bitlist[MAX_VALIDATORS_PER_COMMITTEE]) -> Set[ValidatorIndex]:
//     committee = get_beacon_committee(state, data.slot, data.index)
//     return set(index for i, index in enumerate(committee) if bits[i])
func AttestingIndices(bf bitfield.Bitlist, committee []types.ValidatorIndex) ([]uint64, error) {
	if bf.Len() != uint64(len(committee)) {
		return nil, errors.Errorf("bitfield length %d is not equal to committee length %d", bf.Len(), len(committee))
	}
	indices := make([]uint64, 0, bf.Count())
	for _, idx := range bf.BitIndices() {
		if idx < len(committee) {
			indices = append(indices, uint64(committee[idx]))
		}
	}
	return indices, nil
}
