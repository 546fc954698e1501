package helpers_test

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"

	"github.com/dospore/helios/beacon-chain/core/helpers"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/testing/util"
)

func TestSlotCommitteeCount_Clamps(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	perSlotTarget := uint64(cfg.SlotsPerEpoch) * cfg.TargetCommitteeSize

	assert.Equal(t, uint64(1), helpers.SlotCommitteeCount(0, cfg), "lower clamp")
	assert.Equal(t, uint64(2), helpers.SlotCommitteeCount(2*perSlotTarget, cfg))
	assert.Equal(t, cfg.MaxCommitteesPerSlot, helpers.SlotCommitteeCount(1000*perSlotTarget, cfg), "upper clamp")
}

// Every validator active in an epoch lands in exactly one committee across
// the epoch's slots.
func TestBeaconCommittee_PartitionsActiveSet(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 128, version.Phase0, cfg)

	count, err := helpers.ActiveValidatorCount(st, 0)
	require.NoError(t, err)
	committeesPerSlot := helpers.SlotCommitteeCount(count, cfg)

	seen := make(map[types.ValidatorIndex]int)
	for slot := types.Slot(0); slot < cfg.SlotsPerEpoch; slot++ {
		for idx := uint64(0); idx < committeesPerSlot; idx++ {
			committee, err := helpers.BeaconCommittee(st, slot, types.CommitteeIndex(idx), cfg)
			require.NoError(t, err)
			for _, vIdx := range committee {
				seen[vIdx]++
			}
		}
	}
	require.Equal(t, 128, len(seen))
	for vIdx, n := range seen {
		assert.Equal(t, 1, n, "validator %d assigned %d times", vIdx, n)
	}
}

func TestBeaconCommittee_IndexOutOfRange(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	_, err := helpers.BeaconCommittee(st, 0, types.CommitteeIndex(cfg.MaxCommitteesPerSlot), cfg)
	assert.ErrorContains(t, "out of range", err)
}

func TestAttestingIndices(t *testing.T) {
	committee := []types.ValidatorIndex{10, 20, 30, 40}
	bits := bitfield.NewBitlist(4)
	bits.SetBitAt(1, true)
	bits.SetBitAt(3, true)

	indices, err := helpers.AttestingIndices(bits, committee)
	require.NoError(t, err)
	assert.DeepEqual(t, []uint64{20, 40}, indices)

	_, err = helpers.AttestingIndices(bitfield.NewBitlist(5), committee)
	assert.ErrorContains(t, "bitfield length", err)
}
