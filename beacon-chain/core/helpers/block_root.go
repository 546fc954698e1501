package helpers

import (
	"fmt"

	"github.com/dospore/helios/beacon-chain/state"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/time/slots"
)

// BlockRootAtSlot returns the block root stored in the state for a recent
// slot. Only the last SLOTS_PER_HISTORICAL_ROOT slots are addressable.
//
// Spec pseudocode definition:
//   def get_block_root_at_slot(state: BeaconState, slot: Slot) -> Root:
//     assert slot < state.slot <= slot + SLOTS_PER_HISTORICAL_ROOT
//     return state.block_roots[slot % SLOTS_PER_HISTORICAL_ROOT]
func BlockRootAtSlot(st *state.BeaconState, slot types.Slot, cfg *params.BeaconChainConfig) ([]byte, error) {
	if slot >= st.Slot() || st.Slot() > slot+cfg.SlotsPerHistoricalRoot {
		return nil, fmt.Errorf("slot %d out of bounds", slot)
	}
	return st.BlockRootAtIndex(uint64(slot % cfg.SlotsPerHistoricalRoot))
}

// BlockRoot returns the block root at the start slot of the epoch.
//
// Spec pseudocode definition:
//   def get_block_root(state: BeaconState, epoch: Epoch) -> Root:
//     return get_block_root_at_slot(state, compute_start_slot_at_epoch(epoch))
func BlockRoot(st *state.BeaconState, epoch types.Epoch, cfg *params.BeaconChainConfig) ([]byte, error) {
	s, err := slots.EpochStart(epoch, cfg)
	if err != nil {
		return nil, err
	}
	return BlockRootAtSlot(st, s, cfg)
}
