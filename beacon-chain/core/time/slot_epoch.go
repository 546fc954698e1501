// Package time exposes the epoch views of a beacon state.
package time

import (
	"github.com/dospore/helios/beacon-chain/state"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/time/slots"
)

// CurrentEpoch returns the epoch of the state's slot.
//
// Spec pseudocode definition:
//   def get_current_epoch(state: BeaconState) -> Epoch:
//     return compute_epoch_at_slot(state.slot)
func CurrentEpoch(st *state.BeaconState, cfg *params.BeaconChainConfig) types.Epoch {
	return slots.ToEpoch(st.Slot(), cfg)
}

// PrevEpoch returns the epoch before the state's epoch, clamped at genesis.
//
// Spec pseudocode definition:
//   def get_previous_epoch(state: BeaconState) -> Epoch:
//     current_epoch = get_current_epoch(state)
//     return GENESIS_EPOCH if current_epoch == GENESIS_EPOCH else Epoch(current_epoch - 1)
func PrevEpoch(st *state.BeaconState, cfg *params.BeaconChainConfig) types.Epoch {
	current := CurrentEpoch(st, cfg)
	if current == cfg.GenesisEpoch {
		return cfg.GenesisEpoch
	}
	return current - 1
}

// NextEpoch returns the epoch after the state's epoch.
func NextEpoch(st *state.BeaconState, cfg *params.BeaconChainConfig) types.Epoch {
	return CurrentEpoch(st, cfg) + 1
}
