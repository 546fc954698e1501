// Package slots contains conversions between slots and epochs. Every helper
// takes the chain config explicitly so callers on different networks never
// share hidden state.
package slots

import (
	"github.com/pkg/errors"

	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/math"
)

// ToEpoch returns the epoch number of the given slot.
//
// Spec pseudocode definition:
//   def compute_epoch_at_slot(slot: Slot) -> Epoch:
//     return Epoch(slot // SLOTS_PER_EPOCH)
func ToEpoch(slot types.Slot, cfg *params.BeaconChainConfig) types.Epoch {
	return types.Epoch(slot / cfg.SlotsPerEpoch)
}

// EpochStart returns the first slot of the given epoch.
//
// Spec pseudocode definition:
//   def compute_start_slot_at_epoch(epoch: Epoch) -> Slot:
//     return Slot(epoch * SLOTS_PER_EPOCH)
func EpochStart(epoch types.Epoch, cfg *params.BeaconChainConfig) (types.Slot, error) {
	slot, err := math.Mul64(uint64(epoch), uint64(cfg.SlotsPerEpoch))
	if err != nil {
		return 0, errors.Errorf("start slot calculation overflows: %v", err)
	}
	return types.Slot(slot), nil
}

// EpochEnd returns the last slot of the given epoch.
func EpochEnd(epoch types.Epoch, cfg *params.BeaconChainConfig) (types.Slot, error) {
	nextStart, err := EpochStart(epoch+1, cfg)
	if err != nil {
		return 0, err
	}
	return nextStart - 1, nil
}

// SinceEpochStarts returns the number of slots since the start of the slot's
// epoch.
func SinceEpochStarts(slot types.Slot, cfg *params.BeaconChainConfig) types.Slot {
	return slot % cfg.SlotsPerEpoch
}

// IsEpochStart reports whether the slot is the first of its epoch.
func IsEpochStart(slot types.Slot, cfg *params.BeaconChainConfig) bool {
	return slot%cfg.SlotsPerEpoch == 0
}
