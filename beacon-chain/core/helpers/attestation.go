package helpers

import (
	"github.com/pkg/errors"

	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/time/slots"
)

// ErrNilAttestation is returned when an attestation or one of its required
// sub-objects is nil.
var ErrNilAttestation = errors.New("attestation is nil")

// ValidateNilAttestation checks that the attestation and every field the
// processors dereference are non-nil.
func ValidateNilAttestation(attestation *eth.Attestation) error {
	if attestation == nil {
		return ErrNilAttestation
	}
	if attestation.Data == nil {
		return errors.New("attestation's data can't be nil")
	}
	if attestation.Data.Source == nil {
		return errors.New("attestation's source can't be nil")
	}
	if attestation.Data.Target == nil {
		return errors.New("attestation's target can't be nil")
	}
	if attestation.AggregationBits == nil {
		return errors.New("attestation's bitfield can't be nil")
	}
	return nil
}

// ValidateSlotTargetEpoch checks that the attestation slot lies inside its
// target epoch.
func ValidateSlotTargetEpoch(data *eth.AttestationData, cfg *params.BeaconChainConfig) error {
	if slots.ToEpoch(data.Slot, cfg) != data.Target.Epoch {
		return errors.Errorf("slot %d does not match target epoch %d", data.Slot, data.Target.Epoch)
	}
	return nil
}
