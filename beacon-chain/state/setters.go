package state

import (
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/runtime/version"
)

// SetSlot sets the slot of the state.
func (b *BeaconState) SetSlot(slot types.Slot) {
	b.slot = slot
}

// UpdateValidatorAtIndex replaces the validator record at the index. The
// state takes ownership of the record.
func (b *BeaconState) UpdateValidatorAtIndex(idx types.ValidatorIndex, val *eth.Validator) error {
	if uint64(idx) >= uint64(len(b.validators)) {
		return ErrOutOfBounds
	}
	b.validators[idx] = val
	return nil
}

// UpdateBalancesAtIndex sets the balance of the validator at the index.
func (b *BeaconState) UpdateBalancesAtIndex(idx types.ValidatorIndex, balance uint64) error {
	if uint64(idx) >= uint64(len(b.balances)) {
		return ErrOutOfBounds
	}
	b.balances[idx] = balance
	return nil
}

// UpdateSlashingsAtIndex sets the slashings accumulator at the index of the
// vector.
func (b *BeaconState) UpdateSlashingsAtIndex(idx, val uint64) error {
	if idx >= uint64(len(b.slashings)) {
		return ErrOutOfBounds
	}
	b.slashings[idx] = val
	return nil
}

// AppendValidator adds a new record to the end of the registry.
func (b *BeaconState) AppendValidator(val *eth.Validator) error {
	b.validators = append(b.validators, val)
	return nil
}

// AppendBalance adds a balance to the end of the balance list.
func (b *BeaconState) AppendBalance(balance uint64) error {
	b.balances = append(b.balances, balance)
	return nil
}

// AppendInactivityScore adds a score to the end of the inactivity score list.
// Altair and later.
func (b *BeaconState) AppendInactivityScore(score uint64) error {
	if b.version == version.Phase0 {
		return errNotSupported("AppendInactivityScore", b.version)
	}
	b.inactivityScores = append(b.inactivityScores, score)
	return nil
}

// AppendPreviousParticipationBits extends the previous epoch participation
// list by one validator. Altair and later.
func (b *BeaconState) AppendPreviousParticipationBits(bits byte) error {
	if b.version == version.Phase0 {
		return errNotSupported("AppendPreviousParticipationBits", b.version)
	}
	b.previousEpochParticipation = append(b.previousEpochParticipation, bits)
	return nil
}

// AppendCurrentParticipationBits extends the current epoch participation list
// by one validator. Altair and later.
func (b *BeaconState) AppendCurrentParticipationBits(bits byte) error {
	if b.version == version.Phase0 {
		return errNotSupported("AppendCurrentParticipationBits", b.version)
	}
	b.currentEpochParticipation = append(b.currentEpochParticipation, bits)
	return nil
}

// SetPreviousEpochParticipationAtIndex sets the participation flags of the
// validator for the previous epoch. Altair and later.
func (b *BeaconState) SetPreviousEpochParticipationAtIndex(idx types.ValidatorIndex, bits byte) error {
	if b.version == version.Phase0 {
		return errNotSupported("SetPreviousEpochParticipationAtIndex", b.version)
	}
	if uint64(idx) >= uint64(len(b.previousEpochParticipation)) {
		return ErrOutOfBounds
	}
	b.previousEpochParticipation[idx] = bits
	return nil
}

// SetCurrentEpochParticipationAtIndex sets the participation flags of the
// validator for the current epoch. Altair and later.
func (b *BeaconState) SetCurrentEpochParticipationAtIndex(idx types.ValidatorIndex, bits byte) error {
	if b.version == version.Phase0 {
		return errNotSupported("SetCurrentEpochParticipationAtIndex", b.version)
	}
	if uint64(idx) >= uint64(len(b.currentEpochParticipation)) {
		return ErrOutOfBounds
	}
	b.currentEpochParticipation[idx] = bits
	return nil
}

// AppendPreviousEpochAttestations buffers a pending attestation into the
// previous epoch bucket. Phase 0 only.
func (b *BeaconState) AppendPreviousEpochAttestations(att *eth.PendingAttestation) error {
	if b.version != version.Phase0 {
		return errNotSupported("AppendPreviousEpochAttestations", b.version)
	}
	b.previousEpochAttestations = append(b.previousEpochAttestations, att)
	return nil
}

// AppendCurrentEpochAttestations buffers a pending attestation into the
// current epoch bucket. Phase 0 only.
func (b *BeaconState) AppendCurrentEpochAttestations(att *eth.PendingAttestation) error {
	if b.version != version.Phase0 {
		return errNotSupported("AppendCurrentEpochAttestations", b.version)
	}
	b.currentEpochAttestations = append(b.currentEpochAttestations, att)
	return nil
}

// SetEth1DepositIndex sets the index of the next deposit to be processed.
func (b *BeaconState) SetEth1DepositIndex(idx uint64) {
	b.eth1DepositIndex = idx
}

// SetEth1Data replaces the deposit contract view of the state.
func (b *BeaconState) SetEth1Data(data *eth.Eth1Data) {
	b.eth1Data = data
}
