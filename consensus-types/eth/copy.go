package eth

import (
	"github.com/dospore/helios/encoding/bytesutil"
)

// Copy returns a deep copy of the validator record.
func (v *Validator) Copy() *Validator {
	if v == nil {
		return nil
	}
	return &Validator{
		PublicKey:                  bytesutil.SafeCopyBytes(v.PublicKey),
		WithdrawalCredentials:      bytesutil.SafeCopyBytes(v.WithdrawalCredentials),
		EffectiveBalance:           v.EffectiveBalance,
		Slashed:                    v.Slashed,
		ActivationEligibilityEpoch: v.ActivationEligibilityEpoch,
		ActivationEpoch:            v.ActivationEpoch,
		ExitEpoch:                  v.ExitEpoch,
		WithdrawableEpoch:          v.WithdrawableEpoch,
	}
}

// Copy returns a deep copy of the checkpoint.
func (c *Checkpoint) Copy() *Checkpoint {
	if c == nil {
		return nil
	}
	return &Checkpoint{
		Epoch: c.Epoch,
		Root:  bytesutil.SafeCopyBytes(c.Root),
	}
}

// Copy returns a deep copy of the attestation data.
func (a *AttestationData) Copy() *AttestationData {
	if a == nil {
		return nil
	}
	return &AttestationData{
		Slot:            a.Slot,
		CommitteeIndex:  a.CommitteeIndex,
		BeaconBlockRoot: bytesutil.SafeCopyBytes(a.BeaconBlockRoot),
		Source:          a.Source.Copy(),
		Target:          a.Target.Copy(),
	}
}

// Copy returns a deep copy of the attestation.
func (a *Attestation) Copy() *Attestation {
	if a == nil {
		return nil
	}
	return &Attestation{
		AggregationBits: bytesutil.SafeCopyBytes(a.AggregationBits),
		Data:            a.Data.Copy(),
		Signature:       bytesutil.SafeCopyBytes(a.Signature),
	}
}

// Copy returns a deep copy of the pending attestation.
func (a *PendingAttestation) Copy() *PendingAttestation {
	if a == nil {
		return nil
	}
	return &PendingAttestation{
		AggregationBits: bytesutil.SafeCopyBytes(a.AggregationBits),
		Data:            a.Data.Copy(),
		InclusionDelay:  a.InclusionDelay,
		ProposerIndex:   a.ProposerIndex,
	}
}

// Copy returns a deep copy of the eth1 data.
func (e *Eth1Data) Copy() *Eth1Data {
	if e == nil {
		return nil
	}
	return &Eth1Data{
		DepositRoot:  bytesutil.SafeCopyBytes(e.DepositRoot),
		DepositCount: e.DepositCount,
		BlockHash:    bytesutil.SafeCopyBytes(e.BlockHash),
	}
}

// Copy returns a deep copy of the fork.
func (f *Fork) Copy() *Fork {
	if f == nil {
		return nil
	}
	return &Fork{
		PreviousVersion: bytesutil.SafeCopyBytes(f.PreviousVersion),
		CurrentVersion:  bytesutil.SafeCopyBytes(f.CurrentVersion),
		Epoch:           f.Epoch,
	}
}

// Copy returns a deep copy of the block header.
func (b *BeaconBlockHeader) Copy() *BeaconBlockHeader {
	if b == nil {
		return nil
	}
	return &BeaconBlockHeader{
		Slot:          b.Slot,
		ProposerIndex: b.ProposerIndex,
		ParentRoot:    bytesutil.SafeCopyBytes(b.ParentRoot),
		StateRoot:     bytesutil.SafeCopyBytes(b.StateRoot),
		BodyRoot:      bytesutil.SafeCopyBytes(b.BodyRoot),
	}
}
