package state

import (
	"bytes"

	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/encoding/bytesutil"
	"github.com/dospore/helios/runtime/version"
)

// Version returns the fork version tag of the state.
func (b *BeaconState) Version() int {
	return b.version
}

// Slot of the state.
func (b *BeaconState) Slot() types.Slot {
	return b.slot
}

// GenesisValidatorsRoot returns the root anchored at genesis, used in signing
// domains.
func (b *BeaconState) GenesisValidatorsRoot() []byte {
	return bytesutil.SafeCopyBytes(b.genesisValidatorsRoot)
}

// Fork of the state.
func (b *BeaconState) Fork() *eth.Fork {
	return b.fork.Copy()
}

// LatestBlockHeader of the state.
func (b *BeaconState) LatestBlockHeader() *eth.BeaconBlockHeader {
	return b.latestBlockHeader.Copy()
}

// NumValidators returns the size of the validator registry.
func (b *BeaconState) NumValidators() int {
	return len(b.validators)
}

// Validators returns the state-owned registry. Callers must not mutate the
// slice itself; records are mutated through UpdateValidatorAtIndex.
func (b *BeaconState) Validators() []*eth.Validator {
	return b.validators
}

// ValidatorAtIndex returns a copy of the validator record at the index.
func (b *BeaconState) ValidatorAtIndex(idx types.ValidatorIndex) (*eth.Validator, error) {
	if uint64(idx) >= uint64(len(b.validators)) {
		return nil, ErrOutOfBounds
	}
	return b.validators[idx].Copy(), nil
}

// PubkeyAtIndex returns the public key of the validator at the index.
func (b *BeaconState) PubkeyAtIndex(idx types.ValidatorIndex) ([48]byte, error) {
	if uint64(idx) >= uint64(len(b.validators)) {
		return [48]byte{}, ErrOutOfBounds
	}
	return bytesutil.ToBytes48(b.validators[idx].PublicKey), nil
}

// Balances returns the state-owned balance list.
func (b *BeaconState) Balances() []uint64 {
	return b.balances
}

// BalanceAtIndex returns the balance of the validator at the index.
func (b *BeaconState) BalanceAtIndex(idx types.ValidatorIndex) (uint64, error) {
	if uint64(idx) >= uint64(len(b.balances)) {
		return 0, ErrOutOfBounds
	}
	return b.balances[idx], nil
}

// Slashings returns the state-owned slashings accumulation vector.
func (b *BeaconState) Slashings() []uint64 {
	return b.slashings
}

// BlockRootAtIndex returns the block root stored at the index of the roots
// vector.
func (b *BeaconState) BlockRootAtIndex(idx uint64) ([]byte, error) {
	if idx >= uint64(len(b.blockRoots)) {
		return nil, ErrOutOfBounds
	}
	return bytesutil.SafeCopyBytes(b.blockRoots[idx]), nil
}

// RandaoMixAtIndex returns the randao mix stored at the index of the mixes
// vector.
func (b *BeaconState) RandaoMixAtIndex(idx uint64) ([]byte, error) {
	if idx >= uint64(len(b.randaoMixes)) {
		return nil, ErrOutOfBounds
	}
	return bytesutil.SafeCopyBytes(b.randaoMixes[idx]), nil
}

// PreviousEpochAttestations returns the pending attestation bucket of the
// previous epoch. Phase 0 only.
func (b *BeaconState) PreviousEpochAttestations() ([]*eth.PendingAttestation, error) {
	if b.version != version.Phase0 {
		return nil, errNotSupported("PreviousEpochAttestations", b.version)
	}
	return b.previousEpochAttestations, nil
}

// CurrentEpochAttestations returns the pending attestation bucket of the
// current epoch. Phase 0 only.
func (b *BeaconState) CurrentEpochAttestations() ([]*eth.PendingAttestation, error) {
	if b.version != version.Phase0 {
		return nil, errNotSupported("CurrentEpochAttestations", b.version)
	}
	return b.currentEpochAttestations, nil
}

// PreviousEpochParticipationAtIndex returns the participation flags of the
// validator for the previous epoch. Altair and later.
func (b *BeaconState) PreviousEpochParticipationAtIndex(idx types.ValidatorIndex) (byte, error) {
	if b.version == version.Phase0 {
		return 0, errNotSupported("PreviousEpochParticipationAtIndex", b.version)
	}
	if uint64(idx) >= uint64(len(b.previousEpochParticipation)) {
		return 0, ErrOutOfBounds
	}
	return b.previousEpochParticipation[idx], nil
}

// CurrentEpochParticipationAtIndex returns the participation flags of the
// validator for the current epoch. Altair and later.
func (b *BeaconState) CurrentEpochParticipationAtIndex(idx types.ValidatorIndex) (byte, error) {
	if b.version == version.Phase0 {
		return 0, errNotSupported("CurrentEpochParticipationAtIndex", b.version)
	}
	if uint64(idx) >= uint64(len(b.currentEpochParticipation)) {
		return 0, ErrOutOfBounds
	}
	return b.currentEpochParticipation[idx], nil
}

// InactivityScores returns the state-owned inactivity score list. Altair and
// later.
func (b *BeaconState) InactivityScores() ([]uint64, error) {
	if b.version == version.Phase0 {
		return nil, errNotSupported("InactivityScores", b.version)
	}
	return b.inactivityScores, nil
}

// PreviousJustifiedCheckpoint of the state.
func (b *BeaconState) PreviousJustifiedCheckpoint() *eth.Checkpoint {
	return b.previousJustifiedCheckpoint.Copy()
}

// CurrentJustifiedCheckpoint of the state.
func (b *BeaconState) CurrentJustifiedCheckpoint() *eth.Checkpoint {
	return b.currentJustifiedCheckpoint.Copy()
}

// FinalizedCheckpoint of the state.
func (b *BeaconState) FinalizedCheckpoint() *eth.Checkpoint {
	return b.finalizedCheckpoint.Copy()
}

// MatchCurrentJustifiedCheckpoint reports whether the given checkpoint equals
// the current justified checkpoint.
func (b *BeaconState) MatchCurrentJustifiedCheckpoint(c *eth.Checkpoint) bool {
	return checkpointsEqual(b.currentJustifiedCheckpoint, c)
}

// MatchPreviousJustifiedCheckpoint reports whether the given checkpoint
// equals the previous justified checkpoint.
func (b *BeaconState) MatchPreviousJustifiedCheckpoint(c *eth.Checkpoint) bool {
	return checkpointsEqual(b.previousJustifiedCheckpoint, c)
}

func checkpointsEqual(a, b *eth.Checkpoint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Epoch == b.Epoch && bytes.Equal(a.Root, b.Root)
}

// Eth1Data corresponding to the deposit contract view voted into the state.
func (b *BeaconState) Eth1Data() *eth.Eth1Data {
	return b.eth1Data.Copy()
}

// Eth1DepositIndex is the index of the next deposit to be processed.
func (b *BeaconState) Eth1DepositIndex() uint64 {
	return b.eth1DepositIndex
}
