package state

import (
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/encoding/bytesutil"
)

// Copy returns a deep copy of the state. Processing a block against the copy
// leaves the original untouched.
func (b *BeaconState) Copy() *BeaconState {
	validators := make([]*eth.Validator, len(b.validators))
	for i, v := range b.validators {
		validators[i] = v.Copy()
	}
	prevAtts := copyPendingAttestations(b.previousEpochAttestations)
	currAtts := copyPendingAttestations(b.currentEpochAttestations)

	return &BeaconState{
		version:                     b.version,
		genesisValidatorsRoot:       bytesutil.SafeCopyBytes(b.genesisValidatorsRoot),
		slot:                        b.slot,
		fork:                        b.fork.Copy(),
		latestBlockHeader:           b.latestBlockHeader.Copy(),
		blockRoots:                  bytesutil.SafeCopy2dBytes(b.blockRoots),
		randaoMixes:                 bytesutil.SafeCopy2dBytes(b.randaoMixes),
		validators:                  validators,
		balances:                    copyUint64s(b.balances),
		slashings:                   copyUint64s(b.slashings),
		previousEpochAttestations:   prevAtts,
		currentEpochAttestations:    currAtts,
		previousEpochParticipation:  bytesutil.SafeCopyBytes(b.previousEpochParticipation),
		currentEpochParticipation:   bytesutil.SafeCopyBytes(b.currentEpochParticipation),
		inactivityScores:            copyUint64s(b.inactivityScores),
		previousJustifiedCheckpoint: b.previousJustifiedCheckpoint.Copy(),
		currentJustifiedCheckpoint:  b.currentJustifiedCheckpoint.Copy(),
		finalizedCheckpoint:         b.finalizedCheckpoint.Copy(),
		eth1Data:                    b.eth1Data.Copy(),
		eth1DepositIndex:            b.eth1DepositIndex,
	}
}

func copyUint64s(src []uint64) []uint64 {
	if src == nil {
		return nil
	}
	dst := make([]uint64, len(src))
	copy(dst, src)
	return dst
}

func copyPendingAttestations(src []*eth.PendingAttestation) []*eth.PendingAttestation {
	if src == nil {
		return nil
	}
	dst := make([]*eth.PendingAttestation, len(src))
	for i, a := range src {
		dst[i] = a.Copy()
	}
	return dst
}
