// Package state holds the native beacon state and the accessors the block
// processors operate through. The state owns all of its slices; getters that
// expose mutable history (roots, mixes) return copies.
package state

import (
	"github.com/pkg/errors"

	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/runtime/version"
)

// ErrNilState is returned when a nil state is passed to a processor.
var ErrNilState = errors.New("state is nil")

// ErrOutOfBounds is returned for reads and writes past a registry or vector
// length.
var ErrOutOfBounds = errors.New("index out of bounds")

// BeaconState is the beacon chain state for a single fork version. One struct
// serves every fork; fields that only exist from a given fork on are guarded
// by the version tag.
type BeaconState struct {
	version               int
	genesisValidatorsRoot []byte
	slot                  types.Slot
	fork                  *eth.Fork
	latestBlockHeader     *eth.BeaconBlockHeader
	blockRoots            [][]byte
	randaoMixes           [][]byte
	validators            []*eth.Validator
	balances              []uint64
	slashings             []uint64

	// Phase 0 only.
	previousEpochAttestations []*eth.PendingAttestation
	currentEpochAttestations  []*eth.PendingAttestation

	// Altair and later.
	previousEpochParticipation []byte
	currentEpochParticipation  []byte
	inactivityScores           []uint64

	previousJustifiedCheckpoint *eth.Checkpoint
	currentJustifiedCheckpoint  *eth.Checkpoint
	finalizedCheckpoint         *eth.Checkpoint

	eth1Data         *eth.Eth1Data
	eth1DepositIndex uint64
}

// Fields carries the initial values for a beacon state. The state takes
// ownership of every slice and pointer passed in.
type Fields struct {
	GenesisValidatorsRoot       []byte
	Slot                        types.Slot
	Fork                        *eth.Fork
	LatestBlockHeader           *eth.BeaconBlockHeader
	BlockRoots                  [][]byte
	RandaoMixes                 [][]byte
	Validators                  []*eth.Validator
	Balances                    []uint64
	Slashings                   []uint64
	PreviousEpochAttestations   []*eth.PendingAttestation
	CurrentEpochAttestations    []*eth.PendingAttestation
	PreviousEpochParticipation  []byte
	CurrentEpochParticipation   []byte
	InactivityScores            []uint64
	PreviousJustifiedCheckpoint *eth.Checkpoint
	CurrentJustifiedCheckpoint  *eth.Checkpoint
	FinalizedCheckpoint         *eth.Checkpoint
	Eth1Data                    *eth.Eth1Data
	Eth1DepositIndex            uint64
}

// New assembles a beacon state at the given fork version.
func New(v int, f Fields) (*BeaconState, error) {
	if v < version.Phase0 || v > version.Capella {
		return nil, errors.Errorf("unrecognized state version %d", v)
	}
	return &BeaconState{
		version:                     v,
		genesisValidatorsRoot:       f.GenesisValidatorsRoot,
		slot:                        f.Slot,
		fork:                        f.Fork,
		latestBlockHeader:           f.LatestBlockHeader,
		blockRoots:                  f.BlockRoots,
		randaoMixes:                 f.RandaoMixes,
		validators:                  f.Validators,
		balances:                    f.Balances,
		slashings:                   f.Slashings,
		previousEpochAttestations:   f.PreviousEpochAttestations,
		currentEpochAttestations:    f.CurrentEpochAttestations,
		previousEpochParticipation:  f.PreviousEpochParticipation,
		currentEpochParticipation:   f.CurrentEpochParticipation,
		inactivityScores:            f.InactivityScores,
		previousJustifiedCheckpoint: f.PreviousJustifiedCheckpoint,
		currentJustifiedCheckpoint:  f.CurrentJustifiedCheckpoint,
		finalizedCheckpoint:         f.FinalizedCheckpoint,
		eth1Data:                    f.Eth1Data,
		eth1DepositIndex:            f.Eth1DepositIndex,
	}, nil
}

func errNotSupported(funcName string, v int) error {
	return errors.Errorf("%s is not supported for %s", funcName, version.String(v))
}
