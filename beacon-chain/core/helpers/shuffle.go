// Package helpers has the stateless and read-only computations over the
// beacon state that block processing is built from: active sets, committees,
// seeds, shuffling and balance arithmetic.
package helpers

import (
	"encoding/binary"
	"fmt"

	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/hash"
	"github.com/dospore/helios/encoding/bytesutil"
)

const (
	seedSize           = int8(32)
	roundSize          = int8(1)
	positionWindowSize = int8(4)
	pivotViewSize      = seedSize + roundSize
	totalSize          = seedSize + roundSize + positionWindowSize
)

// maxShuffleListSize caps the supported registry size. Buffer construction
// below assumes indices fit in 5 bytes.
const maxShuffleListSize = 1 << 40

// ComputeShuffledIndex returns the new index of a validator in the swap-or-not
// shuffle. With shuffle=true rounds run forward, computing the permuted index;
// with shuffle=false rounds run backwards, inverting the permutation.
//
// Spec pseudocode definition:
//   def compute_shuffled_index(index: uint64, index_count: uint64, seed: Bytes32) -> uint64
func ComputeShuffledIndex(index types.ValidatorIndex, indexCount uint64, seed [32]byte, shuffle bool, cfg *params.BeaconChainConfig) (types.ValidatorIndex, error) {
	if cfg.ShuffleRoundCount == 0 {
		return index, nil
	}
	if uint64(index) >= indexCount {
		return 0, fmt.Errorf("input index %d out of bounds: %d", index, indexCount)
	}
	if indexCount > maxShuffleListSize {
		return 0, fmt.Errorf("list size %d out of bounds", indexCount)
	}
	rounds := uint8(cfg.ShuffleRoundCount)
	round := uint8(0)
	if !shuffle {
		// Starting last round and iterating through the rounds in reverse,
		// un-applies the shuffling.
		round = rounds - 1
	}
	buf := make([]byte, totalSize)
	posBuffer := make([]byte, 8)
	hashfunc := hash.CustomSHA256Hasher()

	// Seed is always the first 32 bytes of the hash input, we never have to
	// change this part of the buffer.
	copy(buf[:32], seed[:])
	for {
		buf[seedSize] = round
		hashedValue := hashfunc(buf[:pivotViewSize])
		hashedValue8 := hashedValue[:8]
		pivot := bytesutil.FromBytes8(hashedValue8) % indexCount
		flip := (pivot + indexCount - uint64(index)) % indexCount
		// Consider every pair only once by picking the highest pair index.
		position := uint64(index)
		if flip > position {
			position = flip
		}
		// Add position except its last byte to []buf for randomness,
		// it will be used later to select a bit from the resulting hash.
		binary.LittleEndian.PutUint64(posBuffer[:8], position>>8)
		copy(buf[pivotViewSize:], posBuffer[:4])
		source := hashfunc(buf)
		// Effectively keep the first 5 bits of the byte value of the position,
		// and use it to retrieve one of the 32 bytes of the hash.
		byteV := source[(position&0xff)>>3]
		// Using the last 3 bits of the position of the byte, determine which bit to get.
		bitV := (byteV >> (position & 0x7)) & 0x1
		// If the bit is set, flip the index.
		if bitV == 1 {
			index = types.ValidatorIndex(flip)
		}
		if shuffle {
			round++
			if round == rounds {
				break
			}
		} else {
			if round == 0 {
				break
			}
			round--
		}
	}
	return index, nil
}
