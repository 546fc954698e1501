package helpers

import (
	"github.com/pkg/errors"

	"github.com/dospore/helios/beacon-chain/state"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/hash"
	"github.com/dospore/helios/encoding/bytesutil"
)

// RandaoMix returns the randao mix of the epoch.
//
// Spec pseudocode definition:
//   def get_randao_mix(state: BeaconState, epoch: Epoch) -> Bytes32:
//     return state.randao_mixes[epoch % EPOCHS_PER_HISTORICAL_VECTOR]
func RandaoMix(st *state.BeaconState, epoch types.Epoch, cfg *params.BeaconChainConfig) ([]byte, error) {
	return st.RandaoMixAtIndex(uint64(epoch % cfg.EpochsPerHistoricalVector))
}

// Seed returns the shuffling seed of the epoch under a domain. The mix is
// taken MIN_SEED_LOOKAHEAD+1 epochs back so a proposer cannot bias their own
// shuffle.
//
// Spec pseudocode definition:
//   def get_seed(state: BeaconState, epoch: Epoch, domain_type: DomainType) -> Bytes32:
//     mix = get_randao_mix(state, Epoch(epoch + EPOCHS_PER_HISTORICAL_VECTOR - MIN_SEED_LOOKAHEAD - 1))
//     return hash(domain_type + uint_to_bytes(epoch) + mix)
func Seed(st *state.BeaconState, epoch types.Epoch, domain [4]byte, cfg *params.BeaconChainConfig) ([32]byte, error) {
	lookAheadEpoch := epoch + cfg.EpochsPerHistoricalVector - cfg.MinSeedLookahead - 1
	mix, err := RandaoMix(st, lookAheadEpoch, cfg)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not get randao mix")
	}
	seed := append(domain[:], bytesutil.Bytes8(uint64(epoch))...)
	seed = append(seed, mix...)
	return hash.Hash(seed), nil
}
