// Package util builds deterministic states, keys and deposits for tests.
package util

import (
	"testing"

	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/bls"
	"github.com/dospore/helios/crypto/hash"
	"github.com/dospore/helios/encoding/bytesutil"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/require"
)

// DeterministicKeys returns n secret keys derived from a counter, so repeated
// runs build identical registries.
func DeterministicKeys(t testing.TB, n uint64) []bls.SecretKey {
	keys := make([]bls.SecretKey, n)
	for i := uint64(0); i < n; i++ {
		secret, err := bls.SecretKeyFromBytes(bytesutil.PadTo(bytesutil.Uint64ToBytesLittleEndian(i+1), 32))
		require.NoError(t, err, "could not derive secret key %d", i)
		keys[i] = secret
	}
	return keys
}

// BLSWithdrawalCredentials derives the legacy withdrawal credentials bound to
// the public key: the BLS prefix byte followed by the tail of its hash.
func BLSWithdrawalCredentials(pubKey []byte, cfg *params.BeaconChainConfig) []byte {
	digest := hash.Hash(pubKey)
	creds := make([]byte, 32)
	creds[0] = cfg.BLSWithdrawalPrefixByte
	copy(creds[1:], digest[1:])
	return creds
}

// DeterministicGenesisState builds a state at the given fork version holding
// numValidators active validators at max effective balance, and returns the
// matching secret keys.
func DeterministicGenesisState(t testing.TB, numValidators uint64, v int, cfg *params.BeaconChainConfig) (*state.BeaconState, []bls.SecretKey) {
	keys := DeterministicKeys(t, numValidators)
	validators := make([]*eth.Validator, numValidators)
	balances := make([]uint64, numValidators)
	for i := uint64(0); i < numValidators; i++ {
		pubKey := keys[i].PublicKey().Marshal()
		validators[i] = &eth.Validator{
			PublicKey:                  pubKey,
			WithdrawalCredentials:      BLSWithdrawalCredentials(pubKey, cfg),
			EffectiveBalance:           cfg.MaxEffectiveBalance,
			ActivationEligibilityEpoch: 0,
			ActivationEpoch:            0,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
		}
		balances[i] = cfg.MaxEffectiveBalance
	}

	blockRoots := make([][]byte, cfg.SlotsPerHistoricalRoot)
	for i := range blockRoots {
		blockRoots[i] = make([]byte, 32)
	}
	randaoMixes := make([][]byte, cfg.EpochsPerHistoricalVector)
	for i := range randaoMixes {
		randaoMixes[i] = make([]byte, 32)
	}

	f := Fields(numValidators, v, cfg)
	f.Validators = validators
	f.Balances = balances
	f.BlockRoots = blockRoots
	f.RandaoMixes = randaoMixes

	st, err := state.New(v, f)
	require.NoError(t, err, "could not build state")
	return st, keys
}

// Fields returns a state field set with every vector sized per config and
// the per-fork collections initialized for the version.
func Fields(numValidators uint64, v int, cfg *params.BeaconChainConfig) state.Fields {
	f := state.Fields{
		GenesisValidatorsRoot: make([]byte, 32),
		Slot:                  0,
		Fork:                  forkAtVersion(v, cfg),
		LatestBlockHeader: &eth.BeaconBlockHeader{
			ParentRoot: make([]byte, 32),
			StateRoot:  make([]byte, 32),
			BodyRoot:   make([]byte, 32),
		},
		Slashings:                   make([]uint64, cfg.EpochsPerSlashingsVector),
		PreviousJustifiedCheckpoint: &eth.Checkpoint{Root: make([]byte, 32)},
		CurrentJustifiedCheckpoint:  &eth.Checkpoint{Root: make([]byte, 32)},
		FinalizedCheckpoint:         &eth.Checkpoint{Root: make([]byte, 32)},
		Eth1Data: &eth.Eth1Data{
			DepositRoot: make([]byte, 32),
			BlockHash:   make([]byte, 32),
		},
	}
	if v == version.Phase0 {
		f.PreviousEpochAttestations = []*eth.PendingAttestation{}
		f.CurrentEpochAttestations = []*eth.PendingAttestation{}
	} else {
		f.PreviousEpochParticipation = make([]byte, numValidators)
		f.CurrentEpochParticipation = make([]byte, numValidators)
		f.InactivityScores = make([]uint64, numValidators)
	}
	return f
}

func forkAtVersion(v int, cfg *params.BeaconChainConfig) *eth.Fork {
	switch v {
	case version.Phase0:
		return &eth.Fork{PreviousVersion: cfg.GenesisForkVersion, CurrentVersion: cfg.GenesisForkVersion}
	case version.Altair:
		return &eth.Fork{PreviousVersion: cfg.GenesisForkVersion, CurrentVersion: cfg.AltairForkVersion}
	case version.Bellatrix:
		return &eth.Fork{PreviousVersion: cfg.AltairForkVersion, CurrentVersion: cfg.BellatrixForkVersion}
	case version.Capella:
		return &eth.Fork{PreviousVersion: cfg.BellatrixForkVersion, CurrentVersion: cfg.CapellaForkVersion}
	default:
		return &eth.Fork{PreviousVersion: cfg.GenesisForkVersion, CurrentVersion: cfg.GenesisForkVersion}
	}
}
