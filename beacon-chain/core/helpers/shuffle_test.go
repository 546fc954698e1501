package helpers_test

import (
	"testing"

	"github.com/dospore/helios/beacon-chain/core/helpers"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/testing/util"
)

func TestComputeShuffledIndex_Deterministic(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	seed := [32]byte{1, 2, 3}
	first, err := helpers.ComputeShuffledIndex(13, 100, seed, true, cfg)
	require.NoError(t, err)
	second, err := helpers.ComputeShuffledIndex(13, 100, seed, true, cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeShuffledIndex_Permutation(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	seed := [32]byte{42}
	const count = 97

	seen := make(map[types.ValidatorIndex]bool, count)
	for i := uint64(0); i < count; i++ {
		shuffled, err := helpers.ComputeShuffledIndex(types.ValidatorIndex(i), count, seed, true, cfg)
		require.NoError(t, err)
		require.Equal(t, true, uint64(shuffled) < count, "shuffled index out of range")
		require.Equal(t, false, seen[shuffled], "shuffle produced a collision at input %d", i)
		seen[shuffled] = true
	}
	assert.Equal(t, count, len(seen))
}

func TestComputeShuffledIndex_RoundTrip(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	seed := [32]byte{7, 7, 7}
	const count = 64

	for i := uint64(0); i < count; i++ {
		shuffled, err := helpers.ComputeShuffledIndex(types.ValidatorIndex(i), count, seed, true, cfg)
		require.NoError(t, err)
		unshuffled, err := helpers.ComputeShuffledIndex(shuffled, count, seed, false, cfg)
		require.NoError(t, err)
		assert.Equal(t, types.ValidatorIndex(i), unshuffled)
	}
}

func TestComputeShuffledIndex_Errors(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	seed := [32]byte{}
	_, err := helpers.ComputeShuffledIndex(0, 0, seed, true, cfg)
	assert.NotNil(t, err, "zero sized list must be rejected")
	_, err = helpers.ComputeShuffledIndex(10, 10, seed, true, cfg)
	assert.NotNil(t, err, "index beyond list size must be rejected")
}

func TestSeed_DiffersByDomainAndEpoch(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 8, version.Phase0, cfg)

	proposerSeed, err := helpers.Seed(st, 0, cfg.DomainBeaconProposer, cfg)
	require.NoError(t, err)
	attesterSeed, err := helpers.Seed(st, 0, cfg.DomainBeaconAttester, cfg)
	require.NoError(t, err)
	assert.DeepNotEqual(t, proposerSeed, attesterSeed)

	laterSeed, err := helpers.Seed(st, 1, cfg.DomainBeaconProposer, cfg)
	require.NoError(t, err)
	assert.DeepNotEqual(t, proposerSeed, laterSeed)
}
