package state_test

import (
	"testing"

	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/testing/util"
)

func TestNew_RejectsUnknownVersion(t *testing.T) {
	_, err := state.New(-1, state.Fields{})
	assert.ErrorContains(t, "unrecognized state version", err)
	_, err = state.New(version.Capella+1, state.Fields{})
	assert.ErrorContains(t, "unrecognized state version", err)
}

func TestValidatorAtIndex_ReturnsCopy(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 4, version.Phase0, cfg)

	val, err := st.ValidatorAtIndex(1)
	require.NoError(t, err)
	val.Slashed = true
	val.EffectiveBalance = 0

	fresh, err := st.ValidatorAtIndex(1)
	require.NoError(t, err)
	assert.Equal(t, false, fresh.Slashed, "mutating a returned record must not touch the registry")
	assert.Equal(t, cfg.MaxEffectiveBalance, fresh.EffectiveBalance)
}

func TestOutOfBoundsAccess(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 4, version.Phase0, cfg)

	_, err := st.ValidatorAtIndex(4)
	assert.ErrorIs(t, err, state.ErrOutOfBounds)
	_, err = st.BalanceAtIndex(4)
	assert.ErrorIs(t, err, state.ErrOutOfBounds)
	_, err = st.PubkeyAtIndex(100)
	assert.ErrorIs(t, err, state.ErrOutOfBounds)
	_, err = st.BlockRootAtIndex(uint64(cfg.SlotsPerHistoricalRoot))
	assert.ErrorIs(t, err, state.ErrOutOfBounds)
	assert.ErrorIs(t, st.UpdateValidatorAtIndex(4, &eth.Validator{}), state.ErrOutOfBounds)
	assert.ErrorIs(t, st.UpdateBalancesAtIndex(4, 0), state.ErrOutOfBounds)
	assert.ErrorIs(t, st.UpdateSlashingsAtIndex(uint64(cfg.EpochsPerSlashingsVector), 0), state.ErrOutOfBounds)
}

func TestVersionGating(t *testing.T) {
	cfg := params.MinimalSpecConfig()

	t.Run("phase0 rejects participation accessors", func(t *testing.T) {
		st, _ := util.DeterministicGenesisState(t, 4, version.Phase0, cfg)
		_, err := st.CurrentEpochParticipationAtIndex(0)
		assert.ErrorContains(t, "not supported", err)
		_, err = st.InactivityScores()
		assert.ErrorContains(t, "not supported", err)
		assert.ErrorContains(t, "not supported", st.AppendInactivityScore(0))
		assert.ErrorContains(t, "not supported", st.AppendCurrentParticipationBits(0))
	})
	t.Run("altair rejects pending attestation buckets", func(t *testing.T) {
		st, _ := util.DeterministicGenesisState(t, 4, version.Altair, cfg)
		_, err := st.CurrentEpochAttestations()
		assert.ErrorContains(t, "not supported", err)
		assert.ErrorContains(t, "not supported", st.AppendCurrentEpochAttestations(&eth.PendingAttestation{}))
	})
}

func TestCopy_DeepIndependence(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 4, version.Phase0, cfg)
	cp := st.Copy()

	val, err := st.ValidatorAtIndex(0)
	require.NoError(t, err)
	val.Slashed = true
	require.NoError(t, st.UpdateValidatorAtIndex(0, val))
	require.NoError(t, st.UpdateBalancesAtIndex(1, 1))
	require.NoError(t, st.UpdateSlashingsAtIndex(0, 99))
	st.SetSlot(42)
	st.SetEth1DepositIndex(7)
	require.NoError(t, st.AppendCurrentEpochAttestations(&eth.PendingAttestation{}))

	copied, err := cp.ValidatorAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, false, copied.Slashed)
	balance, err := cp.BalanceAtIndex(1)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxEffectiveBalance, balance)
	assert.Equal(t, uint64(0), cp.Slashings()[0])
	assert.Equal(t, types.Slot(0), cp.Slot())
	assert.Equal(t, uint64(0), cp.Eth1DepositIndex())
	current, err := cp.CurrentEpochAttestations()
	require.NoError(t, err)
	assert.Equal(t, 0, len(current))
}

func TestCopy_AltairParticipationIndependent(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 4, version.Altair, cfg)
	cp := st.Copy()

	require.NoError(t, st.SetCurrentEpochParticipationAtIndex(0, 0b111))
	flags, err := cp.CurrentEpochParticipationAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0), flags)
}

func TestMatchJustifiedCheckpoints(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 4, version.Phase0, cfg)

	assert.Equal(t, true, st.MatchCurrentJustifiedCheckpoint(st.CurrentJustifiedCheckpoint()))
	other := st.CurrentJustifiedCheckpoint()
	other.Epoch++
	assert.Equal(t, false, st.MatchCurrentJustifiedCheckpoint(other))
	assert.Equal(t, false, st.MatchPreviousJustifiedCheckpoint(nil))
}
