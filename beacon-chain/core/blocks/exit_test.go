package blocks_test

import (
	"context"
	"testing"

	"github.com/dospore/helios/beacon-chain/core/blocks"
	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/testing/util"
)

func TestProcessVoluntaryExits_InitiatesExit(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	st.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))
	currentEpoch := cfg.ShardCommitteePeriod

	exits := []*eth.SignedVoluntaryExit{{
		Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 3},
	}}
	require.NoError(t, blocks.ProcessVoluntaryExits(
		context.Background(), st, exits, signing.SkipSignatureVerification, cfg,
	))

	val, err := st.ValidatorAtIndex(3)
	require.NoError(t, err)
	wantExit := helpers.ActivationExitEpoch(currentEpoch, cfg)
	assert.Equal(t, wantExit, val.ExitEpoch)
	assert.Equal(t, wantExit+cfg.MinValidatorWithdrawabilityDelay, val.WithdrawableEpoch)
}

func TestProcessVoluntaryExits_ChurnOrdersExitEpochs(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	// Force a churn limit of one so every extra exit spills into a later epoch.
	cfg.MinPerEpochChurnLimit = 1
	cfg.ChurnLimitQuotient = 1 << 16
	st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	st.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))
	currentEpoch := cfg.ShardCommitteePeriod

	exits := []*eth.SignedVoluntaryExit{
		{Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 1}},
		{Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 2}},
		{Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 3}},
	}
	require.NoError(t, blocks.ProcessVoluntaryExits(
		context.Background(), st, exits, signing.SkipSignatureVerification, cfg,
	))

	base := helpers.ActivationExitEpoch(currentEpoch, cfg)
	for i, idx := range []types.ValidatorIndex{1, 2, 3} {
		val, err := st.ValidatorAtIndex(idx)
		require.NoError(t, err)
		assert.Equal(t, base+types.Epoch(i), val.ExitEpoch, "expected strictly increasing exit epochs")
	}

	// A repeat exit for an already exiting validator fails the whole block.
	err := blocks.ProcessVoluntaryExits(
		context.Background(), st,
		[]*eth.SignedVoluntaryExit{{Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 1}}},
		signing.SkipSignatureVerification, cfg,
	)
	assert.ErrorContains(t, blocks.ValidatorAlreadyExitedMsg, err)
}

func TestVerifyExitAndSignature_Preconditions(t *testing.T) {
	cfg := params.MinimalSpecConfig()

	t.Run("not active long enough", func(t *testing.T) {
		st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
		st.SetSlot(cfg.SlotsPerEpoch)
		val, err := st.ValidatorAtIndex(1)
		require.NoError(t, err)
		err = blocks.VerifyExitAndSignature(val, st, &eth.SignedVoluntaryExit{
			Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 1},
		}, signing.SkipSignatureVerification, cfg)
		assert.ErrorContains(t, blocks.ValidatorCannotExitYetMsg, err)
	})
	t.Run("exit epoch in the future", func(t *testing.T) {
		st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
		st.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))
		val, err := st.ValidatorAtIndex(1)
		require.NoError(t, err)
		err = blocks.VerifyExitAndSignature(val, st, &eth.SignedVoluntaryExit{
			Exit: &eth.VoluntaryExit{Epoch: cfg.ShardCommitteePeriod + 10, ValidatorIndex: 1},
		}, signing.SkipSignatureVerification, cfg)
		assert.ErrorContains(t, "expected current epoch >= exit epoch", err)
	})
	t.Run("not active", func(t *testing.T) {
		st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
		st.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))
		val, err := st.ValidatorAtIndex(1)
		require.NoError(t, err)
		val.ActivationEpoch = cfg.FarFutureEpoch
		err = blocks.VerifyExitAndSignature(val, st, &eth.SignedVoluntaryExit{
			Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 1},
		}, signing.SkipSignatureVerification, cfg)
		assert.ErrorContains(t, "non-active validator cannot exit", err)
	})
}

func TestProcessVoluntaryExits_VerifiesSignature(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	st.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))

	signed := util.SignedVoluntaryExit(t, st, &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 3}, keys[3], cfg)
	require.NoError(t, blocks.ProcessVoluntaryExits(
		context.Background(), st, []*eth.SignedVoluntaryExit{signed}, signing.VerifyAllSignatures, cfg,
	))

	st2, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	st2.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))
	badSigned := util.SignedVoluntaryExit(t, st2, &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 3}, keys[4], cfg)
	err := blocks.ProcessVoluntaryExits(
		context.Background(), st2, []*eth.SignedVoluntaryExit{badSigned}, signing.VerifyAllSignatures, cfg,
	)
	assert.ErrorContains(t, "could not verify voluntary exit signature", err)
}
