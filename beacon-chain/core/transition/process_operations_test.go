package transition_test

import (
	"context"
	"testing"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/beacon-chain/core/transition"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/testing/util"
)

// fullBlockBody carries one operation of every pre-Capella kind, valid for a
// phase 0 state whose slot sits at the shard committee period boundary.
func fullBlockBody(t *testing.T, st *state.BeaconState, cctx *cache.ConsensusContext, cfg *params.BeaconChainConfig) *eth.BeaconBlockBody {
	body := util.EmptyBlockBody()

	body.ProposerSlashings = []*eth.ProposerSlashing{{
		Header_1: &eth.SignedBeaconBlockHeader{Header: util.BlockHeader(0, 5, 1)},
		Header_2: &eth.SignedBeaconBlockHeader{Header: util.BlockHeader(0, 5, 2)},
	}}

	makeData := func(rootByte byte) *eth.AttestationData {
		root := make([]byte, 32)
		root[0] = rootByte
		return &eth.AttestationData{
			BeaconBlockRoot: root,
			Source:          &eth.Checkpoint{Root: make([]byte, 32)},
			Target:          &eth.Checkpoint{Root: make([]byte, 32)},
		}
	}
	body.AttesterSlashings = []*eth.AttesterSlashing{{
		Attestation_1: &eth.IndexedAttestation{AttestingIndices: []uint64{10, 11}, Data: makeData(1)},
		Attestation_2: &eth.IndexedAttestation{AttestingIndices: []uint64{10, 11}, Data: makeData(2)},
	}}

	body.Attestations = []*eth.Attestation{util.FullAttestation(t, st, st.Slot()-1, 0, cctx, cfg)}

	newKey := util.DeterministicKeys(t, 66)[65]
	data := util.SignedDepositData(t, newKey, cfg.MaxEffectiveBalance, cfg)
	deposits, root := util.DepositsWithProofs(t, []*eth.DepositData{data}, 0, cfg)
	body.Deposits = deposits
	st.SetEth1Data(&eth.Eth1Data{DepositRoot: root, DepositCount: 1, BlockHash: make([]byte, 32)})

	body.VoluntaryExits = []*eth.SignedVoluntaryExit{{
		Exit: &eth.VoluntaryExit{Epoch: 0, ValidatorIndex: 20},
	}}
	return body
}

func TestProcessOperations_AppliesEveryOperation(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	st.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))
	cctx := cache.NewConsensusContext()
	cctx.SetProposerIndex(0)

	body := fullBlockBody(t, st, cctx, cfg)
	require.NoError(t, transition.ProcessOperations(
		context.Background(), st, body, cctx, signing.SkipSignatureVerification, cfg,
	))

	for _, idx := range []types.ValidatorIndex{5, 10, 11} {
		val, err := st.ValidatorAtIndex(idx)
		require.NoError(t, err)
		assert.Equal(t, true, val.Slashed, "expected validator %d slashed", idx)
	}
	previous, err := st.PreviousEpochAttestations()
	require.NoError(t, err)
	assert.Equal(t, 1, len(previous))
	assert.Equal(t, 65, st.NumValidators(), "deposit adds a validator")
	assert.Equal(t, uint64(1), st.Eth1DepositIndex())
	exited, err := st.ValidatorAtIndex(20)
	require.NoError(t, err)
	assert.NotEqual(t, cfg.FarFutureEpoch, exited.ExitEpoch, "exit initiated")
}

func TestProcessOperations_Deterministic(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	st.SetSlot(types.Slot(uint64(cfg.ShardCommitteePeriod) * uint64(cfg.SlotsPerEpoch)))
	cctx := cache.NewConsensusContext()
	cctx.SetProposerIndex(0)
	body := fullBlockBody(t, st, cctx, cfg)

	st2 := st.Copy()
	cctx2 := cache.NewConsensusContext()
	cctx2.SetProposerIndex(0)

	require.NoError(t, transition.ProcessOperations(
		context.Background(), st, body, cctx, signing.SkipSignatureVerification, cfg,
	))
	require.NoError(t, transition.ProcessOperations(
		context.Background(), st2, body, cctx2, signing.SkipSignatureVerification, cfg,
	))

	require.DeepEqual(t, st.Validators(), st2.Validators())
	require.DeepEqual(t, st.Balances(), st2.Balances())
	require.DeepEqual(t, st.Slashings(), st2.Slashings())
	assert.Equal(t, st.Eth1DepositIndex(), st2.Eth1DepositIndex())
	p1, err := st.PreviousEpochAttestations()
	require.NoError(t, err)
	p2, err := st2.PreviousEpochAttestations()
	require.NoError(t, err)
	require.DeepEqual(t, p1, p2)
}

func TestProcessOperations_ForkDispatch(t *testing.T) {
	cfg := params.MinimalSpecConfig()

	t.Run("phase0 buffers pending attestations", func(t *testing.T) {
		st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
		st.SetSlot(1)
		cctx := cache.NewConsensusContext()
		cctx.SetProposerIndex(0)
		body := util.EmptyBlockBody()
		body.Attestations = []*eth.Attestation{util.FullAttestation(t, st, 0, 0, cctx, cfg)}

		require.NoError(t, transition.ProcessOperations(
			context.Background(), st, body, cctx, signing.SkipSignatureVerification, cfg,
		))
		current, err := st.CurrentEpochAttestations()
		require.NoError(t, err)
		assert.Equal(t, 1, len(current))
	})
	t.Run("altair sets participation flags", func(t *testing.T) {
		st, _ := util.DeterministicGenesisState(t, 64, version.Altair, cfg)
		st.SetSlot(1)
		cctx := cache.NewConsensusContext()
		cctx.SetProposerIndex(0)
		body := util.EmptyBlockBody()
		body.Attestations = []*eth.Attestation{util.FullAttestation(t, st, 0, 0, cctx, cfg)}

		require.NoError(t, transition.ProcessOperations(
			context.Background(), st, body, cctx, signing.SkipSignatureVerification, cfg,
		))
		committee, err := cctx.BeaconCommittee(st, 0, 0, cfg)
		require.NoError(t, err)
		participation, err := st.CurrentEpochParticipationAtIndex(committee[0])
		require.NoError(t, err)
		assert.NotEqual(t, byte(0), participation)
	})
}

func TestProcessOperations_RejectsOversizedLists(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 64, version.Phase0, cfg)
	cctx := cache.NewConsensusContext()

	body := util.EmptyBlockBody()
	body.ProposerSlashings = make([]*eth.ProposerSlashing, cfg.MaxProposerSlashings+1)
	err := transition.ProcessOperations(
		context.Background(), st, body, cctx, signing.SkipSignatureVerification, cfg,
	)
	assert.ErrorContains(t, "exceeds allowed threshold", err)
}

func TestProcessOperations_BLSChangesBeforeCapella(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 8, version.Phase0, cfg)
	cctx := cache.NewConsensusContext()

	body := util.EmptyBlockBody()
	body.BLSToExecutionChanges = []*eth.SignedBLSToExecutionChange{{
		Message: &eth.BLSToExecutionChange{
			ValidatorIndex:     3,
			FromBlsPubkey:      keys[3].PublicKey().Marshal(),
			ToExecutionAddress: make([]byte, 20),
		},
	}}
	err := transition.ProcessOperations(
		context.Background(), st, body, cctx, signing.SkipSignatureVerification, cfg,
	)
	assert.ErrorContains(t, "not supported before capella", err)
}

func TestProcessOperations_CapellaRotatesCredentials(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 8, version.Capella, cfg)
	cctx := cache.NewConsensusContext()
	cctx.SetProposerIndex(0)

	addr := make([]byte, 20)
	addr[19] = 0x01
	body := util.EmptyBlockBody()
	body.BLSToExecutionChanges = []*eth.SignedBLSToExecutionChange{{
		Message: &eth.BLSToExecutionChange{
			ValidatorIndex:     3,
			FromBlsPubkey:      keys[3].PublicKey().Marshal(),
			ToExecutionAddress: addr,
		},
	}}
	require.NoError(t, transition.ProcessOperations(
		context.Background(), st, body, cctx, signing.SkipSignatureVerification, cfg,
	))
	val, err := st.ValidatorAtIndex(3)
	require.NoError(t, err)
	assert.Equal(t, cfg.ETH1AddressWithdrawalPrefixByte, val.WithdrawalCredentials[0])
}

func TestProcessOperations_NilInputs(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, _ := util.DeterministicGenesisState(t, 8, version.Phase0, cfg)

	err := transition.ProcessOperations(
		context.Background(), nil, util.EmptyBlockBody(), nil, signing.SkipSignatureVerification, cfg,
	)
	assert.ErrorIs(t, err, state.ErrNilState)

	err = transition.ProcessOperations(
		context.Background(), st, nil, nil, signing.SkipSignatureVerification, cfg,
	)
	assert.ErrorContains(t, "nil block body", err)
}
