package util

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/bls"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/time/slots"
)

// FullAttestation builds an attestation for the committee at the slot with
// every aggregation bit set. The vote tracks the state's justified checkpoint
// and its stored block roots, so the timeliness flags resolve as matched.
func FullAttestation(
	t testing.TB,
	st *state.BeaconState,
	slot types.Slot,
	committeeIndex types.CommitteeIndex,
	cctx *cache.ConsensusContext,
	cfg *params.BeaconChainConfig,
) *eth.Attestation {
	targetEpoch := slots.ToEpoch(slot, cfg)
	var source *eth.Checkpoint
	if targetEpoch == slots.ToEpoch(st.Slot(), cfg) {
		source = st.CurrentJustifiedCheckpoint()
	} else {
		source = st.PreviousJustifiedCheckpoint()
	}
	targetStart, err := slots.EpochStart(targetEpoch, cfg)
	require.NoError(t, err, "could not compute target epoch start")
	targetRoot, err := st.BlockRootAtIndex(uint64(targetStart % cfg.SlotsPerHistoricalRoot))
	require.NoError(t, err, "could not read target root")
	headRoot, err := st.BlockRootAtIndex(uint64(slot % cfg.SlotsPerHistoricalRoot))
	require.NoError(t, err, "could not read head root")

	committee, err := cctx.BeaconCommittee(st, slot, committeeIndex, cfg)
	require.NoError(t, err, "could not compute committee")
	bits := bitfield.NewBitlist(uint64(len(committee)))
	for i := uint64(0); i < uint64(len(committee)); i++ {
		bits.SetBitAt(i, true)
	}
	return &eth.Attestation{
		AggregationBits: bits,
		Data: &eth.AttestationData{
			Slot:            slot,
			CommitteeIndex:  committeeIndex,
			BeaconBlockRoot: headRoot,
			Source:          source,
			Target:          &eth.Checkpoint{Epoch: targetEpoch, Root: targetRoot},
		},
	}
}

// SignAttestation aggregates the committee members' signatures over the
// attestation data and attaches the result.
func SignAttestation(
	t testing.TB,
	st *state.BeaconState,
	att *eth.Attestation,
	committee []types.ValidatorIndex,
	keys []bls.SecretKey,
	cfg *params.BeaconChainConfig,
) {
	domain, err := signing.Domain(st.Fork(), att.Data.Target.Epoch, cfg.DomainBeaconAttester, st.GenesisValidatorsRoot())
	require.NoError(t, err, "could not compute attester domain")
	root, err := signing.ComputeSigningRoot(att.Data, domain)
	require.NoError(t, err, "could not compute attestation signing root")

	var sigs []bls.Signature
	for i, vIdx := range committee {
		if !att.AggregationBits.BitAt(uint64(i)) {
			continue
		}
		sigs = append(sigs, keys[vIdx].Sign(root[:]))
	}
	require.NotEqual(t, 0, len(sigs), "no aggregation bits set")
	att.Signature = bls.AggregateSignatures(sigs).Marshal()
}
