package util

import (
	"testing"

	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/bls"
	"github.com/dospore/helios/encoding/bytesutil"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/time/slots"
)

// EmptyBlockBody returns a block body carrying no operations.
func EmptyBlockBody() *eth.BeaconBlockBody {
	return &eth.BeaconBlockBody{
		RandaoReveal: make([]byte, 96),
		Eth1Data: &eth.Eth1Data{
			DepositRoot: make([]byte, 32),
			BlockHash:   make([]byte, 32),
		},
		Graffiti: make([]byte, 32),
	}
}

// SignedBlockHeader signs a header with the proposer's key over the proposer
// domain of the header's slot.
func SignedBlockHeader(
	t testing.TB,
	st *state.BeaconState,
	header *eth.BeaconBlockHeader,
	key bls.SecretKey,
	cfg *params.BeaconChainConfig,
) *eth.SignedBeaconBlockHeader {
	epoch := slots.ToEpoch(header.Slot, cfg)
	domain, err := signing.Domain(st.Fork(), epoch, cfg.DomainBeaconProposer, st.GenesisValidatorsRoot())
	require.NoError(t, err, "could not compute proposer domain")
	root, err := signing.ComputeSigningRoot(header, domain)
	require.NoError(t, err, "could not compute header signing root")
	return &eth.SignedBeaconBlockHeader{
		Header:    header,
		Signature: key.Sign(root[:]).Marshal(),
	}
}

// BlockHeader returns a header for the proposer at the slot with the given
// graffiti baked into the body root, so two headers at the same slot can be
// made to conflict.
func BlockHeader(slot types.Slot, proposerIndex types.ValidatorIndex, graffiti uint64) *eth.BeaconBlockHeader {
	return &eth.BeaconBlockHeader{
		Slot:          slot,
		ProposerIndex: proposerIndex,
		ParentRoot:    make([]byte, 32),
		StateRoot:     make([]byte, 32),
		BodyRoot:      bytesutil.PadTo(bytesutil.Uint64ToBytesLittleEndian(graffiti), 32),
	}
}

// SignedVoluntaryExit signs an exit with the validator's key over the exit
// domain of the exit epoch.
func SignedVoluntaryExit(
	t testing.TB,
	st *state.BeaconState,
	exit *eth.VoluntaryExit,
	key bls.SecretKey,
	cfg *params.BeaconChainConfig,
) *eth.SignedVoluntaryExit {
	domain, err := signing.Domain(st.Fork(), exit.Epoch, cfg.DomainVoluntaryExit, st.GenesisValidatorsRoot())
	require.NoError(t, err, "could not compute exit domain")
	root, err := signing.ComputeSigningRoot(exit, domain)
	require.NoError(t, err, "could not compute exit signing root")
	return &eth.SignedVoluntaryExit{
		Exit:      exit,
		Signature: key.Sign(root[:]).Marshal(),
	}
}
