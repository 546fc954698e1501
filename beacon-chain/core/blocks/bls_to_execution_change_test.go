package blocks_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dospore/helios/beacon-chain/core/blocks"
	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/testing/util"
)

func executionAddress(b byte) []byte {
	addr := make([]byte, 20)
	for i := range addr {
		addr[i] = b
	}
	return addr
}

func TestProcessBLSToExecutionChange_RotatesCredentials(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 8, version.Capella, cfg)

	change := &eth.SignedBLSToExecutionChange{
		Message: &eth.BLSToExecutionChange{
			ValidatorIndex:     3,
			FromBlsPubkey:      keys[3].PublicKey().Marshal(),
			ToExecutionAddress: executionAddress(0xaa),
		},
	}
	require.NoError(t, blocks.ProcessBLSToExecutionChange(st, change, signing.SkipSignatureVerification, cfg))

	val, err := st.ValidatorAtIndex(3)
	require.NoError(t, err)
	assert.Equal(t, cfg.ETH1AddressWithdrawalPrefixByte, val.WithdrawalCredentials[0])
	assert.Equal(t, true, bytes.Equal(make([]byte, 11), val.WithdrawalCredentials[1:12]), "expected zero padding")
	assert.DeepEqual(t, executionAddress(0xaa), val.WithdrawalCredentials[12:])
}

func TestProcessBLSToExecutionChange_VerifiesSignature(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 8, version.Capella, cfg)

	message := &eth.BLSToExecutionChange{
		ValidatorIndex:     3,
		FromBlsPubkey:      keys[3].PublicKey().Marshal(),
		ToExecutionAddress: executionAddress(0xaa),
	}
	// Credential rotations sign over the genesis fork version, not the
	// current fork.
	domain, err := signing.ComputeDomain(cfg.DomainBLSToExecutionChange, cfg.GenesisForkVersion, st.GenesisValidatorsRoot())
	require.NoError(t, err)
	root, err := signing.ComputeSigningRoot(message, domain)
	require.NoError(t, err)
	signed := &eth.SignedBLSToExecutionChange{
		Message:   message,
		Signature: keys[3].Sign(root[:]).Marshal(),
	}
	require.NoError(t, blocks.ProcessBLSToExecutionChange(st, signed, signing.VerifyAllSignatures, cfg))

	st2, _ := util.DeterministicGenesisState(t, 8, version.Capella, cfg)
	signed.Signature = keys[4].Sign(root[:]).Marshal()
	err = blocks.ProcessBLSToExecutionChange(st2, signed, signing.VerifyAllSignatures, cfg)
	assert.ErrorContains(t, "could not verify BLSToExecutionChange signature", err)
}

func TestProcessBLSToExecutionChange_WrongKeyRejected(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 8, version.Capella, cfg)

	change := &eth.SignedBLSToExecutionChange{
		Message: &eth.BLSToExecutionChange{
			ValidatorIndex:     3,
			FromBlsPubkey:      keys[4].PublicKey().Marshal(),
			ToExecutionAddress: executionAddress(0xaa),
		},
	}
	err := blocks.ProcessBLSToExecutionChange(st, change, signing.SkipSignatureVerification, cfg)
	assert.ErrorContains(t, "withdrawal credentials do not match", err)
}

func TestProcessBLSToExecutionChanges_DuplicateInBlockRejected(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 8, version.Capella, cfg)

	change := &eth.SignedBLSToExecutionChange{
		Message: &eth.BLSToExecutionChange{
			ValidatorIndex:     3,
			FromBlsPubkey:      keys[3].PublicKey().Marshal(),
			ToExecutionAddress: executionAddress(0xaa),
		},
	}
	second := &eth.SignedBLSToExecutionChange{
		Message: &eth.BLSToExecutionChange{
			ValidatorIndex:     3,
			FromBlsPubkey:      keys[3].PublicKey().Marshal(),
			ToExecutionAddress: executionAddress(0xbb),
		},
	}
	err := blocks.ProcessBLSToExecutionChanges(
		context.Background(), st, []*eth.SignedBLSToExecutionChange{change, second}, signing.SkipSignatureVerification, cfg,
	)
	require.NotNil(t, err)
	var opErr *blocks.OperationError
	require.Equal(t, true, errors.As(err, &opErr))
	assert.Equal(t, blocks.OpBLSToExecutionChange, opErr.Type)
	assert.Equal(t, 1, opErr.Index)
	assert.ErrorContains(t, "prefix is not a BLS prefix", err)

	// The first rotation stuck.
	val, err2 := st.ValidatorAtIndex(3)
	require.NoError(t, err2)
	assert.DeepEqual(t, executionAddress(0xaa), val.WithdrawalCredentials[12:])
}

func TestProcessBLSToExecutionChange_BadAddressLength(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	st, keys := util.DeterministicGenesisState(t, 8, version.Capella, cfg)

	change := &eth.SignedBLSToExecutionChange{
		Message: &eth.BLSToExecutionChange{
			ValidatorIndex:     3,
			FromBlsPubkey:      keys[3].PublicKey().Marshal(),
			ToExecutionAddress: make([]byte, 19),
		},
	}
	err := blocks.ProcessBLSToExecutionChange(st, change, signing.SkipSignatureVerification, cfg)
	assert.ErrorContains(t, "invalid execution address length", err)
}
