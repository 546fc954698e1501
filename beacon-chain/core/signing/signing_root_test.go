package signing_test

import (
	"bytes"
	"testing"

	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/bls"
	"github.com/dospore/helios/encoding/bytesutil"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
)

func TestComputeDomain_Layout(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	gvr := make([]byte, 32)

	domain, err := signing.ComputeDomain(cfg.DomainBeaconProposer, cfg.GenesisForkVersion, gvr)
	require.NoError(t, err)
	require.Equal(t, 32, len(domain))
	assert.DeepEqual(t, cfg.DomainBeaconProposer[:], domain[:4], "domain type occupies the first four bytes")

	forkDataRoot, err := signing.ComputeForkDataRoot(cfg.GenesisForkVersion, gvr)
	require.NoError(t, err)
	assert.DeepEqual(t, forkDataRoot[:28], domain[4:])
}

func TestComputeDomain_RejectsBadForkVersion(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	_, err := signing.ComputeDomain(cfg.DomainDeposit, []byte{0, 0}, make([]byte, 32))
	assert.ErrorContains(t, "fork version must be 4 bytes", err)
}

func TestDomain_SelectsForkVersionByEpoch(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	fork := &eth.Fork{
		PreviousVersion: cfg.GenesisForkVersion,
		CurrentVersion:  cfg.AltairForkVersion,
		Epoch:           10,
	}
	gvr := make([]byte, 32)

	before, err := signing.Domain(fork, 9, cfg.DomainBeaconAttester, gvr)
	require.NoError(t, err)
	at, err := signing.Domain(fork, 10, cfg.DomainBeaconAttester, gvr)
	require.NoError(t, err)
	after, err := signing.Domain(fork, 11, cfg.DomainBeaconAttester, gvr)
	require.NoError(t, err)

	assert.DeepNotEqual(t, before, at, "fork boundary must switch versions")
	assert.DeepEqual(t, at, after)

	wantBefore, err := signing.ComputeDomain(cfg.DomainBeaconAttester, cfg.GenesisForkVersion, gvr)
	require.NoError(t, err)
	assert.DeepEqual(t, wantBefore, before)

	_, err = signing.Domain(nil, 0, cfg.DomainBeaconAttester, gvr)
	assert.ErrorContains(t, "nil fork", err)
}

func TestComputeSigningRoot_DomainChangesRoot(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	exit := &eth.VoluntaryExit{Epoch: 3, ValidatorIndex: 7}
	gvr := make([]byte, 32)

	exitDomain, err := signing.ComputeDomain(cfg.DomainVoluntaryExit, cfg.GenesisForkVersion, gvr)
	require.NoError(t, err)
	depositDomain, err := signing.ComputeDomain(cfg.DomainDeposit, cfg.GenesisForkVersion, gvr)
	require.NoError(t, err)

	r1, err := signing.ComputeSigningRoot(exit, exitDomain)
	require.NoError(t, err)
	r2, err := signing.ComputeSigningRoot(exit, depositDomain)
	require.NoError(t, err)
	assert.DeepNotEqual(t, r1, r2)
}

func TestVerifySigningRoot_RoundTrip(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	key, err := bls.SecretKeyFromBytes(bytesutil.PadTo([]byte{9}, 32))
	require.NoError(t, err)
	exit := &eth.VoluntaryExit{Epoch: 1, ValidatorIndex: 2}

	domain, err := signing.ComputeDomain(cfg.DomainVoluntaryExit, cfg.GenesisForkVersion, make([]byte, 32))
	require.NoError(t, err)
	root, err := signing.ComputeSigningRoot(exit, domain)
	require.NoError(t, err)
	sig := key.Sign(root[:]).Marshal()

	require.NoError(t, signing.VerifySigningRoot(exit, key.PublicKey().Marshal(), sig, domain))

	otherKey, err := bls.SecretKeyFromBytes(bytesutil.PadTo([]byte{10}, 32))
	require.NoError(t, err)
	err = signing.VerifySigningRoot(exit, otherKey.PublicKey().Marshal(), sig, domain)
	assert.ErrorIs(t, err, signing.ErrSigFailedToVerify)

	err = signing.VerifySigningRoot(exit, nil, sig, domain)
	assert.ErrorIs(t, err, signing.ErrNilRegistryPubkey)
}

func TestComputeDomainVerifySigningRoot(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	key, err := bls.SecretKeyFromBytes(bytesutil.PadTo([]byte{3}, 32))
	require.NoError(t, err)
	fork := &eth.Fork{
		PreviousVersion: cfg.GenesisForkVersion,
		CurrentVersion:  cfg.GenesisForkVersion,
		Epoch:           0,
	}
	gvr := make([]byte, 32)
	exit := &eth.VoluntaryExit{Epoch: 5, ValidatorIndex: 1}

	domain, err := signing.Domain(fork, exit.Epoch, cfg.DomainVoluntaryExit, gvr)
	require.NoError(t, err)
	root, err := signing.ComputeSigningRoot(exit, domain)
	require.NoError(t, err)
	sig := key.Sign(root[:]).Marshal()

	require.NoError(t, signing.ComputeDomainVerifySigningRoot(
		fork, gvr, exit.Epoch, exit, cfg.DomainVoluntaryExit, key.PublicKey().Marshal(), sig,
	))
}

func TestComputeForkDataRoot_DependsOnBothInputs(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	base, err := signing.ComputeForkDataRoot(cfg.GenesisForkVersion, make([]byte, 32))
	require.NoError(t, err)

	otherVersion, err := signing.ComputeForkDataRoot(cfg.AltairForkVersion, make([]byte, 32))
	require.NoError(t, err)
	assert.Equal(t, false, bytes.Equal(base[:], otherVersion[:]))

	otherRoot, err := signing.ComputeForkDataRoot(cfg.GenesisForkVersion, bytesutil.PadTo([]byte{1}, 32))
	require.NoError(t, err)
	assert.Equal(t, false, bytes.Equal(base[:], otherRoot[:]))
}
