package util

import (
	"testing"

	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/container/trie"
	"github.com/dospore/helios/crypto/bls"
	"github.com/dospore/helios/testing/require"
)

// SignedDepositData builds deposit data for the key, signed over the genesis
// deposit domain.
func SignedDepositData(t testing.TB, key bls.SecretKey, amount uint64, cfg *params.BeaconChainConfig) *eth.DepositData {
	pubKey := key.PublicKey().Marshal()
	data := &eth.DepositData{
		PublicKey:             pubKey,
		WithdrawalCredentials: BLSWithdrawalCredentials(pubKey, cfg),
		Amount:                amount,
	}
	domain, err := signing.ComputeDomain(cfg.DomainDeposit, cfg.GenesisForkVersion, make([]byte, 32))
	require.NoError(t, err, "could not compute deposit domain")
	root, err := signing.ComputeSigningRoot(&eth.DepositMessage{
		PublicKey:             data.PublicKey,
		WithdrawalCredentials: data.WithdrawalCredentials,
		Amount:                data.Amount,
	}, domain)
	require.NoError(t, err, "could not compute deposit signing root")
	data.Signature = key.Sign(root[:]).Marshal()
	return data
}

// DepositsWithProofs packs deposit data into a deposit trie and returns the
// deposits with inclusion proofs against the final trie root, plus that root.
// Leaf indices start at startIndex, matching a state whose eth1 deposit index
// already advanced that far.
func DepositsWithProofs(t testing.TB, dataList []*eth.DepositData, startIndex uint64, cfg *params.BeaconChainConfig) ([]*eth.Deposit, []byte) {
	depositTrie, err := trie.NewTrie(cfg.DepositContractTreeDepth)
	require.NoError(t, err, "could not create deposit trie")
	// Fill the leaves below startIndex so the trie's item count matches the
	// chain's deposit count.
	for j := uint64(0); j < startIndex; j++ {
		require.NoError(t, depositTrie.Insert(make([]byte, 32), int(j)), "could not insert placeholder leaf %d", j)
	}
	for i, data := range dataList {
		leaf, err := data.HashTreeRoot()
		require.NoError(t, err, "could not hash deposit data %d", i)
		require.NoError(t, depositTrie.Insert(leaf[:], int(startIndex)+i), "could not insert deposit leaf %d", i)
	}
	root, err := depositTrie.HashTreeRoot()
	require.NoError(t, err, "could not hash deposit trie")

	deposits := make([]*eth.Deposit, len(dataList))
	for i, data := range dataList {
		proof, err := depositTrie.MerkleProof(int(startIndex) + i)
		require.NoError(t, err, "could not generate deposit proof %d", i)
		deposits[i] = &eth.Deposit{Proof: proof, Data: data}
	}
	return deposits, root[:]
}
