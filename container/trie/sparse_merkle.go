// Package trie implements the sparse Merkle trie backing the eth1 deposit
// contract, including proof generation and verification against its
// length-mixed root.
package trie

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/dospore/helios/crypto/hash"
	"github.com/dospore/helios/encoding/bytesutil"
	"github.com/dospore/helios/math"
)

// SparseMerkleTrie is a fixed-depth Merkle trie where absent subtrees hash to
// the precomputed zero hashes.
type SparseMerkleTrie struct {
	depth         uint
	branches      [][][]byte
	originalItems [][]byte
}

// NewTrie returns an empty trie of the given depth.
func NewTrie(depth uint64) (*SparseMerkleTrie, error) {
	var zeroBytes [32]byte
	return GenerateTrieFromItems([][]byte{zeroBytes[:]}, depth)
}

// GenerateTrieFromItems constructs a trie of the given depth over the items,
// padding odd layers with the matching zero hash.
func GenerateTrieFromItems(items [][]byte, depth uint64) (*SparseMerkleTrie, error) {
	if len(items) == 0 {
		return nil, errors.New("no items provided to generate Merkle trie")
	}
	if depth >= 64 {
		return nil, errors.New("supported merkle trie depth exceeded (max uint64 depth is 63)")
	}
	layers := make([][][]byte, depth+1)
	leaves := make([][]byte, len(items))
	for i, item := range items {
		leaf := bytesutil.ToBytes32(item)
		leaves[i] = leaf[:]
	}
	layers[0] = leaves
	for i := uint64(0); i < depth; i++ {
		if len(layers[i])%2 == 1 {
			layers[i] = append(layers[i], ZeroHashes[i][:])
		}
		updatedValues := make([][]byte, 0, len(layers[i])/2)
		for j := 0; j < len(layers[i]); j += 2 {
			concat := hash.Hash(append(layers[i][j], layers[i][j+1]...))
			updatedValues = append(updatedValues, concat[:])
		}
		layers[i+1] = updatedValues
	}
	return &SparseMerkleTrie{
		branches:      layers,
		originalItems: items,
		depth:         uint(depth),
	}, nil
}

// Items returns the original items the trie was built over.
func (m *SparseMerkleTrie) Items() [][]byte {
	return m.originalItems
}

// NumOfItems returns the number of items in the trie. A trie holding a single
// zero leaf counts as empty.
func (m *SparseMerkleTrie) NumOfItems() int {
	var zeroBytes [32]byte
	if len(m.originalItems) == 1 && bytes.Equal(m.originalItems[0], zeroBytes[:]) {
		return 0
	}
	return len(m.originalItems)
}

// HashTreeRoot mixes the deposit count into the trie root the way the deposit
// contract does:
//   sha256(concat(node, to_little_endian_64(deposit_count), zero_bytes24))
func (m *SparseMerkleTrie) HashTreeRoot() ([32]byte, error) {
	enc := [32]byte{}
	binary.LittleEndian.PutUint64(enc[:], uint64(m.NumOfItems()))
	return hash.Hash(append(m.branches[len(m.branches)-1][0], enc[:]...)), nil
}

// Insert places an item at the given leaf index and rehashes the affected
// branch up to the root.
func (m *SparseMerkleTrie) Insert(item []byte, index int) error {
	if index < 0 {
		return fmt.Errorf("negative index provided: %d", index)
	}
	for index >= len(m.branches[0]) {
		m.branches[0] = append(m.branches[0], ZeroHashes[0][:])
	}
	leaf := bytesutil.ToBytes32(item)
	m.branches[0][index] = leaf[:]
	if index >= len(m.originalItems) {
		m.originalItems = append(m.originalItems, leaf[:])
	} else {
		m.originalItems[index] = leaf[:]
	}

	currentIndex := index
	node := leaf
	for i := 0; i < int(m.depth); i++ {
		neighborIdx := currentIndex ^ 1
		neighbor := ZeroHashes[i][:]
		if neighborIdx < len(m.branches[i]) {
			neighbor = m.branches[i][neighborIdx]
		}
		if currentIndex%2 == 0 {
			node = hash.Hash(append(node[:], neighbor...))
		} else {
			node = hash.Hash(append(neighbor, node[:]...))
		}
		parentIdx := currentIndex / 2
		parent := node
		if parentIdx >= len(m.branches[i+1]) {
			m.branches[i+1] = append(m.branches[i+1], parent[:])
		} else {
			m.branches[i+1][parentIdx] = parent[:]
		}
		currentIndex = parentIdx
	}
	return nil
}

// MerkleProof returns the proof for the leaf at the given index. The final
// proof element is the little-endian item count, matching the length mix-in
// of HashTreeRoot.
func (m *SparseMerkleTrie) MerkleProof(index int) ([][]byte, error) {
	if index < 0 {
		return nil, fmt.Errorf("merkle index is negative: %d", index)
	}
	if index >= len(m.branches[0]) {
		return nil, fmt.Errorf("merkle index out of range in trie, max range: %d, received: %d", len(m.branches[0]), index)
	}
	proof := make([][]byte, m.depth+1)
	for i := uint(0); i < m.depth; i++ {
		subIndex := (uint(index) / (1 << i)) ^ 1
		if subIndex < uint(len(m.branches[i])) {
			item := bytesutil.ToBytes32(m.branches[i][subIndex])
			proof[i] = item[:]
		} else {
			proof[i] = ZeroHashes[i][:]
		}
	}
	enc := [32]byte{}
	binary.LittleEndian.PutUint64(enc[:], uint64(len(m.originalItems)))
	proof[len(proof)-1] = enc[:]
	return proof, nil
}

// Copy performs a deep copy of the trie.
func (m *SparseMerkleTrie) Copy() *SparseMerkleTrie {
	dstBranches := make([][][]byte, len(m.branches))
	for i, layer := range m.branches {
		dstBranches[i] = bytesutil.SafeCopy2dBytes(layer)
	}
	return &SparseMerkleTrie{
		depth:         m.depth,
		branches:      dstBranches,
		originalItems: bytesutil.SafeCopy2dBytes(m.originalItems),
	}
}

// VerifyMerkleProofWithDepth checks a Merkle branch of the given depth
// against a root. The proof carries one extra element, the mixed-in length.
func VerifyMerkleProofWithDepth(root, item []byte, merkleIndex uint64, proof [][]byte, depth uint64) bool {
	if uint64(len(proof)) != depth+1 {
		return false
	}
	if depth >= 64 {
		return false // PowerOf2 would overflow.
	}
	node := bytesutil.ToBytes32(item)
	for i := uint64(0); i <= depth; i++ {
		if (merkleIndex / math.PowerOf2(i) % 2) != 0 {
			node = hash.Hash(append(proof[i], node[:]...))
		} else {
			node = hash.Hash(append(node[:], proof[i]...))
		}
	}
	return bytes.Equal(root, node[:])
}

// VerifyMerkleProof checks a Merkle branch against a root, deriving the depth
// from the proof length.
func VerifyMerkleProof(root, item []byte, merkleIndex uint64, proof [][]byte) bool {
	if len(proof) == 0 {
		return false
	}
	return VerifyMerkleProofWithDepth(root, item, merkleIndex, proof, uint64(len(proof)-1))
}
