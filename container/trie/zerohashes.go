package trie

import (
	"github.com/dospore/helios/crypto/hash"
)

// ZeroHashes are the roots of fully empty subtrees, indexed by height. Level
// zero is the empty leaf.
var ZeroHashes [][32]byte

func init() {
	ZeroHashes = make([][32]byte, 64)
	for i := 0; i < len(ZeroHashes)-1; i++ {
		ZeroHashes[i+1] = hash.Hash(append(ZeroHashes[i][:], ZeroHashes[i][:]...))
	}
}
