// Package hash includes all hashing utilities needed for consensus.
package hash

import (
	"sync"

	"github.com/minio/sha256-simd"
)

// Hash defines a function that returns the sha256 checksum of the data passed in.
//
// Spec pseudocode definition:
//   def hash(data: bytes) -> Bytes32
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

var sha256Pool = sync.Pool{New: func() interface{} {
	return sha256.New()
}}

// CustomSHA256Hasher returns a hash function that uses an enclosed hasher.
// This is not safe for concurrent use as the same hasher is being reused
// between calls.
func CustomSHA256Hasher() func([]byte) [32]byte {
	hasher, ok := sha256Pool.Get().(interface {
		Reset()
		Write(p []byte) (int, error)
		Sum(b []byte) []byte
	})
	if !ok {
		hasher = sha256.New()
	}
	var hash [32]byte

	return func(data []byte) [32]byte {
		hasher.Reset()
		// #nosec G104 -- sha256 write never errors.
		hasher.Write(data)
		hasher.Sum(hash[:0])
		return hash
	}
}
