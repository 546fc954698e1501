package hash_test

import (
	"crypto/sha256"
	"testing"

	"github.com/dospore/helios/crypto/hash"
	"github.com/dospore/helios/testing/assert"
)

func TestHash_MatchesStdlib(t *testing.T) {
	msg := []byte("consensus test vector")
	assert.DeepEqual(t, sha256.Sum256(msg), hash.Hash(msg))
	assert.DeepEqual(t, sha256.Sum256(nil), hash.Hash(nil))
}

func TestCustomSHA256Hasher(t *testing.T) {
	hasher := hash.CustomSHA256Hasher()
	msg := []byte("reused hasher input")
	assert.DeepEqual(t, hash.Hash(msg), hasher(msg))
	// The enclosed hasher resets between calls.
	assert.DeepEqual(t, hash.Hash(msg), hasher(msg))
	assert.DeepEqual(t, hash.Hash([]byte("other")), hasher([]byte("other")))
}
