// Package stateutil has utility functions over the raw state collections.
package stateutil

import (
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/encoding/bytesutil"
)

// ValidatorIndexMap builds a lookup from public key to registry index.
func ValidatorIndexMap(validators []*eth.Validator) map[[48]byte]types.ValidatorIndex {
	m := make(map[[48]byte]types.ValidatorIndex, len(validators))
	for idx, v := range validators {
		if v == nil {
			continue
		}
		m[bytesutil.ToBytes48(v.PublicKey)] = types.ValidatorIndex(idx)
	}
	return m
}
