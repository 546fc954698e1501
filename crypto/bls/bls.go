// Package bls implements a go-wrapper around the herumi BLS12-381 library,
// operating in ETH2 mode. Public keys and signatures are the 48 and 96 byte
// compressed encodings used on the wire.
package bls

import (
	"fmt"

	bls12 "github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
)

// CurveOrder for the BLS12-381 curve.
const CurveOrder = "52435875175126190479447740508185965837690552500527637822603658699938581184513"

func init() {
	if err := bls12.Init(bls12.BLS12_381); err != nil {
		panic(err)
	}
	if err := bls12.SetETHmode(bls12.EthModeDraft07); err != nil {
		panic(err)
	}
}

// SecretKey used in the BLS signature scheme.
type SecretKey struct {
	p *bls12.SecretKey
}

// PublicKey used in the BLS signature scheme.
type PublicKey struct {
	p *bls12.PublicKey
}

// Signature used in the BLS signature scheme.
type Signature struct {
	s *bls12.Sign
}

// RandKey creates a new private key using a random method provided as an io.Reader.
func RandKey() SecretKey {
	secKey := &bls12.SecretKey{}
	secKey.SetByCSPRNG()
	return SecretKey{p: secKey}
}

// SecretKeyFromBytes creates a BLS private key from a byte slice.
func SecretKeyFromBytes(privKey []byte) (SecretKey, error) {
	secKey := &bls12.SecretKey{}
	if err := secKey.Deserialize(privKey); err != nil {
		return SecretKey{}, errors.Wrap(err, "could not unmarshal bytes into secret key")
	}
	return SecretKey{p: secKey}, nil
}

// PublicKey obtains the public key corresponding to the BLS secret key.
func (s SecretKey) PublicKey() PublicKey {
	return PublicKey{p: s.p.GetPublicKey()}
}

// Sign a message using a secret key.
func (s SecretKey) Sign(msg []byte) Signature {
	return Signature{s: s.p.SignByte(msg)}
}

// Marshal a secret key into a byte slice.
func (s SecretKey) Marshal() []byte {
	return s.p.Serialize()
}

// PublicKeyFromBytes creates a BLS public key from its compressed serialization.
func PublicKeyFromBytes(pubKey []byte) (PublicKey, error) {
	if len(pubKey) != 48 {
		return PublicKey{}, fmt.Errorf("public key must be 48 bytes, received %d", len(pubKey))
	}
	p := &bls12.PublicKey{}
	if err := p.Deserialize(pubKey); err != nil {
		return PublicKey{}, errors.Wrap(err, "could not unmarshal bytes into public key")
	}
	return PublicKey{p: p}, nil
}

// Marshal a public key into its compressed serialization.
func (p PublicKey) Marshal() []byte {
	return p.p.Serialize()
}

// SignatureFromBytes creates a BLS signature from its compressed serialization.
func SignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != 96 {
		return Signature{}, fmt.Errorf("signature must be 96 bytes, received %d", len(sig))
	}
	s := &bls12.Sign{}
	if err := s.Deserialize(sig); err != nil {
		return Signature{}, errors.Wrap(err, "could not unmarshal bytes into signature")
	}
	return Signature{s: s}, nil
}

// Verify a BLS signature given a public key and a message.
//
// Spec pseudocode definition:
//   def Verify(PK: BLSPubkey, message: Bytes, signature: BLSSignature) -> bool
func (s Signature) Verify(pubKey PublicKey, msg []byte) bool {
	return s.s.VerifyByte(pubKey.p, msg)
}

// FastAggregateVerify verifies all the provided public keys with their
// aggregated signature over one message.
//
// Spec pseudocode definition:
//   def FastAggregateVerify(PKs: Sequence[BLSPubkey], message: Bytes, signature: BLSSignature) -> bool
func (s Signature) FastAggregateVerify(pubKeys []PublicKey, msg [32]byte) bool {
	if len(pubKeys) == 0 {
		return false
	}
	rawKeys := make([]bls12.PublicKey, len(pubKeys))
	for i, p := range pubKeys {
		rawKeys[i] = *p.p
	}
	return s.s.FastAggregateVerify(rawKeys, msg[:])
}

// Marshal a signature into its compressed serialization.
func (s Signature) Marshal() []byte {
	return s.s.Serialize()
}

// AggregateSignatures converts a list of signatures into a single, aggregated
// signature.
func AggregateSignatures(sigs []Signature) Signature {
	if len(sigs) == 0 {
		return Signature{}
	}
	signature := *sigs[0].s
	for i := 1; i < len(sigs); i++ {
		signature.Add(sigs[i].s)
	}
	return Signature{s: &signature}
}
