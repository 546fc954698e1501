// Package signing computes signing roots and domains and verifies BLS
// signatures over consensus objects.
package signing

import (
	"github.com/pkg/errors"

	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/crypto/bls"
)

// VerificationMode selects whether processors check the signatures carried by
// block operations or trust them.
type VerificationMode int

const (
	// VerifyAllSignatures checks every operation signature.
	VerifyAllSignatures VerificationMode = iota
	// SkipSignatureVerification trusts operation signatures, for use when the
	// block signature set is batch-verified elsewhere.
	SkipSignatureVerification
)

// ErrSigFailedToVerify returns when a signature of a block object(ie attestation, slashing, exit... etc)
// failed to verify.
var ErrSigFailedToVerify = errors.New("signature did not verify")

// ErrNilRegistryPubkey is returned when a validator record carries no public
// key bytes.
var ErrNilRegistryPubkey = errors.New("nil validator public key")

const domainByteLength = 4
const forkVersionByteLength = 4

type sszRoot interface {
	HashTreeRoot() ([32]byte, error)
}

// ComputeForkDataRoot derives the root used to salt domains with the fork
// version and chain identity.
//
// Spec pseudocode definition:
//   def compute_fork_data_root(current_version: Version, genesis_validators_root: Root) -> Root:
//     return hash_tree_root(ForkData(
//       current_version=current_version,
//       genesis_validators_root=genesis_validators_root,
//     ))
func ComputeForkDataRoot(version, root []byte) ([32]byte, error) {
	r, err := (&eth.ForkData{
		CurrentVersion:        version,
		GenesisValidatorsRoot: root,
	}).HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return r, nil
}

// ComputeDomain returns the signing domain for a domain type under a fork
// version and genesis validators root.
//
// Spec pseudocode definition:
//   def compute_domain(domain_type: DomainType, fork_version: Version=None, genesis_validators_root: Root=None) -> Domain:
//     fork_data_root = compute_fork_data_root(fork_version, genesis_validators_root)
//     return Domain(domain_type + fork_data_root[:28])
func ComputeDomain(domainType [domainByteLength]byte, forkVersion, genesisValidatorsRoot []byte) ([]byte, error) {
	if len(forkVersion) != forkVersionByteLength {
		return nil, errors.Errorf("fork version must be %d bytes", forkVersionByteLength)
	}
	forkDataRoot, err := ComputeForkDataRoot(forkVersion, genesisValidatorsRoot)
	if err != nil {
		return nil, err
	}
	domain := make([]byte, 32)
	copy(domain[:domainByteLength], domainType[:])
	copy(domain[domainByteLength:], forkDataRoot[:28])
	return domain, nil
}

// Domain returns the signing domain for the epoch, selecting the previous or
// current fork version by the fork boundary.
//
// Spec pseudocode definition:
//   def get_domain(state: BeaconState, domain_type: DomainType, epoch: Epoch=None) -> Domain:
//     epoch = get_current_epoch(state) if epoch is None else epoch
//     fork_version = state.fork.previous_version if epoch < state.fork.epoch else state.fork.current_version
//     return compute_domain(domain_type, fork_version, state.genesis_validators_root)
func Domain(fork *eth.Fork, epoch types.Epoch, domainType [domainByteLength]byte, genesisRoot []byte) ([]byte, error) {
	if fork == nil {
		return nil, errors.New("nil fork in state")
	}
	var forkVersion []byte
	if epoch < fork.Epoch {
		forkVersion = fork.PreviousVersion
	} else {
		forkVersion = fork.CurrentVersion
	}
	return ComputeDomain(domainType, forkVersion, genesisRoot)
}

// ComputeSigningRoot mixes the object root with the domain, producing the
// message actually signed.
//
// Spec pseudocode definition:
//   def compute_signing_root(ssz_object: SSZObject, domain: Domain) -> Root:
//     return hash_tree_root(SigningData(
//       object_root=hash_tree_root(ssz_object),
//       domain=domain,
//     ))
func ComputeSigningRoot(object sszRoot, domain []byte) ([32]byte, error) {
	objRoot, err := object.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return (&eth.SigningData{ObjectRoot: objRoot[:], Domain: domain}).HashTreeRoot()
}

// VerifySigningRoot checks a signature over the object under the given domain.
func VerifySigningRoot(object sszRoot, pub, signature, domain []byte) error {
	if len(pub) == 0 {
		return ErrNilRegistryPubkey
	}
	publicKey, err := bls.PublicKeyFromBytes(pub)
	if err != nil {
		return errors.Wrap(err, "could not convert bytes to public key")
	}
	sig, err := bls.SignatureFromBytes(signature)
	if err != nil {
		return errors.Wrap(err, "could not convert bytes to signature")
	}
	root, err := ComputeSigningRoot(object, domain)
	if err != nil {
		return errors.Wrap(err, "could not compute signing root")
	}
	if !sig.Verify(publicKey, root[:]) {
		return ErrSigFailedToVerify
	}
	return nil
}

// ComputeDomainVerifySigningRoot derives the domain from the fork and epoch
// and verifies the signature in one call.
func ComputeDomainVerifySigningRoot(fork *eth.Fork, genesisRoot []byte, epoch types.Epoch, object sszRoot, domainType [domainByteLength]byte, pub, signature []byte) error {
	domain, err := Domain(fork, epoch, domainType, genesisRoot)
	if err != nil {
		return err
	}
	return VerifySigningRoot(object, pub, signature, domain)
}
