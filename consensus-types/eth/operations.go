package eth

import (
	types "github.com/dospore/helios/consensus-types/primitives"
)

// ProposerSlashing holds two distinct signed headers by one proposer for the
// same slot.
type ProposerSlashing struct {
	Header_1 *SignedBeaconBlockHeader
	Header_2 *SignedBeaconBlockHeader
}

// AttesterSlashing holds two conflicting indexed attestations.
type AttesterSlashing struct {
	Attestation_1 *IndexedAttestation
	Attestation_2 *IndexedAttestation
}

// DepositData is the registration payload submitted to the deposit contract.
type DepositData struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
	Signature             []byte `ssz-size:"96"`
}

// DepositMessage is the unsigned portion of DepositData, the object the
// deposit signature actually covers.
type DepositMessage struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
}

// Deposit is a deposit contract log with its Merkle proof against the eth1
// data root.
type Deposit struct {
	Proof [][]byte `ssz-size:"33,32"`
	Data  *DepositData
}

// VoluntaryExit is a validator's request to leave the active set.
type VoluntaryExit struct {
	Epoch          types.Epoch
	ValidatorIndex types.ValidatorIndex
}

// SignedVoluntaryExit is a voluntary exit with the validator's signature.
type SignedVoluntaryExit struct {
	Exit      *VoluntaryExit
	Signature []byte `ssz-size:"96"`
}

// BLSToExecutionChange rotates a validator's withdrawal credentials from the
// BLS form to an execution address.
type BLSToExecutionChange struct {
	ValidatorIndex     types.ValidatorIndex
	FromBlsPubkey      []byte `ssz-size:"48"`
	ToExecutionAddress []byte `ssz-size:"20"`
}

// SignedBLSToExecutionChange is a credential rotation with its signature.
type SignedBLSToExecutionChange struct {
	Message   *BLSToExecutionChange
	Signature []byte `ssz-size:"96"`
}
