package eth

import (
	types "github.com/dospore/helios/consensus-types/primitives"
)

// Fork describes the version schedule the state is on.
type Fork struct {
	PreviousVersion []byte `ssz-size:"4"`
	CurrentVersion  []byte `ssz-size:"4"`
	Epoch           types.Epoch
}

// ForkData is hashed into signing domains so that signatures never replay
// across forks or chains.
type ForkData struct {
	CurrentVersion        []byte `ssz-size:"4"`
	GenesisValidatorsRoot []byte `ssz-size:"32"`
}

// SigningData binds an object root to the domain it is signed under.
type SigningData struct {
	ObjectRoot []byte `ssz-size:"32"`
	Domain     []byte `ssz-size:"32"`
}

// Eth1Data is the deposit contract view voted into the state.
type Eth1Data struct {
	DepositRoot  []byte `ssz-size:"32"`
	DepositCount uint64
	BlockHash    []byte `ssz-size:"32"`
}

// BeaconBlockHeader is a block with its body reduced to the body root.
type BeaconBlockHeader struct {
	Slot          types.Slot
	ProposerIndex types.ValidatorIndex
	ParentRoot    []byte `ssz-size:"32"`
	StateRoot     []byte `ssz-size:"32"`
	BodyRoot      []byte `ssz-size:"32"`
}

// SignedBeaconBlockHeader is a block header with the proposer's signature.
type SignedBeaconBlockHeader struct {
	Header    *BeaconBlockHeader
	Signature []byte `ssz-size:"96"`
}

// BeaconBlockBody carries the operations processed against the state. The one
// struct serves every fork; the BLS to execution changes list is only
// populated from Capella on.
type BeaconBlockBody struct {
	RandaoReveal          []byte `ssz-size:"96"`
	Eth1Data              *Eth1Data
	Graffiti              []byte `ssz-size:"32"`
	ProposerSlashings     []*ProposerSlashing
	AttesterSlashings     []*AttesterSlashing
	Attestations          []*Attestation
	Deposits              []*Deposit
	VoluntaryExits        []*SignedVoluntaryExit
	BLSToExecutionChanges []*SignedBLSToExecutionChange
}
