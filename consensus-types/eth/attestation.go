package eth

import (
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/prysmaticlabs/go-bitfield"
)

// Checkpoint is an epoch boundary reference used by the FFG vote.
type Checkpoint struct {
	Epoch types.Epoch
	Root  []byte `ssz-size:"32"`
}

// AttestationData is the vote cast by a committee: the chain head seen by the
// attester plus its FFG source and target checkpoints.
type AttestationData struct {
	Slot            types.Slot
	CommitteeIndex  types.CommitteeIndex
	BeaconBlockRoot []byte `ssz-size:"32"`
	Source          *Checkpoint
	Target          *Checkpoint
}

// Attestation is an aggregated committee vote as it appears in a block.
type Attestation struct {
	AggregationBits bitfield.Bitlist `ssz-max:"2048"`
	Data            *AttestationData
	Signature       []byte `ssz-size:"96"`
}

// IndexedAttestation is an attestation with the aggregation bits resolved to
// the sorted validator indices that participated.
type IndexedAttestation struct {
	AttestingIndices []uint64 `ssz-max:"2048"`
	Data             *AttestationData
	Signature        []byte `ssz-size:"96"`
}

// PendingAttestation is an attestation buffered in a pre-Altair state until
// epoch processing converts it into rewards.
type PendingAttestation struct {
	AggregationBits bitfield.Bitlist `ssz-max:"2048"`
	Data            *AttestationData
	InclusionDelay  types.Slot
	ProposerIndex   types.ValidatorIndex
}
