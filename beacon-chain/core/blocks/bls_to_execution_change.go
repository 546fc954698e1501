package blocks

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/consensus-types/eth"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/crypto/hash"
)

const executionAddressLength = 20

// ProcessBLSToExecutionChanges applies the block's credential rotations in
// order, stopping at the first invalid one. A second change for the same
// validator in one block fails the prefix check, since the credentials no
// longer carry the BLS prefix.
//
// Spec pseudocode definition:
//   def process_bls_to_execution_change(state: BeaconState, signed_address_change: SignedBLSToExecutionChange) -> None
func ProcessBLSToExecutionChanges(
	ctx context.Context,
	st *state.BeaconState,
	changes []*eth.SignedBLSToExecutionChange,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	_, span := trace.StartSpan(ctx, "blocks.ProcessBLSToExecutionChanges")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}
	for idx, change := range changes {
		if err := ProcessBLSToExecutionChange(st, change, mode, cfg); err != nil {
			return NewOperationError(OpBLSToExecutionChange, idx, err)
		}
	}
	return nil
}

// ProcessBLSToExecutionChange validates a single credential rotation and
// overwrites the validator's withdrawal credentials with the execution
// address form.
func ProcessBLSToExecutionChange(
	st *state.BeaconState,
	signed *eth.SignedBLSToExecutionChange,
	mode signing.VerificationMode,
	cfg *params.BeaconChainConfig,
) error {
	if signed == nil || signed.Message == nil {
		return errors.New("nil BLSToExecutionChange")
	}
	message := signed.Message
	val, err := st.ValidatorAtIndex(message.ValidatorIndex)
	if err != nil {
		return err
	}
	cred := val.WithdrawalCredentials
	if len(cred) == 0 || cred[0] != cfg.BLSWithdrawalPrefixByte {
		return errors.New("withdrawal credential prefix is not a BLS prefix")
	}
	digest := hash.Hash(message.FromBlsPubkey)
	if !bytes.Equal(digest[1:], cred[1:]) {
		return errors.New("withdrawal credentials do not match")
	}
	if len(message.ToExecutionAddress) != executionAddressLength {
		return errors.New("invalid execution address length")
	}
	if mode == signing.VerifyAllSignatures {
		// Credential rotations are signed against the genesis fork version so
		// changes prepared before the fork stay valid after it.
		domain, err := signing.ComputeDomain(cfg.DomainBLSToExecutionChange, cfg.GenesisForkVersion, st.GenesisValidatorsRoot())
		if err != nil {
			return err
		}
		if err := signing.VerifySigningRoot(message, message.FromBlsPubkey, signed.Signature, domain); err != nil {
			return errors.Wrap(err, "could not verify BLSToExecutionChange signature")
		}
	}

	newCredentials := make([]byte, 32)
	newCredentials[0] = cfg.ETH1AddressWithdrawalPrefixByte
	copy(newCredentials[12:], message.ToExecutionAddress)
	val.WithdrawalCredentials = newCredentials
	return st.UpdateValidatorAtIndex(message.ValidatorIndex, val)
}
