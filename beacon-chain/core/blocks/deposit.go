package blocks

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/core/signing"
	"github.com/dospore/helios/beacon-chain/state"
	"github.com/dospore/helios/beacon-chain/state/stateutil"
	"github.com/dospore/helios/consensus-types/eth"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/container/trie"
	"github.com/dospore/helios/encoding/bytesutil"
	"github.com/dospore/helios/math"
	"github.com/dospore/helios/runtime/version"
)

// ProcessDeposits checks the block carries exactly the expected number of
// deposits, verifies every inclusion proof against the eth1 deposit root, and
// then applies the deposits to the state in order. Proof verification is
// read-only and fans out across goroutines; application is strictly serial.
//
// Spec pseudocode definition:
//   def process_deposit(state: BeaconState, deposit: Deposit) -> None
func ProcessDeposits(
	ctx context.Context,
	st *state.BeaconState,
	deposits []*eth.Deposit,
	cfg *params.BeaconChainConfig,
) error {
	ctx, span := trace.StartSpan(ctx, "blocks.ProcessDeposits")
	defer span.End()
	if st == nil {
		return state.ErrNilState
	}

	eth1Data := st.Eth1Data()
	if eth1Data == nil {
		return errors.New("nil eth1 data in state")
	}
	expected, err := expectedDepositCount(st, eth1Data, cfg)
	if err != nil {
		return err
	}
	if uint64(len(deposits)) != expected {
		return fmt.Errorf("incorrect outstanding deposits in block body, wanted: %d, received: %d", expected, len(deposits))
	}

	if err := verifyDepositInclusionProofs(ctx, st, eth1Data, deposits, cfg); err != nil {
		return err
	}

	valIndexMap := stateutil.ValidatorIndexMap(st.Validators())
	for i, deposit := range deposits {
		if err := ApplyDeposit(st, deposit, valIndexMap, cfg); err != nil {
			return NewOperationError(OpDeposit, i, err)
		}
	}
	return nil
}

// expectedDepositCount is the number of deposits the block must carry:
// min(MAX_DEPOSITS, eth1_data.deposit_count - eth1_deposit_index).
func expectedDepositCount(st *state.BeaconState, eth1Data *eth.Eth1Data, cfg *params.BeaconChainConfig) (uint64, error) {
	if eth1Data.DepositCount < st.Eth1DepositIndex() {
		return 0, errors.New("eth1 deposit count is behind the state deposit index")
	}
	outstanding, err := math.Sub64(eth1Data.DepositCount, st.Eth1DepositIndex())
	if err != nil {
		return 0, err
	}
	return math.Min(cfg.MaxDeposits, outstanding), nil
}

// verifyDepositInclusionProofs checks every deposit's Merkle branch against
// the deposit root. The checks only read the state snapshot taken before the
// fan-out, so they run concurrently; the earliest failing index wins.
func verifyDepositInclusionProofs(
	ctx context.Context,
	st *state.BeaconState,
	eth1Data *eth.Eth1Data,
	deposits []*eth.Deposit,
	cfg *params.BeaconChainConfig,
) error {
	depositRoot := eth1Data.DepositRoot
	baseIndex := st.Eth1DepositIndex()
	verificationErrs := make([]error, len(deposits))

	g, _ := errgroup.WithContext(ctx)
	for i := range deposits {
		i := i
		deposit := deposits[i]
		g.Go(func() error {
			// Failures are recorded per index rather than returned, so the
			// earliest-indexed error is reported deterministically.
			if deposit == nil || deposit.Data == nil {
				verificationErrs[i] = errors.New("received nil deposit or nil deposit data")
				return nil
			}
			leaf, err := deposit.Data.HashTreeRoot()
			if err != nil {
				verificationErrs[i] = errors.Wrap(err, "could not tree hash deposit data")
				return nil
			}
			if ok := trie.VerifyMerkleProofWithDepth(
				depositRoot,
				leaf[:],
				baseIndex+uint64(i),
				deposit.Proof,
				cfg.DepositContractTreeDepth,
			); !ok {
				verificationErrs[i] = fmt.Errorf("deposit merkle branch of deposit root did not verify for root: %#x", depositRoot)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, err := range verificationErrs {
		if err != nil {
			return NewOperationError(OpDeposit, i, err)
		}
	}
	return nil
}

// ApplyDeposit mutates the state for one deposit: the deposit index always
// advances; a known public key is topped up; an unknown key creates a new
// validator, unless its registration signature is invalid, in which case the
// deposit is skipped without error and the funds are lost.
func ApplyDeposit(
	st *state.BeaconState,
	deposit *eth.Deposit,
	valIndexMap map[[48]byte]types.ValidatorIndex,
	cfg *params.BeaconChainConfig,
) error {
	if deposit == nil || deposit.Data == nil {
		return errors.New("received nil deposit or nil deposit data")
	}
	data := deposit.Data
	st.SetEth1DepositIndex(st.Eth1DepositIndex() + 1)

	pubKey := bytesutil.ToBytes48(data.PublicKey)
	if idx, ok := valIndexMap[pubKey]; ok {
		return helpers.IncreaseBalance(st, idx, data.Amount)
	}

	// Deposit signatures are checked against the genesis fork version with a
	// zeroed validators root so they stay valid across forks.
	domain, err := signing.ComputeDomain(cfg.DomainDeposit, cfg.GenesisForkVersion, make([]byte, 32))
	if err != nil {
		return errors.Wrap(err, "could not compute deposit domain")
	}
	depositMessage := &eth.DepositMessage{
		PublicKey:             data.PublicKey,
		WithdrawalCredentials: data.WithdrawalCredentials,
		Amount:                data.Amount,
	}
	if err := signing.VerifySigningRoot(depositMessage, data.PublicKey, data.Signature, domain); err != nil {
		// An invalid registration signature burns the deposit. The deposit
		// index has already advanced, so the block stays valid.
		log.WithError(err).WithField("publicKey", fmt.Sprintf("%#x", data.PublicKey)).Debug("Skipping deposit: could not verify deposit data signature")
		return nil
	}

	effectiveBalance := data.Amount - data.Amount%cfg.EffectiveBalanceIncrement
	if effectiveBalance > cfg.MaxEffectiveBalance {
		effectiveBalance = cfg.MaxEffectiveBalance
	}
	if err := st.AppendValidator(&eth.Validator{
		PublicKey:                  data.PublicKey,
		WithdrawalCredentials:      data.WithdrawalCredentials,
		EffectiveBalance:           effectiveBalance,
		ActivationEligibilityEpoch: cfg.FarFutureEpoch,
		ActivationEpoch:            cfg.FarFutureEpoch,
		ExitEpoch:                  cfg.FarFutureEpoch,
		WithdrawableEpoch:          cfg.FarFutureEpoch,
	}); err != nil {
		return err
	}
	if err := st.AppendBalance(data.Amount); err != nil {
		return err
	}
	if st.Version() >= version.Altair {
		if err := st.AppendPreviousParticipationBits(0); err != nil {
			return err
		}
		if err := st.AppendCurrentParticipationBits(0); err != nil {
			return err
		}
		if err := st.AppendInactivityScore(0); err != nil {
			return err
		}
	}
	valIndexMap[pubKey] = types.ValidatorIndex(st.NumValidators() - 1)
	return nil
}
