// Package cache holds the per-block consensus context: values that several
// operations of one block need but that are expensive to recompute, resolved
// lazily and memoised for the lifetime of the block.
package cache

import (
	"github.com/dospore/helios/beacon-chain/core/helpers"
	"github.com/dospore/helios/beacon-chain/state"
	types "github.com/dospore/helios/consensus-types/primitives"
	"github.com/dospore/helios/config/params"
)

type committeeKey struct {
	slot  types.Slot
	index types.CommitteeIndex
}

// ConsensusContext caches block-scoped consensus values. It is not safe for
// concurrent use; one context serves the processing of exactly one block.
type ConsensusContext struct {
	proposerIndex    types.ValidatorIndex
	hasProposerIndex bool

	committees map[committeeKey][]types.ValidatorIndex

	totalActiveBalance    uint64
	hasTotalActiveBalance bool

	baseRewardPerIncrement    uint64
	hasBaseRewardPerIncrement bool

	// OnTimelyTargetAttested, when set, is invoked once per validator whose
	// timely target flag transitions from unset to set, letting a progressive
	// balance tracker follow along.
	OnTimelyTargetAttested func(idx types.ValidatorIndex, effectiveBalance uint64)
}

// NewConsensusContext returns an empty context for one block.
func NewConsensusContext() *ConsensusContext {
	return &ConsensusContext{
		committees: make(map[committeeKey][]types.ValidatorIndex),
	}
}

// ProposerIndex resolves the proposer of the state's slot, computing it on
// first use.
func (c *ConsensusContext) ProposerIndex(st *state.BeaconState, cfg *params.BeaconChainConfig) (types.ValidatorIndex, error) {
	if c.hasProposerIndex {
		return c.proposerIndex, nil
	}
	idx, err := helpers.BeaconProposerIndex(st, cfg)
	if err != nil {
		return 0, err
	}
	c.proposerIndex = idx
	c.hasProposerIndex = true
	return idx, nil
}

// SetProposerIndex pins the proposer index, bypassing computation.
func (c *ConsensusContext) SetProposerIndex(idx types.ValidatorIndex) {
	c.proposerIndex = idx
	c.hasProposerIndex = true
}

// BeaconCommittee resolves the committee for the slot and index, memoising
// per slot and committee index.
func (c *ConsensusContext) BeaconCommittee(
	st *state.BeaconState,
	slot types.Slot,
	committeeIndex types.CommitteeIndex,
	cfg *params.BeaconChainConfig,
) ([]types.ValidatorIndex, error) {
	key := committeeKey{slot: slot, index: committeeIndex}
	if committee, ok := c.committees[key]; ok {
		return committee, nil
	}
	committee, err := helpers.BeaconCommittee(st, slot, committeeIndex, cfg)
	if err != nil {
		return nil, err
	}
	c.committees[key] = committee
	return committee, nil
}

// TotalActiveBalance resolves the total active balance of the state's epoch,
// computing it on first use.
func (c *ConsensusContext) TotalActiveBalance(st *state.BeaconState, cfg *params.BeaconChainConfig) (uint64, error) {
	if c.hasTotalActiveBalance {
		return c.totalActiveBalance, nil
	}
	total, err := helpers.TotalActiveBalance(st, cfg)
	if err != nil {
		return 0, err
	}
	c.totalActiveBalance = total
	c.hasTotalActiveBalance = true
	return total, nil
}

// BaseRewardPerIncrement resolves the per-increment base reward for the
// block, computing it on first use.
func (c *ConsensusContext) BaseRewardPerIncrement(st *state.BeaconState, cfg *params.BeaconChainConfig) (uint64, error) {
	if c.hasBaseRewardPerIncrement {
		return c.baseRewardPerIncrement, nil
	}
	total, err := c.TotalActiveBalance(st, cfg)
	if err != nil {
		return 0, err
	}
	bpi, err := helpers.BaseRewardPerIncrement(total, cfg)
	if err != nil {
		return 0, err
	}
	c.baseRewardPerIncrement = bpi
	c.hasBaseRewardPerIncrement = true
	return bpi, nil
}
