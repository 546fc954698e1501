// Package params defines the chain configuration constants threaded through
// every consensus computation. Configs are plain values passed explicitly so
// that several networks (mainnet, minimal, test networks) can coexist in one
// process.
package params

import (
	types "github.com/dospore/helios/consensus-types/primitives"
)

// BeaconChainConfig contains constant configs for node to participate in beacon chain.
type BeaconChainConfig struct {
	// Constants (non-configurable).
	FarFutureEpoch           types.Epoch `yaml:"FAR_FUTURE_EPOCH"`
	BaseRewardsPerEpoch      uint64      `yaml:"BASE_REWARDS_PER_EPOCH"`
	DepositContractTreeDepth uint64      `yaml:"DEPOSIT_CONTRACT_TREE_DEPTH"`
	GenesisDelay             uint64      `yaml:"GENESIS_DELAY" spec:"true"`

	// Misc constants.
	ConfigName                string      `yaml:"CONFIG_NAME" spec:"true"`
	PresetBase                string      `yaml:"PRESET_BASE" spec:"true"`
	TargetCommitteeSize       uint64      `yaml:"TARGET_COMMITTEE_SIZE" spec:"true"`
	MaxValidatorsPerCommittee uint64      `yaml:"MAX_VALIDATORS_PER_COMMITTEE" spec:"true"`
	MaxCommitteesPerSlot      uint64      `yaml:"MAX_COMMITTEES_PER_SLOT" spec:"true"`
	MinPerEpochChurnLimit     uint64      `yaml:"MIN_PER_EPOCH_CHURN_LIMIT" spec:"true"`
	ChurnLimitQuotient        uint64      `yaml:"CHURN_LIMIT_QUOTIENT" spec:"true"`
	ShuffleRoundCount         uint64      `yaml:"SHUFFLE_ROUND_COUNT" spec:"true"`
	HistoricalRootsLimit      uint64      `yaml:"HISTORICAL_ROOTS_LIMIT" spec:"true"`
	ValidatorRegistryLimit    uint64      `yaml:"VALIDATOR_REGISTRY_LIMIT" spec:"true"`

	// Gwei value constants.
	MinDepositAmount          uint64 `yaml:"MIN_DEPOSIT_AMOUNT" spec:"true"`
	MaxEffectiveBalance       uint64 `yaml:"MAX_EFFECTIVE_BALANCE" spec:"true"`
	EjectionBalance           uint64 `yaml:"EJECTION_BALANCE" spec:"true"`
	EffectiveBalanceIncrement uint64 `yaml:"EFFECTIVE_BALANCE_INCREMENT" spec:"true"`

	// Initial value constants.
	BLSWithdrawalPrefixByte         byte `yaml:"BLS_WITHDRAWAL_PREFIX" spec:"true"`
	ETH1AddressWithdrawalPrefixByte byte `yaml:"ETH1_ADDRESS_WITHDRAWAL_PREFIX" spec:"true"`

	// Time parameters.
	GenesisSlot                      types.Slot  `yaml:"GENESIS_SLOT"`
	GenesisEpoch                     types.Epoch `yaml:"GENESIS_EPOCH"`
	MinAttestationInclusionDelay     types.Slot  `yaml:"MIN_ATTESTATION_INCLUSION_DELAY" spec:"true"`
	SlotsPerEpoch                    types.Slot  `yaml:"SLOTS_PER_EPOCH" spec:"true"`
	SqrRootSlotsPerEpoch             types.Slot
	MinSeedLookahead                 types.Epoch `yaml:"MIN_SEED_LOOKAHEAD" spec:"true"`
	MaxSeedLookahead                 types.Epoch `yaml:"MAX_SEED_LOOKAHEAD" spec:"true"`
	SlotsPerHistoricalRoot           types.Slot  `yaml:"SLOTS_PER_HISTORICAL_ROOT" spec:"true"`
	MinValidatorWithdrawabilityDelay types.Epoch `yaml:"MIN_VALIDATOR_WITHDRAWABILITY_DELAY" spec:"true"`
	ShardCommitteePeriod             types.Epoch `yaml:"SHARD_COMMITTEE_PERIOD" spec:"true"`

	// State list lengths.
	EpochsPerHistoricalVector types.Epoch `yaml:"EPOCHS_PER_HISTORICAL_VECTOR" spec:"true"`
	EpochsPerSlashingsVector  types.Epoch `yaml:"EPOCHS_PER_SLASHINGS_VECTOR" spec:"true"`

	// Reward and penalty quotients.
	BaseRewardFactor            uint64 `yaml:"BASE_REWARD_FACTOR" spec:"true"`
	WhistleBlowerRewardQuotient uint64 `yaml:"WHISTLEBLOWER_REWARD_QUOTIENT" spec:"true"`
	ProposerRewardQuotient      uint64 `yaml:"PROPOSER_REWARD_QUOTIENT" spec:"true"`
	MinSlashingPenaltyQuotient  uint64 `yaml:"MIN_SLASHING_PENALTY_QUOTIENT" spec:"true"`

	// Max operations per block.
	MaxProposerSlashings     uint64 `yaml:"MAX_PROPOSER_SLASHINGS" spec:"true"`
	MaxAttesterSlashings     uint64 `yaml:"MAX_ATTESTER_SLASHINGS" spec:"true"`
	MaxAttestations          uint64 `yaml:"MAX_ATTESTATIONS" spec:"true"`
	MaxDeposits              uint64 `yaml:"MAX_DEPOSITS" spec:"true"`
	MaxVoluntaryExits        uint64 `yaml:"MAX_VOLUNTARY_EXITS" spec:"true"`
	MaxBlsToExecutionChanges uint64 `yaml:"MAX_BLS_TO_EXECUTION_CHANGES" spec:"true"`

	// BLS domain values.
	DomainBeaconProposer       [4]byte `yaml:"DOMAIN_BEACON_PROPOSER" spec:"true"`
	DomainBeaconAttester       [4]byte `yaml:"DOMAIN_BEACON_ATTESTER" spec:"true"`
	DomainRandao               [4]byte `yaml:"DOMAIN_RANDAO" spec:"true"`
	DomainDeposit              [4]byte `yaml:"DOMAIN_DEPOSIT" spec:"true"`
	DomainVoluntaryExit        [4]byte `yaml:"DOMAIN_VOLUNTARY_EXIT" spec:"true"`
	DomainBLSToExecutionChange [4]byte `yaml:"DOMAIN_BLS_TO_EXECUTION_CHANGE" spec:"true"`

	// Fork schedule.
	GenesisForkVersion   []byte      `yaml:"GENESIS_FORK_VERSION" spec:"true"`
	AltairForkVersion    []byte      `yaml:"ALTAIR_FORK_VERSION" spec:"true"`
	AltairForkEpoch      types.Epoch `yaml:"ALTAIR_FORK_EPOCH" spec:"true"`
	BellatrixForkVersion []byte      `yaml:"BELLATRIX_FORK_VERSION" spec:"true"`
	BellatrixForkEpoch   types.Epoch `yaml:"BELLATRIX_FORK_EPOCH" spec:"true"`
	CapellaForkVersion   []byte      `yaml:"CAPELLA_FORK_VERSION" spec:"true"`
	CapellaForkEpoch     types.Epoch `yaml:"CAPELLA_FORK_EPOCH" spec:"true"`

	// Altair incentivization values.
	TimelySourceFlagIndex uint8  `yaml:"TIMELY_SOURCE_FLAG_INDEX" spec:"true"`
	TimelyTargetFlagIndex uint8  `yaml:"TIMELY_TARGET_FLAG_INDEX" spec:"true"`
	TimelyHeadFlagIndex   uint8  `yaml:"TIMELY_HEAD_FLAG_INDEX" spec:"true"`
	TimelySourceWeight    uint64 `yaml:"TIMELY_SOURCE_WEIGHT" spec:"true"`
	TimelyTargetWeight    uint64 `yaml:"TIMELY_TARGET_WEIGHT" spec:"true"`
	TimelyHeadWeight      uint64 `yaml:"TIMELY_HEAD_WEIGHT" spec:"true"`
	SyncRewardWeight      uint64 `yaml:"SYNC_REWARD_WEIGHT" spec:"true"`
	ProposerWeight        uint64 `yaml:"PROPOSER_WEIGHT" spec:"true"`
	WeightDenominator     uint64 `yaml:"WEIGHT_DENOMINATOR" spec:"true"`

	MinSlashingPenaltyQuotientAltair    uint64 `yaml:"MIN_SLASHING_PENALTY_QUOTIENT_ALTAIR" spec:"true"`
	MinSlashingPenaltyQuotientBellatrix uint64 `yaml:"MIN_SLASHING_PENALTY_QUOTIENT_BELLATRIX" spec:"true"`
	MinEpochsToInactivityPenalty        types.Epoch `yaml:"MIN_EPOCHS_TO_INACTIVITY_PENALTY" spec:"true"`
}

// ParticipationFlagIndices returns the participation flag indices in weight
// order: timely source, timely target, timely head.
func (b *BeaconChainConfig) ParticipationFlagIndices() [3]uint8 {
	return [3]uint8{b.TimelySourceFlagIndex, b.TimelyTargetFlagIndex, b.TimelyHeadFlagIndex}
}

// ParticipationFlagWeights returns the reward weight of each participation
// flag, index-aligned with ParticipationFlagIndices.
func (b *BeaconChainConfig) ParticipationFlagWeights() [3]uint64 {
	return [3]uint64{b.TimelySourceWeight, b.TimelyTargetWeight, b.TimelyHeadWeight}
}

// Copy returns a deep copy of the config.
func (b *BeaconChainConfig) Copy() *BeaconChainConfig {
	config := *b
	config.GenesisForkVersion = append([]byte{}, b.GenesisForkVersion...)
	config.AltairForkVersion = append([]byte{}, b.AltairForkVersion...)
	config.BellatrixForkVersion = append([]byte{}, b.BellatrixForkVersion...)
	config.CapellaForkVersion = append([]byte{}, b.CapellaForkVersion...)
	return &config
}
