package params

import (
	"math"
)

var mainnetBeaconConfig = &BeaconChainConfig{
	// Constants (non-configurable).
	FarFutureEpoch:           math.MaxUint64,
	BaseRewardsPerEpoch:      4,
	DepositContractTreeDepth: 32,
	GenesisDelay:             604800,

	// Misc constant.
	ConfigName:                "mainnet",
	PresetBase:                "mainnet",
	TargetCommitteeSize:       128,
	MaxValidatorsPerCommittee: 2048,
	MaxCommitteesPerSlot:      64,
	MinPerEpochChurnLimit:     4,
	ChurnLimitQuotient:        1 << 16,
	ShuffleRoundCount:         90,
	HistoricalRootsLimit:      1 << 24,
	ValidatorRegistryLimit:    1 << 40,

	// Gwei value constants.
	MinDepositAmount:          1 * 1e9,
	MaxEffectiveBalance:       32 * 1e9,
	EjectionBalance:           16 * 1e9,
	EffectiveBalanceIncrement: 1 * 1e9,

	// Initial value constants.
	BLSWithdrawalPrefixByte:         byte(0),
	ETH1AddressWithdrawalPrefixByte: byte(1),

	// Time parameter constants.
	GenesisSlot:                      0,
	GenesisEpoch:                     0,
	MinAttestationInclusionDelay:     1,
	SlotsPerEpoch:                    32,
	SqrRootSlotsPerEpoch:             5,
	MinSeedLookahead:                 1,
	MaxSeedLookahead:                 4,
	SlotsPerHistoricalRoot:           8192,
	MinValidatorWithdrawabilityDelay: 256,
	ShardCommitteePeriod:             256,

	// State list length constants.
	EpochsPerHistoricalVector: 65536,
	EpochsPerSlashingsVector:  8192,

	// Reward and penalty quotients constants.
	BaseRewardFactor:            64,
	WhistleBlowerRewardQuotient: 512,
	ProposerRewardQuotient:      8,
	MinSlashingPenaltyQuotient:  128,

	// Max operations per block constants.
	MaxProposerSlashings:     16,
	MaxAttesterSlashings:     2,
	MaxAttestations:          128,
	MaxDeposits:              16,
	MaxVoluntaryExits:        16,
	MaxBlsToExecutionChanges: 16,

	// BLS domain values.
	DomainBeaconProposer:       [4]byte{0x00, 0x00, 0x00, 0x00},
	DomainBeaconAttester:       [4]byte{0x01, 0x00, 0x00, 0x00},
	DomainRandao:               [4]byte{0x02, 0x00, 0x00, 0x00},
	DomainDeposit:              [4]byte{0x03, 0x00, 0x00, 0x00},
	DomainVoluntaryExit:        [4]byte{0x04, 0x00, 0x00, 0x00},
	DomainBLSToExecutionChange: [4]byte{0x0A, 0x00, 0x00, 0x00},

	// Fork schedule.
	GenesisForkVersion:   []byte{0, 0, 0, 0},
	AltairForkVersion:    []byte{1, 0, 0, 0},
	AltairForkEpoch:      74240,
	BellatrixForkVersion: []byte{2, 0, 0, 0},
	BellatrixForkEpoch:   144896,
	CapellaForkVersion:   []byte{3, 0, 0, 0},
	CapellaForkEpoch:     194048,

	// Altair incentivization values.
	TimelySourceFlagIndex: 0,
	TimelyTargetFlagIndex: 1,
	TimelyHeadFlagIndex:   2,
	TimelySourceWeight:    14,
	TimelyTargetWeight:    26,
	TimelyHeadWeight:      14,
	SyncRewardWeight:      2,
	ProposerWeight:        8,
	WeightDenominator:     64,

	MinSlashingPenaltyQuotientAltair:    64,
	MinSlashingPenaltyQuotientBellatrix: 32,
	MinEpochsToInactivityPenalty:        4,
}

// MainnetConfig returns a fresh copy of the mainnet beacon chain config.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig.Copy()
}

// MinimalSpecConfig returns a fresh copy of the minimal (interop) beacon
// chain config, derived from mainnet with the standard minimal preset
// overrides.
func MinimalSpecConfig() *BeaconChainConfig {
	minimalConfig := mainnetBeaconConfig.Copy()

	minimalConfig.ConfigName = "minimal"
	minimalConfig.PresetBase = "minimal"

	// Misc.
	minimalConfig.MaxCommitteesPerSlot = 4
	minimalConfig.TargetCommitteeSize = 4
	minimalConfig.MaxValidatorsPerCommittee = 2048
	minimalConfig.MinPerEpochChurnLimit = 4
	minimalConfig.ChurnLimitQuotient = 32
	minimalConfig.ShuffleRoundCount = 10

	// Gwei values.
	minimalConfig.MinDepositAmount = 1e9
	minimalConfig.MaxEffectiveBalance = 32e9
	minimalConfig.EjectionBalance = 16e9
	minimalConfig.EffectiveBalanceIncrement = 1e9

	// Time parameters.
	minimalConfig.SlotsPerEpoch = 8
	minimalConfig.SqrRootSlotsPerEpoch = 2
	minimalConfig.MinAttestationInclusionDelay = 1
	minimalConfig.MinSeedLookahead = 1
	minimalConfig.MaxSeedLookahead = 4
	minimalConfig.SlotsPerHistoricalRoot = 64
	minimalConfig.MinValidatorWithdrawabilityDelay = 256
	minimalConfig.ShardCommitteePeriod = 64

	// State list lengths.
	minimalConfig.EpochsPerHistoricalVector = 64
	minimalConfig.EpochsPerSlashingsVector = 64

	// Fork schedule.
	minimalConfig.GenesisForkVersion = []byte{0, 0, 0, 1}
	minimalConfig.AltairForkVersion = []byte{1, 0, 0, 1}
	minimalConfig.AltairForkEpoch = math.MaxUint64
	minimalConfig.BellatrixForkVersion = []byte{2, 0, 0, 1}
	minimalConfig.BellatrixForkEpoch = math.MaxUint64
	minimalConfig.CapellaForkVersion = []byte{3, 0, 0, 1}
	minimalConfig.CapellaForkEpoch = math.MaxUint64

	return minimalConfig
}
