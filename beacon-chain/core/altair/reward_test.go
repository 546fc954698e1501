package altair

import (
	"testing"

	"github.com/dospore/helios/beacon-chain/cache"
	"github.com/dospore/helios/config/params"
	"github.com/dospore/helios/runtime/version"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
	"github.com/dospore/helios/testing/util"
)

// The proposer payout divides the accumulated numerator exactly once, so
// contributions too small to pay out alone still count in aggregate.
func TestRewardProposer_SingleFloorDivision(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	// With a weight denominator of 64 and proposer weight of 8 the payout
	// denominator is (64 - 8) * 64 / 8 = 448.
	require.Equal(t, uint64(448), (cfg.WeightDenominator-cfg.ProposerWeight)*cfg.WeightDenominator/cfg.ProposerWeight)

	tests := []struct {
		name      string
		numerator uint64
		want      uint64
	}{
		{name: "zero numerator pays nothing", numerator: 0, want: 0},
		{name: "sub-denominator contributions still aggregate", numerator: 300 + 300, want: 1},
		{name: "two attesters with base reward 64 and source weight 14", numerator: 2 * 64 * 14, want: 4},
		{name: "floors the remainder", numerator: 1000, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := util.DeterministicGenesisState(t, 8, version.Altair, cfg)
			cctx := cache.NewConsensusContext()
			cctx.SetProposerIndex(2)
			before, err := st.BalanceAtIndex(2)
			require.NoError(t, err)

			require.NoError(t, rewardProposer(st, tt.numerator, cctx, cfg))

			after, err := st.BalanceAtIndex(2)
			require.NoError(t, err)
			assert.Equal(t, before+tt.want, after)
		})
	}
}
