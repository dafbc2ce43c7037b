package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicetracker/apperr"
)

func TestComputeSplit(t *testing.T) {
	t.Run("guild cut first then harvester cut", func(t *testing.T) {
		result, err := ComputeSplit(50000, 5, 25, 10, 50)
		require.NoError(t, err)

		assert.Equal(t, int64(5000), result.GuildSand)
		assert.Equal(t, int64(45000), result.RemainingSand)
		assert.Equal(t, int64(11250), result.HarvesterSand)
		assert.Equal(t, int64(6750), result.PerParticipantSand)
		assert.Equal(t, int64(0), result.UnallocatedSand)

		assert.Equal(t, int64(100), result.GuildMelange)
		assert.Equal(t, int64(225), result.HarvesterMelange)
		assert.Equal(t, int64(135), result.PerParticipantMelange)

		assert.True(t, result.Reconciles())
	})

	t.Run("uneven division tracks unallocated sand", func(t *testing.T) {
		// 1000 sand, no cuts, 3 participants: 333 each, 1 left over.
		result, err := ComputeSplit(1000, 3, 0, 0, 50)
		require.NoError(t, err)

		assert.Equal(t, int64(0), result.GuildSand)
		assert.Equal(t, int64(0), result.HarvesterSand)
		assert.Equal(t, int64(333), result.PerParticipantSand)
		assert.Equal(t, int64(1), result.UnallocatedSand)
		assert.True(t, result.Reconciles())
	})

	t.Run("zero total sand", func(t *testing.T) {
		result, err := ComputeSplit(0, 4, 10, 10, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.GuildSand)
		assert.Equal(t, int64(0), result.PerParticipantSand)
		assert.True(t, result.Reconciles())
	})

	t.Run("full guild cut leaves nothing", func(t *testing.T) {
		result, err := ComputeSplit(5000, 2, 0, 100, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.GuildSand)
		assert.Equal(t, int64(0), result.PerParticipantSand)
		assert.True(t, result.Reconciles())
	})

	t.Run("fractional guild cut", func(t *testing.T) {
		// 12.5% of 1000 floors to 125.
		result, err := ComputeSplit(1000, 1, 0, 12.5, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(125), result.GuildSand)
		assert.True(t, result.Reconciles())
	})
}

func TestComputeSplit_InvalidInput(t *testing.T) {
	tests := []struct {
		name         string
		totalSand    int64
		participants int
		harvesterPct float64
		guildPct     float64
	}{
		{name: "negative total", totalSand: -1, participants: 1, harvesterPct: 0, guildPct: 0},
		{name: "zero participants", totalSand: 100, participants: 0, harvesterPct: 0, guildPct: 0},
		{name: "negative participants", totalSand: 100, participants: -2, harvesterPct: 0, guildPct: 0},
		{name: "harvester pct over 100", totalSand: 100, participants: 1, harvesterPct: 101, guildPct: 0},
		{name: "harvester pct negative", totalSand: 100, participants: 1, harvesterPct: -1, guildPct: 0},
		{name: "guild pct over 100", totalSand: 100, participants: 1, harvesterPct: 0, guildPct: 100.5},
		{name: "guild pct negative", totalSand: 100, participants: 1, harvesterPct: 0, guildPct: -10},
		{name: "combined over 100", totalSand: 100, participants: 1, harvesterPct: 60, guildPct: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeSplit(tt.totalSand, tt.participants, tt.harvesterPct, tt.guildPct, 50)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestComputeSplit_ReconcilesAcrossInputs(t *testing.T) {
	// Every valid split must account for every grain of sand exactly.
	totals := []int64{0, 1, 7, 999, 50000, 1234567}
	counts := []int{1, 2, 3, 5, 11}
	percentages := []float64{0, 5, 10, 25, 33, 50}

	for _, total := range totals {
		for _, count := range counts {
			for _, hPct := range percentages {
				for _, gPct := range percentages {
					if hPct+gPct > 100 {
						continue
					}
					result, err := ComputeSplit(total, count, hPct, gPct, 50)
					require.NoError(t, err)
					assert.True(t, result.Reconciles(),
						"total=%d count=%d harvester=%g guild=%g", total, count, hPct, gPct)
				}
			}
		}
	}
}
