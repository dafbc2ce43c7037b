package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicetracker/apperr"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name          string
		sand          int64
		rate          int64
		wantMelange   int64
		wantRemainder int64
		wantErr       bool
	}{
		{name: "exact conversion", sand: 2500, rate: 50, wantMelange: 50, wantRemainder: 0},
		{name: "with remainder", sand: 2549, rate: 50, wantMelange: 50, wantRemainder: 49},
		{name: "below one melange", sand: 49, rate: 50, wantMelange: 0, wantRemainder: 49},
		{name: "zero sand", sand: 0, rate: 50, wantMelange: 0, wantRemainder: 0},
		{name: "rate of one", sand: 123, rate: 1, wantMelange: 123, wantRemainder: 0},
		{name: "negative sand", sand: -1, rate: 50, wantErr: true},
		{name: "zero rate", sand: 100, rate: 0, wantErr: true},
		{name: "negative rate", sand: 100, rate: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			melange, remainder, err := Convert(tt.sand, tt.rate)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMelange, melange)
			assert.Equal(t, tt.wantRemainder, remainder)
		})
	}
}

func TestConvert_Identity(t *testing.T) {
	// melange*rate + remainder must reproduce the input exactly, and the
	// remainder must stay below the rate.
	rates := []int64{1, 3, 50, 75, 1000}
	for _, rate := range rates {
		for sand := int64(0); sand <= 5000; sand += 137 {
			melange, remainder, err := Convert(sand, rate)
			require.NoError(t, err)
			assert.Equal(t, sand, melange*rate+remainder, "sand=%d rate=%d", sand, rate)
			assert.GreaterOrEqual(t, remainder, int64(0))
			assert.Less(t, remainder, rate)
		}
	}
}
