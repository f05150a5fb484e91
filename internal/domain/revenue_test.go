package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueRangeContains(t *testing.T) {
	tests := []struct {
		r       RevenueRange
		revenue int64
		want    bool
	}{
		{Revenue300kTo500k, 299_999, false},
		{Revenue300kTo500k, 300_000, true},
		{Revenue300kTo500k, 500_000, true},
		{Revenue300kTo500k, 500_001, false},
		{Revenue500kTo1m, 750_000, true},
		{Revenue1mTo2m, 2_000_000, true},
		{Revenue2mPlus, 1_999_999, false},
		{Revenue2mPlus, 2_000_000, true},
		{Revenue2mPlus, 50_000_000, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.r.Contains(tt.revenue), "%s contains %d", tt.r, tt.revenue)
	}
}

func TestParseRevenueRange(t *testing.T) {
	r, err := ParseRevenueRange("1m-2m")
	require.NoError(t, err)
	assert.Equal(t, Revenue1mTo2m, r)

	_, err = ParseRevenueRange("5m-10m")
	assert.Error(t, err)
}

func TestRevenueRangeLabel(t *testing.T) {
	assert.Equal(t, "$2M+", Revenue2mPlus.Label())
	assert.Equal(t, "$300K - $500K", Revenue300kTo500k.Label())
}
