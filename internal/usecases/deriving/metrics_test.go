package deriving

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMetrics(t *testing.T) {
	tests := []struct {
		name              string
		price, qty        float64
		vSent, rate       float64
		wantRoutingCosts  float64
		wantTurnover      float64
		wantMargin        float64
		wantEcpm          float64
		wantMarginPct     *float64
	}{
		{
			name:  "worked example from the pricing sheet",
			price: 2.50, qty: 1000, vSent: 50000, rate: 0.18,
			wantRoutingCosts: 9.00,
			wantTurnover:     2500.00,
			wantMargin:       2491.00,
			wantEcpm:         50.00,
			wantMarginPct:    floatPtr(0.9964),
		},
		{
			name:  "zero sent volume yields zero ecpm, not an error",
			price: 10, qty: 5, vSent: 0, rate: 0.18,
			wantRoutingCosts: 0,
			wantTurnover:     50,
			wantMargin:       50,
			wantEcpm:         0,
			wantMarginPct:    floatPtr(1),
		},
		{
			name:  "zero turnover leaves margin percentage undefined",
			price: 0, qty: 0, vSent: 1000, rate: 0.18,
			wantRoutingCosts: 0.18,
			wantTurnover:     0,
			wantMargin:       -0.18,
			wantEcpm:         0,
			wantMarginPct:    nil,
		},
		{
			name:  "fractional quantities are truncated toward zero",
			price: 2, qty: 10.9, vSent: 1999.9, rate: 1,
			wantRoutingCosts: 2.0, // 1999/1000 * 1
			wantTurnover:     20,
			wantMargin:       18,
			wantEcpm:         10.01, // (20/1999)*1000 rounded
			wantMarginPct:    floatPtr(0.9),
		},
		{
			name:  "negative inputs are coerced to zero",
			price: -5, qty: -10, vSent: -100, rate: -0.2,
			wantRoutingCosts: 0,
			wantTurnover:     0,
			wantMargin:       0,
			wantEcpm:         0,
			wantMarginPct:    nil,
		},
		{
			name:  "non-finite inputs are coerced to zero",
			price: math.NaN(), qty: math.Inf(1), vSent: 1000, rate: 0.18,
			wantRoutingCosts: 0.18,
			wantTurnover:     0,
			wantMargin:       -0.18,
			wantEcpm:         0,
			wantMarginPct:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveMetrics(tt.price, tt.qty, tt.vSent, tt.rate)

			assert.Equal(t, tt.wantRoutingCosts, got.RoutingCosts)
			assert.Equal(t, tt.wantTurnover, got.Turnover)
			assert.Equal(t, tt.wantMargin, got.Margin)
			assert.Equal(t, tt.wantEcpm, got.Ecpm)

			if tt.wantMarginPct == nil {
				assert.Nil(t, got.MarginPct)
			} else {
				require.NotNil(t, got.MarginPct)
				assert.Equal(t, *tt.wantMarginPct, *got.MarginPct)
			}
		})
	}
}

func TestDeriveMetricsIsIdempotent(t *testing.T) {
	first := DeriveMetrics(2.50, 1000, 50000, 0.18)
	second := DeriveMetrics(2.50, 1000, 50000, 0.18)

	assert.Equal(t, first.RoutingCosts, second.RoutingCosts)
	assert.Equal(t, first.Turnover, second.Turnover)
	assert.Equal(t, first.Margin, second.Margin)
	assert.Equal(t, first.Ecpm, second.Ecpm)
	require.NotNil(t, first.MarginPct)
	require.NotNil(t, second.MarginPct)
	assert.Equal(t, *first.MarginPct, *second.MarginPct)
}

func floatPtr(f float64) *float64 {
	return &f
}
