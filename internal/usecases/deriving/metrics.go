// Package deriving computes campaign financial metrics from raw inputs.
// Everything here is pure and deterministic: same inputs, same outputs.
package deriving

import (
	"math"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
)

// coerce absorbs dirty upstream data: non-finite values become 0 and
// negatives are clamped to 0. Campaign inputs are all non-negative by
// definition, so a negative here is an import artifact, not a refund.
func coerce(f float64) float64 {
	f = utils.SafeFloat(f)
	if f < 0 {
		return 0
	}
	return f
}

// DeriveMetrics computes routing cost, turnover, margin, eCPM and margin
// percentage from a campaign's price, quantity and sent volume at the given
// routing rate. Quantity and sent volume are truncated toward zero since
// fractional sends are not physically meaningful. MarginPct is nil when
// turnover is zero (the ratio is undefined, not 0).
func DeriveMetrics(price, qty, vSent, rate float64) domain.DerivedMetrics {
	price = coerce(price)
	rate = coerce(rate)
	qtyInt := math.Trunc(coerce(qty))
	vSentInt := math.Trunc(coerce(vSent))

	routingCosts := utils.RoundWithTwoDecimalPlace((vSentInt / 1000) * rate)
	turnover := utils.RoundWithTwoDecimalPlace(qtyInt * price)
	margin := utils.RoundWithTwoDecimalPlace(turnover - routingCosts)

	ecpm := 0.0
	if vSentInt > 0 {
		ecpm = utils.RoundWithTwoDecimalPlace((turnover / vSentInt) * 1000)
	}

	var marginPct *float64
	if turnover > 0 {
		pct := utils.RoundWithFourDecimalPlace(margin / turnover)
		marginPct = &pct
	}

	return domain.DerivedMetrics{
		RoutingCosts: routingCosts,
		Turnover:     turnover,
		Margin:       margin,
		Ecpm:         ecpm,
		MarginPct:    marginPct,
	}
}

// ForCampaign derives metrics for a stored campaign at the given rate.
func ForCampaign(c *domain.CampaignRecord, rate float64) domain.DerivedMetrics {
	return DeriveMetrics(c.Price, float64(c.Qty), float64(c.VSent), rate)
}
