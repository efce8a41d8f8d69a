// Package routing resolves the effective routing rate for a date from the
// shared routing settings, and validates settings updates before they are
// persisted.
package routing

import (
	"fmt"
	"sort"
	"time"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
)

// openBoundLabel renders a nil period bound in validation messages.
const openBoundLabel = "∞"

// effectiveFrom treats a nil From as the earliest possible start.
func effectiveFrom(p domain.RoutingRatePeriod) time.Time {
	if p.From == nil {
		return time.Time{}
	}
	return utils.TruncateToDay(*p.From)
}

// effectiveTo treats a nil To as an open end.
func effectiveTo(p domain.RoutingRatePeriod) time.Time {
	if p.To == nil {
		// Far enough in the future to behave as +infinity at day granularity.
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return utils.TruncateToDay(*p.To)
}

func contains(p domain.RoutingRatePeriod, day time.Time) bool {
	return !day.Before(effectiveFrom(p)) && !day.After(effectiveTo(p))
}

// ResolveRate returns the routing rate effective on the given date. A nil
// date falls back to the default rate. Periods are evaluated most-recent
// start first; with validated, non-overlapping periods at most one matches,
// the ordering is a deterministic tie-break for stale data and must not
// change.
func ResolveRate(date *time.Time, settings domain.RoutingSettings) float64 {
	if date == nil || date.IsZero() {
		return settings.DefaultRate
	}

	day := utils.TruncateToDay(*date)

	// Sort a copy: resolution must never mutate the caller's snapshot.
	periods := make([]domain.RoutingRatePeriod, len(settings.Periods))
	copy(periods, settings.Periods)
	sort.SliceStable(periods, func(i, j int) bool {
		return effectiveFrom(periods[i]).After(effectiveFrom(periods[j]))
	})

	for _, p := range periods {
		if contains(p, day) {
			return p.Rate
		}
	}

	return settings.DefaultRate
}

func boundLabel(t *time.Time) string {
	if t == nil {
		return openBoundLabel
	}
	return t.Format(time.DateOnly)
}

// ValidateSettings checks a settings update before save and returns every
// problem found: negative rates, inverted date ranges and overlapping
// periods. An empty result means the settings are safe to persist.
func ValidateSettings(settings domain.RoutingSettings) []domain.ValidationError {
	errs := make([]domain.ValidationError, 0)

	if settings.DefaultRate < 0 {
		errs = append(errs, domain.ValidationError{
			Field:   "default_rate",
			Message: "default rate must be a non-negative number",
		})
	}

	for _, p := range settings.Periods {
		if p.Rate < 0 {
			errs = append(errs, domain.ValidationError{
				Field:   "periods",
				Message: fmt.Sprintf("period %s – %s has a negative rate", boundLabel(p.From), boundLabel(p.To)),
			})
		}

		if p.From != nil && p.To != nil && effectiveFrom(p).After(effectiveTo(p)) {
			errs = append(errs, domain.ValidationError{
				Field:   "periods",
				Message: fmt.Sprintf("period %s – %s ends before it starts", boundLabel(p.From), boundLabel(p.To)),
			})
		}
	}

	// Overlap check: sort by effective start and compare adjacent pairs,
	// with nil bounds treated as infinities.
	sorted := make([]domain.RoutingRatePeriod, len(settings.Periods))
	copy(sorted, settings.Periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return effectiveFrom(sorted[i]).Before(effectiveFrom(sorted[j]))
	})

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if !effectiveTo(prev).Before(effectiveFrom(curr)) {
			errs = append(errs, domain.ValidationError{
				Field: "periods",
				Message: fmt.Sprintf(
					"period %s – %s overlaps period %s – %s",
					boundLabel(prev.From), boundLabel(prev.To),
					boundLabel(curr.From), boundLabel(curr.To),
				),
			})
		}
	}

	return errs
}
