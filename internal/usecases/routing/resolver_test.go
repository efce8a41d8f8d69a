package routing

import (
	"testing"
	"time"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestResolveRate(t *testing.T) {
	q1 := domain.RoutingRatePeriod{
		ID:   "p1",
		From: datePtr(2025, 1, 1),
		To:   datePtr(2025, 3, 31),
		Rate: 0.20,
	}

	settings := domain.RoutingSettings{
		DefaultRate: 0.18,
		Periods:     []domain.RoutingRatePeriod{q1},
	}

	tests := []struct {
		name string
		date *time.Time
		want float64
	}{
		{"inside the period", datePtr(2025, 2, 15), 0.20},
		{"inclusive start bound", datePtr(2025, 1, 1), 0.20},
		{"inclusive end bound", datePtr(2025, 3, 31), 0.20},
		{"outside the period falls back to default", datePtr(2025, 6, 1), 0.18},
		{"nil date falls back to default", nil, 0.18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRate(tt.date, settings))
		})
	}
}

func TestResolveRateStripsTimeOfDay(t *testing.T) {
	settings := domain.RoutingSettings{
		DefaultRate: 0.18,
		Periods: []domain.RoutingRatePeriod{
			{ID: "p1", From: datePtr(2025, 1, 1), To: datePtr(2025, 1, 31), Rate: 0.25},
		},
	}

	lateEvening := time.Date(2025, 1, 31, 23, 45, 12, 0, time.UTC)
	assert.Equal(t, 0.25, ResolveRate(&lateEvening, settings))
}

func TestResolveRateOpenBounds(t *testing.T) {
	settings := domain.RoutingSettings{
		DefaultRate: 0.18,
		Periods: []domain.RoutingRatePeriod{
			{ID: "open-start", From: nil, To: datePtr(2024, 12, 31), Rate: 0.15},
			{ID: "open-end", From: datePtr(2026, 1, 1), To: nil, Rate: 0.22},
		},
	}

	assert.Equal(t, 0.15, ResolveRate(datePtr(2020, 5, 5), settings))
	assert.Equal(t, 0.22, ResolveRate(datePtr(2030, 5, 5), settings))
	assert.Equal(t, 0.18, ResolveRate(datePtr(2025, 5, 5), settings))
}

// With overlapping stale data the most-recent start wins, deterministically.
func TestResolveRateTieBreakPrefersMostRecentStart(t *testing.T) {
	settings := domain.RoutingSettings{
		DefaultRate: 0.18,
		Periods: []domain.RoutingRatePeriod{
			{ID: "older", From: datePtr(2025, 1, 1), To: datePtr(2025, 12, 31), Rate: 0.10},
			{ID: "newer", From: datePtr(2025, 6, 1), To: datePtr(2025, 12, 31), Rate: 0.30},
		},
	}

	got := ResolveRate(datePtr(2025, 7, 15), settings)
	assert.Equal(t, 0.30, got)

	// Same result regardless of declaration order.
	reversed := domain.RoutingSettings{
		DefaultRate: settings.DefaultRate,
		Periods:     []domain.RoutingRatePeriod{settings.Periods[1], settings.Periods[0]},
	}
	assert.Equal(t, got, ResolveRate(datePtr(2025, 7, 15), reversed))
}

func TestResolveRateDoesNotMutateInput(t *testing.T) {
	periods := []domain.RoutingRatePeriod{
		{ID: "b", From: datePtr(2025, 6, 1), To: datePtr(2025, 6, 30), Rate: 0.2},
		{ID: "a", From: datePtr(2025, 1, 1), To: datePtr(2025, 1, 31), Rate: 0.3},
	}
	settings := domain.RoutingSettings{DefaultRate: 0.18, Periods: periods}

	ResolveRate(datePtr(2025, 6, 15), settings)

	assert.Equal(t, "b", periods[0].ID)
	assert.Equal(t, "a", periods[1].ID)
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name       string
		settings   domain.RoutingSettings
		wantErrors int
	}{
		{
			name: "clean settings pass",
			settings: domain.RoutingSettings{
				DefaultRate: 0.18,
				Periods: []domain.RoutingRatePeriod{
					{From: datePtr(2025, 1, 1), To: datePtr(2025, 3, 31), Rate: 0.20},
					{From: datePtr(2025, 4, 1), To: datePtr(2025, 6, 30), Rate: 0.22},
				},
			},
			wantErrors: 0,
		},
		{
			name: "adjacent periods sharing a day overlap",
			settings: domain.RoutingSettings{
				DefaultRate: 0.18,
				Periods: []domain.RoutingRatePeriod{
					{From: datePtr(2025, 1, 1), To: datePtr(2025, 3, 31), Rate: 0.20},
					{From: datePtr(2025, 3, 31), To: datePtr(2025, 6, 30), Rate: 0.22},
				},
			},
			wantErrors: 1,
		},
		{
			name: "open-ended period swallows a later one",
			settings: domain.RoutingSettings{
				DefaultRate: 0.18,
				Periods: []domain.RoutingRatePeriod{
					{From: datePtr(2025, 1, 1), To: nil, Rate: 0.20},
					{From: datePtr(2025, 6, 1), To: datePtr(2025, 6, 30), Rate: 0.22},
				},
			},
			wantErrors: 1,
		},
		{
			name: "negative default rate",
			settings: domain.RoutingSettings{
				DefaultRate: -0.18,
			},
			wantErrors: 1,
		},
		{
			name: "negative period rate and inverted range are both reported",
			settings: domain.RoutingSettings{
				DefaultRate: 0.18,
				Periods: []domain.RoutingRatePeriod{
					{From: datePtr(2025, 3, 31), To: datePtr(2025, 1, 1), Rate: -0.2},
				},
			},
			wantErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSettings(tt.settings)
			assert.Len(t, errs, tt.wantErrors)
		})
	}
}

func TestValidateSettingsOverlapMessageUsesInfinityForOpenBounds(t *testing.T) {
	settings := domain.RoutingSettings{
		DefaultRate: 0.18,
		Periods: []domain.RoutingRatePeriod{
			{From: nil, To: nil, Rate: 0.20},
			{From: datePtr(2025, 6, 1), To: datePtr(2025, 6, 30), Rate: 0.22},
		},
	}

	errs := ValidateSettings(settings)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "∞")
}
