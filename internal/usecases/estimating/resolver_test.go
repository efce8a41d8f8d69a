package estimating

import (
	"testing"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple comma list", "email,sms,push", []string{"email", "sms", "push"}},
		{"trims and drops blanks", " email , , sms ,", []string{"email", "sms"}},
		{"deduplicates preserving first-seen order", "sms,email,sms", []string{"sms", "email"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSet(tt.raw))
		})
	}
}

func TestParseMarketSetSplitsOnWhitespaceToo(t *testing.T) {
	assert.Equal(t, []string{"FR", "DE", "IT", "ES"}, ParseMarketSet("FR DE,IT\tES FR"))
}

func TestResolveEffortPriorityWins(t *testing.T) {
	rules := []domain.EffortRule{
		{
			ID:        "generic",
			Priority:  10,
			PrepMode:  domain.PrepModeFixed,
			HoursPrep: 1,
			HoursBuild: 5,
			Active:    true,
		},
		{
			ID:               "europcar-fr",
			Priority:         1,
			Brand:            "Europcar",
			Markets:          "FR",
			PrepMode:         domain.PrepModePercent,
			HoursPrepPercent: 20,
			HoursBuild:       8,
			Active:           true,
		},
	}

	ctx := domain.EffortContext{Brand: "Europcar", Market: "FR"}

	estimate, ok := ResolveEffort(ctx, rules, MatchOptions{})
	require.True(t, ok)
	assert.Equal(t, "europcar-fr", estimate.Rule.ID)
	assert.Equal(t, 8.0, estimate.BaseHours)
	assert.Equal(t, 1.6, estimate.PrepHours)
	assert.Equal(t, 9.6, estimate.TotalHours)
}

func TestResolveEffortResultIsOrderIndependent(t *testing.T) {
	rules := []domain.EffortRule{
		{ID: "a", Priority: 5, HoursBuild: 2, PrepMode: domain.PrepModeFixed, Active: true},
		{ID: "b", Priority: 3, HoursBuild: 4, PrepMode: domain.PrepModeFixed, Active: true},
	}
	reversed := []domain.EffortRule{rules[1], rules[0]}

	ctx := domain.EffortContext{Brand: "any"}

	first, ok := ResolveEffort(ctx, rules, MatchOptions{})
	require.True(t, ok)
	second, ok := ResolveEffort(ctx, reversed, MatchOptions{})
	require.True(t, ok)

	assert.Equal(t, first.Rule.ID, second.Rule.ID)
	assert.Equal(t, "b", first.Rule.ID)
}

func TestResolveEffortWildcards(t *testing.T) {
	wildcard := domain.EffortRule{
		ID:       "wildcard",
		Priority: 50,
		PrepMode: domain.PrepModeFixed,
		Active:   true,
	}

	tests := []struct {
		name  string
		ctx   domain.EffortContext
		match bool
	}{
		{"empty rule matches anything", domain.EffortContext{Brand: "X", Scope: "Y", Touchpoint: "email", Market: "FR"}, true},
		{"empty context matches too", domain.EffortContext{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ResolveEffort(tt.ctx, []domain.EffortRule{wildcard}, MatchOptions{})
			assert.Equal(t, tt.match, ok)
		})
	}
}

func TestResolveEffortSetMembership(t *testing.T) {
	rule := domain.EffortRule{
		ID:          "sets",
		Priority:    1,
		Touchpoints: "email,sms",
		Markets:     "FR DE",
		PrepMode:    domain.PrepModeFixed,
		Active:      true,
	}

	_, ok := ResolveEffort(domain.EffortContext{Touchpoint: "sms", Market: "DE"}, []domain.EffortRule{rule}, MatchOptions{})
	assert.True(t, ok)

	_, ok = ResolveEffort(domain.EffortContext{Touchpoint: "push", Market: "DE"}, []domain.EffortRule{rule}, MatchOptions{})
	assert.False(t, ok)

	_, ok = ResolveEffort(domain.EffortContext{Touchpoint: "sms", Market: "IT"}, []domain.EffortRule{rule}, MatchOptions{})
	assert.False(t, ok)
}

func TestResolveEffortCaseSensitivityIsConfigurable(t *testing.T) {
	rule := domain.EffortRule{
		ID:       "brand",
		Priority: 1,
		Brand:    "Europcar",
		PrepMode: domain.PrepModeFixed,
		Active:   true,
	}
	ctx := domain.EffortContext{Brand: "EUROPCAR"}

	_, ok := ResolveEffort(ctx, []domain.EffortRule{rule}, MatchOptions{})
	assert.False(t, ok, "default matching is case-sensitive")

	_, ok = ResolveEffort(ctx, []domain.EffortRule{rule}, MatchOptions{CaseInsensitive: true})
	assert.True(t, ok)
}

func TestResolveEffortNoMatchIsDistinctFromZeroHours(t *testing.T) {
	zeroRule := domain.EffortRule{
		ID:       "zero",
		Priority: 1,
		Brand:    "Europcar",
		PrepMode: domain.PrepModeFixed,
		Active:   true,
	}

	// A matching rule whose categories sum to zero is a valid estimate.
	estimate, ok := ResolveEffort(domain.EffortContext{Brand: "Europcar"}, []domain.EffortRule{zeroRule}, MatchOptions{})
	require.True(t, ok)
	assert.Equal(t, 0.0, estimate.TotalHours)

	// No matching rule at all is signalled by ok == false.
	estimate, ok = ResolveEffort(domain.EffortContext{Brand: "Sixt"}, []domain.EffortRule{zeroRule}, MatchOptions{})
	assert.False(t, ok)
	assert.Nil(t, estimate)
}

func TestResolveEffortIgnoresInactiveRules(t *testing.T) {
	rules := []domain.EffortRule{
		{ID: "inactive", Priority: 1, HoursBuild: 8, PrepMode: domain.PrepModeFixed, Active: false},
		{ID: "active", Priority: 2, HoursBuild: 3, PrepMode: domain.PrepModeFixed, Active: true},
	}

	estimate, ok := ResolveEffort(domain.EffortContext{}, rules, MatchOptions{})
	require.True(t, ok)
	assert.Equal(t, "active", estimate.Rule.ID)
}

func TestValidateRule(t *testing.T) {
	existing := []*domain.EffortRule{
		{ID: "r1", Priority: 1},
	}

	tests := []struct {
		name       string
		rule       domain.EffortRule
		wantErrors int
	}{
		{
			name:       "clean rule",
			rule:       domain.EffortRule{ID: "r2", Priority: 2, PrepMode: domain.PrepModeFixed},
			wantErrors: 0,
		},
		{
			name:       "negative hours",
			rule:       domain.EffortRule{ID: "r2", Priority: 2, PrepMode: domain.PrepModeFixed, HoursBuild: -1},
			wantErrors: 1,
		},
		{
			name:       "unknown prep mode",
			rule:       domain.EffortRule{ID: "r2", Priority: 2, PrepMode: "half"},
			wantErrors: 1,
		},
		{
			name:       "duplicate priority",
			rule:       domain.EffortRule{ID: "r2", Priority: 1, PrepMode: domain.PrepModeFixed},
			wantErrors: 1,
		},
		{
			name:       "updating a rule keeps its own priority",
			rule:       domain.EffortRule{ID: "r1", Priority: 1, PrepMode: domain.PrepModeFixed},
			wantErrors: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRule(&tt.rule, existing)
			assert.Len(t, errs, tt.wantErrors)
		})
	}
}
