// Package estimating resolves CRM effort hours from a prioritized,
// wildcard-capable rule set.
package estimating

import (
	"sort"
	"strings"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
)

// MatchOptions tunes rule matching. Brand and scope comparison is
// case-sensitive by default, matching the historical catalog behavior;
// flip CaseInsensitive when the catalog data is known to be mixed-case.
type MatchOptions struct {
	CaseInsensitive bool
}

// constraint is an explicit match constraint: either "any value" or
// membership in a parsed set. This removes the ambiguity of the raw
// empty-string-means-wildcard sentinel.
type constraint struct {
	any    bool
	values []string
}

func (c constraint) matches(value string, opts MatchOptions) bool {
	if c.any {
		return true
	}
	for _, v := range c.values {
		if equals(v, value, opts) {
			return true
		}
	}
	return false
}

func equals(a, b string, opts MatchOptions) bool {
	if opts.CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// ParseSet splits a raw touchpoint list on commas, trims entries, drops
// blanks and deduplicates preserving first-seen order.
func ParseSet(raw string) []string {
	return parse(raw, func(r rune) bool { return r == ',' })
}

// ParseMarketSet splits a raw market list on commas and whitespace, with the
// same trimming and deduplication as ParseSet.
func ParseMarketSet(raw string) []string {
	return parse(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func parse(raw string, isSep func(rune) bool) []string {
	parts := strings.FieldsFunc(raw, isSep)

	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}

func setConstraint(values []string) constraint {
	if len(values) == 0 {
		return constraint{any: true}
	}
	return constraint{values: values}
}

func fieldConstraint(value string) constraint {
	if strings.TrimSpace(value) == "" {
		return constraint{any: true}
	}
	return constraint{values: []string{value}}
}

// Matches reports whether a rule applies to the given context.
func Matches(rule domain.EffortRule, ctx domain.EffortContext, opts MatchOptions) bool {
	if !fieldConstraint(rule.Brand).matches(ctx.Brand, opts) {
		return false
	}
	if !fieldConstraint(rule.Scope).matches(ctx.Scope, opts) {
		return false
	}
	if !setConstraint(ParseSet(rule.Touchpoints)).matches(ctx.Touchpoint, opts) {
		return false
	}
	if !setConstraint(ParseMarketSet(rule.Markets)).matches(ctx.Market, opts) {
		return false
	}
	return true
}

// BaseHours sums the six fixed-hour categories of a rule.
func BaseHours(rule domain.EffortRule) float64 {
	return rule.HoursMasterTemplate +
		rule.HoursTranslations +
		rule.HoursCopywriting +
		rule.HoursAssets +
		rule.HoursRevisions +
		rule.HoursBuild
}

// PrepHours computes the effective preparation hours: the stored value in
// fixed mode, or a rounded percentage of the base hours in percent mode.
// The stored percentage is never overwritten by the derived value.
func PrepHours(rule domain.EffortRule) float64 {
	if rule.PrepMode == domain.PrepModePercent {
		return utils.RoundWithTwoDecimalPlace(BaseHours(rule) * rule.HoursPrepPercent / 100)
	}
	return rule.HoursPrep
}

// ResolveEffort selects the highest-priority active rule matching the
// context (lowest numeric priority wins) and computes its total hours. The
// boolean is false when no rule matches — distinct from a matched rule whose
// categories sum to zero. Ties on priority fall back to first-declared
// order; the management service rejects duplicate priorities at save time so
// a persistent tie cannot occur.
func ResolveEffort(ctx domain.EffortContext, rules []domain.EffortRule, opts MatchOptions) (*domain.EffortEstimate, bool) {
	candidates := make([]domain.EffortRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		if Matches(rule, ctx, opts) {
			candidates = append(candidates, rule)
		}
	}

	if len(candidates) == 0 {
		return nil, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})

	winner := candidates[0]
	base := BaseHours(winner)
	prep := PrepHours(winner)

	return &domain.EffortEstimate{
		Rule:       &winner,
		BaseHours:  base,
		PrepHours:  prep,
		TotalHours: base + prep,
	}, true
}
