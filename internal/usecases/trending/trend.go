// Package trending buckets dated performance records into time series,
// compares them against the previous period and projects in-progress
// periods. Everything is stateless: each call recomputes from the raw
// records and never mutates them.
package trending

import (
	"fmt"
	"sort"
	"time"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
)

// Metrics selectable for grouping and forecasting.
const (
	MetricTurnover     = "turnover"
	MetricMargin       = "margin"
	MetricRoutingCosts = "routing_costs"
	MetricVSent        = "v_sent"
)

// OthersLabel names the folded aggregate of groups outside the top N.
const OthersLabel = "Others"

// Options controls grouping of trend series. GroupBy selects a dimension
// (database, partner, geo); TopN keeps the N biggest groups by the selected
// metric; IncludeOthers folds the rest into a single aggregate series
// instead of dropping them.
type Options struct {
	GroupBy       string
	Metric        string
	TopN          int
	IncludeOthers bool
}

func metricValue(r domain.PerformanceRecord, metric string) float64 {
	switch metric {
	case MetricMargin:
		return r.Margin
	case MetricRoutingCosts:
		return r.RoutingCosts
	case MetricVSent:
		return float64(r.VSent)
	default:
		return r.Turnover
	}
}

func groupKey(r domain.PerformanceRecord, dimension string) string {
	switch dimension {
	case "partner":
		return r.Partner
	case "geo":
		return r.Geo
	case "database":
		return r.Database
	default:
		return ""
	}
}

// bucketStart normalizes a date to the start of its bucket.
func bucketStart(t time.Time, res domain.Resolution) time.Time {
	day := utils.TruncateToDay(t)
	switch res {
	case domain.ResolutionWeek:
		// ISO weeks: roll back to Monday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.ResolutionMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

func bucketEnd(start time.Time, res domain.Resolution) time.Time {
	switch res {
	case domain.ResolutionWeek:
		return start.AddDate(0, 0, 6)
	case domain.ResolutionMonth:
		return start.AddDate(0, 1, -1)
	default:
		return start
	}
}

func bucketKey(start time.Time, res domain.Resolution) string {
	switch res {
	case domain.ResolutionWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case domain.ResolutionMonth:
		return start.Format("2006-01")
	default:
		return start.Format(time.DateOnly)
	}
}

func bucketLabel(start time.Time, res domain.Resolution) string {
	switch res {
	case domain.ResolutionWeek:
		_, week := start.ISOWeek()
		return fmt.Sprintf("W%02d", week)
	case domain.ResolutionMonth:
		return start.Format("Jan 2006")
	default:
		return start.Format("02 Jan")
	}
}

func inRange(t time.Time, r domain.DateRange) bool {
	day := utils.TruncateToDay(t)
	return !day.Before(utils.TruncateToDay(r.Start)) && !day.After(utils.TruncateToDay(r.End))
}

func addToSnapshot(s *domain.MetricSnapshot, r domain.PerformanceRecord) {
	s.Turnover += r.Turnover
	s.Margin += r.Margin
	s.RoutingCosts += r.RoutingCosts
	s.VSent += r.VSent
	s.Qty += r.Qty
}

func finalizeSnapshot(s *domain.MetricSnapshot) {
	s.Turnover = utils.RoundWithTwoDecimalPlace(s.Turnover)
	s.Margin = utils.RoundWithTwoDecimalPlace(s.Margin)
	s.RoutingCosts = utils.RoundWithTwoDecimalPlace(s.RoutingCosts)
	// eCPM is re-derived from the aggregated sums, never averaged.
	if s.VSent > 0 {
		s.Ecpm = utils.RoundWithTwoDecimalPlace(s.Turnover / float64(s.VSent) * 1000)
	}
}

// delta compares a current value to its previous-period counterpart.
// Percent is nil when the previous value is zero.
func delta(current, previous float64) domain.MetricDelta {
	d := domain.MetricDelta{
		Absolute: utils.RoundWithTwoDecimalPlace(current - previous),
	}
	if previous != 0 {
		pct := utils.RoundWithFourDecimalPlace(d.Absolute / abs(previous))
		d.Percent = &pct
	}
	return d
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// BuildTrend buckets the records of the current range into day/week/month
// points, each carrying the shifted previous-period snapshot for the same
// bucket offset. When previous is nil it defaults to the current range
// shifted back by its own duration. Grouping options split the series by a
// dimension with a deterministic top-N selection.
func BuildTrend(
	records []domain.PerformanceRecord,
	resolution domain.Resolution,
	current domain.DateRange,
	previous *domain.DateRange,
	opts *Options,
) domain.TrendSeries {
	prev := PreviousRange(current, previous)

	series := domain.TrendSeries{
		Resolution: resolution,
		Current:    current,
		Previous:   prev,
	}

	if opts == nil || opts.GroupBy == "" {
		points := buildPoints(records, resolution, current, prev, nil)
		series.Groups = []domain.TrendGroup{{
			Label:  "All",
			Total:  groupTotal(records, current, metricOrDefault(opts)),
			Points: points,
		}}
		return series
	}

	series.Groups = buildGroups(records, resolution, current, prev, *opts)
	return series
}

func metricOrDefault(opts *Options) string {
	if opts == nil || opts.Metric == "" {
		return MetricTurnover
	}
	return opts.Metric
}

// PreviousRange resolves the comparison range: the explicit one when given,
// otherwise the current range shifted back by its own duration.
func PreviousRange(current domain.DateRange, previous *domain.DateRange) domain.DateRange {
	if previous != nil {
		return *previous
	}
	days := current.Days()
	return domain.DateRange{
		Start: utils.TruncateToDay(current.Start).AddDate(0, 0, -days),
		End:   utils.TruncateToDay(current.End).AddDate(0, 0, -days),
	}
}

// buildPoints aggregates one series. Previous-range records are shifted
// forward by the offset between the two ranges and land in the bucket their
// offset corresponds to.
func buildPoints(
	records []domain.PerformanceRecord,
	resolution domain.Resolution,
	current, previous domain.DateRange,
	filter func(domain.PerformanceRecord) bool,
) []domain.TrendPoint {
	shift := utils.TruncateToDay(current.Start).Sub(utils.TruncateToDay(previous.Start))

	buckets := make(map[string]*domain.TrendPoint)

	// Materialize every bucket of the current range so gaps chart as zero.
	for cursor := bucketStart(current.Start, resolution); !cursor.After(utils.TruncateToDay(current.End)); {
		key := bucketKey(cursor, resolution)
		buckets[key] = &domain.TrendPoint{
			Key:   key,
			Label: bucketLabel(cursor, resolution),
			Start: cursor,
			End:   bucketEnd(cursor, resolution),
		}
		cursor = bucketEnd(cursor, resolution).AddDate(0, 0, 1)
	}

	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}

		if inRange(r.Date, current) {
			key := bucketKey(bucketStart(r.Date, resolution), resolution)
			if point, ok := buckets[key]; ok {
				addToSnapshot(&point.Current, r)
			}
			continue
		}

		if inRange(r.Date, previous) {
			shifted := utils.TruncateToDay(r.Date).Add(shift)
			key := bucketKey(bucketStart(shifted, resolution), resolution)
			if point, ok := buckets[key]; ok {
				addToSnapshot(&point.Previous, r)
			}
		}
	}

	points := make([]domain.TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		finalizeSnapshot(&point.Current)
		finalizeSnapshot(&point.Previous)
		point.Deltas = domain.TrendDeltas{
			Turnover:     delta(point.Current.Turnover, point.Previous.Turnover),
			Margin:       delta(point.Current.Margin, point.Previous.Margin),
			RoutingCosts: delta(point.Current.RoutingCosts, point.Previous.RoutingCosts),
			VSent:        delta(float64(point.Current.VSent), float64(point.Previous.VSent)),
		}
		points = append(points, *point)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Start.Before(points[j].Start)
	})

	return points
}

func groupTotal(records []domain.PerformanceRecord, current domain.DateRange, metric string) float64 {
	total := 0.0
	for _, r := range records {
		if inRange(r.Date, current) {
			total += metricValue(r, metric)
		}
	}
	return utils.RoundWithTwoDecimalPlace(total)
}

// buildGroups splits the records by dimension and keeps the top N groups by
// absolute total of the selected metric. Selection is deterministic: total
// descending, ties broken by label ascending. Remaining groups are either
// folded into an "Others" aggregate or dropped.
func buildGroups(
	records []domain.PerformanceRecord,
	resolution domain.Resolution,
	current, previous domain.DateRange,
	opts Options,
) []domain.TrendGroup {
	metric := opts.Metric
	if metric == "" {
		metric = MetricTurnover
	}

	totals := make(map[string]float64)
	for _, r := range records {
		if inRange(r.Date, current) {
			totals[groupKey(r, opts.GroupBy)] += metricValue(r, metric)
		}
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		ti, tj := abs(totals[labels[i]]), abs(totals[labels[j]])
		if ti != tj {
			return ti > tj
		}
		return labels[i] < labels[j]
	})

	topN := opts.TopN
	if topN <= 0 || topN > len(labels) {
		topN = len(labels)
	}

	top := labels[:topN]
	rest := labels[topN:]

	groups := make([]domain.TrendGroup, 0, len(top)+1)
	for _, label := range top {
		label := label
		points := buildPoints(records, resolution, current, previous, func(r domain.PerformanceRecord) bool {
			return groupKey(r, opts.GroupBy) == label
		})
		groups = append(groups, domain.TrendGroup{
			Label:  label,
			Total:  utils.RoundWithTwoDecimalPlace(totals[label]),
			Points: points,
		})
	}

	if opts.IncludeOthers && len(rest) > 0 {
		restSet := make(map[string]struct{}, len(rest))
		othersTotal := 0.0
		for _, label := range rest {
			restSet[label] = struct{}{}
			othersTotal += totals[label]
		}

		points := buildPoints(records, resolution, current, previous, func(r domain.PerformanceRecord) bool {
			_, ok := restSet[groupKey(r, opts.GroupBy)]
			return ok
		})
		groups = append(groups, domain.TrendGroup{
			Label:  OthersLabel,
			Total:  utils.RoundWithTwoDecimalPlace(othersTotal),
			Points: points,
		})
	}

	return groups
}
