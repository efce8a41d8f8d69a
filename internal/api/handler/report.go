package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/reporting"
	"github.com/campaignops/marketing-ops-api/internal/usecases/trending"
	"github.com/campaignops/marketing-ops-api/pkg/apiErrors"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

var resolutions = map[string]domain.Resolution{
	"day":   domain.ResolutionDay,
	"week":  domain.ResolutionWeek,
	"month": domain.ResolutionMonth,
}

func parseRange(query map[string][]string, startKey, endKey string) (*domain.DateRange, error) {
	getOne := func(key string) string {
		values := query[key]
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}

	startStr := getOne(startKey)
	endStr := getOne(endKey)
	if startStr == "" || endStr == "" {
		return nil, nil
	}

	start, err := utils.ParseDate(startStr)
	if err != nil {
		return nil, err
	}

	end, err := utils.ParseDate(endStr)
	if err != nil {
		return nil, err
	}

	return &domain.DateRange{Start: *start, End: *end}, nil
}

// GetTrendReport builds the trend view. Required: start, end. Optional:
// resolution (day/week/month, default day), previous_start/previous_end,
// group_by (database/partner/geo), metric, top_n, include_others.
func GetTrendReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		current, err := parseRange(query, "start", "end")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid date in start/end", nil)
			return
		}
		if current == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start and end are required", nil)
			return
		}

		previous, err := parseRange(query, "previous_start", "previous_end")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid date in previous_start/previous_end", nil)
			return
		}

		resolution := domain.ResolutionDay
		if res := query.Get("resolution"); res != "" {
			parsed, ok := resolutions[res]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid resolution, expected day, week or month", nil)
				return
			}
			resolution = parsed
		}

		opts := &trending.Options{
			GroupBy:       query.Get("group_by"),
			Metric:        query.Get("metric"),
			IncludeOthers: query.Get("include_others") == "true",
		}

		if topN := query.Get("top_n"); topN != "" {
			n, err := strconv.Atoi(topN)
			if err != nil || n < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid top_n", nil)
				return
			}
			opts.TopN = n
		}

		series, err := service.Trend(resolution, *current, previous, opts)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error building trend report", nil)
			return
		}

		writeJSON(w, http.StatusOK, series)
	}
}

// GetForecastReport projects the period given by start/end as of now (or the
// ?as_of= date, useful for reproducing a past projection).
func GetForecastReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		period, err := parseRange(query, "start", "end")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid date in start/end", nil)
			return
		}
		if period == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start and end are required", nil)
			return
		}

		now := time.Now()
		if asOf := query.Get("as_of"); asOf != "" {
			parsed, err := utils.ParseDate(asOf)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid as_of", nil)
				return
			}
			now = *parsed
		}

		metric := query.Get("metric")
		if metric == "" {
			metric = trending.MetricTurnover
		}

		insight, err := service.Forecast(domain.ForecastPeriod{
			Label: query.Get("label"),
			Start: period.Start,
			End:   period.End,
			Now:   now,
		}, metric)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error building forecast", nil)
			return
		}

		if insight == nil {
			// Nothing observed yet: no projection, not an error.
			writeJSON(w, http.StatusOK, map[string]any{
				"available": false,
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"available": true,
			"insight":   insight,
		})
	}
}
