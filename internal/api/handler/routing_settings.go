package handler

import (
	"net/http"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/routing"
	"github.com/campaignops/marketing-ops-api/pkg/apiErrors"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

type RateResponse struct {
	Date *string `json:"date"`
	Rate float64 `json:"rate"`
}

func GetRoutingSettings(service routing.SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := service.Get()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error fetching routing settings", nil)
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}

// UpdateRoutingSettings replaces the shared settings. All validation errors
// come back together in a 422; nothing is saved unless the payload is clean.
func UpdateRoutingSettings(service routing.SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings domain.RoutingSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		if validationErrs := service.Update(settings); len(validationErrs) > 0 {
			writeValidationErrors(w, validationErrs)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// ValidateRoutingSettings is the dry-run counterpart of the update: same
// checks, no save.
func ValidateRoutingSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings domain.RoutingSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		validationErrs := routing.ValidateSettings(settings)

		writeJSON(w, http.StatusOK, map[string]any{
			"valid":  len(validationErrs) == 0,
			"errors": validationErrs,
		})
	}
}

// GetRoutingRate resolves the effective rate for the ?date= query parameter,
// or the default rate when absent.
func GetRoutingRate(service routing.SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := RateResponse{}

		dateStr := r.URL.Query().Get("date")
		if dateStr != "" {
			parsed, err := utils.ParseDate(dateStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid date", nil)
				return
			}

			response.Date = &dateStr

			rate, err := service.RateForDate(parsed)
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error resolving rate", nil)
				return
			}
			response.Rate = rate
		} else {
			rate, err := service.RateForDate(nil)
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error resolving rate", nil)
				return
			}
			response.Rate = rate
		}

		writeJSON(w, http.StatusOK, response)
	}
}
