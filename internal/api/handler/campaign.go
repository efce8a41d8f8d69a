package handler

import (
	"net/http"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/planning"
	"github.com/campaignops/marketing-ops-api/pkg/apiErrors"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// ListCampaigns returns the planning table with metrics derived at the
// current routing settings. Optional filters: start_date, end_date (ISO
// dates), brand, database.
func ListCampaigns(service planning.CampaignPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := &domain.CampaignFilters{}

		query := r.URL.Query()

		if startDate := query.Get("start_date"); startDate != "" {
			parsed, err := utils.ParseDate(startDate)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid start_date", nil)
				return
			}
			filters.StartDate = parsed
		}

		if endDate := query.Get("end_date"); endDate != "" {
			parsed, err := utils.ParseDate(endDate)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid end_date", nil)
				return
			}
			filters.EndDate = parsed
		}

		if brand := query.Get("brand"); brand != "" {
			filters.Brand = &brand
		}

		if database := query.Get("database"); database != "" {
			filters.Database = &database
		}

		campaigns, err := service.ListCampaigns(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error listing campaigns", nil)
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	}
}

func GetCampaign(service planning.CampaignPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaign, err := service.GetCampaign(id)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error fetching campaign", nil)
			return
		}

		if campaign == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campaign not found", nil)
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	}
}

func SaveCampaign(service planning.CampaignPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var campaign domain.CampaignRecord
		if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		if id := httprouter.ParamsFromContext(r.Context()).ByName("id"); id != "" {
			campaign.ID = id
		}

		saved, validationErrs, err := service.SaveCampaign(&campaign)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error saving campaign", nil)
			return
		}

		if len(validationErrs) > 0 {
			writeValidationErrors(w, validationErrs)
			return
		}

		writeJSON(w, http.StatusOK, saved)
	}
}

func DeleteCampaign(service planning.CampaignPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteCampaign(id); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error deleting campaign", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
