package handler

import (
	"net/http"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/estimating"
	"github.com/campaignops/marketing-ops-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// ResolveEffortResponse distinguishes "no rule matched" (matched=false,
// estimate omitted) from a zero-hours estimate.
type ResolveEffortResponse struct {
	Matched  bool                   `json:"matched"`
	Estimate *domain.EffortEstimate `json:"estimate,omitempty"`
}

func ListEffortRules(service estimating.EffortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := service.ListRules()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error listing effort rules", nil)
			return
		}

		writeJSON(w, http.StatusOK, rules)
	}
}

func SaveEffortRule(service estimating.EffortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rule domain.EffortRule
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		if id := httprouter.ParamsFromContext(r.Context()).ByName("id"); id != "" {
			rule.ID = id
		}

		saved, validationErrs, err := service.SaveRule(&rule)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error saving effort rule", nil)
			return
		}

		if len(validationErrs) > 0 {
			writeValidationErrors(w, validationErrs)
			return
		}

		writeJSON(w, http.StatusOK, saved)
	}
}

func DeleteEffortRule(service estimating.EffortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteRule(id); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error deleting effort rule", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ResolveEffort resolves an estimate for an ad-hoc context without creating
// a ticket.
func ResolveEffort(service estimating.EffortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ctx domain.EffortContext
		if err := json.NewDecoder(r.Body).Decode(&ctx); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		estimate, matched, err := service.Resolve(ctx)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error resolving effort estimate", nil)
			return
		}

		writeJSON(w, http.StatusOK, ResolveEffortResponse{
			Matched:  matched,
			Estimate: estimate,
		})
	}
}
