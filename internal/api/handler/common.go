package handler

import (
	"net/http"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/pkg/apiErrors"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// writeValidationErrors returns the full validation list in one 422 response.
func writeValidationErrors(w http.ResponseWriter, errs []domain.ValidationError) {
	apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "validation failed", errs)
}
