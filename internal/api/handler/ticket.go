package handler

import (
	"net/http"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/ticketing"
	"github.com/campaignops/marketing-ops-api/pkg/apiErrors"
	"github.com/campaignops/marketing-ops-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

func ListTickets(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *string
		if s := r.URL.Query().Get("status"); s != "" {
			status = &s
		}

		tickets, err := service.ListTickets(status)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error listing tickets", nil)
			return
		}

		writeJSON(w, http.StatusOK, tickets)
	}
}

func GetTicket(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		ticket, err := service.GetTicket(id)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error fetching ticket", nil)
			return
		}

		if ticket == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Ticket not found", nil)
			return
		}

		writeJSON(w, http.StatusOK, ticket)
	}
}

func CreateTicket(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ticket domain.Ticket
		if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		if userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
			ticket.CreatedBy = userClaims.UserID
		}

		created, validationErrs, err := service.CreateTicket(&ticket)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error creating ticket", nil)
			return
		}

		if len(validationErrs) > 0 {
			writeValidationErrors(w, validationErrs)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateTicket(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req domain.UpdateTicketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		req.ID = id

		ticket, validationErrs, err := service.UpdateTicket(&req)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error updating ticket", nil)
			return
		}

		if len(validationErrs) > 0 {
			writeValidationErrors(w, validationErrs)
			return
		}

		if ticket == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Ticket not found", nil)
			return
		}

		writeJSON(w, http.StatusOK, ticket)
	}
}

func DeleteTicket(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteTicket(id); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error deleting ticket", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
