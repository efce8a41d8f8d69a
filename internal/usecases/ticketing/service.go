package ticketing

import (
	"fmt"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/estimating"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// TicketService manages CRM production tickets. The effort estimate is
// stamped from the rule set when a ticket is created and restamped whenever a
// classification field changes; nil stays nil when no rule matches.
type TicketService interface {
	GetTicket(id string) (*domain.Ticket, error)
	ListTickets(status *string) ([]*domain.Ticket, error)
	CreateTicket(ticket *domain.Ticket) (*domain.Ticket, []domain.ValidationError, error)
	UpdateTicket(req *domain.UpdateTicketRequest) (*domain.Ticket, []domain.ValidationError, error)
	DeleteTicket(id string) error
}

type Service struct {
	ticketRepo repository.TicketRepository
	effort     estimating.EffortService
}

func NewService(ticketRepo repository.TicketRepository, effort estimating.EffortService) TicketService {
	return &Service{
		ticketRepo: ticketRepo,
		effort:     effort,
	}
}

func (s *Service) GetTicket(id string) (*domain.Ticket, error) {
	return s.ticketRepo.GetByID(id)
}

func (s *Service) ListTickets(status *string) ([]*domain.Ticket, error) {
	return s.ticketRepo.List(status)
}

func (s *Service) CreateTicket(ticket *domain.Ticket) (*domain.Ticket, []domain.ValidationError, error) {
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusOpen
	}

	if errs := ValidateTicket(ticket); len(errs) > 0 {
		return nil, errs, nil
	}

	if ticket.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, nil, err
		}
		ticket.ID = id
	}

	if ticket.Ref == "" {
		ticket.Ref = fmt.Sprintf("TCK-%s", ticket.ID)
	}

	if err := s.stampEstimate(ticket); err != nil {
		return nil, nil, err
	}

	if err := s.ticketRepo.SaveOrUpdate(ticket); err != nil {
		return nil, nil, err
	}

	return ticket, nil, nil
}

// UpdateTicket applies a partial update. Changing any classification field
// re-resolves the estimate against the current rule set.
func (s *Service) UpdateTicket(req *domain.UpdateTicketRequest) (*domain.Ticket, []domain.ValidationError, error) {
	ticket, err := s.ticketRepo.GetByID(req.ID)
	if err != nil {
		return nil, nil, err
	}

	if ticket == nil {
		return nil, nil, nil
	}

	reclassified := false

	if req.Subject != nil {
		ticket.Subject = *req.Subject
	}

	if req.Brand != nil {
		ticket.Brand = *req.Brand
		reclassified = true
	}

	if req.Scope != nil {
		ticket.Scope = *req.Scope
		reclassified = true
	}

	if req.Touchpoint != nil {
		ticket.Touchpoint = *req.Touchpoint
		reclassified = true
	}

	if req.Market != nil {
		ticket.Market = *req.Market
		reclassified = true
	}

	if req.Status != nil {
		ticket.Status = *req.Status
	}

	if errs := ValidateTicket(ticket); len(errs) > 0 {
		return nil, errs, nil
	}

	if reclassified {
		if err := s.stampEstimate(ticket); err != nil {
			return nil, nil, err
		}
	}

	if err := s.ticketRepo.SaveOrUpdate(ticket); err != nil {
		return nil, nil, err
	}

	return ticket, nil, nil
}

func (s *Service) DeleteTicket(id string) error {
	return s.ticketRepo.Delete(id)
}

func (s *Service) stampEstimate(ticket *domain.Ticket) error {
	estimate, ok, err := s.effort.Resolve(domain.EffortContext{
		Brand:      ticket.Brand,
		Scope:      ticket.Scope,
		Touchpoint: ticket.Touchpoint,
		Market:     ticket.Market,
	})
	if err != nil {
		return err
	}

	if !ok {
		logrus.WithFields(logrus.Fields{
			"ticket_id": ticket.ID,
			"brand":     ticket.Brand,
			"scope":     ticket.Scope,
		}).Info("ticketing: no effort rule matched")
		ticket.EstimatedHours = nil
		ticket.EffortRuleID = nil
		return nil
	}

	hours := estimate.TotalHours
	ticket.EstimatedHours = &hours
	ticket.EffortRuleID = &estimate.Rule.ID

	return nil
}

var ticketStatuses = map[string]struct{}{
	domain.TicketStatusOpen:       {},
	domain.TicketStatusInProgress: {},
	domain.TicketStatusDone:       {},
}

func ValidateTicket(ticket *domain.Ticket) []domain.ValidationError {
	errs := make([]domain.ValidationError, 0)

	if ticket.Subject == "" {
		errs = append(errs, domain.ValidationError{
			Field:   "subject",
			Message: "is required",
		})
	}

	if _, ok := ticketStatuses[ticket.Status]; !ok {
		errs = append(errs, domain.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", ticket.Status),
		})
	}

	return errs
}
