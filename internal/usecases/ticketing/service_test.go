package ticketing

import (
	"testing"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	estimatingmocks "github.com/campaignops/marketing-ops-api/internal/usecases/estimating/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateTicketStampsEstimateFromMatchingRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
	mockEffort := estimatingmocks.NewMockEffortService(ctrl)

	service := NewService(mockTicketRepo, mockEffort)

	rule := &domain.EffortRule{ID: "RULE01", Priority: 1}

	mockEffort.EXPECT().
		Resolve(domain.EffortContext{
			Brand:      "Europcar",
			Scope:      "Promo",
			Touchpoint: "email",
			Market:     "FR",
		}).
		Return(&domain.EffortEstimate{
			Rule:       rule,
			BaseHours:  8,
			PrepHours:  1.6,
			TotalHours: 9.6,
		}, true, nil)

	mockTicketRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		Return(nil)

	ticket, validationErrs, err := service.CreateTicket(&domain.Ticket{
		Subject:    "Summer sale kickoff",
		Brand:      "Europcar",
		Scope:      "Promo",
		Touchpoint: "email",
		Market:     "FR",
	})
	require.NoError(t, err)
	require.Empty(t, validationErrs)

	require.NotNil(t, ticket.EstimatedHours)
	assert.Equal(t, 9.6, *ticket.EstimatedHours)
	require.NotNil(t, ticket.EffortRuleID)
	assert.Equal(t, "RULE01", *ticket.EffortRuleID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, "TCK-"+ticket.ID, ticket.Ref)
}

func TestCreateTicketNoMatchLeavesEstimateNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
	mockEffort := estimatingmocks.NewMockEffortService(ctrl)

	service := NewService(mockTicketRepo, mockEffort)

	mockEffort.EXPECT().
		Resolve(gomock.Any()).
		Return(nil, false, nil)

	mockTicketRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		Return(nil)

	ticket, validationErrs, err := service.CreateTicket(&domain.Ticket{
		Subject: "Unclassified request",
		Brand:   "Unknown",
	})
	require.NoError(t, err)
	require.Empty(t, validationErrs)

	// nil means "no rule matched", never a zero-hours estimate.
	assert.Nil(t, ticket.EstimatedHours)
	assert.Nil(t, ticket.EffortRuleID)
}

func TestUpdateTicketReclassificationRestamps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
	mockEffort := estimatingmocks.NewMockEffortService(ctrl)

	service := NewService(mockTicketRepo, mockEffort)

	oldHours := 4.0
	oldRuleID := "RULE_OLD"
	existing := &domain.Ticket{
		ID:             "T1",
		Subject:        "Newsletter",
		Brand:          "Europcar",
		Market:         "DE",
		Status:         domain.TicketStatusOpen,
		EstimatedHours: &oldHours,
		EffortRuleID:   &oldRuleID,
	}

	mockTicketRepo.EXPECT().
		GetByID("T1").
		Return(existing, nil)

	newRule := &domain.EffortRule{ID: "RULE_FR"}
	mockEffort.EXPECT().
		Resolve(gomock.Any()).
		Return(&domain.EffortEstimate{Rule: newRule, TotalHours: 6.5}, true, nil)

	mockTicketRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		Return(nil)

	market := "FR"
	ticket, validationErrs, err := service.UpdateTicket(&domain.UpdateTicketRequest{
		ID:     "T1",
		Market: &market,
	})
	require.NoError(t, err)
	require.Empty(t, validationErrs)

	require.NotNil(t, ticket.EstimatedHours)
	assert.Equal(t, 6.5, *ticket.EstimatedHours)
	assert.Equal(t, "RULE_FR", *ticket.EffortRuleID)
}

func TestUpdateTicketStatusOnlyKeepsEstimate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
	mockEffort := estimatingmocks.NewMockEffortService(ctrl)

	service := NewService(mockTicketRepo, mockEffort)

	hours := 4.0
	ruleID := "RULE01"
	existing := &domain.Ticket{
		ID:             "T1",
		Subject:        "Newsletter",
		Status:         domain.TicketStatusOpen,
		EstimatedHours: &hours,
		EffortRuleID:   &ruleID,
	}

	mockTicketRepo.EXPECT().
		GetByID("T1").
		Return(existing, nil)

	// No Resolve call expected: status is not a classification field.
	mockTicketRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		Return(nil)

	status := domain.TicketStatusDone
	ticket, validationErrs, err := service.UpdateTicket(&domain.UpdateTicketRequest{
		ID:     "T1",
		Status: &status,
	})
	require.NoError(t, err)
	require.Empty(t, validationErrs)

	assert.Equal(t, domain.TicketStatusDone, ticket.Status)
	require.NotNil(t, ticket.EstimatedHours)
	assert.Equal(t, 4.0, *ticket.EstimatedHours)
}

func TestUpdateTicketRejectsUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
	mockEffort := estimatingmocks.NewMockEffortService(ctrl)

	service := NewService(mockTicketRepo, mockEffort)

	mockTicketRepo.EXPECT().
		GetByID("T1").
		Return(&domain.Ticket{
			ID:      "T1",
			Subject: "Newsletter",
			Status:  domain.TicketStatusOpen,
		}, nil)

	status := "archived"
	ticket, validationErrs, err := service.UpdateTicket(&domain.UpdateTicketRequest{
		ID:     "T1",
		Status: &status,
	})
	require.NoError(t, err)
	assert.Nil(t, ticket)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "status", validationErrs[0].Field)
}

func TestUpdateTicketNotFoundReturnsNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
	mockEffort := estimatingmocks.NewMockEffortService(ctrl)

	service := NewService(mockTicketRepo, mockEffort)

	mockTicketRepo.EXPECT().
		GetByID("missing").
		Return(nil, nil)

	ticket, validationErrs, err := service.UpdateTicket(&domain.UpdateTicketRequest{ID: "missing"})
	require.NoError(t, err)
	assert.Nil(t, ticket)
	assert.Empty(t, validationErrs)
}
