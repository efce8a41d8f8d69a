package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/campaignops/marketing-ops-api/infrastructure/database/postgres"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

const ticketsTable = "crm_tickets"

type TicketRepository interface {
	GetByID(id string) (*domain.Ticket, error)
	List(status *string) ([]*domain.Ticket, error)
	SaveOrUpdate(ticket *domain.Ticket) error
	Delete(id string) error
}

type ticketRepository struct {
	conn *postgres.Connection
}

func NewTicketRepository(conn *postgres.Connection) TicketRepository {
	return &ticketRepository{
		conn: conn,
	}
}

const ticketColumns = "id, ref, subject, brand, scope, touchpoint, market, status, " +
	"estimated_hours, effort_rule_id, created_by, created_at, updated_at"

func deserializeTicket(row rowScanner) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}

	if err := row.Scan(
		&ticket.ID,
		&ticket.Ref,
		&ticket.Subject,
		&ticket.Brand,
		&ticket.Scope,
		&ticket.Touchpoint,
		&ticket.Market,
		&ticket.Status,
		&ticket.EstimatedHours,
		&ticket.EffortRuleID,
		&ticket.CreatedBy,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (r *ticketRepository) GetByID(id string) (*domain.Ticket, error) {
	ticketSQL, ticketArgs, err := squirrel.
		Select(ticketColumns).
		From(ticketsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	ticket, err := deserializeTicket(r.conn.QueryRow(ticketSQL, ticketArgs...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return ticket, nil
}

func (r *ticketRepository) List(status *string) ([]*domain.Ticket, error) {
	queryBuilder := squirrel.
		Select(ticketColumns).
		From(ticketsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *status})
	}

	ticketSQL, ticketArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ticketSQL, ticketArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)

	for rows.Next() {
		ticket, err := deserializeTicket(rows)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) SaveOrUpdate(ticket *domain.Ticket) error {
	query := squirrel.StatementBuilder.
		Insert(ticketsTable).
		Columns(
			"id", "ref", "subject", "brand", "scope", "touchpoint", "market",
			"status", "estimated_hours", "effort_rule_id", "created_by",
		).
		Values(
			ticket.ID,
			ticket.Ref,
			ticket.Subject,
			ticket.Brand,
			ticket.Scope,
			ticket.Touchpoint,
			ticket.Market,
			ticket.Status,
			ticket.EstimatedHours,
			ticket.EffortRuleID,
			ticket.CreatedBy,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				ref = EXCLUDED.ref,
				subject = EXCLUDED.subject,
				brand = EXCLUDED.brand,
				scope = EXCLUDED.scope,
				touchpoint = EXCLUDED.touchpoint,
				market = EXCLUDED.market,
				status = EXCLUDED.status,
				estimated_hours = EXCLUDED.estimated_hours,
				effort_rule_id = EXCLUDED.effort_rule_id,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	ticketSQL, ticketArgs, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(ticketSQL, ticketArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *ticketRepository) Delete(id string) error {
	ticketSQL, ticketArgs, err := squirrel.
		Delete(ticketsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ticketSQL, ticketArgs...)
	return err
}
