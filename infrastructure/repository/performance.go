package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campaignops/marketing-ops-api/infrastructure/database/postgres"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

const performanceTable = "performance_facts"

type PerformanceRepository interface {
	GetByDateRange(start, end time.Time) ([]domain.PerformanceRecord, error)
	SaveOrUpdate(records []domain.PerformanceRecord) error
}

type performanceRepository struct {
	conn *postgres.Connection
}

func NewPerformanceRepository(conn *postgres.Connection) PerformanceRepository {
	return &performanceRepository{
		conn: conn,
	}
}

const performanceColumns = "id, date, database_name, partner, geo, turnover, margin, routing_costs, v_sent, qty"

func (r *performanceRepository) GetByDateRange(start, end time.Time) ([]domain.PerformanceRecord, error) {
	factsSQL, factsArgs, err := squirrel.
		Select(performanceColumns).
		From(performanceTable).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(factsSQL, factsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.PerformanceRecord, 0)

	for rows.Next() {
		var record domain.PerformanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.Date,
			&record.Database,
			&record.Partner,
			&record.Geo,
			&record.Turnover,
			&record.Margin,
			&record.RoutingCosts,
			&record.VSent,
			&record.Qty,
		); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// SaveOrUpdate upserts a batch of fact rows. Rows are keyed by id, which the
// roll-up derives from the dimensions and date, so replays are idempotent.
func (r *performanceRepository) SaveOrUpdate(records []domain.PerformanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(performanceTable).
		Columns("id", "date", "database_name", "partner", "geo", "turnover", "margin", "routing_costs", "v_sent", "qty").
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		query = query.Values(
			record.ID,
			record.Date,
			record.Database,
			record.Partner,
			record.Geo,
			record.Turnover,
			record.Margin,
			record.RoutingCosts,
			record.VSent,
			record.Qty,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (id) DO UPDATE SET
			turnover = EXCLUDED.turnover,
			margin = EXCLUDED.margin,
			routing_costs = EXCLUDED.routing_costs,
			v_sent = EXCLUDED.v_sent,
			qty = EXCLUDED.qty
	`)

	factsSQL, factsArgs, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(factsSQL, factsArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}
