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

const campaignsTable = "campaign_planning"

type CampaignRepository interface {
	GetByID(id string) (*domain.CampaignRecord, error)
	List(filters *domain.CampaignFilters) ([]*domain.CampaignRecord, error)
	SaveOrUpdate(campaign *domain.CampaignRecord) error
	Delete(id string) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = "id, name, brand, database_name, partner, geo, price, qty, v_sent, date, created_at, updated_at"

func (r *campaignRepository) GetByID(id string) (*domain.CampaignRecord, error) {
	campaignSQL, campaignArgs, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(campaignSQL, campaignArgs...)

	campaign, err := deserializeCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return campaign, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func deserializeCampaign(row rowScanner) (*domain.CampaignRecord, error) {
	campaign := &domain.CampaignRecord{}

	if err := row.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Brand,
		&campaign.Database,
		&campaign.Partner,
		&campaign.Geo,
		&campaign.Price,
		&campaign.Qty,
		&campaign.VSent,
		&campaign.Date,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (r *campaignRepository) List(filters *domain.CampaignFilters) ([]*domain.CampaignRecord, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		OrderBy("date DESC, name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.StartDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"date": *filters.StartDate})
		}
		if filters.EndDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"date": *filters.EndDate})
		}
		if filters.Brand != nil {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"brand": *filters.Brand})
		}
		if filters.Database != nil {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"database_name": *filters.Database})
		}
	}

	campaignSQL, campaignArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(campaignSQL, campaignArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]*domain.CampaignRecord, 0)

	for rows.Next() {
		campaign, err := deserializeCampaign(rows)
		if err != nil {
			return nil, err
		}

		campaigns = append(campaigns, campaign)
	}

	return campaigns, rows.Err()
}

func (r *campaignRepository) SaveOrUpdate(campaign *domain.CampaignRecord) error {
	query := squirrel.StatementBuilder.
		Insert(campaignsTable).
		Columns("id", "name", "brand", "database_name", "partner", "geo", "price", "qty", "v_sent", "date").
		Values(
			campaign.ID,
			campaign.Name,
			campaign.Brand,
			campaign.Database,
			campaign.Partner,
			campaign.Geo,
			campaign.Price,
			campaign.Qty,
			campaign.VSent,
			campaign.Date,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				brand = EXCLUDED.brand,
				database_name = EXCLUDED.database_name,
				partner = EXCLUDED.partner,
				geo = EXCLUDED.geo,
				price = EXCLUDED.price,
				qty = EXCLUDED.qty,
				v_sent = EXCLUDED.v_sent,
				date = EXCLUDED.date,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	campaignSQL, campaignArgs, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(campaignSQL, campaignArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *campaignRepository) Delete(id string) error {
	campaignSQL, campaignArgs, err := squirrel.
		Delete(campaignsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(campaignSQL, campaignArgs...)
	return err
}
