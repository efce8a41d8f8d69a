package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/campaignops/marketing-ops-api/infrastructure/database/postgres"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	_ "github.com/lib/pq"
)

const (
	routingSettingsTable = "routing_settings"
	ratePeriodsTable     = "routing_rate_periods"
)

// settingsRowID: routing settings are a single shared row, created once and
// only ever updated.
const settingsRowID = 1

type RoutingSettingsRepository interface {
	Get() (*domain.RoutingSettings, error)
	Save(settings *domain.RoutingSettings) error
}

type routingSettingsRepository struct {
	conn *postgres.Connection
}

func NewRoutingSettingsRepository(conn *postgres.Connection) RoutingSettingsRepository {
	return &routingSettingsRepository{
		conn: conn,
	}
}

func (r *routingSettingsRepository) Get() (*domain.RoutingSettings, error) {
	settings := &domain.RoutingSettings{}

	err := r.conn.QueryRow(
		"SELECT default_rate, updated_at FROM routing_settings WHERE id = $1",
		settingsRowID,
	).Scan(&settings.DefaultRate, &settings.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	periodsSQL, periodsArgs, err := squirrel.
		Select("id, date_from, date_to, rate, label").
		From(ratePeriodsTable).
		OrderBy("date_from ASC NULLS FIRST").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(periodsSQL, periodsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings.Periods = make([]domain.RoutingRatePeriod, 0)

	for rows.Next() {
		var period domain.RoutingRatePeriod
		if err := rows.Scan(&period.ID, &period.From, &period.To, &period.Rate, &period.Label); err != nil {
			return nil, err
		}

		settings.Periods = append(settings.Periods, period)
	}

	return settings, rows.Err()
}

// Save replaces the settings row and its periods atomically. Validation has
// already happened in the use case; this is a plain write.
func (r *routingSettingsRepository) Save(settings *domain.RoutingSettings) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		upsertSQL, upsertArgs, err := squirrel.
			Insert(routingSettingsTable).
			Columns("id", "default_rate").
			Values(settingsRowID, settings.DefaultRate).
			Suffix("ON CONFLICT (id) DO UPDATE SET default_rate = EXCLUDED.default_rate, updated_at = NOW()").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build settings upsert: %w", err)
		}

		if _, err := tx.Exec(upsertSQL, upsertArgs...); err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM " + ratePeriodsTable); err != nil {
			return err
		}

		if len(settings.Periods) == 0 {
			return nil
		}

		insert := squirrel.StatementBuilder.
			Insert(ratePeriodsTable).
			Columns("id", "date_from", "date_to", "rate", "label").
			PlaceholderFormat(squirrel.Dollar)

		for _, period := range settings.Periods {
			insert = insert.Values(period.ID, period.From, period.To, period.Rate, period.Label)
		}

		periodsSQL, periodsArgs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build periods insert: %w", err)
		}

		_, err = tx.Exec(periodsSQL, periodsArgs...)
		return err
	})
}
