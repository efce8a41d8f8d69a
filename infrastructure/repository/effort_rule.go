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

const effortRulesTable = "crm_effort_rules"

type EffortRuleRepository interface {
	List() ([]*domain.EffortRule, error)
	GetByID(id string) (*domain.EffortRule, error)
	SaveOrUpdate(rule *domain.EffortRule) error
	Delete(id string) error
}

type effortRuleRepository struct {
	conn *postgres.Connection
}

func NewEffortRuleRepository(conn *postgres.Connection) EffortRuleRepository {
	return &effortRuleRepository{
		conn: conn,
	}
}

const effortRuleColumns = "id, priority, brand, scope, touchpoints, markets, " +
	"hours_master_template, hours_translations, hours_copywriting, hours_assets, hours_revisions, hours_build, " +
	"prep_mode, hours_prep, hours_prep_percent, active, created_at, updated_at"

func deserializeEffortRule(row rowScanner) (*domain.EffortRule, error) {
	rule := &domain.EffortRule{}

	if err := row.Scan(
		&rule.ID,
		&rule.Priority,
		&rule.Brand,
		&rule.Scope,
		&rule.Touchpoints,
		&rule.Markets,
		&rule.HoursMasterTemplate,
		&rule.HoursTranslations,
		&rule.HoursCopywriting,
		&rule.HoursAssets,
		&rule.HoursRevisions,
		&rule.HoursBuild,
		&rule.PrepMode,
		&rule.HoursPrep,
		&rule.HoursPrepPercent,
		&rule.Active,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return rule, nil
}

func (r *effortRuleRepository) List() ([]*domain.EffortRule, error) {
	rulesSQL, rulesArgs, err := squirrel.
		Select(effortRuleColumns).
		From(effortRulesTable).
		OrderBy("priority ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(rulesSQL, rulesArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.EffortRule, 0)

	for rows.Next() {
		rule, err := deserializeEffortRule(rows)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *effortRuleRepository) GetByID(id string) (*domain.EffortRule, error) {
	ruleSQL, ruleArgs, err := squirrel.
		Select(effortRuleColumns).
		From(effortRulesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rule, err := deserializeEffortRule(r.conn.QueryRow(ruleSQL, ruleArgs...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return rule, nil
}

func (r *effortRuleRepository) SaveOrUpdate(rule *domain.EffortRule) error {
	query := squirrel.StatementBuilder.
		Insert(effortRulesTable).
		Columns(
			"id", "priority", "brand", "scope", "touchpoints", "markets",
			"hours_master_template", "hours_translations", "hours_copywriting",
			"hours_assets", "hours_revisions", "hours_build",
			"prep_mode", "hours_prep", "hours_prep_percent", "active",
		).
		Values(
			rule.ID,
			rule.Priority,
			rule.Brand,
			rule.Scope,
			rule.Touchpoints,
			rule.Markets,
			rule.HoursMasterTemplate,
			rule.HoursTranslations,
			rule.HoursCopywriting,
			rule.HoursAssets,
			rule.HoursRevisions,
			rule.HoursBuild,
			rule.PrepMode,
			rule.HoursPrep,
			rule.HoursPrepPercent,
			rule.Active,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				priority = EXCLUDED.priority,
				brand = EXCLUDED.brand,
				scope = EXCLUDED.scope,
				touchpoints = EXCLUDED.touchpoints,
				markets = EXCLUDED.markets,
				hours_master_template = EXCLUDED.hours_master_template,
				hours_translations = EXCLUDED.hours_translations,
				hours_copywriting = EXCLUDED.hours_copywriting,
				hours_assets = EXCLUDED.hours_assets,
				hours_revisions = EXCLUDED.hours_revisions,
				hours_build = EXCLUDED.hours_build,
				prep_mode = EXCLUDED.prep_mode,
				hours_prep = EXCLUDED.hours_prep,
				hours_prep_percent = EXCLUDED.hours_prep_percent,
				active = EXCLUDED.active,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	ruleSQL, ruleArgs, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(ruleSQL, ruleArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *effortRuleRepository) Delete(id string) error {
	ruleSQL, ruleArgs, err := squirrel.
		Delete(effortRulesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ruleSQL, ruleArgs...)
	return err
}
