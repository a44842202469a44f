package pricing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/pkg/psqlbuilder"
	"github.com/mrgoksal/Chilliwili/pkg/txmanager"
)

// DBExecutor интерфейс для выполнения запросов: *sql.DB или *sql.Tx
type DBExecutor = txmanager.Executor

var ruleColumns = []string{
	"id",
	"date_from",
	"date_to",
	"hour_from",
	"hour_to",
	"price_per_hour",
	"price_per_extra_guest",
	"max_guests_included",
	"charge_mode",
	"created_at",
}

// Repository репозиторий тарифов: правила плюс глобальный дефолт
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateRule создает тариф
func (r *Repository) CreateRule(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("price_rules").
		Columns(
			"date_from",
			"date_to",
			"hour_from",
			"hour_to",
			"price_per_hour",
			"price_per_extra_guest",
			"max_guests_included",
			"charge_mode",
		).
		Values(
			domain.DateOnly(rule.DateFrom),
			domain.DateOnly(rule.DateTo),
			rule.HourFrom,
			rule.HourTo,
			rule.PricePerHour,
			rule.PricePerExtraGuest,
			rule.MaxGuestsIncluded,
			rule.ChargeMode,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateRule - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	return rule, nil
}

// GetActiveRules возвращает все тарифы, по времени создания (новые первыми)
func (r *Repository) GetActiveRules(ctx context.Context) ([]*domain.PriceRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("price_rules").
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.PriceRule, 0)
	for rows.Next() {
		var rule domain.PriceRule
		var createdAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.DateFrom,
			&rule.DateTo,
			&rule.HourFrom,
			&rule.HourTo,
			&rule.PricePerHour,
			&rule.PricePerExtraGuest,
			&rule.MaxGuestsIncluded,
			&rule.ChargeMode,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveRules - scan row: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// DeleteRule удаляет тариф
func (r *Repository) DeleteRule(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("price_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteRule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// GetDefaults возвращает глобальный тариф (единственная строка настроек)
func (r *Repository) GetDefaults(ctx context.Context) (*domain.DefaultPricing, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"price_per_hour",
		"price_per_extra_guest",
		"max_guests_included",
	).
		From("pricing_defaults").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDefaults - build select query: %v", ErrBuildQuery, err)
	}

	var defaults domain.DefaultPricing
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&defaults.PricePerHour,
		&defaults.PricePerExtraGuest,
		&defaults.MaxGuestsIncluded,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDefaultsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefaults - scan defaults: %v", ErrScanRow, err)
	}

	return &defaults, nil
}

// UpdateDefaults обновляет глобальный тариф
func (r *Repository) UpdateDefaults(ctx context.Context, defaults *domain.DefaultPricing) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("pricing_defaults").
		Set("price_per_hour", defaults.PricePerHour).
		Set("price_per_extra_guest", defaults.PricePerExtraGuest).
		Set("max_guests_included", defaults.MaxGuestsIncluded).
		Set("updated_at", squirrel.Expr("NOW()")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDefaults - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDefaults - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDefaults - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDefaultsNotFound
	}

	return nil
}
