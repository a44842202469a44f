package expense

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

var expenseColumns = []string{
	"id",
	"expense_date",
	"amount",
	"category",
	"description",
	"created_at",
}

// Repository репозиторий учета расходов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расходов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о расходе
func (r *Repository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("expenses").
		Columns("expense_date", "amount", "category", "description").
		Values(domain.DateOnly(e.Date), e.Amount, e.Category, e.Description).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	return e, nil
}

// GetByPeriod возвращает расходы за период [from, to] включительно
func (r *Repository) GetByPeriod(ctx context.Context, from, to string) ([]*domain.Expense, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.GtOrEq{"expense_date": from}).
		Where(squirrel.LtOrEq{"expense_date": to}).
		OrderBy("expense_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		var createdAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.Date,
			&e.Amount,
			&e.Category,
			&e.Description,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPeriod - scan row: %v", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		expenses = append(expenses, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPeriod - rows error: %v", ErrScanRow, err)
	}

	return expenses, nil
}

// TotalByPeriod возвращает сумму расходов за период [from, to] включительно
func (r *Repository) TotalByPeriod(ctx context.Context, from, to string) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(squirrel.GtOrEq{"expense_date": from}).
		Where(squirrel.LtOrEq{"expense_date": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: TotalByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: TotalByPeriod - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// Delete удаляет запись о расходе
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}
