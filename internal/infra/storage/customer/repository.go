package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/pkg/psqlbuilder"
	"github.com/mrgoksal/Chilliwili/pkg/txmanager"
)

// DBExecutor интерфейс для выполнения запросов: *sql.DB или *sql.Tx
type DBExecutor = txmanager.Executor

var customerColumns = []string{
	"id",
	"name",
	"phone",
	"telegram_id",
	"username",
	"created_at",
}

// Repository репозиторий справочника гостей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гостей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает гостя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getByCondition(ctx, squirrel.Eq{"id": id})
}

// GetByTelegramID получает гостя по Telegram ID
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Customer, error) {
	return r.getByCondition(ctx, squirrel.Eq{"telegram_id": telegramID})
}

// GetByPhone получает гостя по телефону
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.getByCondition(ctx, squirrel.Eq{"phone": phone})
}

// FindOrCreate находит гостя по Telegram ID (либо по телефону, если
// Telegram ID не задан - гости с веб-формы и заведенные админом) или
// создает нового. Непустые поля существующего профиля никогда не
// затираются пустыми значениями; пустые дозаполняются из запроса
func (r *Repository) FindOrCreate(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	var existing *domain.Customer
	var err error

	if c.TelegramID != nil {
		existing, err = r.GetByTelegramID(ctx, *c.TelegramID)
	} else if c.Phone != "" {
		existing, err = r.GetByPhone(ctx, c.Phone)
	} else {
		err = ErrCustomerNotFound
	}

	if err == nil {
		return r.fillEmptyFields(ctx, existing, c)
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return nil, err
	}

	return r.create(ctx, c)
}

// fillEmptyFields дозаполняет пустые поля профиля значениями из запроса
func (r *Repository) fillEmptyFields(ctx context.Context, existing, incoming *domain.Customer) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("customers").Where(squirrel.Eq{"id": existing.ID})
	changed := false

	if existing.Name == "" && incoming.Name != "" {
		updateBuilder = updateBuilder.Set("name", incoming.Name)
		existing.Name = incoming.Name
		changed = true
	}
	if existing.Phone == "" && incoming.Phone != "" {
		updateBuilder = updateBuilder.Set("phone", incoming.Phone)
		existing.Phone = incoming.Phone
		changed = true
	}
	if existing.Username == nil && incoming.Username != nil {
		updateBuilder = updateBuilder.Set("username", incoming.Username)
		existing.Username = incoming.Username
		changed = true
	}
	if existing.TelegramID == nil && incoming.TelegramID != nil {
		updateBuilder = updateBuilder.Set("telegram_id", incoming.TelegramID)
		existing.TelegramID = incoming.TelegramID
		changed = true
	}

	if !changed {
		return existing, nil
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: fillEmptyFields - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: fillEmptyFields - execute update: %v", ErrExecQuery, err)
	}

	return existing, nil
}

func (r *Repository) create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "phone", "telegram_id", "username").
		Values(c.Name, c.Phone, c.TelegramID, c.Username).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	return c, nil
}

func (r *Repository) getByCondition(ctx context.Context, cond squirrel.Eq) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(cond).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getByCondition - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.TelegramID,
		&c.Username,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByCondition - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	return &c, nil
}
