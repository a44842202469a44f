package expenses

import (
	"context"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	bookingRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/booking"
)

// ExpenseRepository интерфейс репозитория расходов
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	GetByPeriod(ctx context.Context, from, to string) ([]*domain.Expense, error)
	TotalByPeriod(ctx context.Context, from, to string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// BookingStatsRepository интерфейс агрегатов по броням
type BookingStatsRepository interface {
	GetStats(ctx context.Context, from, to time.Time) (*bookingRepo.Stats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
