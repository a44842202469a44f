package bookings

import (
	"context"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/engine"
	"github.com/mrgoksal/Chilliwili/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, activeOnly bool) ([]*domain.Booking, error)
	GetByPeriod(ctx context.Context, from, to time.Time, includeInactive bool) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	CancelActive(ctx context.Context, id int64) error
	UpdateFields(ctx context.Context, id int64, update domain.BookingUpdate) error
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository интерфейс справочника гостей, нужен для уведомлений
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// PricingRepository интерфейс репозитория тарифов
type PricingRepository interface {
	GetActiveRules(ctx context.Context) ([]*domain.PriceRule, error)
	GetDefaults(ctx context.Context) (*domain.DefaultPricing, error)
}

// AvailabilityEngine интерфейс движка проверки доступности
type AvailabilityEngine interface {
	Validate(startHour, durationHours int, sameDay, prevDay []*domain.Booking) (engine.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс для уведомлений в Telegram
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
	NotifyAdmins(ctx context.Context, text string)
}

// EventPublisher интерфейс издателя событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
