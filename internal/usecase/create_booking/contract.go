package create_booking

import (
	"context"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/engine"
	"github.com/mrgoksal/Chilliwili/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CustomerRepository интерфейс репозитория гостей
type CustomerRepository interface {
	FindOrCreate(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
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

// Notifier интерфейс для уведомления администраторов
type Notifier interface {
	NotifyAdmins(ctx context.Context, text string)
}

// EventPublisher интерфейс издателя событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
