package pricing

import (
	"context"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// PricingRepository интерфейс репозитория тарифов
type PricingRepository interface {
	CreateRule(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error)
	GetActiveRules(ctx context.Context) ([]*domain.PriceRule, error)
	DeleteRule(ctx context.Context, id int64) error
	GetDefaults(ctx context.Context) (*domain.DefaultPricing, error)
	UpdateDefaults(ctx context.Context, defaults *domain.DefaultPricing) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
