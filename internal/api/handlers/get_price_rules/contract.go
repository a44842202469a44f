package get_price_rules

import (
	"context"

	"github.com/mrgoksal/Chilliwili/internal/service/pricing/models"
)

type PricingService interface {
	GetRules(ctx context.Context) (*models.PriceRuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
