package create_price_rule

import (
	"context"

	"github.com/mrgoksal/Chilliwili/internal/service/pricing/models"
)

type PricingService interface {
	CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.PriceRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
