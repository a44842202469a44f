package update_pricing_defaults

import (
	"context"

	"github.com/mrgoksal/Chilliwili/internal/service/pricing/models"
)

type PricingService interface {
	UpdateDefaults(ctx context.Context, req *models.UpdateDefaultsRequest) (*models.DefaultsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
