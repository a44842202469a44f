package get_statistics

import (
	"context"

	"github.com/mrgoksal/Chilliwili/internal/service/expenses/models"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, req *models.PeriodRequest) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
