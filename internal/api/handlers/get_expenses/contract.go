package get_expenses

import (
	"context"

	"github.com/mrgoksal/Chilliwili/internal/service/expenses/models"
)

type ExpenseService interface {
	GetExpenses(ctx context.Context, req *models.PeriodRequest) (*models.ExpenseListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
