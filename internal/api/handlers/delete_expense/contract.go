package delete_expense

import "context"

type ExpenseService interface {
	DeleteExpense(ctx context.Context, expenseID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
