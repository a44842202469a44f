package domain

import "time"

// Expense запись в журнале расходов
// Независимый реестр, с бронированиями не связан; используется только
// для отчета "выручка минус расходы"
type Expense struct {
	ID          int64
	Date        time.Time
	Amount      int64
	Category    *string
	Description *string
	CreatedAt   time.Time
}
