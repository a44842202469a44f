package models

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// Request модели

// CreateExpenseRequest запрос на создание записи о расходе
type CreateExpenseRequest struct {
	Date        time.Time
	Amount      int64
	Category    string
	Description string
}

// PeriodRequest запрос за период [From, To] включительно
type PeriodRequest struct {
	From time.Time
	To   time.Time
}

// Response модели

// ExpenseResponse ответ с данными расхода
type ExpenseResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"` // "2025-11-15"
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ExpenseListResponse ответ со списком расходов и итогом
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
}

// StatisticsResponse сводка по выручке и расходам за период
type StatisticsResponse struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	TotalBookings int64   `json:"totalBookings"`
	TotalRevenue  int64   `json:"totalRevenue"`
	AvgGuests     float64 `json:"avgGuests"`
	AvgDuration   float64 `json:"avgDuration"`
	TotalExpenses int64   `json:"totalExpenses"`
	NetProfit     int64   `json:"netProfit"`
}

// Методы конвертации

// FromDomainExpense конвертирует domain модель в DTO
func FromDomainExpense(e *domain.Expense) *ExpenseResponse {
	if e == nil {
		return nil
	}

	return &ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date.Format(domain.DateFormat),
		Amount:      e.Amount,
		Category:    derefOrEmpty(e.Category),
		Description: derefOrEmpty(e.Description),
		CreatedAt:   e.CreatedAt,
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FromDomainExpenseList конвертирует список domain моделей в DTO
func FromDomainExpenseList(expenses []*domain.Expense, total int64) *ExpenseListResponse {
	resp := &ExpenseListResponse{
		Expenses: make([]ExpenseResponse, 0, len(expenses)),
		Total:    total,
	}

	for _, expense := range expenses {
		if expenseResp := FromDomainExpense(expense); expenseResp != nil {
			resp.Expenses = append(resp.Expenses, *expenseResp)
		}
	}

	return resp
}
