package create_expense

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/service/expenses/models"
)

// CreateExpenseRequest HTTP request model
type CreateExpenseRequest struct {
	Date        string `json:"date"` // "2025-11-15"
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExpenseRequest) ToServiceRequest() (*models.CreateExpenseRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateExpenseRequest{
		Date:        date,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}, nil
}
