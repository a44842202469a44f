package create_expense

import (
	"errors"
	"net/http"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/service/expenses"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidExpense     = "некорректные параметры расхода"
)

type Handler struct {
	service ExpenseService
	logger  Logger
}

func NewHandler(service ExpenseService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/expenses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/expenses - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, expenses.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidExpense)
			return
		}
		h.logger.Error("POST /admin/expenses - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Expense %d created", expense.ID)
	handlers.RespondJSON(w, http.StatusCreated, expense)
}
