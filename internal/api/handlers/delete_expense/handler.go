package delete_expense

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/service/expenses"
)

const (
	msgInvalidExpenseID = "некорректный ID расхода"
	msgExpenseNotFound  = "расход не найден"
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

// Handle DELETE /api/v1/admin/expenses/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || expenseID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidExpenseID)
		return
	}

	if err := h.service.DeleteExpense(r.Context(), expenseID); err != nil {
		if errors.Is(err, expenses.ErrExpenseNotFound) {
			handlers.RespondNotFound(w, msgExpenseNotFound)
			return
		}
		h.logger.Error("DELETE /admin/expenses/%d - Failed: %v", expenseID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Expense %d deleted", expenseID)
	handlers.RespondNoContent(w)
}
