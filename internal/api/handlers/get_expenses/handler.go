package get_expenses

import (
	"errors"
	"net/http"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/service/expenses"
	"github.com/mrgoksal/Chilliwili/internal/service/expenses/models"
)

const msgInvalidPeriod = "некорректный период, ожидается from и to в формате YYYY-MM-DD"

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

// Handle GET /api/v1/admin/expenses?from=2025-11-01&to=2025-11-30
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parsePeriod(r)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetExpenses(r.Context(), req)
	if err != nil {
		if errors.Is(err, expenses.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /admin/expenses - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parsePeriod(r *http.Request) (*models.PeriodRequest, error) {
	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		return nil, err
	}

	return &models.PeriodRequest{From: from, To: to}, nil
}
