package get_statistics

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
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/statistics?from=2025-11-01&to=2025-11-30
// Без параметров возвращает сводку за последние 30 дней
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	to := domain.DateOnly(time.Now())
	from := to.AddDate(0, 0, -30)

	if fromStr := query.Get("from"); fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		from = parsed
	}
	if toStr := query.Get("to"); toStr != "" {
		parsed, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		to = parsed
	}

	result, err := h.service.GetStatistics(r.Context(), &models.PeriodRequest{From: from, To: to})
	if err != nil {
		if errors.Is(err, expenses.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /admin/statistics - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
