package get_admin_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
)

const (
	msgInvalidPeriod = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?from=2025-11-01&to=2025-11-30&includeInactive=true
// Без from/to возвращает бронирования на сегодня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := domain.DateOnly(time.Now())
	to := from

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

	result, err := h.service.GetByPeriod(r.Context(), &models.GetPeriodBookingsRequest{
		From:            from,
		To:              to,
		IncludeInactive: query.Get("includeInactive") == "true",
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
