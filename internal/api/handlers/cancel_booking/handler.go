package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgCustomerIDRequired = "не указан идентификатор гостя"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "можно отменять только свои бронирования"
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

// Handle PATCH /api/v1/bookings/{id}/cancel
// Гостевой маршрут: отмена разрешена только владельцу брони
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/cancel - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.CustomerID == nil {
		handlers.RespondBadRequest(w, msgCustomerIDRequired)
		return
	}

	h.cancel(w, r, &models.CancelBookingRequest{BookingID: id, CustomerID: req.CustomerID})
}

// HandleAdmin PATCH /api/v1/admin/bookings/{id}/cancel
// Админский маршрут: без проверки владельца
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	h.cancel(w, r, &models.CancelBookingRequest{BookingID: id})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request, req *models.CancelBookingRequest) {
	err := h.service.Cancel(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("Cancel booking %d - Failed: %v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("Booking %d cancelled", req.BookingID)
	handlers.RespondNoContent(w)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return id, true
}
