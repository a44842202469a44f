package update_pricing_defaults

import (
	"errors"
	"net/http"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/service/pricing"
	"github.com/mrgoksal/Chilliwili/internal/service/pricing/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDefaults    = "некорректные параметры тарифа"
	msgNotConfigured      = "базовый тариф не настроен"
)

// UpdatePricingDefaultsRequest HTTP request model
type UpdatePricingDefaultsRequest struct {
	PricePerHour       int64 `json:"pricePerHour"`
	PricePerExtraGuest int64 `json:"pricePerExtraGuest"`
	MaxGuestsIncluded  int   `json:"maxGuestsIncluded"`
}

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/pricing-defaults
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdatePricingDefaultsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/pricing-defaults - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	defaults, err := h.service.UpdateDefaults(r.Context(), &models.UpdateDefaultsRequest{
		PricePerHour:       req.PricePerHour,
		PricePerExtraGuest: req.PricePerExtraGuest,
		MaxGuestsIncluded:  req.MaxGuestsIncluded,
	})
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDefaults)

		case errors.Is(err, pricing.ErrDefaultsNotConfigured):
			handlers.RespondNotFound(w, msgNotConfigured)

		default:
			h.logger.Error("PUT /admin/pricing-defaults - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("Pricing defaults updated: base=%d", defaults.PricePerHour)
	handlers.RespondJSON(w, http.StatusOK, defaults)
}
