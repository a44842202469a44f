package get_pricing_defaults

import (
	"errors"
	"net/http"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/service/pricing"
)

const msgNotConfigured = "базовый тариф не настроен"

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

// Handle GET /api/v1/admin/pricing-defaults
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	defaults, err := h.service.GetDefaults(r.Context())
	if err != nil {
		if errors.Is(err, pricing.ErrDefaultsNotConfigured) {
			handlers.RespondNotFound(w, msgNotConfigured)
			return
		}
		h.logger.Error("GET /admin/pricing-defaults - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, defaults)
}
