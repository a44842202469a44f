package create_price_rule

import (
	"errors"
	"net/http"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
	"github.com/mrgoksal/Chilliwili/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRule        = "некорректные параметры тарифа"
)

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

// Handle POST /api/v1/admin/price-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePriceRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/price-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	rule, err := h.service.CreateRule(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidRule)
			return
		}
		h.logger.Error("POST /admin/price-rules - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Price rule %d created", rule.ID)
	handlers.RespondJSON(w, http.StatusCreated, rule)
}
