package create_price_rule

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/service/pricing/models"
)

// CreatePriceRuleRequest HTTP request model
type CreatePriceRuleRequest struct {
	DateFrom           string `json:"dateFrom"` // "2025-12-25"
	DateTo             string `json:"dateTo"`
	HourFrom           int    `json:"hourFrom"`
	HourTo             int    `json:"hourTo"`
	PricePerHour       int64  `json:"pricePerHour"`
	PricePerExtraGuest int64  `json:"pricePerExtraGuest"`
	MaxGuestsIncluded  int    `json:"maxGuestsIncluded"`
	ChargeMode         string `json:"chargeMode"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreatePriceRuleRequest) ToServiceRequest() (*models.CreateRuleRequest, error) {
	dateFrom, err := time.Parse(domain.DateFormat, r.DateFrom)
	if err != nil {
		return nil, err
	}

	dateTo, err := time.Parse(domain.DateFormat, r.DateTo)
	if err != nil {
		return nil, err
	}

	return &models.CreateRuleRequest{
		DateFrom:           dateFrom,
		DateTo:             dateTo,
		HourFrom:           r.HourFrom,
		HourTo:             r.HourTo,
		PricePerHour:       r.PricePerHour,
		PricePerExtraGuest: r.PricePerExtraGuest,
		MaxGuestsIncluded:  r.MaxGuestsIncluded,
		ChargeMode:         r.ChargeMode,
	}, nil
}
