package models

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// Request модели

// CreateRuleRequest запрос на создание тарифа
type CreateRuleRequest struct {
	DateFrom           time.Time
	DateTo             time.Time
	HourFrom           int
	HourTo             int
	PricePerHour       int64
	PricePerExtraGuest int64
	MaxGuestsIncluded  int
	ChargeMode         string
}

// UpdateDefaultsRequest запрос на обновление глобального тарифа
type UpdateDefaultsRequest struct {
	PricePerHour       int64
	PricePerExtraGuest int64
	MaxGuestsIncluded  int
}

// Response модели

// PriceRuleResponse ответ с данными тарифа
type PriceRuleResponse struct {
	ID                 int64     `json:"id"`
	DateFrom           string    `json:"dateFrom"` // "2025-12-01"
	DateTo             string    `json:"dateTo"`
	HourFrom           int       `json:"hourFrom"`
	HourTo             int       `json:"hourTo"`
	PricePerHour       int64     `json:"pricePerHour"`
	PricePerExtraGuest int64     `json:"pricePerExtraGuest"`
	MaxGuestsIncluded  int       `json:"maxGuestsIncluded"`
	ChargeMode         string    `json:"chargeMode"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PriceRuleListResponse ответ со списком тарифов
type PriceRuleListResponse struct {
	Rules []PriceRuleResponse `json:"rules"`
}

// DefaultsResponse ответ с глобальным тарифом
type DefaultsResponse struct {
	PricePerHour       int64 `json:"pricePerHour"`
	PricePerExtraGuest int64 `json:"pricePerExtraGuest"`
	MaxGuestsIncluded  int   `json:"maxGuestsIncluded"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.PriceRule) *PriceRuleResponse {
	if r == nil {
		return nil
	}

	return &PriceRuleResponse{
		ID:                 r.ID,
		DateFrom:           r.DateFrom.Format(domain.DateFormat),
		DateTo:             r.DateTo.Format(domain.DateFormat),
		HourFrom:           r.HourFrom,
		HourTo:             r.HourTo,
		PricePerHour:       r.PricePerHour,
		PricePerExtraGuest: r.PricePerExtraGuest,
		MaxGuestsIncluded:  r.MaxGuestsIncluded,
		ChargeMode:         string(r.ChargeMode),
		CreatedAt:          r.CreatedAt,
	}
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.PriceRule) *PriceRuleListResponse {
	resp := &PriceRuleListResponse{
		Rules: make([]PriceRuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules = append(resp.Rules, *ruleResp)
		}
	}

	return resp
}

// FromDomainDefaults конвертирует глобальный тариф в DTO
func FromDomainDefaults(d *domain.DefaultPricing) *DefaultsResponse {
	if d == nil {
		return nil
	}

	return &DefaultsResponse{
		PricePerHour:       d.PricePerHour,
		PricePerExtraGuest: d.PricePerExtraGuest,
		MaxGuestsIncluded:  d.MaxGuestsIncluded,
	}
}
