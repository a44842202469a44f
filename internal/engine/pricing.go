package engine

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// ResolveRule выбирает тариф для даты и часа начала брони.
// Совпадение по вхождению: дата в диапазоне правила И час начала в его
// временном окне. При нескольких совпавших побеждает созданное последним,
// при равном времени создания - с большим id. Возвращает nil, если ни одно
// правило не подошло - тогда действует глобальный тариф
func ResolveRule(date time.Time, startHour int, rules []*domain.PriceRule) *domain.PriceRule {
	var winner *domain.PriceRule
	for _, rule := range rules {
		if !rule.Matches(date, startHour) {
			continue
		}
		if winner == nil {
			winner = rule
			continue
		}
		if rule.CreatedAt.After(winner.CreatedAt) ||
			(rule.CreatedAt.Equal(winner.CreatedAt) && rule.ID > winner.ID) {
			winner = rule
		}
	}
	return winner
}

// ResolvePrice вычисляет стоимость брони в целых рублях.
// durationHours и guestCount должны быть положительными - это контракт
// вызывающего, проверяемый до обращения к движку
func ResolvePrice(
	date time.Time,
	startHour int,
	guestCount int,
	durationHours int,
	rules []*domain.PriceRule,
	defaults domain.DefaultPricing,
) int64 {
	pricePerHour := defaults.PricePerHour
	pricePerExtraGuest := defaults.PricePerExtraGuest
	maxGuestsIncluded := defaults.MaxGuestsIncluded
	chargeMode := domain.ChargePerBooking

	if rule := ResolveRule(date, startHour, rules); rule != nil {
		pricePerHour = rule.PricePerHour
		pricePerExtraGuest = rule.PricePerExtraGuest
		maxGuestsIncluded = rule.MaxGuestsIncluded
		chargeMode = rule.ChargeMode
	}

	total := int64(durationHours) * pricePerHour

	if guestCount > maxGuestsIncluded {
		extra := int64(guestCount - maxGuestsIncluded)
		if chargeMode == domain.ChargePerHour {
			total += extra * pricePerExtraGuest * int64(durationHours)
		} else {
			total += extra * pricePerExtraGuest
		}
	}

	return total
}
