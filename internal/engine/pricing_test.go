package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

var testDefaults = domain.DefaultPricing{
	PricePerHour:       800,
	PricePerExtraGuest: 500,
	MaxGuestsIncluded:  8,
}

func rule(id int64, createdAt time.Time, modify func(*domain.PriceRule)) *domain.PriceRule {
	r := &domain.PriceRule{
		ID:                 id,
		DateFrom:           time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		DateTo:             time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
		HourFrom:           10,
		HourTo:             22,
		PricePerHour:       1000,
		PricePerExtraGuest: 300,
		MaxGuestsIncluded:  6,
		ChargeMode:         domain.ChargePerBooking,
		CreatedAt:          createdAt,
	}
	if modify != nil {
		modify(r)
	}
	return r
}

// Дефолтный тариф: 800/час, 500 за гостя сверх 8 включенных, за бронь целиком
func TestResolvePrice_DefaultPricing(t *testing.T) {
	price := ResolvePrice(testDate, 12, 10, 3, nil, testDefaults)
	assert.Equal(t, int64(3*800+(10-8)*500), price)
	assert.Equal(t, int64(3400), price)
}

func TestResolvePrice_NoExtraGuests(t *testing.T) {
	assert.Equal(t, int64(1600), ResolvePrice(testDate, 12, 8, 2, nil, testDefaults))
	assert.Equal(t, int64(800), ResolvePrice(testDate, 12, 1, 1, nil, testDefaults))
}

func TestResolvePrice_RuleMatch(t *testing.T) {
	rules := []*domain.PriceRule{rule(1, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), nil)}

	// 2 часа по 1000, 8 гостей при 6 включенных = 2 лишних по 300 за бронь
	price := ResolvePrice(testDate, 12, 8, 2, rules, testDefaults)
	assert.Equal(t, int64(2*1000+2*300), price)
}

func TestResolvePrice_PerHourChargeMode(t *testing.T) {
	rules := []*domain.PriceRule{rule(1, time.Now(), func(r *domain.PriceRule) {
		r.ChargeMode = domain.ChargePerHour
	})}

	// Лишние гости тарифицируются за каждый час: 2 гостя * 300 * 3 часа
	price := ResolvePrice(testDate, 12, 8, 3, rules, testDefaults)
	assert.Equal(t, int64(3*1000+2*300*3), price)
}

func TestResolvePrice_RuleOutsideTimeWindow(t *testing.T) {
	rules := []*domain.PriceRule{rule(1, time.Now(), func(r *domain.PriceRule) {
		r.HourFrom = 18
		r.HourTo = 22
	})}

	// Начало в 12 не попадает в окно правила [18, 22) - действует дефолт
	assert.Equal(t, int64(1600), ResolvePrice(testDate, 12, 2, 2, rules, testDefaults))
	// Начало в 18 попадает (граница включается)
	assert.Equal(t, int64(2000), ResolvePrice(testDate, 18, 2, 2, rules, testDefaults))
	// Начало в 22 не попадает (верхняя граница исключается)
	assert.Equal(t, int64(1600), ResolvePrice(testDate, 22, 2, 2, rules, testDefaults))
}

func TestResolveRule_LastCreatedWins(t *testing.T) {
	older := rule(1, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), func(r *domain.PriceRule) {
		r.PricePerHour = 700
	})
	newer := rule(2, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), func(r *domain.PriceRule) {
		r.PricePerHour = 1200
	})

	winner := ResolveRule(testDate, 12, []*domain.PriceRule{older, newer})
	assert.Equal(t, newer.ID, winner.ID)

	// Порядок в слайсе не влияет
	winner = ResolveRule(testDate, 12, []*domain.PriceRule{newer, older})
	assert.Equal(t, newer.ID, winner.ID)
}

func TestResolveRule_TieBreakByID(t *testing.T) {
	createdAt := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	first := rule(1, createdAt, nil)
	second := rule(2, createdAt, nil)

	winner := ResolveRule(testDate, 12, []*domain.PriceRule{second, first})
	assert.Equal(t, int64(2), winner.ID)
}

func TestResolveRule_NoMatch(t *testing.T) {
	outside := rule(1, time.Now(), func(r *domain.PriceRule) {
		r.DateFrom = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
		r.DateTo = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	})

	assert.Nil(t, ResolveRule(testDate, 12, []*domain.PriceRule{outside}))
}

// Стоимость не убывает ни по длительности, ни по числу гостей
func TestResolvePrice_Monotonicity(t *testing.T) {
	ruleSets := map[string][]*domain.PriceRule{
		"defaults": nil,
		"per_booking rule": {rule(1, time.Now(), nil)},
		"per_hour rule": {rule(1, time.Now(), func(r *domain.PriceRule) {
			r.ChargeMode = domain.ChargePerHour
		})},
	}

	for name, rules := range ruleSets {
		t.Run(name, func(t *testing.T) {
			for guests := 1; guests <= 15; guests++ {
				prev := int64(-1)
				for duration := 1; duration <= 12; duration++ {
					price := ResolvePrice(testDate, 12, guests, duration, rules, testDefaults)
					assert.GreaterOrEqual(t, price, prev,
						"price decreased at guests=%d duration=%d", guests, duration)
					prev = price
				}
			}

			for duration := 1; duration <= 12; duration++ {
				prev := int64(-1)
				for guests := 1; guests <= 15; guests++ {
					price := ResolvePrice(testDate, 12, guests, duration, rules, testDefaults)
					assert.GreaterOrEqual(t, price, prev,
						"price decreased at duration=%d guests=%d", duration, guests)
					prev = price
				}
			}
		})
	}
}
