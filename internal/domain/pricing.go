package domain

import "time"

// ExtraGuestChargeMode режим тарификации гостей сверх включенных в тариф
type ExtraGuestChargeMode string

const (
	// ChargePerBooking доплата за лишнего гостя берется один раз за бронь
	ChargePerBooking ExtraGuestChargeMode = "per_booking"
	// ChargePerHour доплата за лишнего гостя берется за каждый час
	ChargePerHour ExtraGuestChargeMode = "per_hour"
)

// PriceRule тариф, действующий в диапазоне дат и времени начала брони
// Правила сопоставляются по вхождению: дата в [DateFrom, DateTo],
// час начала в [HourFrom, HourTo). При нескольких совпавших правилах
// побеждает созданное последним (tie-break: больший id)
type PriceRule struct {
	ID                 int64
	DateFrom           time.Time
	DateTo             time.Time
	HourFrom           int // Час начала действия правила, включительно
	HourTo             int // Час конца действия правила, исключительно
	PricePerHour       int64
	PricePerExtraGuest int64
	MaxGuestsIncluded  int
	ChargeMode         ExtraGuestChargeMode
	CreatedAt          time.Time
}

// Matches проверяет, действует ли правило для даты и часа начала брони
func (r *PriceRule) Matches(date time.Time, startHour int) bool {
	d := DateOnly(date)
	if d.Before(DateOnly(r.DateFrom)) || d.After(DateOnly(r.DateTo)) {
		return false
	}
	return startHour >= r.HourFrom && startHour < r.HourTo
}

// DefaultPricing глобальный тариф, применяемый когда ни одно правило не подошло
// Доплата за лишних гостей всегда за бронь целиком
type DefaultPricing struct {
	PricePerHour       int64
	PricePerExtraGuest int64
	MaxGuestsIncluded  int
}

// DateOnly обнуляет временную часть даты
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
