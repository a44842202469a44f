package domain

import (
	"time"

	"github.com/mrgoksal/Chilliwili/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reservation of the space for a number of hours
type Booking struct {
	ID            int64
	CustomerID    int64
	Date          time.Time        // День бронирования (без времени)
	StartTime     types.TimeString // Время начала, с точностью до часа
	DurationHours int
	GuestCount    int
	TotalPrice    int64 // Стоимость в рублях, всегда вычисляется сервисом
	Status        BookingStatus

	// Переопределение имени/телефона для конкретной брони:
	// бронь может быть на другого гостя, чем владелец профиля
	BookingName  *string
	BookingPhone *string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking fields can be edited
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// StartHour возвращает час начала брони
func (b *Booking) StartHour() (int, error) {
	return b.StartTime.Hour()
}

// CrossesMidnight проверяет, переходит ли занятый интервал на следующий день
func (b *Booking) CrossesMidnight() bool {
	hour, err := b.StartTime.Hour()
	if err != nil {
		return false
	}
	return hour+b.DurationHours >= HoursPerDay
}

// BookingUpdate частичное обновление полей брони (nil = поле не меняется)
type BookingUpdate struct {
	Date          *time.Time
	StartTime     *types.TimeString
	DurationHours *int
	GuestCount    *int
	TotalPrice    *int64
	BookingName   *string
	BookingPhone  *string
	Notes         *string
}

// IsEmpty проверяет, что обновление не содержит ни одного поля
func (u *BookingUpdate) IsEmpty() bool {
	return u.Date == nil && u.StartTime == nil && u.DurationHours == nil &&
		u.GuestCount == nil && u.TotalPrice == nil && u.BookingName == nil &&
		u.BookingPhone == nil && u.Notes == nil
}

// ChangesSlot проверяет, затрагивает ли обновление занимаемый временной интервал
func (u *BookingUpdate) ChangesSlot() bool {
	return u.Date != nil || u.StartTime != nil || u.DurationHours != nil
}
