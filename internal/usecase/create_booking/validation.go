package create_booking

import (
	"fmt"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if req.CustomerPhone == "" && req.TelegramID == nil {
		return fmt.Errorf("%w: customer phone or telegram id is required", ErrInvalidInput)
	}

	if len(req.CustomerPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: customer phone is too long", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartHour < 0 || req.StartHour > 23 {
		return fmt.Errorf("%w: startHour must be between 0 and 23", ErrInvalidInput)
	}

	if req.DurationHours < domain.MinDurationHours || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: durationHours must be between %d and %d",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}

	if req.GuestCount < domain.MinGuests || req.GuestCount > domain.MaxGuests {
		return fmt.Errorf("%w: guestCount must be between %d and %d",
			ErrInvalidInput, domain.MinGuests, domain.MaxGuests)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(bookingDate, now time.Time) error {
	dateOnly := domain.DateOnly(bookingDate)
	nowOnly := domain.DateOnly(now)

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	maxDate := nowOnly.AddDate(0, 0, domain.MaxAdvanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance",
			ErrDateTooFarInFuture, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// validateLeadTime проверяет минимальный запас времени для сегодняшних броней.
// В начале часа ближайший доступный старт - следующий час, иначе через час
func validateLeadTime(bookingDate time.Time, startHour int, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	cutoff := now.Hour() + 2
	if now.Minute() == 0 {
		cutoff = now.Hour() + 1
	}

	if startHour < cutoff {
		return fmt.Errorf("%w: earliest start today is %02d:00", ErrTooLateToBook, cutoff)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
