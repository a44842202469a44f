package update_booking

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model, все поля опциональны
type UpdateBookingRequest struct {
	Date          *string `json:"date,omitempty"` // "2025-11-15"
	StartHour     *int    `json:"startHour,omitempty"`
	DurationHours *int    `json:"durationHours,omitempty"`
	GuestCount    *int    `json:"guestCount,omitempty"`
	BookingName   *string `json:"bookingName,omitempty"`
	BookingPhone  *string `json:"bookingPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(bookingID int64) (*models.UpdateBookingRequest, error) {
	req := &models.UpdateBookingRequest{
		BookingID:     bookingID,
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
		GuestCount:    r.GuestCount,
		BookingName:   r.BookingName,
		BookingPhone:  r.BookingPhone,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
