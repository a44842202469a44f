package create_booking

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	createBooking "github.com/mrgoksal/Chilliwili/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	TelegramID    *int64  `json:"telegramId,omitempty"`
	Username      *string `json:"username,omitempty"`
	Date          string  `json:"date"`      // "2025-11-15"
	StartHour     int     `json:"startHour"` // 0-23
	DurationHours int     `json:"durationHours"`
	GuestCount    int     `json:"guestCount"`
	BookingName   *string `json:"bookingName,omitempty"`
	BookingPhone  *string `json:"bookingPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	DurationHours int     `json:"durationHours"`
	GuestCount    int     `json:"guestCount"`
	TotalPrice    int64   `json:"totalPrice"`
	Status        string  `json:"status"`
	BookingName   *string `json:"bookingName,omitempty"`
	BookingPhone  *string `json:"bookingPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		TelegramID:    r.TelegramID,
		Username:      r.Username,
		Date:          date,
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
		GuestCount:    r.GuestCount,
		BookingName:   r.BookingName,
		BookingPhone:  r.BookingPhone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		CustomerID:    resp.CustomerID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		DurationHours: resp.DurationHours,
		GuestCount:    resp.GuestCount,
		TotalPrice:    resp.TotalPrice,
		Status:        resp.Status,
		BookingName:   resp.BookingName,
		BookingPhone:  resp.BookingPhone,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
