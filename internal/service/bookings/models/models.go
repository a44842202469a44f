package models

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
// CustomerID nil означает отмену администратором без проверки владельца
type CancelBookingRequest struct {
	BookingID  int64
	CustomerID *int64
}

// UpdateBookingRequest частичное обновление брони (nil = поле не меняется)
type UpdateBookingRequest struct {
	BookingID     int64
	Date          *time.Time
	StartHour     *int
	DurationHours *int
	GuestCount    *int
	BookingName   *string
	BookingPhone  *string
	Notes         *string
}

// ChangesSlot проверяет, затрагивает ли запрос занимаемый временной интервал
func (r *UpdateBookingRequest) ChangesSlot() bool {
	return r.Date != nil || r.StartHour != nil || r.DurationHours != nil
}

// IsEmpty проверяет, что запрос не содержит ни одного поля
func (r *UpdateBookingRequest) IsEmpty() bool {
	return r.Date == nil && r.StartHour == nil && r.DurationHours == nil &&
		r.GuestCount == nil && r.BookingName == nil && r.BookingPhone == nil &&
		r.Notes == nil
}

// GetPeriodBookingsRequest запрос бронирований за период для админки
type GetPeriodBookingsRequest struct {
	From            time.Time
	To              time.Time
	IncludeInactive bool
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	Date          string  `json:"date"`      // "2025-11-15"
	StartTime     string  `json:"startTime"` // "15:00"
	DurationHours int     `json:"durationHours"`
	GuestCount    int     `json:"guestCount"`
	TotalPrice    int64   `json:"totalPrice"`
	Status        string  `json:"status"`
	BookingName   *string `json:"bookingName,omitempty"`
	BookingPhone  *string `json:"bookingPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		Date:          b.Date.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		DurationHours: b.DurationHours,
		GuestCount:    b.GuestCount,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		BookingName:   b.BookingName,
		BookingPhone:  b.BookingPhone,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
