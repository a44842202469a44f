package domain

import "time"

// Customer represents a guest profile
// TelegramID и Username отсутствуют у гостей, заведенных админом вручную
type Customer struct {
	ID         int64
	Name       string
	Phone      string
	TelegramID *int64
	Username   *string
	CreatedAt  time.Time
}

// HasTelegram returns true if the customer can be reached via Telegram
func (c *Customer) HasTelegram() bool {
	return c.TelegramID != nil && *c.TelegramID != 0
}

// DisplayName возвращает имя для показа брони: переопределение из брони
// имеет приоритет над профилем, каждая бронь может быть на другого гостя
func (c *Customer) DisplayName(b *Booking) string {
	if b != nil && b.BookingName != nil && *b.BookingName != "" {
		return *b.BookingName
	}
	return c.Name
}

// DisplayPhone возвращает телефон для показа брони, аналогично DisplayName
func (c *Customer) DisplayPhone(b *Booking) string {
	if b != nil && b.BookingPhone != nil && *b.BookingPhone != "" {
		return *b.BookingPhone
	}
	return c.Phone
}
