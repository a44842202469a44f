package create_booking

import (
	"time"

	"github.com/mrgoksal/Chilliwili/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string    // Имя гостя
	CustomerPhone string    // Телефон гостя
	TelegramID    *int64    // Telegram ID гостя (опционально, для веб-формы отсутствует)
	Username      *string   // Telegram username (опционально)
	Date          time.Time // Дата бронирования (без времени)
	StartHour     int       // Час начала (0-23)
	DurationHours int       // Длительность в часах
	GuestCount    int       // Количество гостей
	BookingName   *string   // Имя для конкретной брони, если отличается от профиля
	BookingPhone  *string   // Телефон для конкретной брони, если отличается от профиля
	Notes         *string   // Дополнительные пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	CustomerID    int64            // ID гостя
	Date          time.Time        // Дата бронирования
	StartTime     types.TimeString // Время начала
	DurationHours int              // Длительность в часах
	GuestCount    int              // Количество гостей
	TotalPrice    int64            // Итоговая стоимость
	Status        string           // Статус бронирования
	BookingName   *string          // Имя для брони
	BookingPhone  *string          // Телефон для брони
	Notes         *string          // Пожелания
	CreatedAt     time.Time        // Время создания
	UpdatedAt     time.Time        // Время обновления
}
