package get_available_times

import "time"

// Request модель запроса свободных часов на дату
type Request struct {
	Date          time.Time // Дата (без времени)
	DurationHours int       // Желаемая длительность, 0 означает 1 час
}

// Response модель ответа со свободными часами начала
type Response struct {
	Date           time.Time // Запрошенная дата
	AvailableHours []int     // Отсортированные свободные часы начала
}
