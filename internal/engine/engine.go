// Package engine чистая логика доступности слотов и расчета стоимости.
// Не обращается к БД и не имеет состояния: все существующие брони и тарифы
// передаются на вход, результат детерминирован.
package engine

import (
	"fmt"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// Engine параметры рабочего окна площадки
type Engine struct {
	openHour  int // Первый доступный час начала брони
	closeHour int // Час закрытия; последний слот начинается в closeHour-1
}

// New создает движок для рабочего окна [openHour, closeHour)
func New(openHour, closeHour int) (*Engine, error) {
	if openHour < 0 || openHour >= domain.HoursPerDay {
		return nil, fmt.Errorf("%w: open hour %d out of range", ErrInvalidConfig, openHour)
	}
	if closeHour <= openHour || closeHour > domain.HoursPerDay {
		return nil, fmt.Errorf("%w: close hour %d must be in (%d, %d]", ErrInvalidConfig, closeHour, openHour, domain.HoursPerDay)
	}
	return &Engine{openHour: openHour, closeHour: closeHour}, nil
}

// OpenHour возвращает час открытия
func (e *Engine) OpenHour() int { return e.openHour }

// CloseHour возвращает час закрытия
func (e *Engine) CloseHour() int { return e.closeHour }

// EnumerateSlots возвращает почасовые слоты от open до close, close не включается
func EnumerateSlots(openHour, closeHour int) []int {
	if closeHour <= openHour {
		return []int{}
	}
	slots := make([]int, 0, closeHour-openHour)
	for h := openHour; h < closeHour; h++ {
		slots = append(slots, h)
	}
	return slots
}

// AddHours возвращает час окончания интервала и признак перехода на
// следующий календарный день. Переход через полночь никогда не теряется
// молча: вызывающий обязан учесть nextDay
func AddHours(hour, n int) (endHour int, nextDay bool) {
	total := hour + n
	if total >= domain.HoursPerDay {
		return total % domain.HoursPerDay, true
	}
	return total, false
}

// startAndEnd извлекает час начала и конец занятого интервала брони.
// Некорректное время в сохраненной брони - поврежденные данные,
// это невосстановимая ошибка, а не бизнес-условие
func startAndEnd(b *domain.Booking) (start, end int, err error) {
	start, err = b.StartTime.Hour()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: booking id=%d has malformed start time %q", ErrMalformedBooking, b.ID, b.StartTime)
	}
	return start, start + b.DurationHours, nil
}
