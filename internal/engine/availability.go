package engine

import (
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// AvailableStarts возвращает доступные часы начала брони на дату в порядке
// возрастания. Результат вычисляется заново при каждом вызове.
//
// sameDay - активные брони на эту же дату, prevDay - активные брони
// предыдущего дня (их ночная часть может блокировать утро текущего дня).
// now передается только для сегодняшней даты и включает правило
// "бронь не раньше чем за час"; nil отключает фильтр по текущему времени
func (e *Engine) AvailableStarts(date time.Time, sameDay, prevDay []*domain.Booking, now *time.Time) ([]int, error) {
	blocked, err := e.blockedHours(sameDay, prevDay)
	if err != nil {
		return nil, err
	}

	available := make([]int, 0, e.closeHour-e.openHour)
	for _, slot := range EnumerateSlots(e.openHour, e.closeHour) {
		if blocked[slot] {
			continue
		}
		available = append(available, slot)
	}

	if now != nil && isSameDay(date, *now) {
		cutoff := sameDayCutoffHour(*now)
		filtered := available[:0]
		for _, slot := range available {
			if slot >= cutoff {
				filtered = append(filtered, slot)
			}
		}
		available = filtered
	}

	return available, nil
}

// blockedHours собирает множество заблокированных часов текущего дня:
// занятые интервалы дневных броней с часом уборки после каждой,
// плюс ночные хвосты броней предыдущего дня с их часом уборки
func (e *Engine) blockedHours(sameDay, prevDay []*domain.Booking) (map[int]bool, error) {
	blocked := make(map[int]bool)

	for _, b := range sameDay {
		if !b.IsActive() {
			continue
		}
		start, end, err := startAndEnd(b)
		if err != nil {
			return nil, err
		}
		// Сама бронь плюс час уборки после нее; часы за полуночью
		// относятся уже к следующему дню и здесь не учитываются
		for h := start; h <= end+domain.BufferHours-1; h++ {
			if h < domain.HoursPerDay {
				blocked[h] = true
			}
		}
	}

	for _, b := range prevDay {
		if !b.IsActive() {
			continue
		}
		_, end, err := startAndEnd(b)
		if err != nil {
			return nil, err
		}
		if end < domain.HoursPerDay {
			continue // Бронь закончилась в свой день
		}
		// Ночная бронь вчерашнего дня: занятые часы после полуночи
		// плюс час уборки. spillEnd - первый свободный от гостей час,
		// он же уходит на уборку
		spillEnd := end % domain.HoursPerDay
		for h := 0; h <= spillEnd+domain.BufferHours-1; h++ {
			if h < domain.HoursPerDay {
				blocked[h] = true
			}
		}
	}

	return blocked, nil
}

// sameDayCutoffHour возвращает минимальный допустимый час начала брони
// сегодня: минимум час от текущего момента, с округлением вверх до полного
// часа. В 14:00 можно бронировать с 15:00, в 14:01 - только с 16:00
func sameDayCutoffHour(now time.Time) int {
	if now.Minute() == 0 {
		return now.Hour() + 1
	}
	return now.Hour() + 2
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
