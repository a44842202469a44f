package engine

import (
	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// Сообщения для гостя при отказе в бронировании
const (
	msgOutsideHours     = "Выбранное время вне рабочих часов"
	msgExceedsClosing   = "Бронирование заканчивается позже закрытия"
	msgDirectOverlap    = "В это время уже есть другое бронирование"
	msgCleanupAfter     = "Требуется 1 час на уборку после предыдущего бронирования"
	msgSpilloverTaken   = "Утро занято ночным бронированием предыдущего дня"
	msgSpilloverCleanup = "Требуется 1 час на уборку после ночного бронирования"
)

// Validate проверяет, можно ли разместить бронь (startHour, durationHours)
// среди существующих. Повторный вызов непосредственно перед записью в БД,
// в той же транзакции - обязательная защита от гонки: список доступных
// слотов, показанный гостю, к моменту подтверждения может устареть
func (e *Engine) Validate(startHour, durationHours int, sameDay, prevDay []*domain.Booking) (Result, error) {
	// 1. Рабочие часы
	if startHour < e.openHour || startHour >= e.closeHour {
		return rejected(ReasonOutsideOperatingHours, msgOutsideHours), nil
	}

	// 2. Время закрытия - жесткая граница для новых броней
	if startHour+durationHours > e.closeHour {
		return rejected(ReasonExceedsClosingTime, msgExceedsClosing), nil
	}

	end := startHour + durationHours

	// 3. Пересечения с бронями этого дня, включая час уборки после каждой
	for _, b := range sameDay {
		if !b.IsActive() {
			continue
		}
		bStart, bEnd, err := startAndEnd(b)
		if err != nil {
			return Result{}, err
		}
		// Расширенный интервал: [bStart, bEnd + буфер)
		if startHour < bEnd+domain.BufferHours && end > bStart {
			if startHour < bEnd && end > bStart {
				return rejected(ReasonSlotTaken, msgDirectOverlap), nil
			}
			return rejected(ReasonSlotTaken, msgCleanupAfter), nil
		}
	}

	// 4. Ночные хвосты броней предыдущего дня
	for _, b := range prevDay {
		if !b.IsActive() {
			continue
		}
		_, bEnd, err := startAndEnd(b)
		if err != nil {
			return Result{}, err
		}
		if bEnd < domain.HoursPerDay {
			continue
		}
		spillEnd := bEnd % domain.HoursPerDay
		// Хвост занимает [0, spillEnd), уборка - [spillEnd, spillEnd + буфер)
		if startHour < spillEnd+domain.BufferHours && end > 0 {
			if startHour < spillEnd {
				return rejected(ReasonSpilloverConflict, msgSpilloverTaken), nil
			}
			return rejected(ReasonSpilloverConflict, msgSpilloverCleanup), nil
		}
	}

	return accepted(), nil
}
