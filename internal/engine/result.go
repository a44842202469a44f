package engine

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректном рабочем окне
	ErrInvalidConfig = errors.New("engine: invalid operating hours")

	// ErrMalformedBooking возвращается при поврежденном времени в сохраненной брони
	ErrMalformedBooking = errors.New("engine: malformed stored booking")
)

// RejectReason причина отказа в бронировании
type RejectReason string

const (
	// ReasonOutsideOperatingHours время начала вне рабочих часов
	ReasonOutsideOperatingHours RejectReason = "outside_operating_hours"

	// ReasonExceedsClosingTime бронь заканчивается позже закрытия
	ReasonExceedsClosingTime RejectReason = "exceeds_closing_time"

	// ReasonSlotTaken пересечение с бронью этого же дня (само бронирование
	// или его час уборки)
	ReasonSlotTaken RejectReason = "slot_taken"

	// ReasonSpilloverConflict пересечение с ночной бронью предыдущего дня,
	// перешедшей через полночь
	ReasonSpilloverConflict RejectReason = "spillover_conflict"
)

// Result результат проверки брони: принято или отклонено с причиной.
// Ожидаемые бизнес-отказы не являются ошибками
type Result struct {
	OK      bool
	Reason  RejectReason
	Message string // Человекочитаемое объяснение для гостя
}

func accepted() Result {
	return Result{OK: true}
}

func rejected(reason RejectReason, message string) Result {
	return Result{OK: false, Reason: reason, Message: message}
}
