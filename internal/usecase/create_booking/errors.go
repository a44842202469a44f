package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideOperatingHours возвращается, когда время начала вне рабочих часов
	ErrOutsideOperatingHours = errors.New("create_booking: start time is outside operating hours")

	// ErrExceedsClosingTime возвращается, когда бронь заканчивается позже закрытия
	ErrExceedsClosingTime = errors.New("create_booking: booking exceeds closing time")

	// ErrSlotTaken возвращается при пересечении с существующей бронью или ее часом уборки
	ErrSlotTaken = errors.New("create_booking: slot is taken")

	// ErrSpilloverConflict возвращается при пересечении с ночной бронью предыдущего дня
	ErrSpilloverConflict = errors.New("create_booking: conflict with overnight booking")

	// ErrTooLateToBook возвращается при попытке забронировать прошедший или ближайший час сегодня
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrPricingNotConfigured возвращается, когда не настроен дефолтный тариф
	ErrPricingNotConfigured = errors.New("create_booking: default pricing is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
