package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда гость пытается управлять чужой бронью
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotConfirm возвращается, когда бронирование нельзя подтвердить
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrCannotUpdate возвращается, когда бронирование нельзя изменить
	ErrCannotUpdate = errors.New("booking cannot be updated")

	// ErrSlotTaken возвращается, когда новый слот при переносе занят
	ErrSlotTaken = errors.New("slot is taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
