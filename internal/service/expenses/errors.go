package expenses

import "errors"

var (
	// ErrExpenseNotFound возвращается, когда запись о расходе не найдена
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
