package pricing

import "errors"

var (
	// ErrRuleNotFound возвращается, когда тариф не найден
	ErrRuleNotFound = errors.New("price rule not found")

	// ErrDefaultsNotConfigured возвращается, когда глобальный тариф не настроен
	ErrDefaultsNotConfigured = errors.New("default pricing is not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
