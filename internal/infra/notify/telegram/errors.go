package telegram

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Telegram API
	ErrInvalidResponse = errors.New("telegram client: invalid response")

	// ErrNotConfigured возвращается, когда токен бота не задан
	// Уведомления в этом случае молча пропускаются, бронирования не блокируются
	ErrNotConfigured = errors.New("telegram client: bot token is not configured")
)
