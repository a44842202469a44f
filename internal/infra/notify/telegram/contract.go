package telegram

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// MetricsCollector интерфейс для счетчика отправленных уведомлений
type MetricsCollector interface {
	IncNotification(status string)
}
