package pricing

import "errors"

var (
	// ErrRuleNotFound возвращается, когда тариф не найден
	ErrRuleNotFound = errors.New("pricing.repository: price rule not found")

	// ErrDefaultsNotFound возвращается, когда глобальный тариф не настроен
	// Отсутствие дефолтного тарифа - ошибка развертывания, процесс обязан
	// упасть на старте, а не возвращать её на каждый запрос
	ErrDefaultsNotFound = errors.New("pricing.repository: default pricing not configured")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricing.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricing.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricing.repository: failed to scan row")
)
