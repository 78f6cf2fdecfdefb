package shoprules

import "errors"

var (
	// ErrRulesNotFound правила бронирования для салона не настроены
	ErrRulesNotFound = errors.New("shoprules.repository: booking rules not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("shoprules.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("shoprules.repository: failed to execute query")

	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("shoprules.repository: failed to scan row")
)
