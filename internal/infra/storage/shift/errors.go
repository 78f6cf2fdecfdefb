package shift

import "errors"

var (
	// ErrShiftNotFound смена не найдена
	ErrShiftNotFound = errors.New("shift.repository: shift not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("shift.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("shift.repository: failed to execute query")

	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("shift.repository: failed to scan row")
)
