package shoprules

import (
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов к БД (поддерживает *sql.DB и *metrics.DB)
type DBExecutor = dbmetrics.DBExecutor
