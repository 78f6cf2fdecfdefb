package update_booking_rules

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/shoprules/models"
)

type RulesService interface {
	Update(ctx context.Context, shopID int64, req *models.UpdateRulesRequest) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
