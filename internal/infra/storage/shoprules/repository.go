package shoprules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var rulesColumns = []string{
	"id",
	"shop_id",
	"base_buffer_minutes",
	"max_extension_minutes",
	"extension_step_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами бронирования салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил бронирования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByShopID получает правила бронирования салона
// Если правила не настроены - возвращает ErrRulesNotFound,
// дефолты применяет сервисный слой
func (r *Repository) GetByShopID(ctx context.Context, shopID int64) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rulesColumns...).
		From("shop_booking_rules").
		Where(squirrel.Eq{"shop_id": shopID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopID - build select query: %v", ErrBuildQuery, err)
	}

	var rules domain.BookingRules
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.ID,
		&rules.ShopID,
		&rules.BaseBufferMinutes,
		&rules.MaxExtensionMinutes,
		&rules.ExtensionStepMinutes,
		&rules.CreatedAt,
		&rules.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopID - scan rules: %v", ErrScanRow, err)
	}

	return &rules, nil
}

// Upsert создает или обновляет правила бронирования салона
func (r *Repository) Upsert(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shop_booking_rules").
		Columns(
			"shop_id",
			"base_buffer_minutes",
			"max_extension_minutes",
			"extension_step_minutes",
		).
		Values(
			rules.ShopID,
			rules.BaseBufferMinutes,
			rules.MaxExtensionMinutes,
			rules.ExtensionStepMinutes,
		).
		Suffix(`ON CONFLICT (shop_id) DO UPDATE SET
			base_buffer_minutes = EXCLUDED.base_buffer_minutes,
			max_extension_minutes = EXCLUDED.max_extension_minutes,
			extension_step_minutes = EXCLUDED.extension_step_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.ID,
		&rules.CreatedAt,
		&rules.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return rules, nil
}
