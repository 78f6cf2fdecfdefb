package shift

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var shiftColumns = []string{
	"id",
	"therapist_id",
	"shop_id",
	"work_date",
	"start_at",
	"end_at",
	"status",
}

// Repository репозиторий для работы со сменами мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForTherapistOnDate получает смены мастера на указанную дату
// вместе с перерывами. Дата сравнивается по рабочему дню смены,
// а не по календарному дню старта: ночная смена принадлежит дню начала
func (r *Repository) GetForTherapistOnDate(ctx context.Context, therapistID int64, date time.Time) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shiftColumns...).
		From("shifts").
		Where(squirrel.Eq{"therapist_id": therapistID}).
		Where(squirrel.Eq{"work_date": date.Format(domain.DateFormat)}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForTherapistOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForTherapistOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachBreaks(ctx, executor, shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// GetForShopOnDate получает смены всех мастеров салона на указанную дату
// Используется при свободном назначении мастера и построении таймлайнов
func (r *Repository) GetForShopOnDate(ctx context.Context, shopID int64, date time.Time) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shiftColumns...).
		From("shifts").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.Eq{"work_date": date.Format(domain.DateFormat)}).
		OrderBy("therapist_id ASC", "start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForShopOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForShopOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachBreaks(ctx, executor, shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// attachBreaks дозагружает перерывы для набора смен одним запросом
func (r *Repository) attachBreaks(ctx context.Context, executor dbmetrics.DBExecutor, shifts []*domain.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	shiftIDs := make([]int64, len(shifts))
	byID := make(map[int64]*domain.Shift, len(shifts))
	for i, s := range shifts {
		shiftIDs[i] = s.ID
		byID[s.ID] = s
	}

	query, args, err := psqlbuilder.Select("shift_id", "start_at", "end_at").
		From("shift_breaks").
		Where(squirrel.Eq{"shift_id": shiftIDs}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var shiftID int64
		var interval domain.TimeInterval

		if err := rows.Scan(&shiftID, &interval.Start, &interval.End); err != nil {
			return fmt.Errorf("%w: attachBreaks - scan break row: %v", ErrScanRow, err)
		}

		if shift, ok := byID[shiftID]; ok {
			shift.BreakSlots = append(shift.BreakSlots, interval)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachBreaks - break rows error: %v", ErrScanRow, err)
	}

	return nil
}

func scanShifts(rows *sql.Rows) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)

	for rows.Next() {
		var s domain.Shift

		err := rows.Scan(
			&s.ID,
			&s.TherapistID,
			&s.ShopID,
			&s.Date,
			&s.StartAt,
			&s.EndAt,
			&s.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan shift row: %v", ErrScanRow, err)
		}

		shifts = append(shifts, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: shift rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}
