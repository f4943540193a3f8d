package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с выходными сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория выходных
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForStaffOnDate получает выходные, действующие для сотрудника на дату
// Включает глобальные выходные (staff_id = 0); диапазон дат включительный
func (r *Repository) GetForStaffOnDate(ctx context.Context, staffID int64, date time.Time) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"name",
		"start_date",
		"end_date",
	).
		From("holidays").
		Where(squirrel.Eq{"staff_id": []int64{0, staffID}}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForStaffOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForStaffOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.StaffID, &h.Name, &h.StartDate, &h.EndDate); err != nil {
			return nil, fmt.Errorf("%w: GetForStaffOnDate - scan holiday: %v", ErrScanRow, err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForStaffOnDate - rows iteration: %v", ErrExecQuery, err)
	}

	return holidays, nil
}
