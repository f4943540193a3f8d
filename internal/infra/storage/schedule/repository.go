package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с рабочими окнами и перерывами сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffAndDay получает рабочее окно сотрудника на день недели (0 = воскресенье)
func (r *Repository) GetByStaffAndDay(ctx context.Context, staffID int64, dayOfWeek int) (*domain.ScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("schedule_entries").
		Where(squirrel.Eq{"staff_id": staffID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDay - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.ScheduleEntry
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.StaffID,
		&entry.DayOfWeek,
		&entry.StartTime,
		&entry.EndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDay - scan entry: %v", ErrScanRow, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// GetBreaks получает перерывы рабочего окна, отсортированные по времени начала
func (r *Repository) GetBreaks(ctx context.Context, scheduleEntryID int64) ([]domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_entry_id",
		"start_time",
		"end_time",
	).
		From("schedule_breaks").
		Where(squirrel.Eq{"schedule_entry_id": scheduleEntryID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.Break, 0)
	for rows.Next() {
		var b domain.Break
		if err := rows.Scan(&b.ID, &b.ScheduleEntryID, &b.StartTime, &b.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetBreaks - scan break: %v", ErrScanRow, err)
		}
		breaks = append(breaks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - rows iteration: %v", ErrExecQuery, err)
	}

	return breaks, nil
}
