package series

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сериями повторяющихся бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория серий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую серию
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, s *domain.Series) (*domain.Series, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("series").
		Columns(
			"customer_id",
			"service_id",
			"frequency",
			"recurrence_interval",
			"start_date",
			"end_date",
			"occurrence_count",
		).
		Values(
			s.CustomerID,
			s.ServiceID,
			s.Frequency,
			s.Interval,
			s.StartDate,
			s.EndDate,
			s.OccurrenceCount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает серию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Series, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"service_id",
		"frequency",
		"recurrence_interval",
		"start_date",
		"end_date",
		"occurrence_count",
		"created_at",
		"updated_at",
	).
		From("series").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Series
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.CustomerID,
		&s.ServiceID,
		&s.Frequency,
		&s.Interval,
		&s.StartDate,
		&s.EndDate,
		&s.OccurrenceCount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSeriesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan series: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
