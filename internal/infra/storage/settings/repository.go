package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий настроек планирования
// Настройки хранятся одной строкой и читаются на каждый вызов движка
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var settingsColumns = []string{
	"id",
	"business_timezone",
	"slot_length_minutes",
	"min_lead_minutes",
	"cancellation_lead_minutes",
	"buffer_minutes",
	"group_booking_enabled",
	"max_persons",
	"group_pricing_type",
	"group_pricing_amount",
	"recurring_enabled",
	"max_recurrences",
	"incomplete_timeout_minutes",
	"created_at",
	"updated_at",
}

// Get получает текущие настройки планирования
func (r *Repository) Get(ctx context.Context) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("scheduling_settings").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.SchedulingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessTimezone,
		&s.SlotLengthMinutes,
		&s.MinLeadMinutes,
		&s.CancellationLeadMinutes,
		&s.BufferMinutes,
		&s.GroupBookingEnabled,
		&s.MaxPersons,
		&s.GroupPricing.Type,
		&s.GroupPricing.Amount,
		&s.RecurringEnabled,
		&s.MaxRecurrences,
		&s.IncompleteTimeoutMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Update обновляет настройки планирования
func (r *Repository) Update(ctx context.Context, s *domain.SchedulingSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("scheduling_settings").
		Set("business_timezone", s.BusinessTimezone).
		Set("slot_length_minutes", s.SlotLengthMinutes).
		Set("min_lead_minutes", s.MinLeadMinutes).
		Set("cancellation_lead_minutes", s.CancellationLeadMinutes).
		Set("buffer_minutes", s.BufferMinutes).
		Set("group_booking_enabled", s.GroupBookingEnabled).
		Set("max_persons", s.MaxPersons).
		Set("group_pricing_type", s.GroupPricing.Type).
		Set("group_pricing_amount", s.GroupPricing.Amount).
		Set("recurring_enabled", s.RecurringEnabled).
		Set("max_recurrences", s.MaxRecurrences).
		Set("incomplete_timeout_minutes", s.IncompleteTimeoutMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
