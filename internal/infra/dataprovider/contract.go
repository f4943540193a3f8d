package dataprovider

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByStaffAndDay(ctx context.Context, staffID int64, dayOfWeek int) (*domain.ScheduleEntry, error)
	GetBreaks(ctx context.Context, scheduleEntryID int64) ([]domain.Break, error)
}

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	GetForStaffOnDate(ctx context.Context, staffID int64, date time.Time) ([]domain.Holiday, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	HasConflicting(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (bool, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetEligibleStaff(ctx context.Context, serviceID int64) ([]catalogservice.Staff, error)
	GetStaffOverride(ctx context.Context, staffID, serviceID int64) (*catalogservice.StaffOverride, error)
}
