package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/availability"
)

// AvailabilityChecker интерфейс проверки доступности
type AvailabilityChecker interface {
	Check(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (availability.Verdict, error)
}

// ServiceProvider интерфейс получения данных услуги и переопределений
type ServiceProvider interface {
	GetService(ctx context.Context, serviceID int64) (domain.ServiceInfo, error)
	GetStaffOverride(ctx context.Context, staffID, serviceID int64) (*domain.StaffOverride, error)
}

// SettingsRepository интерфейс репозитория настроек планирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
