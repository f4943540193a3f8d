package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// SettingsRepository интерфейс репозитория настроек планирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingSettings, error)
}

// DataProvider интерфейс доступа к данным услуг и сотрудников
type DataProvider interface {
	GetService(ctx context.Context, serviceID int64) (domain.ServiceInfo, error)
	GetEligibleStaff(ctx context.Context, serviceID int64) ([]int64, error)
	GetStaffOverride(ctx context.Context, staffID, serviceID int64) (*domain.StaffOverride, error)
}

// AvailabilityChecker интерфейс проверки доступности
type AvailabilityChecker interface {
	Check(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (availability.Verdict, error)
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateDate(ctx context.Context, date string)
}

// Notifier интерфейс публикации событий
type Notifier interface {
	PublishAppointmentCreated(ctx context.Context, event notifier.AppointmentEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
