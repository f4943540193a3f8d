package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	DeleteIncompleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SettingsRepository интерфейс репозитория настроек планирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingSettings, error)
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateDate(ctx context.Context, date string)
}

// Notifier интерфейс публикации событий отмены
type Notifier interface {
	PublishAppointmentCancelled(ctx context.Context, event notifier.AppointmentEvent)
}

// TimeProvider интерфейс получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
