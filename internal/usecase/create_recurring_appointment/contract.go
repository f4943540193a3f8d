package create_recurring_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/recurrence"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// SeriesRepository интерфейс репозитория серий
type SeriesRepository interface {
	Create(ctx context.Context, s *domain.Series) (*domain.Series, error)
}

// SettingsRepository интерфейс репозитория настроек планирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingSettings, error)
}

// DataProvider интерфейс доступа к данным услуг
type DataProvider interface {
	GetService(ctx context.Context, serviceID int64) (domain.ServiceInfo, error)
}

// RecurrenceExpander интерфейс развёртки правила повторения
type RecurrenceExpander interface {
	Expand(ctx context.Context, req recurrence.Request, settings *domain.SchedulingSettings) (*recurrence.Expansion, error)
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateDate(ctx context.Context, date string)
}

// Notifier интерфейс публикации событий
type Notifier interface {
	PublishSeriesCreated(ctx context.Context, event notifier.SeriesEvent)
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
