package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SlotGenerator интерфейс генератора слотов
type SlotGenerator interface {
	Generate(ctx context.Context, serviceID int64, date time.Time, staffFilter int64, settings *domain.SchedulingSettings, now time.Time) ([]types.TimeString, error)
}

// SettingsRepository интерфейс репозитория настроек планирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingSettings, error)
}

// SlotCache интерфейс кэша слотов
type SlotCache interface {
	Get(ctx context.Context, serviceID int64, date string, staffID int64) ([]types.TimeString, bool)
	Set(ctx context.Context, serviceID int64, date string, staffID int64, slots []types.TimeString)
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
