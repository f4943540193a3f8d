package settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек планирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingSettings, error)
	Update(ctx context.Context, settings *domain.SchedulingSettings) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
