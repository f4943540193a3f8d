package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/availability"
)

// Provider интерфейс доступа к данным для генерации слотов
type Provider interface {
	// GetService возвращает данные услуги (длительность, базовая цена)
	GetService(ctx context.Context, serviceID int64) (domain.ServiceInfo, error)

	// GetEligibleStaff возвращает активных сотрудников, оказывающих услугу
	GetEligibleStaff(ctx context.Context, serviceID int64) ([]int64, error)

	// GetScheduleEntry возвращает рабочее окно сотрудника на день недели
	// nil, nil — сотрудник в этот день не работает
	GetScheduleEntry(ctx context.Context, staffID int64, dayOfWeek int) (*domain.ScheduleEntry, error)
}

// AvailabilityChecker интерфейс проверки доступности
type AvailabilityChecker interface {
	Check(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (availability.Verdict, error)
}
