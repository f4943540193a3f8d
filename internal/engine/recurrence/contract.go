package recurrence

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/availability"
)

// Provider интерфейс доступа к данным для развёртки серий
type Provider interface {
	// GetService возвращает данные услуги (длительность, базовая цена за человека)
	GetService(ctx context.Context, serviceID int64) (domain.ServiceInfo, error)

	// GetEligibleStaff возвращает активных сотрудников, оказывающих услугу
	GetEligibleStaff(ctx context.Context, serviceID int64) ([]int64, error)

	// GetStaffOverride возвращает переопределение цены/длительности услуги
	// для сотрудника; nil, nil — переопределения нет
	GetStaffOverride(ctx context.Context, staffID, serviceID int64) (*domain.StaffOverride, error)
}

// AvailabilityChecker интерфейс проверки доступности
type AvailabilityChecker interface {
	Check(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (availability.Verdict, error)
}
