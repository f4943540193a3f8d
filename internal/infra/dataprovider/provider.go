package dataprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// Provider собирает данные для движков доступности, слотов и серий
// из репозиториев и клиента CatalogService.
// Реализует availability.Provider, slots.Provider и recurrence.Provider
type Provider struct {
	scheduleRepo    ScheduleRepository
	holidayRepo     HolidayRepository
	appointmentRepo AppointmentRepository
	catalog         CatalogClient
}

// New создает новый экземпляр провайдера данных
func New(
	scheduleRepo ScheduleRepository,
	holidayRepo HolidayRepository,
	appointmentRepo AppointmentRepository,
	catalog CatalogClient,
) *Provider {
	return &Provider{
		scheduleRepo:    scheduleRepo,
		holidayRepo:     holidayRepo,
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
	}
}

// GetScheduleEntry возвращает рабочее окно сотрудника на день недели.
// Отсутствие строки расписания означает нерабочий день, а не ошибку
func (p *Provider) GetScheduleEntry(ctx context.Context, staffID int64, dayOfWeek int) (*domain.ScheduleEntry, error) {
	entry, err := p.scheduleRepo.GetByStaffAndDay(ctx, staffID, dayOfWeek)
	if errors.Is(err, schedule.ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: staff %d, day %d: %v", ErrScheduleLookup, staffID, dayOfWeek, err)
	}
	return entry, nil
}

// GetBreaks возвращает перерывы рабочего окна
func (p *Provider) GetBreaks(ctx context.Context, scheduleEntryID int64) ([]domain.Break, error) {
	breaks, err := p.scheduleRepo.GetBreaks(ctx, scheduleEntryID)
	if err != nil {
		return nil, fmt.Errorf("%w: entry %d: %v", ErrScheduleLookup, scheduleEntryID, err)
	}
	return breaks, nil
}

// GetHolidays возвращает выходные сотрудника на дату, включая глобальные
func (p *Provider) GetHolidays(ctx context.Context, staffID int64, date time.Time) ([]domain.Holiday, error) {
	holidays, err := p.holidayRepo.GetForStaffOnDate(ctx, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: staff %d: %v", ErrHolidayLookup, staffID, err)
	}
	return holidays, nil
}

// HasConflictingAppointment проверяет пересечение с блокирующими записями сотрудника
func (p *Provider) HasConflictingAppointment(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (bool, error) {
	has, err := p.appointmentRepo.HasConflicting(ctx, staffID, start, end, bufferMinutes, excludeID)
	if err != nil {
		return false, fmt.Errorf("%w: staff %d: %v", ErrAppointmentLookup, staffID, err)
	}
	return has, nil
}

// GetService возвращает данные активной услуги из CatalogService
func (p *Provider) GetService(ctx context.Context, serviceID int64) (domain.ServiceInfo, error) {
	svc, err := p.catalog.GetService(ctx, serviceID)
	if errors.Is(err, catalogservice.ErrServiceNotFound) {
		return domain.ServiceInfo{}, fmt.Errorf("%w: service %d", ErrServiceNotFound, serviceID)
	}
	if err != nil {
		return domain.ServiceInfo{}, fmt.Errorf("%w: service %d: %v", ErrCatalogLookup, serviceID, err)
	}
	if !svc.Active {
		return domain.ServiceInfo{}, fmt.Errorf("%w: service %d is inactive", ErrServiceNotFound, serviceID)
	}

	return domain.ServiceInfo{
		ID:              svc.ID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
	}, nil
}

// GetEligibleStaff возвращает идентификаторы активных сотрудников услуги
func (p *Provider) GetEligibleStaff(ctx context.Context, serviceID int64) ([]int64, error) {
	staff, err := p.catalog.GetEligibleStaff(ctx, serviceID)
	if errors.Is(err, catalogservice.ErrServiceNotFound) {
		return nil, fmt.Errorf("%w: service %d", ErrServiceNotFound, serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: service %d staff: %v", ErrCatalogLookup, serviceID, err)
	}

	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// GetStaffOverride возвращает переопределение услуги для сотрудника; nil, nil если его нет
func (p *Provider) GetStaffOverride(ctx context.Context, staffID, serviceID int64) (*domain.StaffOverride, error) {
	override, err := p.catalog.GetStaffOverride(ctx, staffID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: staff %d, service %d override: %v", ErrCatalogLookup, staffID, serviceID, err)
	}
	if override == nil {
		return nil, nil
	}

	return &domain.StaffOverride{
		Price:           override.Price,
		DurationMinutes: override.DurationMinutes,
	}, nil
}
