package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/dataprovider"
)

// UseCase use case проверки доступности окна сотрудника
type UseCase struct {
	checker      AvailabilityChecker
	provider     ServiceProvider
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	checker AvailabilityChecker,
	provider ServiceProvider,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		checker:      checker,
		provider:     provider,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute выполняет проверку доступности
// Окно вычисляется из длительности услуги с учётом переопределения сотрудника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: staff=%d, service=%d, date=%s, time=%s",
		req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.provider.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, dataprovider.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Длительность с учётом переопределения сотрудника
	duration := service.DurationMinutes
	override, err := uc.provider.GetStaffOverride(ctx, req.StaffID, req.ServiceID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get staff override: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff override: %v", ErrInternal, err)
	}
	if override != nil && override.DurationMinutes != nil {
		duration = *override.DurationMinutes
	}

	// 4. Настройки планирования (буфер)
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	// 5. Собираем окно [start, end) и проверяем
	start, err := calendar.Combine(req.Date, req.StartTime)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid start time: %v", err)
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	end := calendar.AddMinutes(start, duration)

	verdict, err := uc.checker.Check(ctx, req.StaffID, start, end, settings.BufferMinutes, 0)
	if err != nil {
		uc.logger.Error("CheckAvailability: check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	if verdict.Available {
		uc.logger.Info("CheckAvailability: staff=%d available at %s", req.StaffID, start.Format(domain.DateTimeFormat))
	} else {
		uc.logger.Info("CheckAvailability: staff=%d not available at %s: %s",
			req.StaffID, start.Format(domain.DateTimeFormat), verdict.Reason)
	}

	return &Response{
		Available: verdict.Available,
		Reason:    verdict.Reason,
		StartAt:   start.Format(domain.DateTimeFormat),
		EndAt:     end.Format(domain.DateTimeFormat),
	}, nil
}
