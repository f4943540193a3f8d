package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/pricing"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/dataprovider"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	provider        DataProvider
	checker         AvailabilityChecker
	slotCache       SlotCache
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	provider DataProvider,
	checker AvailabilityChecker,
	slotCache SlotCache,
	notif Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		provider:        provider,
		checker:         checker,
		slotCache:       slotCache,
		notifier:        notif,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции:
// конкурентное бронирование того же окна завершится ошибкой сериализации,
// которая отдаётся клиенту как занятость слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, staff=%d, service=%d, date=%s, time=%s, persons=%d",
		req.CustomerID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.PersonCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	personCount := req.PersonCount
	if personCount == 0 {
		personCount = 1
	}

	// 2. Настройки планирования
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	// 3. Проверка размера группы
	if err := validateGroupSize(personCount, settings); err != nil {
		uc.logger.Warn("CreateAppointment: group size check failed: %v", err)
		return nil, err
	}

	// 4. Проверка минимального срока бронирования в бизнес-таймзоне
	now := uc.timeProvider.Now().In(settings.Location())
	if err := validateLeadTime(req.Date, req.StartTime, now, settings.MinLeadMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: lead time check failed: %v", err)
		return nil, err
	}

	// 5. Получаем услугу
	service, err := uc.provider.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, dataprovider.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 6. Определяем кандидатов: конкретный сотрудник или все подходящие по возрастанию id
	candidates, err := uc.resolveCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	// 7. Переопределения цены/длительности по кандидатам
	overrides := make(map[int64]*domain.StaffOverride, len(candidates))
	for _, staffID := range candidates {
		override, err := uc.provider.GetStaffOverride(ctx, staffID, req.ServiceID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get staff override: %v", err)
			return nil, fmt.Errorf("%w: failed to get staff override: %v", ErrInternal, err)
		}
		overrides[staffID] = override
	}

	var result *domain.Appointment
	var lastReason string

	// 8. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, staffID := range candidates {
			duration := service.DurationMinutes
			basePrice := service.Price

			if override := overrides[staffID]; override != nil {
				if override.DurationMinutes != nil {
					duration = *override.DurationMinutes
				}
				if override.Price != nil {
					basePrice = *override.Price
				}
			}

			start, err := calendar.Combine(req.Date, req.StartTime)
			if err != nil {
				return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
			}
			end := calendar.AddMinutes(start, duration)

			verdict, err := uc.checker.Check(txCtx, staffID, start, end, settings.BufferMinutes, 0)
			if err != nil {
				uc.logger.Error("CreateAppointment: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
			if !verdict.Available {
				lastReason = verdict.Reason
				continue
			}

			appt := &domain.Appointment{
				CustomerID:      req.CustomerID,
				StaffID:         ptr.Ptr(staffID),
				ServiceID:       req.ServiceID,
				StartAt:         start,
				EndAt:           end,
				DurationMinutes: duration,
				PersonCount:     personCount,
				Price:           pricing.Price(basePrice, personCount, settings.GroupPricing),
				Status:          domain.StatusPending,
				ServiceName:     service.Name,
				Notes:           req.Notes,
			}

			created, err := uc.appointmentRepo.Create(txCtx, appt)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			result = created
			return nil
		}

		// Ни один кандидат не свободен
		if req.StaffID > 0 {
			uc.logger.Warn("CreateAppointment: staff=%d not available: %s", req.StaffID, lastReason)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, lastReason)
		}
		uc.logger.Warn("CreateAppointment: no staff available for service=%d at %s %s",
			req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)
		return ErrNoStaffAvailable
	})

	if err != nil {
		// Проигрыш конкурентной гонки за слот выглядит для клиента как занятость
		if appointmentRepo.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization failure, slot taken concurrently")
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 9. Инвалидируем кэш слотов на дату и публикуем событие
	uc.slotCache.InvalidateDate(ctx, result.StartAt.Format(domain.DateFormat))

	uc.notifier.PublishAppointmentCreated(ctx, notifier.AppointmentEvent{
		AppointmentID: result.ID,
		CustomerID:    result.CustomerID,
		StaffID:       result.StaffID,
		ServiceID:     result.ServiceID,
		ServiceName:   result.ServiceName,
		StartAt:       result.StartAt.Format(domain.DateTimeFormat),
		EndAt:         result.EndAt.Format(domain.DateTimeFormat),
		PersonCount:   result.PersonCount,
		Price:         result.Price,
		Status:        string(result.Status),
		OccurredAt:    uc.timeProvider.Now().UTC(),
	})

	return toResponse(result), nil
}

// resolveCandidates возвращает кандидатов в порядке возрастания id
// Для конкретного сотрудника проверяется, что он оказывает услугу
func (uc *UseCase) resolveCandidates(ctx context.Context, req *Request) ([]int64, error) {
	eligible, err := uc.provider.GetEligibleStaff(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, dataprovider.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get eligible staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get eligible staff: %v", ErrInternal, err)
	}

	if req.StaffID > 0 {
		for _, id := range eligible {
			if id == req.StaffID {
				return []int64{req.StaffID}, nil
			}
		}
		uc.logger.Warn("CreateAppointment: staff=%d does not provide service=%d", req.StaffID, req.ServiceID)
		return nil, ErrStaffNotEligible
	}

	sorted := make([]int64, len(eligible))
	copy(sorted, eligible)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return sorted, nil
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		StaffID:         a.StaffID,
		ServiceID:       a.ServiceID,
		Date:            a.StartAt.Format(domain.DateFormat),
		StartTime:       a.StartAt.Format(domain.TimeFormat),
		EndTime:         a.EndAt.Format(domain.TimeFormat),
		DurationMinutes: a.DurationMinutes,
		PersonCount:     a.PersonCount,
		Price:           a.Price,
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
