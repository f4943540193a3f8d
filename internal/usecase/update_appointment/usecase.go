package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/pricing"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/dataprovider"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case изменения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	provider        DataProvider
	checker         AvailabilityChecker
	slotCache       SlotCache
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
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		provider:        provider,
		checker:         checker,
		slotCache:       slotCache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи
// Доступность перепроверяется только при смене времени, сотрудника или услуги;
// собственная запись исключается из проверки пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d, customer=%d", req.AppointmentID, req.CustomerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Настройки планирования
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(settings.Location())

	var result *domain.Appointment
	var oldDate string

	// 3. Чтение, перепроверка и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: repository error: %v", err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		if appt.CustomerID != req.CustomerID {
			uc.logger.Warn("UpdateAppointment: access denied for customer=%d to appointment id=%d",
				req.CustomerID, req.AppointmentID)
			return ErrAccessDenied
		}

		if !appt.CanBeUpdated() {
			uc.logger.Warn("UpdateAppointment: appointment id=%d cannot be updated, status=%s",
				req.AppointmentID, appt.Status)
			return ErrCannotUpdate
		}

		oldDate = appt.StartAt.Format(domain.DateFormat)

		// 3.1. Собираем целевое состояние
		target := *appt
		rescheduled := false

		if req.ServiceID != nil && *req.ServiceID != appt.ServiceID {
			target.ServiceID = *req.ServiceID
			rescheduled = true
		}
		if req.StaffID != nil && (appt.StaffID == nil || *req.StaffID != *appt.StaffID) {
			target.StaffID = ptr.Ptr(*req.StaffID)
			rescheduled = true
		}

		date := calendar.DateOnly(appt.StartAt)
		startTime := types.NewTimeString(appt.StartAt)
		if req.Date != nil {
			date = calendar.DateOnly(*req.Date)
			rescheduled = true
		}
		if req.StartTime != nil {
			startTime = *req.StartTime
			rescheduled = true
		}

		personCount := appt.PersonCount
		if req.PersonCount != nil && *req.PersonCount != appt.PersonCount {
			personCount = *req.PersonCount
			if personCount == 0 {
				personCount = 1
			}
			if err := validateGroupSize(personCount, settings); err != nil {
				uc.logger.Warn("UpdateAppointment: group size check failed: %v", err)
				return err
			}
			target.PersonCount = personCount
		}

		if req.Notes != nil {
			target.Notes = req.Notes
		}

		// 3.2. Услуга и переопределение определяют длительность и базовую цену
		service, err := uc.provider.GetService(txCtx, target.ServiceID)
		if err != nil {
			if errors.Is(err, dataprovider.ErrServiceNotFound) {
				uc.logger.Warn("UpdateAppointment: service id=%d not found", target.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get service: %v", err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		if target.StaffID != nil {
			if err := uc.checkEligible(txCtx, *target.StaffID, target.ServiceID); err != nil {
				return err
			}
		}

		duration := service.DurationMinutes
		basePrice := service.Price
		if target.StaffID != nil {
			override, err := uc.provider.GetStaffOverride(txCtx, *target.StaffID, target.ServiceID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to get staff override: %v", err)
				return fmt.Errorf("%w: failed to get staff override: %v", ErrInternal, err)
			}
			if override != nil {
				if override.DurationMinutes != nil {
					duration = *override.DurationMinutes
				}
				if override.Price != nil {
					basePrice = *override.Price
				}
			}
		}

		start, err := calendar.Combine(date, startTime)
		if err != nil {
			return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
		}
		target.StartAt = start
		target.EndAt = calendar.AddMinutes(start, duration)
		target.DurationMinutes = duration
		target.ServiceName = service.Name
		target.Price = pricing.Price(basePrice, target.PersonCount, settings.GroupPricing)

		// 3.3. Перенос перепроверяет срок и доступность, исключая собственную запись
		if rescheduled {
			if err := validateLeadTime(date, startTime, now, settings.MinLeadMinutes); err != nil {
				uc.logger.Warn("UpdateAppointment: lead time check failed: %v", err)
				return err
			}

			if target.StaffID == nil {
				return fmt.Errorf("%w: staffID is required when rescheduling", ErrInvalidInput)
			}

			verdict, err := uc.checker.Check(txCtx, *target.StaffID, target.StartAt, target.EndAt,
				settings.BufferMinutes, appt.ID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
			if !verdict.Available {
				uc.logger.Warn("UpdateAppointment: new slot not available: %s", verdict.Reason)
				return fmt.Errorf("%w: %s", ErrSlotNotAvailable, verdict.Reason)
			}
		}

		if err := uc.appointmentRepo.Update(txCtx, &target); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment: %v", err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = &target
		return nil
	})

	if err != nil {
		if appointmentRepo.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateAppointment: serialization failure, slot taken concurrently")
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", result.ID)

	// 4. Инвалидируем кэш слотов на старую и новую даты
	uc.slotCache.InvalidateDate(ctx, oldDate)
	newDate := result.StartAt.Format(domain.DateFormat)
	if newDate != oldDate {
		uc.slotCache.InvalidateDate(ctx, newDate)
	}

	return toResponse(result), nil
}

// checkEligible проверяет, что сотрудник оказывает услугу
func (uc *UseCase) checkEligible(ctx context.Context, staffID, serviceID int64) error {
	eligible, err := uc.provider.GetEligibleStaff(ctx, serviceID)
	if err != nil {
		if errors.Is(err, dataprovider.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get eligible staff: %v", err)
		return fmt.Errorf("%w: failed to get eligible staff: %v", ErrInternal, err)
	}

	for _, id := range eligible {
		if id == staffID {
			return nil
		}
	}

	uc.logger.Warn("UpdateAppointment: staff=%d does not provide service=%d", staffID, serviceID)
	return ErrStaffNotEligible
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

// validateLeadTime проверяет дату и минимальный срок бронирования
func validateLeadTime(date time.Time, startTime types.TimeString, now time.Time, minLeadMinutes int) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	minutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0, now.Location())

	earliest := now.Add(time.Duration(minLeadMinutes) * time.Minute)
	if start.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minLeadMinutes)
	}

	return nil
}

// validateGroupSize проверяет размер группы против настроек
func validateGroupSize(personCount int, settings *domain.SchedulingSettings) error {
	if personCount <= 1 {
		return nil
	}

	if !settings.GroupBookingEnabled {
		return ErrGroupBookingDisabled
	}

	if personCount > settings.MaxPersons {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPersons, personCount, settings.MaxPersons)
	}

	return nil
}
