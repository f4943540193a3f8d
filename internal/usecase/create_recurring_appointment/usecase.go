package create_recurring_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/recurrence"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/dataprovider"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case создания серии повторяющихся записей
type UseCase struct {
	appointmentRepo AppointmentRepository
	seriesRepo      SeriesRepository
	settingsRepo    SettingsRepository
	provider        DataProvider
	expander        RecurrenceExpander
	slotCache       SlotCache
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	seriesRepo SeriesRepository,
	settingsRepo SettingsRepository,
	provider DataProvider,
	expander RecurrenceExpander,
	slotCache SlotCache,
	notif Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		seriesRepo:      seriesRepo,
		settingsRepo:    settingsRepo,
		provider:        provider,
		expander:        expander,
		slotCache:       slotCache,
		notifier:        notif,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания серии
// Развёртка терпима к частичным отказам: конфликтные даты пропускаются
// и возвращаются клиенту; серия и вхождения создаются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringAppointment: customer=%d, staff=%d, service=%d, first=%s, freq=%s, interval=%d",
		req.CustomerID, req.StaffID, req.ServiceID, req.FirstDate.Format(domain.DateFormat), req.Frequency, req.Interval)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRecurringAppointment: validation failed: %v", err)
		return nil, err
	}

	personCount := req.PersonCount
	if personCount == 0 {
		personCount = 1
	}

	// 2. Настройки: повторяющиеся бронирования должны быть включены
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateRecurringAppointment: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	if !settings.RecurringEnabled {
		uc.logger.Warn("CreateRecurringAppointment: recurring bookings are disabled")
		return nil, ErrRecurringDisabled
	}

	// 3. Дата первого вхождения не в прошлом
	now := uc.timeProvider.Now().In(settings.Location())
	firstOnly := time.Date(req.FirstDate.Year(), req.FirstDate.Month(), req.FirstDate.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if firstOnly.Before(nowOnly) {
		uc.logger.Warn("CreateRecurringAppointment: first date %s is in the past", req.FirstDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Услуга нужна для денормализации имени в каждое вхождение
	service, err := uc.provider.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, dataprovider.ErrServiceNotFound) {
			uc.logger.Warn("CreateRecurringAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateRecurringAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var (
		createdSeries *domain.Series
		expansion     *recurrence.Expansion
		created       []CreatedOccurrence
	)

	// 5. Развёртка и вставки в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		expansion, err = uc.expander.Expand(txCtx, recurrence.Request{
			Rule: recurrence.Rule{
				Frequency: domain.Frequency(req.Frequency),
				Interval:  req.Interval,
				EndDate:   req.EndDate,
				Count:     req.Count,
			},
			FirstDate:   req.FirstDate,
			StartTime:   req.StartTime,
			ServiceID:   req.ServiceID,
			StaffID:     req.StaffID,
			PersonCount: personCount,
		}, settings)
		if err != nil {
			switch {
			case errors.Is(err, recurrence.ErrAllOccurrencesSkipped):
				uc.logger.Warn("CreateRecurringAppointment: all occurrences skipped")
				return ErrAllOccurrencesSkipped
			case errors.Is(err, recurrence.ErrInvalidFrequency),
				errors.Is(err, recurrence.ErrInvalidInterval),
				errors.Is(err, recurrence.ErrInvalidCount),
				errors.Is(err, recurrence.ErrMissingEndCondition),
				errors.Is(err, recurrence.ErrTooManyOccurrences):
				uc.logger.Warn("CreateRecurringAppointment: invalid rule: %v", err)
				return fmt.Errorf("%w: %v", ErrInvalidRule, err)
			default:
				uc.logger.Error("CreateRecurringAppointment: expansion failed: %v", err)
				return fmt.Errorf("%w: expansion failed: %v", ErrInternal, err)
			}
		}

		// 5.1. Создаём серию
		createdSeries, err = uc.seriesRepo.Create(txCtx, &domain.Series{
			CustomerID:      req.CustomerID,
			ServiceID:       req.ServiceID,
			Frequency:       domain.Frequency(req.Frequency),
			Interval:        req.Interval,
			StartDate:       req.FirstDate,
			EndDate:         req.EndDate,
			OccurrenceCount: req.Count,
		})
		if err != nil {
			uc.logger.Error("CreateRecurringAppointment: failed to create series: %v", err)
			return fmt.Errorf("%w: failed to create series: %v", ErrInternal, err)
		}

		// 5.2. Создаём запись на каждое вхождение
		created = make([]CreatedOccurrence, 0, len(expansion.Created))
		for _, occ := range expansion.Created {
			appt, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
				SeriesID:        ptr.Ptr(createdSeries.ID),
				CustomerID:      req.CustomerID,
				StaffID:         ptr.Ptr(occ.StaffID),
				ServiceID:       req.ServiceID,
				StartAt:         occ.Start,
				EndAt:           occ.End,
				DurationMinutes: occ.DurationMinutes,
				PersonCount:     personCount,
				Price:           occ.Price,
				Status:          domain.StatusPending,
				ServiceName:     service.Name,
				Notes:           req.Notes,
			})
			if err != nil {
				uc.logger.Error("CreateRecurringAppointment: failed to create occurrence: %v", err)
				return fmt.Errorf("%w: failed to create occurrence: %v", ErrInternal, err)
			}

			created = append(created, CreatedOccurrence{
				AppointmentID: appt.ID,
				StaffID:       occ.StaffID,
				Date:          occ.Date.Format(domain.DateFormat),
				StartTime:     occ.Start.Format(domain.TimeFormat),
				EndTime:       occ.End.Format(domain.TimeFormat),
				Price:         occ.Price,
			})
		}

		return nil
	})

	if err != nil {
		// Конкурентная серия успела занять одну из дат
		if appointmentRepo.IsSerializationFailure(err) {
			uc.logger.Warn("CreateRecurringAppointment: serialization failure, retry required")
			return nil, ErrAllOccurrencesSkipped
		}
		return nil, err
	}

	skipped := make([]string, len(expansion.Skipped))
	for i, d := range expansion.Skipped {
		skipped[i] = d.Format(domain.DateFormat)
	}

	uc.logger.Info("CreateRecurringAppointment: created series id=%d with %d occurrences (%d skipped)",
		createdSeries.ID, len(created), len(skipped))

	// 6. Инвалидируем кэш слотов на каждую затронутую дату и публикуем событие
	for _, occ := range created {
		uc.slotCache.InvalidateDate(ctx, occ.Date)
	}

	uc.notifier.PublishSeriesCreated(ctx, notifier.SeriesEvent{
		SeriesID:     createdSeries.ID,
		CustomerID:   createdSeries.CustomerID,
		ServiceID:    createdSeries.ServiceID,
		CreatedCount: len(created),
		SkippedDates: skipped,
		OccurredAt:   uc.timeProvider.Now().UTC(),
	})

	return &Response{
		SeriesID:     createdSeries.ID,
		CustomerID:   createdSeries.CustomerID,
		ServiceID:    createdSeries.ServiceID,
		Created:      created,
		SkippedDates: skipped,
	}, nil
}
