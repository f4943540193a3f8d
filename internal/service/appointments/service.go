package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	slotCache       SlotCache
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	slotCache SlotCache,
	notif Notifier,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		slotCache:       slotCache,
		notifier:        notif,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент может видеть только свою запись; customerID = 0 означает служебный доступ
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for customer=%d", id, customerID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if customerID != 0 && appt.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to appointment id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appts, err := s.appointmentRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: successfully fetched %d appointments for customer=%d", len(appts), req.CustomerID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetStaffAppointments получает записи сотрудника с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
//
// Примеры использования:
// - Все активные записи: GetStaffAppointments(ctx, &GetStaffAppointmentsRequest{StaffID: 12})
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetStaffAppointments(ctx context.Context, req *models.GetStaffAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetStaffAppointments: fetching appointments for staff=%d", req.StaffID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStaffAppointments: invalid filter for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStaffAppointments: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffAppointments: successfully fetched %d appointments for staff=%d", len(appts), req.StaffID)
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет запись клиента
// Отмена возможна только владельцем, только из статусов pending/confirmed
// и не позже, чем за cancellation_lead_minutes до начала
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by customer=%d", appointmentID, req.CustomerID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to appointment id=%d", req.CustomerID, appointmentID)
		return ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	// Проверяем срок отмены относительно начала записи в бизнес-таймзоне
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Cancel: failed to load settings: %v", err)
		return fmt.Errorf("%w: Cancel - failed to load settings: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().In(settings.Location())
	deadline := appt.StartAt.Add(-time.Duration(settings.CancellationLeadMinutes) * time.Minute)
	if now.After(deadline) {
		s.logger.Warn("Cancel: cancellation window passed for appointment id=%d (start=%s, lead=%d min)",
			appointmentID, appt.StartAt.Format(domain.DateTimeFormat), settings.CancellationLeadMinutes)
		return ErrCancellationTooLate
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Освободившийся слот снова доступен
	s.slotCache.InvalidateDate(ctx, appt.StartAt.Format(domain.DateFormat))

	s.notifier.PublishAppointmentCancelled(ctx, notifier.AppointmentEvent{
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,
		StaffID:       appt.StaffID,
		ServiceID:     appt.ServiceID,
		ServiceName:   appt.ServiceName,
		StartAt:       appt.StartAt.Format(domain.DateTimeFormat),
		EndAt:         appt.EndAt.Format(domain.DateTimeFormat),
		PersonCount:   appt.PersonCount,
		Price:         appt.Price,
		Status:        string(domain.StatusCancelled),
		Reason:        req.CancellationReason,
		OccurredAt:    s.timeProvider.Now().UTC(),
	})

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// UpdateStatus обновляет статус записи
// Служебная операция для персонала: подтверждение, завершение, отклонение
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", appointmentID, req.Status)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Переход в неблокирующий статус освобождает слот, и наоборот
	wasBlocking := appt.IsBlocking()
	appt.Status = newStatus
	if wasBlocking != appt.IsBlocking() {
		s.slotCache.InvalidateDate(ctx, appt.StartAt.Format(domain.DateFormat))
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// PurgeIncomplete удаляет записи в статусе incomplete старше таймаута
// Вызывается фоновой задачей по расписанию
func (s *Service) PurgeIncomplete(ctx context.Context) (int64, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("PurgeIncomplete: failed to load settings: %v", err)
		return 0, fmt.Errorf("%w: PurgeIncomplete - failed to load settings: %v", ErrInternal, err)
	}

	cutoff := s.timeProvider.Now().In(settings.Location()).
		Add(-time.Duration(settings.IncompleteTimeoutMinutes) * time.Minute)

	deleted, err := s.appointmentRepo.DeleteIncompleteBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("PurgeIncomplete: repository error: %v", err)
		return 0, fmt.Errorf("%w: PurgeIncomplete - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("PurgeIncomplete: removed %d stale incomplete appointments", deleted)
	}
	return deleted, nil
}
