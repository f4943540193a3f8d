package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgServiceNotFound      = "услуга не найдена"
	msgStaffNotEligible     = "сотрудник не оказывает данную услугу"
	msgSlotNotAvailable     = "выбранное время недоступно"
	msgNoStaffAvailable     = "нет свободных сотрудников на выбранное время"
	msgInvalidDate          = "дата записи не может быть в прошлом"
	msgTooLateToBook        = "слишком поздно для записи на выбранное время"
	msgGroupBookingDisabled = "групповые записи отключены"
	msgTooManyPersons       = "превышено максимальное число человек в группе"
	msgInvalidInput         = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotEligible):
			h.logger.Warn("POST /appointments - Staff not eligible: staff_id=%d, service_id=%d",
				req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Info("POST /appointments - Slot not available: service_id=%d, date=%s, start_time=%s",
				req.ServiceID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrNoStaffAvailable):
			h.logger.Info("POST /appointments - No staff available: service_id=%d, date=%s, start_time=%s",
				req.ServiceID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgNoStaffAvailable)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: date=%s, start_time=%s",
				req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrGroupBookingDisabled):
			h.logger.Warn("POST /appointments - Group booking disabled: person_count=%d", req.PersonCount)
			handlers.RespondBadRequest(w, msgGroupBookingDisabled)

		case errors.Is(err, createAppointment.ErrTooManyPersons):
			h.logger.Warn("POST /appointments - Too many persons: person_count=%d", req.PersonCount)
			handlers.RespondBadRequest(w, msgTooManyPersons)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, service_id=%d, error=%v",
				req.CustomerID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, customer_id=%d, status=%s",
		result.ID, result.CustomerID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
