package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound             = "запись не найдена"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgCannotUpdate         = "запись нельзя изменить в текущем статусе"
	msgServiceNotFound      = "услуга не найдена"
	msgStaffNotEligible     = "сотрудник не оказывает данную услугу"
	msgSlotNotAvailable     = "выбранное время недоступно"
	msgGroupBookingDisabled = "групповые записи отключены"
	msgTooManyPersons       = "превышено максимальное число человек в группе"
	msgInvalidDate          = "дата записи не может быть в прошлом"
	msgTooLateToBook        = "слишком поздно для переноса на выбранное время"
	msgInvalidInput         = "некорректные параметры запроса"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateAppointment.ErrCannotUpdate):
			h.logger.Warn("PATCH /appointments/{id} - Cannot update: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotUpdate)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrStaffNotEligible):
			h.logger.Warn("PATCH /appointments/{id} - Staff not eligible: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, updateAppointment.ErrSlotNotAvailable):
			h.logger.Info("PATCH /appointments/{id} - Slot not available: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, updateAppointment.ErrGroupBookingDisabled):
			h.logger.Warn("PATCH /appointments/{id} - Group booking disabled: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgGroupBookingDisabled)

		case errors.Is(err, updateAppointment.ErrTooManyPersons):
			h.logger.Warn("PATCH /appointments/{id} - Too many persons: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgTooManyPersons)

		case errors.Is(err, updateAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id} - Invalid date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateAppointment.ErrTooLateToBook):
			h.logger.Warn("PATCH /appointments/{id} - Too late to reschedule: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
