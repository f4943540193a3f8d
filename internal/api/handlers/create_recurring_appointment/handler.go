package create_recurring_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createRecurring "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_recurring_appointment"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgRecurringDisabled     = "повторяющиеся записи отключены"
	msgServiceNotFound       = "услуга не найдена"
	msgInvalidRule           = "некорректное правило повторения"
	msgAllOccurrencesSkipped = "ни одно вхождение серии не удалось создать"
	msgInvalidDate           = "дата первой записи не может быть в прошлом"
	msgInvalidInput          = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateRecurringAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRecurringAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurring.ErrRecurringDisabled):
			h.logger.Warn("POST /appointments/recurring - Recurring bookings disabled: customer_id=%d", req.CustomerID)
			handlers.RespondBadRequest(w, msgRecurringDisabled)

		case errors.Is(err, createRecurring.ErrServiceNotFound):
			h.logger.Warn("POST /appointments/recurring - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createRecurring.ErrInvalidRule):
			h.logger.Warn("POST /appointments/recurring - Invalid recurrence rule: frequency=%s, interval=%d, error=%v",
				req.Recurrence.Frequency, req.Recurrence.Interval, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, createRecurring.ErrAllOccurrencesSkipped):
			h.logger.Info("POST /appointments/recurring - All occurrences skipped: service_id=%d, first_date=%s",
				req.ServiceID, req.FirstDate)
			handlers.RespondError(w, http.StatusConflict, msgAllOccurrencesSkipped)

		case errors.Is(err, createRecurring.ErrInvalidDate):
			h.logger.Warn("POST /appointments/recurring - Invalid first date: first_date=%s", req.FirstDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createRecurring.ErrInvalidInput):
			h.logger.Warn("POST /appointments/recurring - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/recurring - Failed to create series: customer_id=%d, service_id=%d, error=%v",
				req.CustomerID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/recurring - Series created successfully: series_id=%d, created=%d, skipped=%d",
		result.SeriesID, len(result.Created), len(result.SkippedDates))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
