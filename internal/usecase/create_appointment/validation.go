package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StaffID < 0 {
		return fmt.Errorf("%w: staffID must be non-negative", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.PersonCount < 0 {
		return fmt.Errorf("%w: personCount must be non-negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
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
