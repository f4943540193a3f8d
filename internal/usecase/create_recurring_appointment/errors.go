package create_recurring_appointment

import "errors"

var (
	// ErrRecurringDisabled возвращается, когда повторяющиеся бронирования выключены
	ErrRecurringDisabled = errors.New("create_recurring_appointment: recurring bookings are disabled")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_recurring_appointment: service not found")

	// ErrInvalidRule возвращается при некорректном правиле повторения
	ErrInvalidRule = errors.New("create_recurring_appointment: invalid recurrence rule")

	// ErrAllOccurrencesSkipped возвращается, когда ни одно вхождение серии не удалось создать
	ErrAllOccurrencesSkipped = errors.New("create_recurring_appointment: no occurrence could be scheduled")

	// ErrInvalidDate возвращается при дате начала в прошлом
	ErrInvalidDate = errors.New("create_recurring_appointment: invalid start date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_appointment: internal error")
)
