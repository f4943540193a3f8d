package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("update_appointment: access denied")

	// ErrCannotUpdate возвращается, когда запись нельзя изменить по статусу
	ErrCannotUpdate = errors.New("update_appointment: appointment cannot be updated")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrStaffNotEligible возвращается, когда сотрудник не оказывает услугу
	ErrStaffNotEligible = errors.New("update_appointment: staff does not provide this service")

	// ErrSlotNotAvailable возвращается, когда новое окно недоступно
	ErrSlotNotAvailable = errors.New("update_appointment: requested time is not available")

	// ErrGroupBookingDisabled возвращается, когда групповые бронирования выключены
	ErrGroupBookingDisabled = errors.New("update_appointment: group bookings are disabled")

	// ErrTooManyPersons возвращается при превышении максимального размера группы
	ErrTooManyPersons = errors.New("update_appointment: person count exceeds the maximum")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("update_appointment: invalid appointment date")

	// ErrTooLateToBook возвращается при нарушении минимального срока бронирования
	ErrTooLateToBook = errors.New("update_appointment: too late to move to this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
