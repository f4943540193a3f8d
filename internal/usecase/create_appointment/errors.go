package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotEligible возвращается, когда сотрудник не оказывает услугу
	ErrStaffNotEligible = errors.New("create_appointment: staff does not provide this service")

	// ErrSlotNotAvailable возвращается, когда запрошенное окно недоступно
	ErrSlotNotAvailable = errors.New("create_appointment: requested time is not available")

	// ErrNoStaffAvailable возвращается, когда ни один сотрудник не свободен в запрошенное окно
	ErrNoStaffAvailable = errors.New("create_appointment: no staff member is available")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrTooLateToBook возвращается при нарушении минимального срока бронирования
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrGroupBookingDisabled возвращается, когда групповые бронирования выключены
	ErrGroupBookingDisabled = errors.New("create_appointment: group bookings are disabled")

	// ErrTooManyPersons возвращается при превышении максимального размера группы
	ErrTooManyPersons = errors.New("create_appointment: person count exceeds the maximum")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
