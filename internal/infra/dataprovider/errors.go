package dataprovider

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("dataprovider: service not found")

	// ErrScheduleLookup возвращается при ошибке чтения расписания
	ErrScheduleLookup = errors.New("dataprovider: schedule lookup failed")

	// ErrHolidayLookup возвращается при ошибке чтения выходных
	ErrHolidayLookup = errors.New("dataprovider: holiday lookup failed")

	// ErrAppointmentLookup возвращается при ошибке проверки пересечений
	ErrAppointmentLookup = errors.New("dataprovider: appointment lookup failed")

	// ErrCatalogLookup возвращается при ошибке обращения к CatalogService
	ErrCatalogLookup = errors.New("dataprovider: catalog lookup failed")
)
