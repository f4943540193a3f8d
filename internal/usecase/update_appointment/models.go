package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на изменение записи
// Все изменяемые поля опциональны - применяются только переданные значения
type Request struct {
	AppointmentID int64 // ID записи
	CustomerID    int64 // ID клиента (владелец записи)

	StaffID     *int64            `json:"staffId,omitempty"`     // Новый сотрудник
	ServiceID   *int64            `json:"serviceId,omitempty"`   // Новая услуга
	Date        *time.Time        `json:"date,omitempty"`        // Новая дата
	StartTime   *types.TimeString `json:"startTime,omitempty"`   // Новое время начала
	PersonCount *int              `json:"personCount,omitempty"` // Новое число человек
	Notes       *string           `json:"notes,omitempty"`       // Новые заметки
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID              int64   // ID записи
	CustomerID      int64   // ID клиента
	StaffID         *int64  // ID сотрудника
	ServiceID       int64   // ID услуги
	Date            string  // Дата записи, "2026-09-15"
	StartTime       string  // Время начала, "10:00"
	EndTime         string  // Время окончания, "11:00"
	DurationMinutes int     // Длительность в минутах
	PersonCount     int     // Число человек
	Price           float64 // Итоговая цена
	Status          string  // Статус записи

	ServiceName string  // Название услуги
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
