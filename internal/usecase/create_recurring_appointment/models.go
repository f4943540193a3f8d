package create_recurring_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание серии записей
type Request struct {
	CustomerID  int64            // ID клиента
	StaffID     int64            // ID сотрудника; 0 = любой сотрудник
	ServiceID   int64            // ID услуги
	FirstDate   time.Time        // Дата первого вхождения (без времени)
	StartTime   types.TimeString // Время начала каждого вхождения
	PersonCount int              // Число человек; 0 трактуется как 1
	Notes       *string          // Дополнительные заметки (опционально)

	Frequency string     // daily | weekly | monthly | yearly
	Interval  int        // Шаг частоты, >= 1
	EndDate   *time.Time // Последняя допустимая дата (включительно)
	Count     *int       // Число вхождений
}

// CreatedOccurrence одно созданное вхождение серии
type CreatedOccurrence struct {
	AppointmentID int64   `json:"appointmentId"`
	StaffID       int64   `json:"staffId"`
	Date          string  `json:"date"`      // "2026-09-15"
	StartTime     string  `json:"startTime"` // "10:00"
	EndTime       string  `json:"endTime"`   // "11:00"
	Price         float64 `json:"price"`
}

// Response модель ответа с созданной серией
type Response struct {
	SeriesID     int64               `json:"seriesId"`
	CustomerID   int64               `json:"customerId"`
	ServiceID    int64               `json:"serviceId"`
	Created      []CreatedOccurrence `json:"created"`
	SkippedDates []string            `json:"skippedDates"` // даты, пропущенные из-за недоступности
}
