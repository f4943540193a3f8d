package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID  int64            // ID клиента
	StaffID     int64            // ID сотрудника; 0 = любой сотрудник
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	PersonCount int              // Число человек; 0 трактуется как 1
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64   // ID созданной записи
	CustomerID      int64   // ID клиента
	StaffID         *int64  // ID назначенного сотрудника
	ServiceID       int64   // ID услуги
	Date            string  // Дата записи, "2026-09-15"
	StartTime       string  // Время начала, "10:00"
	EndTime         string  // Время окончания, "11:00"
	DurationMinutes int     // Длительность в минутах
	PersonCount     int     // Число человек
	Price           float64 // Итоговая цена
	Status          string  // Статус записи

	// Денормализованные данные
	ServiceName string  // Название услуги
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
