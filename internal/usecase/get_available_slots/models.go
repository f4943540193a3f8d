package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (без времени)
	StaffID   int64     // ID сотрудника; 0 = любой сотрудник
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID int64    `json:"serviceId"`
	Date      string   `json:"date"`  // "2026-09-15"
	Slots     []string `json:"slots"` // ["10:00", "10:30", ...]
}
