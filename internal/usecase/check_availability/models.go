package check_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на проверку доступности
type Request struct {
	StaffID   int64            // ID сотрудника
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
}

// Response модель ответа с вердиктом доступности
type Response struct {
	Available bool   // Доступно ли окно
	Reason    string // Причина отказа; пустая строка при Available = true
	StartAt   string // Начало проверенного окна, "2026-09-15 10:00:00"
	EndAt     string // Конец проверенного окна
}
