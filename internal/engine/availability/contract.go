package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Provider интерфейс доступа к данным расписания
// Движок не ходит в хранилище напрямую: все данные поставляет инжектируемый коллаборатор
type Provider interface {
	// GetScheduleEntry возвращает рабочее окно сотрудника на день недели (0 = воскресенье)
	// Возвращает nil, nil если сотрудник в этот день не работает
	GetScheduleEntry(ctx context.Context, staffID int64, dayOfWeek int) (*domain.ScheduleEntry, error)

	// GetBreaks возвращает перерывы рабочего окна
	GetBreaks(ctx context.Context, scheduleEntryID int64) ([]domain.Break, error)

	// GetHolidays возвращает выходные, действующие для сотрудника на дату
	// (включая глобальные с staff_id = 0)
	GetHolidays(ctx context.Context, staffID int64, date time.Time) ([]domain.Holiday, error)

	// HasConflictingAppointment проверяет наличие блокирующей записи сотрудника,
	// пересекающейся с окном [start, end) с учётом буфера после существующих записей.
	// Запись с id = excludeID игнорируется (путь обновления)
	HasConflictingAppointment(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (bool, error)
}
