package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ScheduleEntry рабочее окно сотрудника на один день недели
// Отсутствие записи на день означает, что сотрудник в этот день не работает.
// Если EndTime < StartTime, смена считается ночной (конец относится к следующему дню)
type ScheduleEntry struct {
	ID        int64
	StaffID   int64
	DayOfWeek int // 0 = воскресенье ... 6 = суббота
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOvernight returns true if the entry spans midnight (end before start)
func (e *ScheduleEntry) IsOvernight() bool {
	return e.EndTime.IsBefore(e.StartTime)
}

// Break перерыв внутри рабочего окна сотрудника
type Break struct {
	ID              int64
	ScheduleEntryID int64
	StartTime       types.TimeString
	EndTime         types.TimeString
}

// Holiday нерабочий период сотрудника (включительный диапазон дат)
// StaffID = 0 означает глобальный выходной для всех сотрудников
type Holiday struct {
	ID        int64
	StaffID   int64
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// AppliesTo проверяет, действует ли выходной для сотрудника
func (h *Holiday) AppliesTo(staffID int64) bool {
	return h.StaffID == 0 || h.StaffID == staffID
}

// Covers проверяет, попадает ли дата в диапазон выходного (границы включительно)
func (h *Holiday) Covers(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start := time.Date(h.StartDate.Year(), h.StartDate.Month(), h.StartDate.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(h.EndDate.Year(), h.EndDate.Month(), h.EndDate.Day(), 0, 0, 0, 0, date.Location())
	return !d.Before(start) && !d.After(end)
}
