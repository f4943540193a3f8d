// Package availability реализует проверку доступности сотрудника для окна [start, end).
// Конфликт доступности — не ошибка, а обычный результат Verdict{Available: false, Reason}:
// вызывающая сторона показывает причину пользователю, не разбирая её программно.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/engine/calendar"
)

// Причины отказа. Строки предназначены для показа пользователю
const (
	ReasonNotScheduled        = "staff is not scheduled to work on this day"
	ReasonOutsideWorkingHours = "requested time is outside of working hours"
	ReasonBreak               = "requested time falls on a break"
	ReasonHoliday             = "staff is not available due to a holiday"
	ReasonConflict            = "requested time conflicts with another appointment"
)

// Verdict результат проверки доступности
type Verdict struct {
	Available bool
	Reason    string // пустая строка, если Available = true
}

// Checker проверяет доступность сотрудника для кандидатного окна
type Checker struct {
	provider Provider
}

// NewChecker создает новый Checker
func NewChecker(provider Provider) *Checker {
	return &Checker{provider: provider}
}

// Check проверяет доступность сотрудника для окна [start, end).
// Проверки выполняются по порядку с остановкой на первом отказе:
// расписание, рабочие часы, перерывы, выходные, пересечения с записями (с буфером).
// excludeID исключает запись из проверки пересечений (используется при обновлении, 0 = не исключать)
func (c *Checker) Check(ctx context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (Verdict, error) {
	// 1. Рабочее окно на день недели начала
	entry, err := c.provider.GetScheduleEntry(ctx, staffID, calendar.DayOfWeek(start))
	if err != nil {
		return Verdict{}, fmt.Errorf("availability: get schedule entry: %w", err)
	}
	if entry == nil {
		return Verdict{Available: false, Reason: ReasonNotScheduled}, nil
	}

	// 2. Границы рабочего окна; ночная смена переносит конец на следующий день
	scheduleStart, err := calendar.Combine(start, entry.StartTime)
	if err != nil {
		return Verdict{}, fmt.Errorf("availability: invalid schedule start: %w", err)
	}
	scheduleEnd, err := calendar.Combine(start, entry.EndTime)
	if err != nil {
		return Verdict{}, fmt.Errorf("availability: invalid schedule end: %w", err)
	}
	if entry.IsOvernight() {
		scheduleEnd = scheduleEnd.AddDate(0, 0, 1)
	}

	if start.Before(scheduleStart) || end.After(scheduleEnd) {
		return Verdict{Available: false, Reason: ReasonOutsideWorkingHours}, nil
	}

	// 3. Перерывы: строгое пересечение, касание границ допустимо
	breaks, err := c.provider.GetBreaks(ctx, entry.ID)
	if err != nil {
		return Verdict{}, fmt.Errorf("availability: get breaks: %w", err)
	}
	for _, br := range breaks {
		breakStart, err := calendar.Combine(start, br.StartTime)
		if err != nil {
			return Verdict{}, fmt.Errorf("availability: invalid break start: %w", err)
		}
		breakEnd, err := calendar.Combine(start, br.EndTime)
		if err != nil {
			return Verdict{}, fmt.Errorf("availability: invalid break end: %w", err)
		}

		if calendar.Overlaps(start, end, breakStart, breakEnd, 0) {
			return Verdict{Available: false, Reason: ReasonBreak}, nil
		}
	}

	// 4. Выходные (включая глобальные staff_id = 0), диапазон дат включительный
	holidays, err := c.provider.GetHolidays(ctx, staffID, start)
	if err != nil {
		return Verdict{}, fmt.Errorf("availability: get holidays: %w", err)
	}
	for _, h := range holidays {
		if h.AppliesTo(staffID) && h.Covers(start) {
			return Verdict{Available: false, Reason: ReasonHoliday}, nil
		}
	}

	// 5. Пересечения с существующими записями, буфер продлевает конец существующей
	conflict, err := c.provider.HasConflictingAppointment(ctx, staffID, start, end, bufferMinutes, excludeID)
	if err != nil {
		return Verdict{}, fmt.Errorf("availability: check conflicts: %w", err)
	}
	if conflict {
		return Verdict{Available: false, Reason: ReasonConflict}, nil
	}

	return Verdict{Available: true}, nil
}
