// Package slots перечисляет доступные для бронирования времена начала на дату.
// Результат — объединение по сотрудникам: время попадает в список, если свободен
// хотя бы один подходящий сотрудник; кто именно, решается при создании брони.
package slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/calendar"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Generator генерирует список доступных слотов
type Generator struct {
	provider Provider
	checker  AvailabilityChecker
}

// NewGenerator создает новый генератор слотов
func NewGenerator(provider Provider, checker AvailabilityChecker) *Generator {
	return &Generator{provider: provider, checker: checker}
}

// Generate возвращает отсортированный дедуплицированный список времён начала "HH:MM"
// для услуги на дату. staffFilter > 0 ограничивает проверку одним сотрудником,
// staffFilter = 0 означает "любой сотрудник" — берутся все, кто оказывает услугу.
// Слоты раньше now + MinLeadMinutes отбрасываются; первый допустимый слот
// выравнивается вперёд по сетке SlotLengthMinutes
func (g *Generator) Generate(
	ctx context.Context,
	serviceID int64,
	date time.Time,
	staffFilter int64,
	settings *domain.SchedulingSettings,
	now time.Time,
) ([]types.TimeString, error) {
	// Нулевая длина слота отключает слотирование
	if settings.SlotLengthMinutes <= 0 {
		return []types.TimeString{}, nil
	}

	service, err := g.provider.GetService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("slots: get service: %w", err)
	}

	var staffIDs []int64
	if staffFilter > 0 {
		staffIDs = []int64{staffFilter}
	} else {
		staffIDs, err = g.provider.GetEligibleStaff(ctx, serviceID)
		if err != nil {
			return nil, fmt.Errorf("slots: get eligible staff: %w", err)
		}
	}

	earliestBookable := calendar.AddMinutes(now, settings.MinLeadMinutes)

	seen := make(map[types.TimeString]struct{})

	for _, staffID := range staffIDs {
		entry, err := g.provider.GetScheduleEntry(ctx, staffID, calendar.DayOfWeek(date))
		if err != nil {
			return nil, fmt.Errorf("slots: get schedule entry: %w", err)
		}
		if entry == nil {
			continue // сотрудник в этот день не работает
		}

		scheduleStart, err := calendar.Combine(date, entry.StartTime)
		if err != nil {
			return nil, fmt.Errorf("slots: invalid schedule start: %w", err)
		}
		scheduleEnd, err := calendar.Combine(date, entry.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slots: invalid schedule end: %w", err)
		}
		if entry.IsOvernight() {
			scheduleEnd = scheduleEnd.AddDate(0, 0, 1)
		}

		slotStart := scheduleStart
		if earliestBookable.After(slotStart) {
			slotStart = earliestBookable
		}
		slotStart = calendar.RoundUpToInterval(slotStart, settings.SlotLengthMinutes)

		for !calendar.AddMinutes(slotStart, service.DurationMinutes).After(scheduleEnd) {
			slotEnd := calendar.AddMinutes(slotStart, service.DurationMinutes)

			if _, taken := seen[types.NewTimeString(slotStart)]; taken {
				// Время уже подтверждено другим сотрудником
				slotStart = calendar.AddMinutes(slotStart, settings.SlotLengthMinutes)
				continue
			}

			verdict, err := g.checker.Check(ctx, staffID, slotStart, slotEnd, settings.BufferMinutes, 0)
			if err != nil {
				return nil, fmt.Errorf("slots: availability check: %w", err)
			}
			if verdict.Available {
				seen[types.NewTimeString(slotStart)] = struct{}{}
			}

			slotStart = calendar.AddMinutes(slotStart, settings.SlotLengthMinutes)
		}
	}

	result := make([]types.TimeString, 0, len(seen))
	for slot := range seen {
		result = append(result, slot)
	}

	// "HH:MM" с ведущими нулями сортируется лексикографически корректно
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	return result, nil
}
