// Package recurrence разворачивает правило повторения в последовательность вхождений,
// проверяя доступность каждого. Конфликтные даты пропускаются, а не валят всю серию:
// частичный успех — штатный результат, полный провал — ошибка.
package recurrence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/pricing"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// maxIterations жёсткая граница итераций развёртки
// Гарантирует завершение даже на некорректных входных данных
const maxIterations = 500

// Rule правило повторения серии
type Rule struct {
	Frequency domain.Frequency
	Interval  int
	EndDate   *time.Time
	Count     *int
}

// Request запрос на развёртку серии
type Request struct {
	Rule        Rule
	FirstDate   time.Time
	StartTime   types.TimeString
	ServiceID   int64
	StaffID     int64 // 0 = "любой сотрудник"
	PersonCount int
}

// Occurrence одно созданное вхождение серии
type Occurrence struct {
	Date            time.Time
	Start           time.Time
	End             time.Time
	StaffID         int64
	DurationMinutes int
	Price           float64
}

// Expansion результат развёртки: созданные вхождения и пропущенные даты
type Expansion struct {
	Created []Occurrence
	Skipped []time.Time
}

// Expander разворачивает правило повторения в набор вхождений
type Expander struct {
	provider Provider
	checker  AvailabilityChecker
}

// NewExpander создает новый Expander
func NewExpander(provider Provider, checker AvailabilityChecker) *Expander {
	return &Expander{provider: provider, checker: checker}
}

// Expand разворачивает правило в последовательность вхождений и проверяет доступность каждого.
// Недоступные даты попадают в Skipped; вызывающая сторона сообщает о них пользователю.
// Возвращает ErrAllOccurrencesSkipped, если не создано ни одного вхождения
func (e *Expander) Expand(ctx context.Context, req Request, settings *domain.SchedulingSettings) (*Expansion, error) {
	if err := validateRule(req.Rule, settings.MaxRecurrences); err != nil {
		return nil, err
	}

	service, err := e.provider.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("recurrence: get service: %w", err)
	}

	candidates, err := e.resolveCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	// Переопределения цены/длительности по сотрудникам, один запрос на сотрудника
	overrides := make(map[int64]*domain.StaffOverride, len(candidates))
	for _, staffID := range candidates {
		override, err := e.provider.GetStaffOverride(ctx, staffID, req.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("recurrence: get staff override: %w", err)
		}
		overrides[staffID] = override
	}

	expansion := &Expansion{
		Created: make([]Occurrence, 0),
		Skipped: make([]time.Time, 0),
	}

	anchor := calendar.DateOnly(req.FirstDate)
	produced := 0

	for i := 0; i < maxIterations; i++ {
		if req.Rule.Count != nil && produced >= *req.Rule.Count {
			break
		}
		if settings.MaxRecurrences > 0 && produced >= settings.MaxRecurrences {
			break
		}

		// Каждое вхождение отсчитывается от первой даты серии, а не от предыдущего:
		// прижатие к концу короткого месяца не накапливается
		// (31 января -> 28 февраля -> 31 марта)
		date := req.Rule.Frequency.AddTo(anchor, i*req.Rule.Interval)
		if req.Rule.EndDate != nil && date.After(calendar.DateOnly(*req.Rule.EndDate)) {
			break
		}

		occurrence, ok, err := e.tryOccurrence(ctx, req, service, candidates, overrides, date, settings)
		if err != nil {
			return nil, err
		}

		if ok {
			expansion.Created = append(expansion.Created, occurrence)
		} else {
			expansion.Skipped = append(expansion.Skipped, date)
		}

		produced++
	}

	if len(expansion.Created) == 0 {
		return nil, ErrAllOccurrencesSkipped
	}

	return expansion, nil
}

// tryOccurrence подбирает сотрудника для вхождения на дату
// Кандидаты перебираются по возрастанию id (детерминированный порядок), берётся первый свободный
func (e *Expander) tryOccurrence(
	ctx context.Context,
	req Request,
	service domain.ServiceInfo,
	candidates []int64,
	overrides map[int64]*domain.StaffOverride,
	date time.Time,
	settings *domain.SchedulingSettings,
) (Occurrence, bool, error) {
	for _, staffID := range candidates {
		duration := service.DurationMinutes
		basePrice := service.Price

		if override := overrides[staffID]; override != nil {
			if override.DurationMinutes != nil {
				duration = *override.DurationMinutes
			}
			if override.Price != nil {
				basePrice = *override.Price
			}
		}

		start, err := calendar.Combine(date, req.StartTime)
		if err != nil {
			return Occurrence{}, false, fmt.Errorf("recurrence: invalid start time: %w", err)
		}
		end := calendar.AddMinutes(start, duration)

		verdict, err := e.checker.Check(ctx, staffID, start, end, settings.BufferMinutes, 0)
		if err != nil {
			return Occurrence{}, false, fmt.Errorf("recurrence: availability check: %w", err)
		}
		if !verdict.Available {
			continue
		}

		return Occurrence{
			Date:            date,
			Start:           start,
			End:             end,
			StaffID:         staffID,
			DurationMinutes: duration,
			Price:           pricing.Price(basePrice, req.PersonCount, settings.GroupPricing),
		}, true, nil
	}

	return Occurrence{}, false, nil
}

// resolveCandidates возвращает кандидатов в порядке возрастания id
func (e *Expander) resolveCandidates(ctx context.Context, req Request) ([]int64, error) {
	if req.StaffID > 0 {
		return []int64{req.StaffID}, nil
	}

	staff, err := e.provider.GetEligibleStaff(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("recurrence: get eligible staff: %w", err)
	}

	sorted := make([]int64, len(staff))
	copy(sorted, staff)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return sorted, nil
}

func validateRule(rule Rule, maxRecurrences int) error {
	if !rule.Frequency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, rule.Frequency)
	}
	if rule.Interval < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, rule.Interval)
	}
	if rule.Count == nil && rule.EndDate == nil {
		return ErrMissingEndCondition
	}
	if rule.Count != nil && *rule.Count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, *rule.Count)
	}
	if rule.Count != nil && maxRecurrences > 0 && *rule.Count > maxRecurrences {
		return fmt.Errorf("%w: %d > %d", ErrTooManyOccurrences, *rule.Count, maxRecurrences)
	}
	return nil
}
