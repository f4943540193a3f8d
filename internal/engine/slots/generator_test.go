package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// fakeProvider in-memory реализация Provider для тестов
type fakeProvider struct {
	service  domain.ServiceInfo
	eligible []int64
	entries  map[int64]map[int]*domain.ScheduleEntry
}

func (p *fakeProvider) GetService(_ context.Context, _ int64) (domain.ServiceInfo, error) {
	return p.service, nil
}

func (p *fakeProvider) GetEligibleStaff(_ context.Context, _ int64) ([]int64, error) {
	return p.eligible, nil
}

func (p *fakeProvider) GetScheduleEntry(_ context.Context, staffID int64, dayOfWeek int) (*domain.ScheduleEntry, error) {
	if days, ok := p.entries[staffID]; ok {
		return days[dayOfWeek], nil
	}
	return nil, nil
}

// fakeChecker отклоняет заданные окна для конкретных сотрудников
type fakeChecker struct {
	busy map[int64][]string // staffID -> занятые времена начала "HH:MM"
}

func (c *fakeChecker) Check(_ context.Context, staffID int64, start, _ time.Time, _ int, _ int64) (availability.Verdict, error) {
	for _, b := range c.busy[staffID] {
		if types.NewTimeString(start) == types.TimeString(b) {
			return availability.Verdict{Available: false, Reason: availability.ReasonConflict}, nil
		}
	}
	return availability.Verdict{Available: true}, nil
}

func monday(hour, min int) time.Time {
	return time.Date(2025, 11, 10, hour, min, 0, 0, time.UTC)
}

func settings(slotLen, lead int) *domain.SchedulingSettings {
	s := domain.DefaultSchedulingSettings()
	s.SlotLengthMinutes = slotLen
	s.MinLeadMinutes = lead
	return s
}

func newProvider(duration int, staff ...int64) *fakeProvider {
	entries := make(map[int64]map[int]*domain.ScheduleEntry)
	for _, id := range staff {
		entries[id] = map[int]*domain.ScheduleEntry{
			1: {ID: id * 10, StaffID: id, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		}
	}
	return &fakeProvider{
		service:  domain.ServiceInfo{ID: 1, DurationMinutes: duration, Price: 50},
		eligible: staff,
		entries:  entries,
	}
}

func asStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestGenerate_LeadTimeRounding(t *testing.T) {
	// now = 09:10, lead 60 минут -> earliest 10:10, округление вверх по сетке 30 -> 10:30
	gen := NewGenerator(newProvider(30, 7), &fakeChecker{})

	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(30, 60), monday(9, 10))
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "10:30", slots[0].String())
}

func TestGenerate_LeadTimeExactGrid(t *testing.T) {
	// now = 09:00, lead 60 -> earliest ровно 10:00, уже на сетке
	gen := NewGenerator(newProvider(30, 7), &fakeChecker{})

	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(30, 60), monday(9, 0))
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "10:00", slots[0].String())
}

func TestGenerate_FutureDateFullDay(t *testing.T) {
	gen := NewGenerator(newProvider(60, 7), &fakeChecker{})

	// Запрос на завтра: lead time не мешает, слоты с начала смены
	yesterday := monday(12, 0).AddDate(0, 0, -1)
	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(30, 60), yesterday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0].String())
	// Последний слот: 16:00 + 60 минут услуги = 17:00, конец смены
	assert.Equal(t, "16:00", slots[len(slots)-1].String())
}

func TestGenerate_UnionAcrossStaff(t *testing.T) {
	provider := newProvider(30, 7, 8)
	checker := &fakeChecker{busy: map[int64][]string{
		7: {"09:00", "09:30"},
		8: {"09:30", "10:00"},
	}}
	gen := NewGenerator(provider, checker)

	past := monday(0, 0).AddDate(0, 0, -1)
	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(30, 0), past)
	require.NoError(t, err)

	got := asStrings(slots)
	// 09:00 свободно у сотрудника 8, 10:00 у сотрудника 7, 09:30 занято у обоих
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "10:00")
	assert.NotContains(t, got, "09:30")
}

func TestGenerate_SortedAndDeduplicated(t *testing.T) {
	gen := NewGenerator(newProvider(30, 7, 8), &fakeChecker{})

	past := monday(0, 0).AddDate(0, 0, -1)
	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(30, 0), past)
	require.NoError(t, err)

	seen := make(map[types.TimeString]int)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1] < slots[i], "slots must be strictly ascending")
	}
	for _, s := range slots {
		seen[s]++
		assert.Equal(t, 1, seen[s], "slot %s duplicated", s)
	}
}

func TestGenerate_StaffFilter(t *testing.T) {
	provider := newProvider(30, 7, 8)
	checker := &fakeChecker{busy: map[int64][]string{7: {"09:00"}}}
	gen := NewGenerator(provider, checker)

	past := monday(0, 0).AddDate(0, 0, -1)
	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 7, settings(30, 0), past)
	require.NoError(t, err)

	// Фильтр по сотруднику 7: его занятый слот не спасает свободный сотрудник 8
	assert.NotContains(t, asStrings(slots), "09:00")
	assert.Contains(t, asStrings(slots), "09:30")
}

func TestGenerate_SlottingDisabled(t *testing.T) {
	gen := NewGenerator(newProvider(30, 7), &fakeChecker{})

	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(0, 0), monday(8, 0))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerate_StaffWithoutScheduleSkipped(t *testing.T) {
	provider := newProvider(30, 7)
	provider.eligible = []int64{7, 9} // у 9 нет расписания на понедельник
	gen := NewGenerator(provider, &fakeChecker{})

	past := monday(0, 0).AddDate(0, 0, -1)
	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(30, 0), past)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestGenerate_ServiceLongerThanRemainingWindow(t *testing.T) {
	// Услуга 120 минут: последний допустимый старт 15:00
	gen := NewGenerator(newProvider(120, 7), &fakeChecker{})

	past := monday(0, 0).AddDate(0, 0, -1)
	slots, err := gen.Generate(context.Background(), 1, monday(0, 0), 0, settings(30, 0), past)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "15:00", slots[len(slots)-1].String())
}
