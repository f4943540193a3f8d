package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/calendar"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// fakeProvider in-memory реализация Provider для тестов
type fakeProvider struct {
	entries      map[int64]map[int]*domain.ScheduleEntry // staffID -> dayOfWeek -> entry
	breaks       map[int64][]domain.Break                // scheduleEntryID -> breaks
	holidays     []domain.Holiday
	appointments []*domain.Appointment
	buffer       int
}

func (p *fakeProvider) GetScheduleEntry(_ context.Context, staffID int64, dayOfWeek int) (*domain.ScheduleEntry, error) {
	if days, ok := p.entries[staffID]; ok {
		return days[dayOfWeek], nil
	}
	return nil, nil
}

func (p *fakeProvider) GetBreaks(_ context.Context, scheduleEntryID int64) ([]domain.Break, error) {
	return p.breaks[scheduleEntryID], nil
}

func (p *fakeProvider) GetHolidays(_ context.Context, staffID int64, _ time.Time) ([]domain.Holiday, error) {
	var result []domain.Holiday
	for _, h := range p.holidays {
		if h.AppliesTo(staffID) {
			result = append(result, h)
		}
	}
	return result, nil
}

func (p *fakeProvider) HasConflictingAppointment(_ context.Context, staffID int64, start, end time.Time, bufferMinutes int, excludeID int64) (bool, error) {
	for _, a := range p.appointments {
		if a.StaffID == nil || *a.StaffID != staffID || a.ID == excludeID || !a.IsBlocking() {
			continue
		}
		if calendar.Overlaps(start, end, a.StartAt, a.EndAt, bufferMinutes) {
			return true, nil
		}
	}
	return false, nil
}

// Monday 2025-11-10, schedule 09:00-17:00 with a 12:00-13:00 break
func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		entries: map[int64]map[int]*domain.ScheduleEntry{
			7: {
				1: {ID: 100, StaffID: 7, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
			},
		},
		breaks: map[int64][]domain.Break{
			100: {{ID: 1, ScheduleEntryID: 100, StartTime: "12:00", EndTime: "13:00"}},
		},
	}
}

func monday(hour, min int) time.Time {
	return time.Date(2025, 11, 10, hour, min, 0, 0, time.UTC)
}

func staffPtr(id int64) *int64 { return &id }

func TestCheck_WithinSchedule(t *testing.T) {
	checker := NewChecker(newFakeProvider())

	verdict, err := checker.Check(context.Background(), 7, monday(9, 0), monday(10, 0), 0, 0)
	require.NoError(t, err)
	assert.True(t, verdict.Available)
	assert.Empty(t, verdict.Reason)
}

func TestCheck_NotScheduled(t *testing.T) {
	checker := NewChecker(newFakeProvider())

	// Tuesday has no schedule entry
	tuesday := monday(10, 0).AddDate(0, 0, 1)
	verdict, err := checker.Check(context.Background(), 7, tuesday, tuesday.Add(time.Hour), 0, 0)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonNotScheduled, verdict.Reason)
}

func TestCheck_ScheduleBoundaries(t *testing.T) {
	checker := NewChecker(newFakeProvider())

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		available bool
	}{
		{"starts before schedule", monday(8, 30), monday(9, 30), false},
		{"ends after schedule", monday(16, 30), monday(17, 30), false},
		{"exactly at opening", monday(9, 0), monday(10, 0), true},
		{"ends exactly at closing", monday(16, 0), monday(17, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := checker.Check(context.Background(), 7, tt.start, tt.end, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.available, verdict.Available)
			if !tt.available {
				assert.Equal(t, ReasonOutsideWorkingHours, verdict.Reason)
			}
		})
	}
}

func TestCheck_BreakExclusion(t *testing.T) {
	checker := NewChecker(newFakeProvider())

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		available bool
	}{
		{"overlaps break start", monday(11, 30), monday(12, 30), false},
		{"exact break containment", monday(12, 0), monday(13, 0), false},
		{"right after break", monday(13, 0), monday(14, 0), true},
		{"right before break", monday(11, 0), monday(12, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := checker.Check(context.Background(), 7, tt.start, tt.end, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.available, verdict.Available)
			if !tt.available {
				assert.Equal(t, ReasonBreak, verdict.Reason)
			}
		})
	}
}

func TestCheck_Holiday(t *testing.T) {
	provider := newFakeProvider()
	provider.holidays = []domain.Holiday{
		{ID: 1, StaffID: 7, StartDate: monday(0, 0), EndDate: monday(0, 0).AddDate(0, 0, 2)},
	}
	checker := NewChecker(provider)

	verdict, err := checker.Check(context.Background(), 7, monday(10, 0), monday(11, 0), 0, 0)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonHoliday, verdict.Reason)
}

func TestCheck_GlobalHoliday(t *testing.T) {
	provider := newFakeProvider()
	// staff_id = 0 действует на всех сотрудников
	provider.holidays = []domain.Holiday{
		{ID: 2, StaffID: 0, StartDate: monday(0, 0), EndDate: monday(0, 0)},
	}
	checker := NewChecker(provider)

	verdict, err := checker.Check(context.Background(), 7, monday(10, 0), monday(11, 0), 0, 0)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonHoliday, verdict.Reason)
}

func TestCheck_BufferEnforcement(t *testing.T) {
	provider := newFakeProvider()
	provider.appointments = []*domain.Appointment{
		{ID: 1, StaffID: staffPtr(7), StartAt: monday(10, 0), EndAt: monday(11, 0), Status: domain.StatusConfirmed},
	}
	checker := NewChecker(provider)

	// 15-минутный буфер после записи 10:00-11:00
	verdict, err := checker.Check(context.Background(), 7, monday(11, 0), monday(11, 15), 15, 0)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonConflict, verdict.Reason)

	verdict, err = checker.Check(context.Background(), 7, monday(11, 15), monday(12, 0), 15, 0)
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestCheck_CancelledAndIncompleteDoNotBlock(t *testing.T) {
	provider := newFakeProvider()
	provider.appointments = []*domain.Appointment{
		{ID: 1, StaffID: staffPtr(7), StartAt: monday(10, 0), EndAt: monday(11, 0), Status: domain.StatusCancelled},
		{ID: 2, StaffID: staffPtr(7), StartAt: monday(10, 0), EndAt: monday(11, 0), Status: domain.StatusIncomplete},
	}
	checker := NewChecker(provider)

	verdict, err := checker.Check(context.Background(), 7, monday(10, 0), monday(11, 0), 0, 0)
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestCheck_ExcludeAppointmentOnUpdate(t *testing.T) {
	provider := newFakeProvider()
	provider.appointments = []*domain.Appointment{
		{ID: 42, StaffID: staffPtr(7), StartAt: monday(10, 0), EndAt: monday(11, 0), Status: domain.StatusConfirmed},
	}
	checker := NewChecker(provider)

	// Без исключения запись конфликтует сама с собой
	verdict, err := checker.Check(context.Background(), 7, monday(10, 0), monday(11, 0), 0, 0)
	require.NoError(t, err)
	assert.False(t, verdict.Available)

	// С исключением собственного ID проверка проходит
	verdict, err = checker.Check(context.Background(), 7, monday(10, 0), monday(11, 0), 0, 42)
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestCheck_OvernightSchedule(t *testing.T) {
	provider := newFakeProvider()
	// Ночная смена понедельника: 22:00 - 06:00 следующего дня
	provider.entries[7][1] = &domain.ScheduleEntry{
		ID: 101, StaffID: 7, DayOfWeek: 1,
		StartTime: types.TimeString("22:00"), EndTime: types.TimeString("06:00"),
	}
	checker := NewChecker(provider)

	verdict, err := checker.Check(context.Background(), 7, monday(23, 0), monday(23, 0).Add(4*time.Hour), 0, 0)
	require.NoError(t, err)
	assert.True(t, verdict.Available)

	verdict, err = checker.Check(context.Background(), 7, monday(21, 0), monday(22, 30), 0, 0)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonOutsideWorkingHours, verdict.Reason)
}
