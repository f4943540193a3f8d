package recurrence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/engine/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// fakeProvider in-memory реализация Provider для тестов
type fakeProvider struct {
	service   domain.ServiceInfo
	eligible  []int64
	overrides map[int64]*domain.StaffOverride
}

func (p *fakeProvider) GetService(_ context.Context, _ int64) (domain.ServiceInfo, error) {
	return p.service, nil
}

func (p *fakeProvider) GetEligibleStaff(_ context.Context, _ int64) ([]int64, error) {
	return p.eligible, nil
}

func (p *fakeProvider) GetStaffOverride(_ context.Context, staffID, _ int64) (*domain.StaffOverride, error) {
	return p.overrides[staffID], nil
}

// fakeChecker отклоняет окна по датам и сотрудникам
type fakeChecker struct {
	busyDates map[string][]int64 // "2006-01-02" -> занятые сотрудники
	allBusy   bool
}

func (c *fakeChecker) Check(_ context.Context, staffID int64, start, _ time.Time, _ int, _ int64) (availability.Verdict, error) {
	if c.allBusy {
		return availability.Verdict{Available: false, Reason: availability.ReasonConflict}, nil
	}
	for _, id := range c.busyDates[start.Format(domain.DateFormat)] {
		if id == staffID {
			return availability.Verdict{Available: false, Reason: availability.ReasonConflict}, nil
		}
	}
	return availability.Verdict{Available: true}, nil
}

func newProvider() *fakeProvider {
	return &fakeProvider{
		service:  domain.ServiceInfo{ID: 1, Name: "Massage", DurationMinutes: 60, Price: 50},
		eligible: []int64{9, 7}, // намеренно не по порядку
	}
}

func defaultSettings() *domain.SchedulingSettings {
	s := domain.DefaultSchedulingSettings()
	s.MaxRecurrences = 10
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weeklyRequest(count int) Request {
	return Request{
		Rule:        Rule{Frequency: domain.FrequencyWeekly, Interval: 1, Count: ptr.Ptr(count)},
		FirstDate:   date(2025, 11, 10),
		StartTime:   "10:00",
		ServiceID:   1,
		StaffID:     7,
		PersonCount: 1,
	}
}

func TestExpand_WeeklyCount(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{})

	result, err := exp.Expand(context.Background(), weeklyRequest(4), defaultSettings())
	require.NoError(t, err)

	require.Len(t, result.Created, 4)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, date(2025, 11, 10), result.Created[0].Date)
	assert.Equal(t, date(2025, 11, 17), result.Created[1].Date)
	assert.Equal(t, date(2025, 12, 1), result.Created[3].Date)

	for _, occ := range result.Created {
		assert.Equal(t, int64(7), occ.StaffID)
		assert.Equal(t, 60, occ.DurationMinutes)
		assert.InDelta(t, 50.0, occ.Price, 0.001)
		assert.Equal(t, occ.Start.Add(time.Hour), occ.End)
	}
}

func TestExpand_CreatedPlusSkippedBoundedByCount(t *testing.T) {
	checker := &fakeChecker{busyDates: map[string][]int64{
		"2025-11-17": {7},
		"2025-12-01": {7},
	}}
	exp := NewExpander(newProvider(), checker)

	result, err := exp.Expand(context.Background(), weeklyRequest(4), defaultSettings())
	require.NoError(t, err)

	assert.Len(t, result.Created, 2)
	assert.Len(t, result.Skipped, 2)
	assert.Equal(t, date(2025, 11, 17), result.Skipped[0])
	assert.Equal(t, date(2025, 12, 1), result.Skipped[1])
}

func TestExpand_EndDateTermination(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{})

	req := weeklyRequest(0)
	req.Rule.Count = nil
	req.Rule.EndDate = ptr.Ptr(date(2025, 11, 24))

	result, err := exp.Expand(context.Background(), req, defaultSettings())
	require.NoError(t, err)

	// 10, 17, 24 ноября; дата окончания включительна
	require.Len(t, result.Created, 3)
	assert.Equal(t, date(2025, 11, 24), result.Created[2].Date)
}

func TestExpand_MonthlyClampsToShortMonth(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{})

	req := weeklyRequest(3)
	req.Rule.Frequency = domain.FrequencyMonthly
	req.FirstDate = date(2026, 1, 31)

	result, err := exp.Expand(context.Background(), req, defaultSettings())
	require.NoError(t, err)

	require.Len(t, result.Created, 3)
	assert.Equal(t, date(2026, 1, 31), result.Created[0].Date)
	assert.Equal(t, date(2026, 2, 28), result.Created[1].Date)
	assert.Equal(t, date(2026, 3, 31), result.Created[2].Date)
}

func TestExpand_YearlyLeapDayKeepsAnchor(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{})

	req := weeklyRequest(5)
	req.Rule.Frequency = domain.FrequencyYearly
	req.FirstDate = date(2024, 2, 29)

	result, err := exp.Expand(context.Background(), req, defaultSettings())
	require.NoError(t, err)

	// Невисокосные годы прижимаются к 28 февраля, но 29-е число не теряется
	require.Len(t, result.Created, 5)
	assert.Equal(t, date(2024, 2, 29), result.Created[0].Date)
	assert.Equal(t, date(2025, 2, 28), result.Created[1].Date)
	assert.Equal(t, date(2026, 2, 28), result.Created[2].Date)
	assert.Equal(t, date(2027, 2, 28), result.Created[3].Date)
	assert.Equal(t, date(2028, 2, 29), result.Created[4].Date)
}

func TestExpand_AnyStaffAscendingOrder(t *testing.T) {
	provider := newProvider()
	// Сотрудник 7 занят на первой дате: берётся следующий по возрастанию id
	checker := &fakeChecker{busyDates: map[string][]int64{
		"2025-11-10": {7},
	}}
	exp := NewExpander(provider, checker)

	req := weeklyRequest(2)
	req.StaffID = 0

	result, err := exp.Expand(context.Background(), req, defaultSettings())
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, int64(9), result.Created[0].StaffID)
	assert.Equal(t, int64(7), result.Created[1].StaffID)
}

func TestExpand_StaffOverridesAffectPriceAndDuration(t *testing.T) {
	provider := newProvider()
	provider.overrides = map[int64]*domain.StaffOverride{
		7: {Price: ptr.Ptr(80.0), DurationMinutes: ptr.Ptr(90)},
	}
	exp := NewExpander(provider, &fakeChecker{})

	result, err := exp.Expand(context.Background(), weeklyRequest(1), defaultSettings())
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, 90, result.Created[0].DurationMinutes)
	assert.InDelta(t, 80.0, result.Created[0].Price, 0.001)
}

func TestExpand_GroupPricingApplied(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{})

	settings := defaultSettings()
	settings.GroupPricing = domain.GroupPricingRule{Type: domain.PricingFixedDiscountPerPerson, Amount: 10}

	req := weeklyRequest(1)
	req.PersonCount = 3

	result, err := exp.Expand(context.Background(), req, settings)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.InDelta(t, 120.0, result.Created[0].Price, 0.001)
}

func TestExpand_AllSkippedFailsOutright(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{allBusy: true})

	_, err := exp.Expand(context.Background(), weeklyRequest(4), defaultSettings())
	assert.ErrorIs(t, err, ErrAllOccurrencesSkipped)
}

func TestExpand_ValidationErrors(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{})
	settings := defaultSettings()

	tests := []struct {
		name     string
		mutate   func(*Request)
		expected error
	}{
		{
			name:     "unknown frequency",
			mutate:   func(r *Request) { r.Rule.Frequency = "fortnightly" },
			expected: ErrInvalidFrequency,
		},
		{
			name:     "zero interval must not loop",
			mutate:   func(r *Request) { r.Rule.Interval = 0 },
			expected: ErrInvalidInterval,
		},
		{
			name:     "missing end condition",
			mutate:   func(r *Request) { r.Rule.Count = nil; r.Rule.EndDate = nil },
			expected: ErrMissingEndCondition,
		},
		{
			name:     "count above settings cap",
			mutate:   func(r *Request) { r.Rule.Count = ptr.Ptr(11) },
			expected: ErrTooManyOccurrences,
		},
		{
			name:     "zero count",
			mutate:   func(r *Request) { r.Rule.Count = ptr.Ptr(0) },
			expected: ErrInvalidCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := weeklyRequest(4)
			tt.mutate(&req)
			_, err := exp.Expand(context.Background(), req, settings)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExpand_SafetyBoundWithoutEndDateHit(t *testing.T) {
	exp := NewExpander(newProvider(), &fakeChecker{})

	// Дата окончания далеко в будущем, глобальный лимит снят:
	// развёртка ограничена жёсткой границей итераций и завершается
	settings := defaultSettings()
	settings.MaxRecurrences = 0

	req := weeklyRequest(0)
	req.Rule.Count = nil
	req.Rule.EndDate = ptr.Ptr(date(2125, 1, 1))

	result, err := exp.Expand(context.Background(), req, settings)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Created)+len(result.Skipped), maxIterations)
}
