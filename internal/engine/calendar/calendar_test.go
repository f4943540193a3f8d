package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func dt(hour, min int) time.Time {
	return time.Date(2025, 11, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		buffer   int
		expected bool
	}{
		{
			name:   "strict intersection",
			aStart: dt(10, 30), aEnd: dt(11, 30),
			bStart: dt(10, 0), bEnd: dt(11, 0),
			buffer: 0, expected: true,
		},
		{
			name:   "touching endpoints do not overlap",
			aStart: dt(11, 0), aEnd: dt(12, 0),
			bStart: dt(10, 0), bEnd: dt(11, 0),
			buffer: 0, expected: false,
		},
		{
			name:   "touching before start does not overlap",
			aStart: dt(9, 0), aEnd: dt(10, 0),
			bStart: dt(10, 0), bEnd: dt(11, 0),
			buffer: 0, expected: false,
		},
		{
			name:   "buffer extends existing end",
			aStart: dt(11, 0), aEnd: dt(11, 15),
			bStart: dt(10, 0), bEnd: dt(11, 0),
			buffer: 15, expected: true,
		},
		{
			name:   "window after buffer is free",
			aStart: dt(11, 15), aEnd: dt(12, 0),
			bStart: dt(10, 0), bEnd: dt(11, 0),
			buffer: 15, expected: false,
		},
		{
			name:   "containment",
			aStart: dt(10, 15), aEnd: dt(10, 45),
			bStart: dt(10, 0), bEnd: dt(11, 0),
			buffer: 0, expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, tt.buffer))
		})
	}
}

func TestOverlaps_BufferIsAsymmetric(t *testing.T) {
	// Буфер продлевает только существующий интервал (второй аргументной пары)
	assert.True(t, Overlaps(dt(11, 0), dt(11, 15), dt(10, 0), dt(11, 0), 15))
	assert.False(t, Overlaps(dt(10, 0), dt(11, 0), dt(11, 0), dt(11, 15), 15))
}

func TestDayOfWeek(t *testing.T) {
	// 2025-11-09 is a Sunday
	assert.Equal(t, 0, DayOfWeek(time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DayOfWeek(time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, DayOfWeek(time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)))
}

func TestCombine(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	combined, err := Combine(date, types.TimeString("09:30"))
	require.NoError(t, err)
	assert.Equal(t, dt(9, 30), combined)

	_, err = Combine(date, types.TimeString("25:00"))
	assert.Error(t, err)
}

func TestRoundUpToInterval(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		interval int
		expected time.Time
	}{
		{"already aligned", dt(10, 0), 30, dt(10, 0)},
		{"rounds forward", dt(10, 10), 30, dt(10, 30)},
		{"just past boundary", dt(10, 31), 30, dt(11, 0)},
		{"15 minute grid", dt(9, 50), 15, dt(10, 0)},
		{"zero interval is identity", dt(10, 10), 0, dt(10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundUpToInterval(tt.input, tt.interval))
		})
	}
}

func TestRoundUpToInterval_SecondsPushForward(t *testing.T) {
	withSeconds := time.Date(2025, 11, 10, 10, 30, 20, 0, time.UTC)
	assert.Equal(t, dt(11, 0), RoundUpToInterval(withSeconds, 30))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(dt(0, 0), dt(23, 59)))
	assert.False(t, SameDay(dt(23, 59), dt(23, 59).Add(time.Minute)))
}
