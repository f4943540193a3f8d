package create_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestValidateLeadTime(t *testing.T) {
	now := time.Date(2026, 9, 15, 9, 10, 0, 0, time.Local)

	tests := []struct {
		name      string
		date      time.Time
		startTime types.TimeString
		expected  error
	}{
		{
			name:      "booking well in advance",
			date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.Local),
			startTime: "10:00",
			expected:  nil,
		},
		{
			name:      "same day outside lead window",
			date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local),
			startTime: "12:00",
			expected:  nil,
		},
		{
			name:      "start exactly at the lead boundary",
			date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local),
			startTime: "10:10",
			expected:  nil,
		},
		{
			name:      "start inside the lead window",
			date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local),
			startTime: "09:30",
			expected:  ErrTooLateToBook,
		},
		{
			name:      "date in the past",
			date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local),
			startTime: "10:00",
			expected:  ErrInvalidDate,
		},
		{
			name:      "malformed start time",
			date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.Local),
			startTime: "25:99",
			expected:  ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLeadTime(tt.date, tt.startTime, now, 60)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}
