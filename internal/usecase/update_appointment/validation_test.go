package update_appointment

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
			name:      "move to a slot well in advance",
			date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.Local),
			startTime: "10:00",
			expected:  nil,
		},
		{
			name:      "move inside the lead window",
			date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local),
			startTime: "09:30",
			expected:  ErrTooLateToBook,
		},
		{
			name:      "move to a past date",
			date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local),
			startTime: "10:00",
			expected:  ErrInvalidDate,
		},
		{
			name:      "malformed start time",
			date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.Local),
			startTime: "9am",
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
