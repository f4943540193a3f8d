package create_recurring_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createRecurring "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_recurring_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RecurrenceRule правило повторения в HTTP запросе
type RecurrenceRule struct {
	Frequency string  `json:"frequency"` // daily | weekly | monthly | yearly
	Interval  int     `json:"interval"`  // шаг частоты, по умолчанию 1
	EndDate   *string `json:"endDate,omitempty"`
	Count     *int    `json:"count,omitempty"`
}

// CreateRecurringAppointmentRequest HTTP request model
type CreateRecurringAppointmentRequest struct {
	CustomerID  int64          `json:"customerId"`
	StaffID     int64          `json:"staffId"` // 0 = любой сотрудник
	ServiceID   int64          `json:"serviceId"`
	FirstDate   string         `json:"firstDate"` // "2026-09-15"
	StartTime   string         `json:"startTime"` // "10:00"
	PersonCount int            `json:"personCount"`
	Notes       *string        `json:"notes,omitempty"`
	Recurrence  RecurrenceRule `json:"recurrence"`
}

// RecurringSeriesResponse HTTP response model
type RecurringSeriesResponse struct {
	SeriesID     int64                               `json:"seriesId"`
	CustomerID   int64                               `json:"customerId"`
	ServiceID    int64                               `json:"serviceId"`
	Created      []createRecurring.CreatedOccurrence `json:"created"`
	SkippedDates []string                            `json:"skippedDates"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringAppointmentRequest) ToUseCaseRequest() (*createRecurring.Request, error) {
	firstDate, err := time.Parse(domain.DateFormat, r.FirstDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if r.Recurrence.EndDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.Recurrence.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	interval := r.Recurrence.Interval
	if interval == 0 {
		interval = 1
	}

	return &createRecurring.Request{
		CustomerID:  r.CustomerID,
		StaffID:     r.StaffID,
		ServiceID:   r.ServiceID,
		FirstDate:   firstDate,
		StartTime:   startTime,
		PersonCount: r.PersonCount,
		Notes:       r.Notes,
		Frequency:   r.Recurrence.Frequency,
		Interval:    interval,
		EndDate:     endDate,
		Count:       r.Recurrence.Count,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringSeriesResponse {
	return &RecurringSeriesResponse{
		SeriesID:     resp.SeriesID,
		CustomerID:   resp.CustomerID,
		ServiceID:    resp.ServiceID,
		Created:      resp.Created,
		SkippedDates: resp.SkippedDates,
	}
}
