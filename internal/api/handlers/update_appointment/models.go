package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UpdateAppointmentRequest HTTP request model
// Все поля опциональны - применяются только переданные значения
type UpdateAppointmentRequest struct {
	StaffID     *int64  `json:"staffId,omitempty"`
	ServiceID   *int64  `json:"serviceId,omitempty"`
	Date        *string `json:"date,omitempty"`      // "2026-09-15"
	StartTime   *string `json:"startTime,omitempty"` // "10:00"
	PersonCount *int    `json:"personCount,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	StaffID         *int64  `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	PersonCount     int     `json:"personCount"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID, customerID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		AppointmentID: appointmentID,
		CustomerID:    customerID,
		StaffID:       r.StaffID,
		ServiceID:     r.ServiceID,
		PersonCount:   r.PersonCount,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		DurationMinutes: resp.DurationMinutes,
		PersonCount:     resp.PersonCount,
		Price:           resp.Price,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
