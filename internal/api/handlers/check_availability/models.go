package check_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	StaffID   int64  `json:"staffId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		StaffID:   r.StaffID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		Available: resp.Available,
		Reason:    resp.Reason,
		StartAt:   resp.StartAt,
		EndAt:     resp.EndAt,
	}
}
