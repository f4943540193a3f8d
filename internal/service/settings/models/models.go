package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек планирования
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	BusinessTimezone        *string `json:"businessTimezone,omitempty"`
	SlotLengthMinutes       *int    `json:"slotLengthMinutes,omitempty"`
	MinLeadMinutes          *int    `json:"minLeadMinutes,omitempty"`
	CancellationLeadMinutes *int    `json:"cancellationLeadMinutes,omitempty"`
	BufferMinutes           *int    `json:"bufferMinutes,omitempty"`

	GroupBookingEnabled *bool    `json:"groupBookingEnabled,omitempty"`
	MaxPersons          *int     `json:"maxPersons,omitempty"`
	GroupPricingType    *string  `json:"groupPricingType,omitempty"`
	GroupPricingAmount  *float64 `json:"groupPricingAmount,omitempty"`

	RecurringEnabled *bool `json:"recurringEnabled,omitempty"`
	MaxRecurrences   *int  `json:"maxRecurrences,omitempty"`

	IncompleteTimeoutMinutes *int `json:"incompleteTimeoutMinutes,omitempty"`
}

// ApplyToSettings применяет обновления к существующим настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.SchedulingSettings) {
	if r.BusinessTimezone != nil {
		s.BusinessTimezone = *r.BusinessTimezone
	}
	if r.SlotLengthMinutes != nil {
		s.SlotLengthMinutes = *r.SlotLengthMinutes
	}
	if r.MinLeadMinutes != nil {
		s.MinLeadMinutes = *r.MinLeadMinutes
	}
	if r.CancellationLeadMinutes != nil {
		s.CancellationLeadMinutes = *r.CancellationLeadMinutes
	}
	if r.BufferMinutes != nil {
		s.BufferMinutes = *r.BufferMinutes
	}
	if r.GroupBookingEnabled != nil {
		s.GroupBookingEnabled = *r.GroupBookingEnabled
	}
	if r.MaxPersons != nil {
		s.MaxPersons = *r.MaxPersons
	}
	if r.GroupPricingType != nil {
		s.GroupPricing.Type = domain.GroupPricingType(*r.GroupPricingType)
	}
	if r.GroupPricingAmount != nil {
		s.GroupPricing.Amount = *r.GroupPricingAmount
	}
	if r.RecurringEnabled != nil {
		s.RecurringEnabled = *r.RecurringEnabled
	}
	if r.MaxRecurrences != nil {
		s.MaxRecurrences = *r.MaxRecurrences
	}
	if r.IncompleteTimeoutMinutes != nil {
		s.IncompleteTimeoutMinutes = *r.IncompleteTimeoutMinutes
	}
}

// Response модели

// SettingsResponse ответ с настройками планирования
type SettingsResponse struct {
	BusinessTimezone        string `json:"businessTimezone"`
	SlotLengthMinutes       int    `json:"slotLengthMinutes"`
	MinLeadMinutes          int    `json:"minLeadMinutes"`
	CancellationLeadMinutes int    `json:"cancellationLeadMinutes"`
	BufferMinutes           int    `json:"bufferMinutes"`

	GroupBookingEnabled bool    `json:"groupBookingEnabled"`
	MaxPersons          int     `json:"maxPersons"`
	GroupPricingType    string  `json:"groupPricingType"`
	GroupPricingAmount  float64 `json:"groupPricingAmount"`

	RecurringEnabled bool `json:"recurringEnabled"`
	MaxRecurrences   int  `json:"maxRecurrences"`

	IncompleteTimeoutMinutes int `json:"incompleteTimeoutMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.SchedulingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		BusinessTimezone:         s.BusinessTimezone,
		SlotLengthMinutes:        s.SlotLengthMinutes,
		MinLeadMinutes:           s.MinLeadMinutes,
		CancellationLeadMinutes:  s.CancellationLeadMinutes,
		BufferMinutes:            s.BufferMinutes,
		GroupBookingEnabled:      s.GroupBookingEnabled,
		MaxPersons:               s.MaxPersons,
		GroupPricingType:         string(s.GroupPricing.Type),
		GroupPricingAmount:       s.GroupPricing.Amount,
		RecurringEnabled:         s.RecurringEnabled,
		MaxRecurrences:           s.MaxRecurrences,
		IncompleteTimeoutMinutes: s.IncompleteTimeoutMinutes,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}
