package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusIncomplete AppointmentStatus = "incomplete"
	StatusRejected   AppointmentStatus = "rejected"
)

// Appointment represents a booked time window for a staff member
// Все datetime хранятся в бизнес-таймзоне как наивное локальное время (без UTC-нормализации)
type Appointment struct {
	ID         int64
	SeriesID   *int64 // ID серии, если запись создана из повторяющегося бронирования
	CustomerID int64
	StaffID    *int64 // NULL = "любой сотрудник", ещё не назначен
	ServiceID  int64

	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	PersonCount     int
	Price           float64
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the appointment occupies its staff time window.
// Отменённые и незавершённые (incomplete) записи слот не занимают
func (a *Appointment) IsBlocking() bool {
	return a.Status != StatusCancelled && a.Status != StatusIncomplete
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeUpdated returns true if the appointment can be updated
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled || a.Status == StatusRejected
}

// StartTime returns the time-of-day of the appointment start
func (a *Appointment) StartTime() types.TimeString {
	return types.NewTimeString(a.StartAt)
}

// StaffAppointmentsFilter фильтр для получения записей сотрудника
type StaffAppointmentsFilter struct {
	StaffID         int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и incomplete записи
}
