package domain

// Default scheduling settings values
const (
	DefaultSlotLengthMinutes        = 30
	DefaultMinLeadMinutes           = 60
	DefaultCancellationLeadMinutes  = 120
	DefaultBufferMinutes            = 0
	DefaultMaxPersons               = 1
	DefaultMaxRecurrences           = 24
	DefaultIncompleteTimeoutMinutes = 15
)

// Business validation constants
const (
	MinSlotLengthMinutes = 5
	MaxSlotLengthMinutes = 480 // 8 hours
	MinLeadMinutesLimit  = 10080
	MaxPersonsLimit      = 50
	MaxRecurrencesLimit  = 100
	MaxNotesLength       = 500
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04:05" // наивное локальное время без зоны
)

// BlockingStatuses статусы, при которых запись занимает окно сотрудника
// Используются в проверках пересечений
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusRejected,
}

// NonBlockingStatuses статусы, не занимающие окно сотрудника
var NonBlockingStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusIncomplete,
}
