package domain

import "time"

// SchedulingSettings настройки планирования, читаемые на каждый вызов движка
// Явный value object вместо глобального состояния: движок остается чистым и тестируемым
type SchedulingSettings struct {
	ID int64

	// BusinessTimezone IANA-имя бизнес-таймзоны; "local" = текущая зона оператора
	BusinessTimezone string

	SlotLengthMinutes       int // 0 отключает генерацию слотов
	MinLeadMinutes          int // минимальное время между "сейчас" и началом слота
	CancellationLeadMinutes int // минимальное время до начала для отмены
	BufferMinutes           int // буфер после существующей записи

	GroupBookingEnabled bool
	MaxPersons          int
	GroupPricing        GroupPricingRule

	RecurringEnabled bool
	MaxRecurrences   int

	IncompleteTimeoutMinutes int // через сколько минут удалять записи в статусе incomplete

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location возвращает *time.Location бизнес-таймзоны
// При некорректном имени или "local" используется зона хоста
func (s *SchedulingSettings) Location() *time.Location {
	if s.BusinessTimezone == "" || s.BusinessTimezone == "local" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.BusinessTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DefaultSchedulingSettings возвращает настройки по умолчанию
func DefaultSchedulingSettings() *SchedulingSettings {
	return &SchedulingSettings{
		BusinessTimezone:         "local",
		SlotLengthMinutes:        DefaultSlotLengthMinutes,
		MinLeadMinutes:           DefaultMinLeadMinutes,
		CancellationLeadMinutes:  DefaultCancellationLeadMinutes,
		BufferMinutes:            DefaultBufferMinutes,
		GroupBookingEnabled:      false,
		MaxPersons:               DefaultMaxPersons,
		GroupPricing:             GroupPricingRule{Type: PricingPerPersonMultiply},
		RecurringEnabled:         false,
		MaxRecurrences:           DefaultMaxRecurrences,
		IncompleteTimeoutMinutes: DefaultIncompleteTimeoutMinutes,
	}
}
