package domain

import "time"

// Frequency частота повторения серии бронирований
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid returns true for a known frequency
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// AddTo возвращает дату через interval шагов частоты
// Месячные и годовые шаги считаются по календарю: день месяца прижимается
// к последнему дню целевого месяца (31 января + 1 месяц = 28/29 февраля)
func (f Frequency) AddTo(date time.Time, interval int) time.Time {
	switch f {
	case FrequencyDaily:
		return date.AddDate(0, 0, interval)
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7*interval)
	case FrequencyMonthly:
		return addMonthsClamped(date, interval)
	case FrequencyYearly:
		return addMonthsClamped(date, 12*interval)
	default:
		return date
	}
}

// addMonthsClamped добавляет месяцы, не позволяя time.AddDate "перелить"
// несуществующий день в следующий месяц
func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()

	first := time.Date(year, month, 1, date.Hour(), date.Minute(), 0, 0, date.Location())
	target := first.AddDate(0, months, 0)

	lastDay := daysInMonth(target.Year(), target.Month())
	if day > lastDay {
		day = lastDay
	}

	return time.Date(target.Year(), target.Month(), day,
		date.Hour(), date.Minute(), 0, 0, date.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Series шаблон повторяющегося бронирования, владеющий набором Appointments
// Серию завершает либо EndDate, либо OccurrenceCount; хотя бы одно должно быть задано
type Series struct {
	ID              int64
	CustomerID      int64
	ServiceID       int64
	Frequency       Frequency
	Interval        int // >= 1
	StartDate       time.Time
	EndDate         *time.Time
	OccurrenceCount *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
