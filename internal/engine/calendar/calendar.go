// Package calendar содержит чистые интервальные и календарные функции движка.
// Все вычисления выполняются в одной бизнес-таймзоне как наивное локальное время.
package calendar

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// с буфером, продлевающим конец СУЩЕСТВУЮЩЕГО интервала b.
// Буфер несимметричен: Overlaps(a, b) и Overlaps(b, a) при buffer > 0 могут отличаться.
// Граничные случаи без буфера пересечением не считаются: конец одного в начале другого — это ок
func Overlaps(aStart, aEnd, bStart, bEnd time.Time, bufferMinutes int) bool {
	bufferedEnd := bEnd.Add(time.Duration(bufferMinutes) * time.Minute)
	return aStart.Before(bufferedEnd) && aEnd.After(bStart)
}

// DayOfWeek возвращает день недели даты: 0 = воскресенье ... 6 = суббота
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}

// Combine строит datetime из даты и времени суток в таймзоне даты
func Combine(date time.Time, tod types.TimeString) (time.Time, error) {
	minutes, err := tod.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// AddMinutes возвращает время через minutes минут
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// RoundUpToInterval округляет время вперёд до ближайшего кратного intervalMinutes
// числа минут с начала суток. Время, уже стоящее на границе, не меняется
func RoundUpToInterval(t time.Time, intervalMinutes int) time.Time {
	if intervalMinutes <= 0 {
		return t
	}

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	elapsed := int(t.Sub(midnight).Minutes())
	if t.Sub(midnight)%time.Minute != 0 {
		elapsed++ // секунды тоже двигают вперёд
	}

	remainder := elapsed % intervalMinutes
	if remainder != 0 {
		elapsed += intervalMinutes - remainder
	}

	return midnight.Add(time.Duration(elapsed) * time.Minute)
}

// DateOnly обнуляет время, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
