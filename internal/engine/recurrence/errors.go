package recurrence

import "errors"

var (
	// ErrInvalidFrequency возвращается при неизвестной частоте повторения
	ErrInvalidFrequency = errors.New("recurrence: invalid frequency")

	// ErrInvalidInterval возвращается при интервале меньше 1
	ErrInvalidInterval = errors.New("recurrence: interval must be at least 1")

	// ErrInvalidCount возвращается при числе повторений меньше 1
	ErrInvalidCount = errors.New("recurrence: occurrence count must be at least 1")

	// ErrMissingEndCondition возвращается, когда не заданы ни число повторений, ни дата окончания
	ErrMissingEndCondition = errors.New("recurrence: either occurrence count or end date is required")

	// ErrTooManyOccurrences возвращается, когда запрошенное число повторений превышает лимит настроек
	ErrTooManyOccurrences = errors.New("recurrence: occurrence count exceeds the configured maximum")

	// ErrAllOccurrencesSkipped возвращается, когда ни одно вхождение серии не удалось создать
	// Частичный результат — норма; полный провал — ошибка
	ErrAllOccurrencesSkipped = errors.New("recurrence: no occurrence of the series could be booked")
)
